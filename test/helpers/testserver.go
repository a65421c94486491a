package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"rtw_backend/internal/app"
	"rtw_backend/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestEnv holds the shared connection pool. Created once per package run.
type TestEnv struct {
	Pool *gorm.DB
	Cfg  *config.Config
}

// NewTestEnv connects to the test database named by DATABASE_URL and runs
// the migrations.
func NewTestEnv(t *testing.T) *TestEnv {
	config.LoadConfig()
	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	if err := app.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestEnv{Pool: db, Cfg: cfg}
}

func (e *TestEnv) Close() {
	if sqlDB, err := e.Pool.DB(); err == nil {
		sqlDB.Close()
	}
}

// TestServer runs the full HTTP stack on top of one transaction. Everything
// a test writes rolls back when the server closes, so tests stay independent
// and can run in parallel.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB // the per-test transaction
}

// NewTestServer begins a transaction and wires the router to it via the
// request-scoped DB key.
func (e *TestEnv) NewTestServer(t *testing.T) *TestServer {
	tx := e.Pool.Begin()
	if tx.Error != nil {
		t.Fatalf("failed to begin test transaction: %v", tx.Error)
	}

	router, _ := app.SetupRouter(e.Cfg, tx)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		tx.Rollback()
	})

	return &TestServer{Server: server, DB: tx}
}

// SendRequest performs one JSON request against the test server. The token,
// when present, travels as a bearer header.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return res, string(resBody)
}
