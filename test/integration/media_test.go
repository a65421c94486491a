package integration_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"rtw_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadFile posts a multipart body with the payload under the "file" field.
func uploadFile(t *testing.T, ts *helpers.TestServer, token, filename, contentType string, payload []byte, alt string) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)

	if alt != "" {
		require.NoError(t, writer.WriteField("alt", alt))
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/api/v1/media", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestUploadMedia(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginCandidate(t, ts)

	res, body := uploadFile(t, ts, token, "cv.pdf", "application/pdf", []byte("%PDF-1.4 fake"), "my resume")
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Media struct {
			ID       string `json:"id"`
			Alt      string `json:"alt"`
			URL      string `json:"url"`
			MimeType string `json:"mime_type"`
			Filename string `json:"filename"`
		} `json:"media"`
	}
	decode(t, body, &parsed)
	require.NotEmpty(t, parsed.Media.ID)
	assert.Equal(t, "my resume", parsed.Media.Alt)
	assert.Equal(t, "application/pdf", parsed.Media.MimeType)
	assert.Equal(t, "cv.pdf", parsed.Media.Filename)
	assert.NotEmpty(t, parsed.Media.URL)

	// The metadata is readable back.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/media/"+parsed.Media.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)
}

func TestUploadMedia_UnsupportedType(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginCandidate(t, ts)

	res, body := uploadFile(t, ts, token, "virus.exe", "application/x-msdownload", []byte("MZ"), "")
	require.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
}

func TestDeleteMedia_OwnerOnly(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	ownerToken, _ := helpers.CreateAndLoginCandidate(t, ts)
	otherToken, _ := helpers.CreateAndLoginCandidate(t, ts)

	res, body := uploadFile(t, ts, ownerToken, "photo.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47}, "")
	require.Equal(t, http.StatusCreated, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Media struct {
			ID string `json:"id"`
		} `json:"media"`
	}
	decode(t, body, &parsed)

	// A stranger cannot delete the file.
	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/media/"+parsed.Media.ID, otherToken, nil)
	require.Equal(t, http.StatusForbidden, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	// The owner can.
	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/media/"+parsed.Media.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/media/"+parsed.Media.ID, ownerToken, nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode, "unexpected response: %s", body)
}
