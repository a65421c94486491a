package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	App struct {
		// Public base URL used in email links, e.g. https://readytowork.sa
		BaseURL       string `yaml:"base_url"`
		DefaultLocale string `yaml:"default_locale"`
		SupportEmail  string `yaml:"support_email"`
		ContactEmail  string `yaml:"contact_email"`
	} `yaml:"app"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		// Session lifetime in hours: default session and remember-me session
		SessionTTL    int `yaml:"session_ttl"`
		RememberMeTTL int `yaml:"remember_me_ttl"`
	} `yaml:"jwt"`

	Storage struct {
		Type     string `yaml:"type"` // local, s3
		BasePath string `yaml:"base_path"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`
		AllowedTypes []string `yaml:"allowed_types"`
	} `yaml:"upload"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads .env, then either environment variables (test mode,
// signalled by DATABASE_URL) or config/config.yaml.
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		cfg.applyDefaults()
		cfg.applyEnvOverrides()
		AppConfig = &cfg
		return
	}

	// Environment-driven configuration, used by tests and containers.
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("EMAIL_FROM")

	cfg.App.BaseURL = os.Getenv("APP_URL")
	cfg.App.SupportEmail = os.Getenv("SUPPORT_EMAIL")
	cfg.App.ContactEmail = os.Getenv("CONTACT_EMAIL")

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	cfg.applyDefaults()
	AppConfig = &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.App.BaseURL == "" {
		c.App.BaseURL = "http://localhost:3000"
	}
	if c.App.DefaultLocale == "" {
		c.App.DefaultLocale = "en"
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Ready to Work"
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = "dev-secret-change-me"
	}
	if c.JWT.SessionTTL == 0 {
		c.JWT.SessionTTL = 24 // hours
	}
	if c.JWT.RememberMeTTL == 0 {
		c.JWT.RememberMeTTL = 30 * 24 // 30 days
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.BasePath == "" {
		c.Storage.BasePath = "./uploads"
	}
	if c.Storage.BaseURL == "" {
		c.Storage.BaseURL = "/files"
	}
	if c.Upload.MaxSize == 0 {
		c.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(c.Upload.AllowedTypes) == 0 {
		c.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/webp",
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		}
	}
}

// applyEnvOverrides lets deployment env vars win over file values for the
// secrets that should not live in config.yaml.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DATABASE_URI"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Email.SMTPPassword = v
	}
	if v := os.Getenv("APP_URL"); v != "" {
		c.App.BaseURL = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		c.Email.FromEmail = v
	}
}

// GetConfig returns the loaded configuration, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
