package email

import "fmt"

// Config carries SMTP transport and branding settings.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	UseTLS       bool
	SupportEmail string
	TemplatePath string
}

// Configured reports whether the transport settings are present. An
// unconfigured sender degrades to the disabled sender rather than failing.
func (c Config) Configured() bool {
	return c.SMTPHost != "" && c.FromEmail != ""
}

// Validate checks the configuration for a live SMTP sender.
func (c Config) Validate() error {
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.SMTPPort)
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}
