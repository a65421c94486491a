package email

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers mail over SMTP via gomail.
type SMTPSender struct {
	config    Config
	templates *TemplateManager
}

// NewSender builds a Sender from config. When SMTP is not configured it
// returns the disabled sender so call sites never have to nil-check.
func NewSender(config Config) (Sender, error) {
	if !config.Configured() {
		return &DisabledSender{}, nil
	}
	return NewSMTPSender(config)
}

// NewSMTPSender builds a live SMTP sender.
func NewSMTPSender(config Config) (Sender, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	return &SMTPSender{
		config:    config,
		templates: tm,
	}, nil
}

// Send delivers one email.
func (s *SMTPSender) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.Username, s.config.Password)
	return d.DialAndSend(m)
}

// SendTemplate renders the named template and delivers the result.
func (s *SMTPSender) SendTemplate(to []string, subject, templateName string, data interface{}) error {
	htmlBody, err := s.templates.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	email := &Email{
		To:       to,
		Subject:  subject,
		Body:     htmlToText(htmlBody),
		HTMLBody: htmlBody,
	}

	return s.Send(email)
}

// SendVerification sends the email-verification link.
func (s *SMTPSender) SendVerification(to, name, verifyURL string) error {
	data := TemplateData{
		UserName:     name,
		Subject:      "Verify your email address",
		ActionURL:    verifyURL,
		ActionText:   "Verify Email",
		SupportEmail: s.config.SupportEmail,
		CompanyName:  s.config.FromName,
	}
	return s.SendTemplate([]string{to}, "Verify your email address", "verification", data)
}

// SendPasswordReset sends the password-reset link.
func (s *SMTPSender) SendPasswordReset(to, name, resetURL string) error {
	data := TemplateData{
		UserName:     name,
		Subject:      "Reset your password",
		ActionURL:    resetURL,
		ActionText:   "Reset Password",
		SupportEmail: s.config.SupportEmail,
		CompanyName:  s.config.FromName,
	}
	return s.SendTemplate([]string{to}, "Reset your password", "password_reset", data)
}

// SendPasswordResetConfirmation notifies that the password was changed.
func (s *SMTPSender) SendPasswordResetConfirmation(to, name string) error {
	data := TemplateData{
		UserName:     name,
		Subject:      "Your password was changed",
		SupportEmail: s.config.SupportEmail,
		CompanyName:  s.config.FromName,
	}
	return s.SendTemplate([]string{to}, "Your password was changed", "password_reset_confirmation", data)
}

// SendWelcome greets a freshly verified account.
func (s *SMTPSender) SendWelcome(to, name, accountKind string) error {
	data := WelcomeData{
		TemplateData: TemplateData{
			UserName:     name,
			Subject:      "Welcome to Ready to Work",
			SupportEmail: s.config.SupportEmail,
			CompanyName:  s.config.FromName,
		},
		AccountKind: accountKind,
	}
	return s.SendTemplate([]string{to}, "Welcome to Ready to Work", "welcome", data)
}

// SendInterviewInvitation notifies a candidate of an interview invitation.
func (s *SMTPSender) SendInterviewInvitation(to string, data InterviewInvitationData) error {
	data.SupportEmail = s.config.SupportEmail
	data.CompanyName = s.config.FromName
	if data.Subject == "" {
		data.Subject = "You have an interview invitation"
	}
	return s.SendTemplate([]string{to}, data.Subject, "interview_invitation", data)
}

// htmlToText produces a crude plain-text alternative part.
func htmlToText(html string) string {
	text := strings.ReplaceAll(html, "<br/>", "\n")
	text = strings.ReplaceAll(text, "<br>", "\n")
	text = strings.ReplaceAll(text, "<p>", "\n")
	text = strings.ReplaceAll(text, "</p>", "\n")

	for {
		start := strings.Index(text, "<")
		if start == -1 {
			break
		}
		end := strings.Index(text[start:], ">")
		if end == -1 {
			break
		}
		text = text[:start] + text[start+end+1:]
	}

	return strings.TrimSpace(text)
}

// DisabledSender is used when SMTP is not configured. Every send reports
// ErrSenderDisabled; callers log and carry on.
type DisabledSender struct{}

func (d *DisabledSender) Send(email *Email) error { return ErrSenderDisabled }

func (d *DisabledSender) SendTemplate(to []string, subject, templateName string, data interface{}) error {
	return ErrSenderDisabled
}

func (d *DisabledSender) SendVerification(to, name, verifyURL string) error {
	return ErrSenderDisabled
}

func (d *DisabledSender) SendPasswordReset(to, name, resetURL string) error {
	return ErrSenderDisabled
}

func (d *DisabledSender) SendPasswordResetConfirmation(to, name string) error {
	return ErrSenderDisabled
}

func (d *DisabledSender) SendWelcome(to, name, accountKind string) error {
	return ErrSenderDisabled
}

func (d *DisabledSender) SendInterviewInvitation(to string, data InterviewInvitationData) error {
	return ErrSenderDisabled
}
