package email

import "errors"

// ErrSenderDisabled is returned by the disabled sender when SMTP is not
// configured. Call sites treat email as a best-effort side channel and log
// this instead of failing the surrounding operation.
var ErrSenderDisabled = errors.New("email sender disabled: smtp not configured")

// Email is one outgoing message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is the base payload shared by all templates (the branded
// wrapper reads CompanyName and SupportEmail).
type TemplateData struct {
	UserName     string
	Subject      string
	Message      string
	ActionURL    string
	ActionText   string
	SupportEmail string
	CompanyName  string
}

// WelcomeData feeds the welcome template.
type WelcomeData struct {
	TemplateData
	AccountKind string
}

// InterviewInvitationData feeds the interview invitation template.
type InterviewInvitationData struct {
	TemplateData
	CompanyDisplayName string
	ScheduledAt        string
	Location           string
	InvitationMessage  string
}

// Sender delivers transactional email.
type Sender interface {
	Send(email *Email) error
	SendTemplate(to []string, subject, templateName string, data interface{}) error
	SendVerification(to, name, verifyURL string) error
	SendPasswordReset(to, name, resetURL string) error
	SendPasswordResetConfirmation(to, name string) error
	SendWelcome(to, name, accountKind string) error
	SendInterviewInvitation(to string, data InterviewInvitationData) error
}
