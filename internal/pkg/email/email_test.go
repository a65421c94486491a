package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSender_UnconfiguredDegradesToDisabled(t *testing.T) {
	t.Parallel()

	sender, err := NewSender(Config{})
	require.NoError(t, err)

	_, disabled := sender.(*DisabledSender)
	assert.True(t, disabled, "missing SMTP settings must yield the disabled sender")

	assert.ErrorIs(t, sender.SendVerification("a@b.com", "A", "http://x"), ErrSenderDisabled)
	assert.ErrorIs(t, sender.SendWelcome("a@b.com", "A", "candidate"), ErrSenderDisabled)
	assert.ErrorIs(t, sender.Send(&Email{To: []string{"a@b.com"}}), ErrSenderDisabled)
}

func TestNewSMTPSender_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := NewSMTPSender(Config{SMTPHost: "smtp.example.com", SMTPPort: 0, FromEmail: "x@y.com"})
	assert.Error(t, err)

	_, err = NewSMTPSender(Config{SMTPHost: "smtp.example.com", SMTPPort: 587})
	assert.Error(t, err, "from address is required")
}

func TestTemplateManager_RenderVerification(t *testing.T) {
	t.Parallel()

	tm, err := NewTemplateManager(Config{FromName: "Ready to Work"})
	require.NoError(t, err)

	html, err := tm.Render("verification", TemplateData{
		UserName:     "Aisha",
		Subject:      "Verify your email address",
		ActionURL:    "https://readytowork.sa/verify?token=abc",
		ActionText:   "Verify Email",
		SupportEmail: "support@readytowork.sa",
		CompanyName:  "Ready to Work",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Hello Aisha")
	assert.Contains(t, html, "https://readytowork.sa/verify?token=abc")
	assert.Contains(t, html, "support@readytowork.sa")
}

func TestTemplateManager_RenderWelcomePerKind(t *testing.T) {
	t.Parallel()

	tm, err := NewTemplateManager(Config{})
	require.NoError(t, err)

	employer, err := tm.Render("welcome", WelcomeData{
		TemplateData: TemplateData{UserName: "Najd Construction", Subject: "Welcome"},
		AccountKind:  "employer",
	})
	require.NoError(t, err)
	assert.Contains(t, employer, "browse candidates")

	candidate, err := tm.Render("welcome", WelcomeData{
		TemplateData: TemplateData{UserName: "Aisha", Subject: "Welcome"},
		AccountKind:  "candidate",
	})
	require.NoError(t, err)
	assert.Contains(t, candidate, "interview invitations")
}

func TestTemplateManager_RenderInterviewInvitation(t *testing.T) {
	t.Parallel()

	tm, err := NewTemplateManager(Config{})
	require.NoError(t, err)

	html, err := tm.Render("interview_invitation", InterviewInvitationData{
		TemplateData:       TemplateData{UserName: "Aisha", Subject: "Interview invitation"},
		CompanyDisplayName: "Najd Construction",
		ScheduledAt:        "2026-09-01 10:00",
		Location:           "Riyadh office",
		InvitationMessage:  "Please bring your certificates",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Najd Construction")
	assert.Contains(t, html, "Riyadh office")
	assert.Contains(t, html, "Please bring your certificates")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	t.Parallel()

	tm, err := NewTemplateManager(Config{})
	require.NoError(t, err)

	_, err = tm.Render("does-not-exist", TemplateData{})
	assert.Error(t, err)
}

func TestHTMLToText(t *testing.T) {
	t.Parallel()

	text := htmlToText("<p>Hello <strong>Aisha</strong></p><p>Welcome aboard.</p>")
	assert.Equal(t, "Hello Aisha\n\nWelcome aboard.", text)
}
