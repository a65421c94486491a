package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
)

// TemplateManager renders email bodies. Every template is composed of the
// shared branded wrapper plus a per-purpose content block. File templates in
// TemplatePath override the built-in ones.
type TemplateManager struct {
	templates map[string]*template.Template
	config    Config
}

var templateNames = []string{
	"verification",
	"password_reset",
	"password_reset_confirmation",
	"welcome",
	"interview_invitation",
	"notification",
}

// NewTemplateManager loads all known templates.
func NewTemplateManager(config Config) (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
		config:    config,
	}

	for _, name := range templateNames {
		tpl, err := tm.loadTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}

	return tm, nil
}

func (tm *TemplateManager) loadTemplate(name string) (*template.Template, error) {
	if tm.config.TemplatePath != "" {
		basePath := filepath.Join(tm.config.TemplatePath, "base.html")
		contentPath := filepath.Join(tm.config.TemplatePath, name+".html")

		tpl, err := template.ParseFiles(basePath, contentPath)
		if err == nil {
			return tpl, nil
		}
	}

	return tm.builtinTemplate(name)
}

// builtinTemplate composes the branded wrapper with the named content block.
func (tm *TemplateManager) builtinTemplate(name string) (*template.Template, error) {
	content, ok := builtinContent[name]
	if !ok {
		return nil, fmt.Errorf("unknown template: %s", name)
	}

	tpl, err := template.New(name).Parse(baseTemplate)
	if err != nil {
		return nil, err
	}
	return tpl.Parse(content)
}

// Render executes the named template with data.
func (tm *TemplateManager) Render(templateName string, data interface{}) (string, error) {
	tpl, exists := tm.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}

// baseTemplate is the shared branded wrapper. Content templates define the
// "content" block.
const baseTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
</head>
<body style="margin:0; padding:0; background-color:#f4f6f8; font-family:Arial, Helvetica, sans-serif;">
    <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
        <tr><td align="center" style="padding:24px;">
            <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff; border-radius:8px; overflow:hidden;">
                <tr>
                    <td style="background-color:#0b5c4d; padding:20px 32px;">
                        <span style="color:#ffffff; font-size:20px; font-weight:bold;">{{if .CompanyName}}{{.CompanyName}}{{else}}Ready to Work{{end}}</span>
                    </td>
                </tr>
                <tr>
                    <td style="padding:32px;">
                        {{template "content" .}}
                    </td>
                </tr>
                <tr>
                    <td style="padding:20px 32px; background-color:#f4f6f8; color:#6b7280; font-size:12px;">
                        {{if .SupportEmail}}<p style="margin:0;">Need help? Contact us at {{.SupportEmail}}.</p>{{end}}
                        <p style="margin:8px 0 0 0;">If you were not expecting this email you can safely ignore it.</p>
                    </td>
                </tr>
            </table>
        </td></tr>
    </table>
</body>
</html>`

var builtinContent = map[string]string{
	"verification": `{{define "content"}}
<h2 style="margin-top:0;">Verify your email address</h2>
{{if .UserName}}<p>Hello {{.UserName}},</p>{{end}}
<p>Thanks for signing up for Ready to Work. Please confirm your email address to activate your account.</p>
<p><a href="{{.ActionURL}}" style="display:inline-block; background-color:#0b5c4d; color:#ffffff; padding:12px 24px; text-decoration:none; border-radius:6px;">{{.ActionText}}</a></p>
<p>This link expires in 24 hours. If it has expired, you can request a new one from the login page.</p>
{{end}}`,

	"password_reset": `{{define "content"}}
<h2 style="margin-top:0;">Reset your password</h2>
{{if .UserName}}<p>Hello {{.UserName}},</p>{{end}}
<p>We received a request to reset the password for your account.</p>
<p><a href="{{.ActionURL}}" style="display:inline-block; background-color:#b91c1c; color:#ffffff; padding:12px 24px; text-decoration:none; border-radius:6px;">{{.ActionText}}</a></p>
<p>This link expires in 1 hour. If you did not request a password reset, no action is needed.</p>
{{end}}`,

	"password_reset_confirmation": `{{define "content"}}
<h2 style="margin-top:0;">Your password was changed</h2>
{{if .UserName}}<p>Hello {{.UserName}},</p>{{end}}
<p>The password for your Ready to Work account has just been changed.</p>
<p>If this was you, there is nothing else to do. If it was not, contact support immediately.</p>
{{end}}`,

	"welcome": `{{define "content"}}
<h2 style="margin-top:0;">Welcome to Ready to Work{{if .UserName}}, {{.UserName}}{{end}}!</h2>
{{if eq .AccountKind "employer"}}
<p>Your company account is verified. You can now publish your profile, browse candidates and invite them to interviews.</p>
{{else}}
<p>Your account is verified. Complete your profile to start receiving interview invitations from employers.</p>
{{end}}
{{end}}`,

	"interview_invitation": `{{define "content"}}
<h2 style="margin-top:0;">You have an interview invitation</h2>
{{if .UserName}}<p>Hello {{.UserName}},</p>{{end}}
<p><strong>{{.CompanyDisplayName}}</strong> would like to interview you.</p>
<div style="background-color:#f4f6f8; padding:16px; border-radius:6px;">
    {{if .ScheduledAt}}<p style="margin:0 0 8px 0;"><strong>When:</strong> {{.ScheduledAt}}</p>{{end}}
    {{if .Location}}<p style="margin:0 0 8px 0;"><strong>Where:</strong> {{.Location}}</p>{{end}}
    {{if .InvitationMessage}}<p style="margin:0;">{{.InvitationMessage}}</p>{{end}}
</div>
<p>Sign in to your dashboard to accept or decline the invitation.</p>
{{if .ActionURL}}<p><a href="{{.ActionURL}}" style="display:inline-block; background-color:#0b5c4d; color:#ffffff; padding:12px 24px; text-decoration:none; border-radius:6px;">View invitation</a></p>{{end}}
{{end}}`,

	"notification": `{{define "content"}}
<h2 style="margin-top:0;">{{.Subject}}</h2>
<p>{{.Message}}</p>
{{if .ActionURL}}<p><a href="{{.ActionURL}}" style="display:inline-block; background-color:#0b5c4d; color:#ffffff; padding:12px 24px; text-decoration:none; border-radius:6px;">{{.ActionText}}</a></p>{{end}}
{{end}}`,
}
