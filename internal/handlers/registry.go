package handlers

import (
	"rtw_backend/internal/services"
	"rtw_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	Candidate    *CandidateHandler
	Employer     *EmployerHandler
	Notification *NotificationHandler
	Billing      *BillingHandler
	Engagement   *EngagementHandler
	Media        *MediaHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator, secureCookies bool) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, container.Auth, secureCookies),
		Candidate:    NewCandidateHandler(base, container.Candidate, container.Stats),
		Employer:     NewEmployerHandler(base, container.Employer, container.Stats),
		Notification: NewNotificationHandler(base, container.Notification),
		Billing:      NewBillingHandler(base, container.Billing),
		Engagement:   NewEngagementHandler(base, container.Engagement),
		Media:        NewMediaHandler(base, container.Media),
	}
}
