package services

import (
	"rtw_backend/internal/auth"
	"rtw_backend/internal/config"
	"rtw_backend/internal/pkg/email"
	"rtw_backend/internal/repositories"
	"rtw_backend/internal/storage"
)

// ServiceContainer wires every service with its repositories and shared
// infrastructure. Built once at startup.
type ServiceContainer struct {
	Auth         AuthService
	Candidate    CandidateService
	Employer     EmployerService
	Notification NotificationService
	Billing      BillingService
	Engagement   EngagementService
	Media        MediaService
	Stats        StatsService

	// Repositories kept for middleware and seeding.
	UserRepo      repositories.UserRepository
	CandidateRepo repositories.CandidateRepository
	EmployerRepo  repositories.EmployerRepository
}

func NewServiceContainer(
	cfg *config.Config,
	jwtService *auth.JWTService,
	emailSender email.Sender,
	store storage.Storage,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	candidateRepo := repositories.NewCandidateRepository()
	employerRepo := repositories.NewEmployerRepository()
	notificationRepo := repositories.NewNotificationRepository()
	mediaRepo := repositories.NewMediaRepository()
	planRepo := repositories.NewPlanRepository()
	purchaseRepo := repositories.NewPurchaseRepository()
	invitationRepo := repositories.NewInvitationRepository()
	unlockRepo := repositories.NewUnlockRepository()

	notificationService := NewNotificationService(notificationRepo)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, candidateRepo, employerRepo, jwtService, emailSender, cfg),
		Candidate:    NewCandidateService(candidateRepo, emailSender, cfg),
		Employer:     NewEmployerService(employerRepo, emailSender, cfg),
		Notification: notificationService,
		Billing:      NewBillingService(planRepo, purchaseRepo, employerRepo, notificationService),
		Engagement: NewEngagementService(invitationRepo, unlockRepo, employerRepo, candidateRepo,
			notificationService, emailSender, cfg),
		Media: NewMediaService(mediaRepo, store, cfg),
		Stats: NewStatsService(employerRepo, candidateRepo, invitationRepo, unlockRepo, notificationRepo),

		UserRepo:      userRepo,
		CandidateRepo: candidateRepo,
		EmployerRepo:  employerRepo,
	}
}
