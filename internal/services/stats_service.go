package services

import (
	"context"
	"time"

	"rtw_backend/internal/models"
	"rtw_backend/internal/repositories"
	"rtw_backend/internal/services/dto"
	"rtw_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type StatsService interface {
	EmployerDashboard(ctx context.Context, db *gorm.DB, employerID string) (*dto.EmployerDashboardStats, error)
	CandidateDashboard(ctx context.Context, db *gorm.DB, candidateID string) (*dto.CandidateDashboardStats, error)
}

type StatsServiceImpl struct {
	employerRepo     repositories.EmployerRepository
	candidateRepo    repositories.CandidateRepository
	invitationRepo   repositories.InvitationRepository
	unlockRepo       repositories.UnlockRepository
	notificationRepo repositories.NotificationRepository
}

func NewStatsService(
	employerRepo repositories.EmployerRepository,
	candidateRepo repositories.CandidateRepository,
	invitationRepo repositories.InvitationRepository,
	unlockRepo repositories.UnlockRepository,
	notificationRepo repositories.NotificationRepository,
) StatsService {
	return &StatsServiceImpl{
		employerRepo:     employerRepo,
		candidateRepo:    candidateRepo,
		invitationRepo:   invitationRepo,
		unlockRepo:       unlockRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *StatsServiceImpl) EmployerDashboard(ctx context.Context, db *gorm.DB, employerID string) (*dto.EmployerDashboardStats, error) {
	employer, err := s.employerRepo.FindByID(db, employerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	stats := &dto.EmployerDashboardStats{
		Wallet: dto.WalletDTO{
			InterviewCredits:     employer.Wallet.InterviewCredits,
			ContactUnlockCredits: employer.Wallet.ContactUnlockCredits,
		},
	}

	if employer.SubscriptionExpiresAt != nil && employer.SubscriptionExpiresAt.After(time.Now()) {
		stats.SubscriptionActive = true
		if employer.Plan != nil {
			stats.SubscriptionPlanName = employer.Plan.Name
		}
	}

	counts := []struct {
		status models.InvitationStatus
		dest   *int64
	}{
		{models.InvitationStatusPending, &stats.InvitationsPending},
		{models.InvitationStatusAccepted, &stats.InvitationsAccepted},
		{models.InvitationStatusDeclined, &stats.InvitationsDeclined},
	}
	for _, c := range counts {
		n, err := s.invitationRepo.CountByEmployerAndStatus(db, employerID, c.status)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		*c.dest = n
	}
	stats.InvitationsSent = stats.InvitationsPending + stats.InvitationsAccepted + stats.InvitationsDeclined

	if stats.ContactsUnlocked, err = s.unlockRepo.CountByEmployer(db, employerID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if stats.UnreadNotifications, err = s.notificationRepo.GetUnreadCount(db, models.AccountKindEmployer, employerID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return stats, nil
}

func (s *StatsServiceImpl) CandidateDashboard(ctx context.Context, db *gorm.DB, candidateID string) (*dto.CandidateDashboardStats, error) {
	candidate, err := s.candidateRepo.FindByID(db, candidateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	stats := &dto.CandidateDashboardStats{
		ProfileViews:    candidate.ProfileViews,
		ProfileComplete: candidateProfileComplete(candidate),
	}

	if stats.InvitationsReceived, err = s.invitationRepo.CountByCandidate(db, candidateID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if stats.InvitationsPending, err = s.invitationRepo.CountByCandidateAndStatus(db, candidateID, models.InvitationStatusPending); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if stats.UnreadNotifications, err = s.notificationRepo.GetUnreadCount(db, models.AccountKindCandidate, candidateID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return stats, nil
}

// candidateProfileComplete checks the fields an employer needs to judge a
// profile.
func candidateProfileComplete(c *models.Candidate) bool {
	return c.Name != "" &&
		c.Phone != "" &&
		c.City != "" &&
		c.Nationality != "" &&
		c.JobTitle != "" &&
		c.VisaStatus != ""
}
