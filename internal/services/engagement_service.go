package services

import (
	"context"
	"fmt"

	"rtw_backend/internal/config"
	"rtw_backend/internal/logger"
	"rtw_backend/internal/models"
	"rtw_backend/internal/pkg/email"
	"rtw_backend/internal/repositories"
	"rtw_backend/internal/services/dto"
	"rtw_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EngagementService interface {
	InviteToInterview(ctx context.Context, db *gorm.DB, employerID string, req *dto.InviteToInterviewRequest) (*dto.InviteResponse, error)
	ListEmployerInvitations(ctx context.Context, db *gorm.DB, employerID string, p dto.Pagination) (*dto.InvitationListResponse, error)
	ListCandidateInvitations(ctx context.Context, db *gorm.DB, candidateID string, p dto.Pagination) (*dto.InvitationListResponse, error)
	RespondToInvitation(ctx context.Context, db *gorm.DB, candidateID, invitationID string, req *dto.RespondToInvitationRequest) (*dto.InvitationDTO, error)
	UnlockContact(ctx context.Context, db *gorm.DB, employerID string, req *dto.UnlockContactRequest) (*dto.UnlockContactResponse, error)
}

type EngagementServiceImpl struct {
	invitationRepo      repositories.InvitationRepository
	unlockRepo          repositories.UnlockRepository
	employerRepo        repositories.EmployerRepository
	candidateRepo       repositories.CandidateRepository
	notificationService NotificationService
	emailSender         email.Sender
	cfg                 *config.Config
}

func NewEngagementService(
	invitationRepo repositories.InvitationRepository,
	unlockRepo repositories.UnlockRepository,
	employerRepo repositories.EmployerRepository,
	candidateRepo repositories.CandidateRepository,
	notificationService NotificationService,
	emailSender email.Sender,
	cfg *config.Config,
) EngagementService {
	return &EngagementServiceImpl{
		invitationRepo:      invitationRepo,
		unlockRepo:          unlockRepo,
		employerRepo:        employerRepo,
		candidateRepo:       candidateRepo,
		notificationService: notificationService,
		emailSender:         emailSender,
		cfg:                 cfg,
	}
}

// InviteToInterview spends one interview credit and writes the invitation and
// its notification in one transaction. The email goes out afterwards and is
// best-effort.
func (s *EngagementServiceImpl) InviteToInterview(ctx context.Context, db *gorm.DB, employerID string, req *dto.InviteToInterviewRequest) (*dto.InviteResponse, error) {
	candidate, err := s.candidateRepo.FindByID(db, req.CandidateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrCandidateNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	employer, err := s.employerRepo.FindByID(db, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	invitation := &models.InterviewInvitation{
		EmployerID:  employerID,
		CandidateID: candidate.ID,
		Message:     req.Message,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		Status:      models.InvitationStatusPending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.employerRepo.SpendInterviewCredit(tx, employerID); err != nil {
			return err
		}
		if err := s.invitationRepo.Create(tx, invitation); err != nil {
			return err
		}
		return s.notificationService.Notify(ctx, tx, models.AccountKindCandidate, candidate.ID,
			repositories.NotificationTypeInterviewInvitation,
			"New interview invitation",
			fmt.Sprintf("%s invited you to an interview", employer.CompanyName),
			map[string]interface{}{"invitation_id": invitation.ID, "employer_id": employerID},
		)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrInsufficientCredits) {
			return nil, apperrors.ErrInsufficientCredits
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendInvitationEmail(ctx, candidate, employer, invitation)

	logger.CtxInfo(ctx, "interview invitation sent",
		"invitation_id", invitation.ID, "candidate_id", candidate.ID)

	updated, err := s.employerRepo.FindByID(db, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.InviteResponse{
		Invitation: dto.InvitationDTOFromModel(invitation),
		Wallet: dto.WalletDTO{
			InterviewCredits:     updated.Wallet.InterviewCredits,
			ContactUnlockCredits: updated.Wallet.ContactUnlockCredits,
		},
	}, nil
}

func (s *EngagementServiceImpl) ListEmployerInvitations(ctx context.Context, db *gorm.DB, employerID string, p dto.Pagination) (*dto.InvitationListResponse, error) {
	p.Normalize()
	invitations, total, err := s.invitationRepo.FindByEmployer(db, employerID, p.PageSize, p.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return invitationList(invitations, total, p), nil
}

func (s *EngagementServiceImpl) ListCandidateInvitations(ctx context.Context, db *gorm.DB, candidateID string, p dto.Pagination) (*dto.InvitationListResponse, error) {
	p.Normalize()
	invitations, total, err := s.invitationRepo.FindByCandidate(db, candidateID, p.PageSize, p.Offset())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return invitationList(invitations, total, p), nil
}

// RespondToInvitation records accept or decline and notifies the employer.
// A second answer is rejected rather than overwriting the first.
func (s *EngagementServiceImpl) RespondToInvitation(ctx context.Context, db *gorm.DB, candidateID, invitationID string, req *dto.RespondToInvitationRequest) (*dto.InvitationDTO, error) {
	status := models.InvitationStatus(req.Status)
	if status != models.InvitationStatusAccepted && status != models.InvitationStatusDeclined {
		return nil, apperrors.NewBadRequestError("Status must be accepted or declined")
	}

	if err := s.invitationRepo.Respond(db, invitationID, candidateID, status); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrInvitationNotFound):
			return nil, apperrors.ErrInvitationNotFound
		case apperrors.Is(err, repositories.ErrInvitationAlreadyAnswered):
			return nil, apperrors.ErrInvitationAlreadyAnswered
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	invitation, err := s.invitationRepo.FindByID(db, invitationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	candidateName := "A candidate"
	if candidate, err := s.candidateRepo.FindByID(db, candidateID); err == nil && candidate.Name != "" {
		candidateName = candidate.Name
	}

	if err := s.notificationService.Notify(ctx, db, models.AccountKindEmployer, invitation.EmployerID,
		repositories.NotificationTypeInvitationResponse,
		"Interview invitation answered",
		fmt.Sprintf("%s has %s your interview invitation", candidateName, status),
		map[string]interface{}{"invitation_id": invitation.ID, "candidate_id": candidateID, "status": string(status)},
	); err != nil {
		logger.CtxWithError(ctx, "failed to create invitation response notification", err)
	}

	logger.CtxInfo(ctx, "invitation answered", "invitation_id", invitationID, "status", status)

	out := dto.InvitationDTOFromModel(invitation)
	return &out, nil
}

// UnlockContact reveals a candidate's contact channels. The first unlock for
// a pair spends one credit; repeats are free and spend nothing.
func (s *EngagementServiceImpl) UnlockContact(ctx context.Context, db *gorm.DB, employerID string, req *dto.UnlockContactRequest) (*dto.UnlockContactResponse, error) {
	candidate, err := s.candidateRepo.FindByID(db, req.CandidateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrCandidateNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	alreadyUnlocked := false
	if _, err := s.unlockRepo.FindByPair(db, employerID, candidate.ID); err == nil {
		alreadyUnlocked = true
	}

	if !alreadyUnlocked {
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := s.employerRepo.SpendContactUnlockCredit(tx, employerID); err != nil {
				return err
			}
			return s.unlockRepo.Create(tx, &models.ContactUnlock{
				EmployerID:  employerID,
				CandidateID: candidate.ID,
			})
		})
		if err != nil {
			if apperrors.Is(err, repositories.ErrInsufficientCredits) {
				return nil, apperrors.ErrInsufficientCredits
			}
			return nil, apperrors.InternalError(err)
		}

		// Profile view counter is best-effort.
		if err := s.candidateRepo.IncrementProfileViews(db, candidate.ID); err != nil {
			logger.CtxWithError(ctx, "failed to increment profile views", err, "candidate_id", candidate.ID)
		}

		logger.CtxInfo(ctx, "contact unlocked", "candidate_id", candidate.ID)
	}

	employer, err := s.employerRepo.FindByID(db, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UnlockContactResponse{
		Contact: dto.CandidateContactDTOFromModel(candidate),
		Wallet: dto.WalletDTO{
			InterviewCredits:     employer.Wallet.InterviewCredits,
			ContactUnlockCredits: employer.Wallet.ContactUnlockCredits,
		},
		AlreadyUnlocked: alreadyUnlocked,
	}, nil
}

func (s *EngagementServiceImpl) sendInvitationEmail(ctx context.Context, candidate *models.Candidate, employer *models.Employer, invitation *models.InterviewInvitation) {
	data := email.InterviewInvitationData{
		TemplateData: email.TemplateData{
			UserName:     candidate.Name,
			SupportEmail: s.cfg.App.SupportEmail,
			CompanyName:  s.cfg.Email.FromName,
		},
		CompanyDisplayName: employer.CompanyName,
		Location:           invitation.Location,
		InvitationMessage:  invitation.Message,
	}
	if invitation.ScheduledAt != nil {
		data.ScheduledAt = invitation.ScheduledAt.Format("2 Jan 2006 15:04")
	}

	if err := s.emailSender.SendInterviewInvitation(candidate.Email, data); err != nil {
		logger.CtxWithError(ctx, "failed to send interview invitation email", err)
	}
}

func invitationList(invitations []models.InterviewInvitation, total int64, p dto.Pagination) *dto.InvitationListResponse {
	out := make([]dto.InvitationDTO, 0, len(invitations))
	for i := range invitations {
		out = append(out, dto.InvitationDTOFromModel(&invitations[i]))
	}
	return &dto.InvitationListResponse{
		Invitations: out,
		Meta:        dto.ListMeta{Total: total, Page: p.Page, PageSize: p.PageSize},
	}
}
