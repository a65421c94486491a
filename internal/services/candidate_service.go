package services

import (
	"context"
	"time"

	"rtw_backend/internal/auth"
	"rtw_backend/internal/config"
	"rtw_backend/internal/logger"
	"rtw_backend/internal/models"
	"rtw_backend/internal/pkg/email"
	"rtw_backend/internal/repositories"
	"rtw_backend/internal/services/dto"
	"rtw_backend/pkg/apperrors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CandidateService interface {
	GetProfile(ctx context.Context, db *gorm.DB, candidateID string) (*dto.CandidateDTO, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, candidateID string, req *dto.UpdateCandidateRequest) (*dto.CandidateDTO, error)
}

type CandidateServiceImpl struct {
	candidateRepo repositories.CandidateRepository
	emailSender   email.Sender
	cfg           *config.Config
}

func NewCandidateService(
	candidateRepo repositories.CandidateRepository,
	emailSender email.Sender,
	cfg *config.Config,
) CandidateService {
	return &CandidateServiceImpl{
		candidateRepo: candidateRepo,
		emailSender:   emailSender,
		cfg:           cfg,
	}
}

func (s *CandidateServiceImpl) GetProfile(ctx context.Context, db *gorm.DB, candidateID string) (*dto.CandidateDTO, error) {
	candidate, err := s.candidateRepo.FindByID(db, candidateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	out := dto.CandidateDTOFromModel(candidate)
	return &out, nil
}

// UpdateProfile applies a partial update. Date fields are normalized to
// YYYY-MM-DD before storage. An email change marks the account unverified and
// starts a fresh verification round.
func (s *CandidateServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, candidateID string, req *dto.UpdateCandidateRequest) (*dto.CandidateDTO, error) {
	candidate, err := s.candidateRepo.FindByID(db, candidateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	fields := map[string]interface{}{}

	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Whatsapp != nil {
		fields["whatsapp"] = *req.Whatsapp
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.DOB != nil {
		fields["dob"] = dto.NormalizeDate(*req.DOB)
	}
	if req.Nationality != nil {
		fields["nationality"] = *req.Nationality
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Languages != nil {
		fields["languages"] = pq.StringArray(req.Languages)
	}
	if req.JobTitle != nil {
		fields["job_title"] = *req.JobTitle
	}
	if req.ExperienceYears != nil {
		fields["experience_years"] = *req.ExperienceYears
	}
	if req.VisaStatus != nil {
		fields["visa_status"] = *req.VisaStatus
	}
	if req.VisaExpiry != nil {
		fields["visa_expiry"] = dto.NormalizeDate(*req.VisaExpiry)
	}
	if req.AvailabilityDate != nil {
		fields["availability_date"] = dto.NormalizeDate(*req.AvailabilityDate)
	}
	if req.Education != nil {
		fields["education"] = req.Education
	}
	if req.PreferredBenefits != nil {
		fields["preferred_benefits"] = pq.StringArray(req.PreferredBenefits)
	}
	if req.ProfilePictureID != nil {
		fields["profile_picture_id"] = *req.ProfilePictureID
	}
	if req.ResumeID != nil {
		fields["resume_id"] = *req.ResumeID
	}

	emailChanged := req.Email != nil && *req.Email != candidate.Email
	var verificationToken string
	if emailChanged {
		if !auth.ValidateEmail(*req.Email) {
			return nil, apperrors.ErrInvalidEmail
		}
		if _, err := s.candidateRepo.FindByEmail(db, *req.Email); err == nil {
			return nil, apperrors.ErrEmailExists
		}

		verificationToken, err = auth.GenerateRandomToken()
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		exp := time.Now().Add(verificationTokenTTL)

		fields["email"] = *req.Email
		fields["email_verified"] = false
		fields["verification_token"] = verificationToken
		fields["verification_token_exp"] = exp
	}

	if len(fields) > 0 {
		if err := s.candidateRepo.UpdateFields(db, candidateID, fields); err != nil {
			if apperrors.Is(err, repositories.ErrAccountNotFound) {
				return nil, apperrors.ErrAccountNotFound
			}
			return nil, apperrors.InternalError(err)
		}
	}

	updated, err := s.candidateRepo.FindByID(db, candidateID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if emailChanged {
		verifyURL := buildVerifyURL(s.cfg.App.BaseURL, updated.Email, models.AccountKindCandidate, verificationToken)
		if err := s.emailSender.SendVerification(updated.Email, updated.Name, verifyURL); err != nil {
			logger.CtxWithError(ctx, "failed to send verification email after email change", err)
		}
		logger.CtxInfo(ctx, "candidate email changed, re-verification required", "candidate_id", candidateID)
	}

	out := dto.CandidateDTOFromModel(updated)
	return &out, nil
}
