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

	"gorm.io/gorm"
)

type EmployerService interface {
	GetProfile(ctx context.Context, db *gorm.DB, employerID string) (*dto.EmployerDTO, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, employerID string, req *dto.UpdateEmployerRequest) (*dto.EmployerDTO, error)
}

type EmployerServiceImpl struct {
	employerRepo repositories.EmployerRepository
	emailSender  email.Sender
	cfg          *config.Config
}

func NewEmployerService(
	employerRepo repositories.EmployerRepository,
	emailSender email.Sender,
	cfg *config.Config,
) EmployerService {
	return &EmployerServiceImpl{
		employerRepo: employerRepo,
		emailSender:  emailSender,
		cfg:          cfg,
	}
}

func (s *EmployerServiceImpl) GetProfile(ctx context.Context, db *gorm.DB, employerID string) (*dto.EmployerDTO, error) {
	employer, err := s.employerRepo.FindByID(db, employerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	out := dto.EmployerDTOFromModel(employer)
	return &out, nil
}

// UpdateProfile applies a partial update; only non-nil fields touch the row.
// Changing the email flips the account back to unverified.
func (s *EmployerServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, employerID string, req *dto.UpdateEmployerRequest) (*dto.EmployerDTO, error) {
	employer, err := s.employerRepo.FindByID(db, employerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	fields := map[string]interface{}{}

	if req.CompanyName != nil {
		fields["company_name"] = *req.CompanyName
	}
	if req.ResponsiblePerson != nil {
		fields["responsible_person"] = *req.ResponsiblePerson
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Whatsapp != nil {
		fields["whatsapp"] = *req.Whatsapp
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Website != nil {
		fields["website"] = *req.Website
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	emailChanged := req.Email != nil && *req.Email != employer.Email
	var verificationToken string
	if emailChanged {
		if !auth.ValidateEmail(*req.Email) {
			return nil, apperrors.ErrInvalidEmail
		}
		if _, err := s.employerRepo.FindByEmail(db, *req.Email); err == nil {
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
		if err := s.employerRepo.UpdateFields(db, employerID, fields); err != nil {
			if apperrors.Is(err, repositories.ErrAccountNotFound) {
				return nil, apperrors.ErrAccountNotFound
			}
			return nil, apperrors.InternalError(err)
		}
	}

	updated, err := s.employerRepo.FindByID(db, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if emailChanged {
		verifyURL := buildVerifyURL(s.cfg.App.BaseURL, updated.Email, models.AccountKindEmployer, verificationToken)
		if err := s.emailSender.SendVerification(updated.Email, updated.CompanyName, verifyURL); err != nil {
			logger.CtxWithError(ctx, "failed to send verification email after email change", err)
		}
		logger.CtxInfo(ctx, "employer email changed, re-verification required", "employer_id", employerID)
	}

	out := dto.EmployerDTOFromModel(updated)
	return &out, nil
}
