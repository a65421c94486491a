package services

import (
	"context"
	"fmt"
	"net/url"
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

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 1 * time.Hour
)

type AuthService interface {
	RegisterCandidate(ctx context.Context, db *gorm.DB, req *dto.RegisterCandidateRequest) (*dto.RegisterResponse, error)
	RegisterEmployer(ctx context.Context, db *gorm.DB, req *dto.RegisterEmployerRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	VerifyEmail(ctx context.Context, db *gorm.DB, q *dto.VerifyEmailQuery) error
	ResendVerification(ctx context.Context, db *gorm.DB, req *dto.ResendVerificationRequest) error
	ForgotPassword(ctx context.Context, db *gorm.DB, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, db *gorm.DB, req *dto.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, db *gorm.DB, principal *auth.Principal, req *dto.ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, db *gorm.DB, principal *auth.Principal, req *dto.DeleteAccountRequest) error
	SessionTTL(rememberMe bool) time.Duration
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	candidateRepo repositories.CandidateRepository
	employerRepo  repositories.EmployerRepository
	jwtService    *auth.JWTService
	emailSender   email.Sender
	cfg           *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	candidateRepo repositories.CandidateRepository,
	employerRepo repositories.EmployerRepository,
	jwtService *auth.JWTService,
	emailSender email.Sender,
	cfg *config.Config,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		employerRepo:  employerRepo,
		jwtService:    jwtService,
		emailSender:   emailSender,
		cfg:           cfg,
	}
}

// SessionTTL returns the session lifetime: 24h by default, 30 days with
// remember-me. Values come from configuration.
func (s *AuthServiceImpl) SessionTTL(rememberMe bool) time.Duration {
	hours := s.cfg.JWT.SessionTTL
	if rememberMe {
		hours = s.cfg.JWT.RememberMeTTL
	}
	return time.Duration(hours) * time.Hour
}

func (s *AuthServiceImpl) RegisterCandidate(ctx context.Context, db *gorm.DB, req *dto.RegisterCandidateRequest) (*dto.RegisterResponse, error) {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateRandomToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	exp := time.Now().Add(verificationTokenTTL)
	now := time.Now()

	candidate := &models.Candidate{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
		City:  req.City,
		AccountCredentials: models.AccountCredentials{
			PasswordHash:         hash,
			VerificationToken:    token,
			VerificationTokenExp: &exp,
		},
		AcceptedTermsAt: &now,
	}

	if err := s.candidateRepo.Create(db, candidate); err != nil {
		if apperrors.Is(err, repositories.ErrAccountAlreadyExists) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Verification email is best-effort: registration succeeds even when
	// delivery fails, and the token can be re-sent later.
	s.sendVerificationEmail(ctx, candidate.Email, candidate.Name, models.AccountKindCandidate, token)

	logger.CtxInfo(ctx, "candidate registered", "candidate_id", candidate.ID)

	return &dto.RegisterResponse{
		Account: dto.AccountDTOFromCandidate(candidate),
		Message: "Registration successful, please check your email to verify your account",
	}, nil
}

func (s *AuthServiceImpl) RegisterEmployer(ctx context.Context, db *gorm.DB, req *dto.RegisterEmployerRequest) (*dto.RegisterResponse, error) {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateRandomToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	exp := time.Now().Add(verificationTokenTTL)
	now := time.Now()

	employer := &models.Employer{
		Email:             req.Email,
		CompanyName:       req.CompanyName,
		ResponsiblePerson: req.ResponsiblePerson,
		Phone:             req.Phone,
		City:              req.City,
		AccountCredentials: models.AccountCredentials{
			PasswordHash:         hash,
			VerificationToken:    token,
			VerificationTokenExp: &exp,
		},
		AcceptedTermsAt: &now,
	}

	if err := s.employerRepo.Create(db, employer); err != nil {
		if apperrors.Is(err, repositories.ErrAccountAlreadyExists) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendVerificationEmail(ctx, employer.Email, employer.CompanyName, models.AccountKindEmployer, token)

	logger.CtxInfo(ctx, "employer registered", "employer_id", employer.ID)

	return &dto.RegisterResponse{
		Account: dto.AccountDTOFromEmployer(employer),
		Message: "Registration successful, please check your email to verify your account",
	}, nil
}

// Login verifies the password against the collection named by req.Kind and
// issues a session token. Lookup misses and password misses collapse into one
// INVALID_CREDENTIALS answer.
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	kind := models.AccountKind(req.Kind)

	var account dto.AccountDTO
	var passwordHash string
	var accountID string

	switch kind {
	case models.AccountKindUser:
		user, err := s.userRepo.FindByEmail(db, req.Email)
		if err != nil {
			return nil, loginLookupError(err)
		}
		account, passwordHash, accountID = dto.AccountDTOFromUser(user), user.PasswordHash, user.ID
	case models.AccountKindCandidate:
		candidate, err := s.candidateRepo.FindByEmail(db, req.Email)
		if err != nil {
			return nil, loginLookupError(err)
		}
		account, passwordHash, accountID = dto.AccountDTOFromCandidate(candidate), candidate.PasswordHash, candidate.ID
	case models.AccountKindEmployer:
		employer, err := s.employerRepo.FindByEmail(db, req.Email)
		if err != nil {
			return nil, loginLookupError(err)
		}
		account, passwordHash, accountID = dto.AccountDTOFromEmployer(employer), employer.PasswordHash, employer.ID
	default:
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, passwordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	ttl := s.SessionTTL(req.RememberMe)
	token, err := s.jwtService.GenerateToken(accountID, kind, ttl)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Last-login bump is best-effort; a failed bump must not block the login.
	if err := s.touchLastLogin(db, kind, accountID); err != nil {
		logger.CtxWithError(ctx, "failed to update last login", err, "account_id", accountID)
	}

	now := time.Now()
	account.LastLoginAt = &now

	logger.CtxInfo(ctx, "login", "account_id", accountID, "kind", kind)

	return &dto.AuthResponse{
		Account:   account,
		Token:     token,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func (s *AuthServiceImpl) touchLastLogin(db *gorm.DB, kind models.AccountKind, id string) error {
	switch kind {
	case models.AccountKindUser:
		return s.userRepo.TouchLastLogin(db, id)
	case models.AccountKindCandidate:
		return s.candidateRepo.TouchLastLogin(db, id)
	case models.AccountKindEmployer:
		return s.employerRepo.TouchLastLogin(db, id)
	}
	return nil
}

// VerifyEmail consumes a verification token. Expiry is enforced by the token
// query itself; a token that misses for any reason reads as invalid-or-expired.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, db *gorm.DB, q *dto.VerifyEmailQuery) error {
	now := time.Now()

	switch models.AccountKind(q.Kind) {
	case models.AccountKindCandidate:
		candidate, err := s.candidateRepo.FindByEmailAndVerificationToken(db, q.Email, q.Token, now)
		if err != nil {
			return verificationLookupError(err)
		}
		if err := s.candidateRepo.MarkEmailVerified(db, candidate.ID); err != nil {
			return apperrors.InternalError(err)
		}
		s.sendWelcomeEmail(ctx, candidate.Email, candidate.Name, models.AccountKindCandidate)
		logger.CtxInfo(ctx, "email verified", "candidate_id", candidate.ID)
		return nil

	case models.AccountKindEmployer:
		employer, err := s.employerRepo.FindByEmailAndVerificationToken(db, q.Email, q.Token, now)
		if err != nil {
			return verificationLookupError(err)
		}
		if err := s.employerRepo.MarkEmailVerified(db, employer.ID); err != nil {
			return apperrors.InternalError(err)
		}
		s.sendWelcomeEmail(ctx, employer.Email, employer.CompanyName, models.AccountKindEmployer)
		logger.CtxInfo(ctx, "email verified", "employer_id", employer.ID)
		return nil

	default:
		return apperrors.ErrInvalidToken
	}
}

// ResendVerification issues a fresh token for an unverified account. Verified
// and unknown accounts get the same success answer.
// Internal failures are swallowed too: an error answer would reveal that the
// address matched an account.
func (s *AuthServiceImpl) ResendVerification(ctx context.Context, db *gorm.DB, req *dto.ResendVerificationRequest) error {
	token, err := auth.GenerateRandomToken()
	if err != nil {
		logger.CtxWithError(ctx, "failed to generate verification token", err)
		return nil
	}
	exp := time.Now().Add(verificationTokenTTL)

	switch models.AccountKind(req.Kind) {
	case models.AccountKindCandidate:
		candidate, err := s.candidateRepo.FindByEmail(db, req.Email)
		if err != nil || candidate.EmailVerified {
			return nil
		}
		if err := s.candidateRepo.SetVerificationToken(db, candidate.ID, token, exp); err != nil {
			logger.CtxWithError(ctx, "failed to store verification token", err)
			return nil
		}
		s.sendVerificationEmail(ctx, candidate.Email, candidate.Name, models.AccountKindCandidate, token)
	case models.AccountKindEmployer:
		employer, err := s.employerRepo.FindByEmail(db, req.Email)
		if err != nil || employer.EmailVerified {
			return nil
		}
		if err := s.employerRepo.SetVerificationToken(db, employer.ID, token, exp); err != nil {
			logger.CtxWithError(ctx, "failed to store verification token", err)
			return nil
		}
		s.sendVerificationEmail(ctx, employer.Email, employer.CompanyName, models.AccountKindEmployer, token)
	}
	return nil
}

// ForgotPassword walks employers, then candidates, then users; the first
// account holding the address gets a reset link. The response never reveals
// whether the address exists, so internal failures past the lookup are logged
// and still answered with success.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, db *gorm.DB, req *dto.ForgotPasswordRequest) error {
	if !auth.ValidateEmail(req.Email) {
		return apperrors.ErrInvalidEmail
	}

	token, err := auth.GenerateRandomToken()
	if err != nil {
		logger.CtxWithError(ctx, "failed to generate reset token", err)
		return nil
	}
	exp := time.Now().Add(resetTokenTTL)

	if employer, err := s.employerRepo.FindByEmail(db, req.Email); err == nil {
		if err := s.employerRepo.SetResetToken(db, employer.ID, token, exp); err != nil {
			logger.CtxWithError(ctx, "failed to store reset token", err, "employer_id", employer.ID)
			return nil
		}
		s.sendResetEmail(ctx, employer.Email, employer.CompanyName, models.AccountKindEmployer, token)
		return nil
	}

	if candidate, err := s.candidateRepo.FindByEmail(db, req.Email); err == nil {
		if err := s.candidateRepo.SetResetToken(db, candidate.ID, token, exp); err != nil {
			logger.CtxWithError(ctx, "failed to store reset token", err, "candidate_id", candidate.ID)
			return nil
		}
		s.sendResetEmail(ctx, candidate.Email, candidate.Name, models.AccountKindCandidate, token)
		return nil
	}

	if user, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		if err := s.userRepo.SetResetToken(db, user.ID, token, exp); err != nil {
			logger.CtxWithError(ctx, "failed to store reset token", err, "user_id", user.ID)
			return nil
		}
		s.sendResetEmail(ctx, user.Email, user.Name, models.AccountKindUser, token)
		return nil
	}

	logger.CtxInfo(ctx, "password reset requested for unknown address")
	return nil
}

// ResetPassword consumes a reset token. The kind hint narrows the lookup;
// without it the same employer, candidate, user order applies. The update
// that installs the new hash also clears the token, making it single-use.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, db *gorm.DB, req *dto.ResetPasswordRequest) error {
	if !auth.ValidatePassword(req.Password) {
		return apperrors.ErrInvalidPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	now := time.Now()
	kinds := []models.AccountKind{models.AccountKindEmployer, models.AccountKindCandidate, models.AccountKindUser}
	if req.Kind != "" {
		kinds = []models.AccountKind{models.AccountKind(req.Kind)}
	}

	for _, kind := range kinds {
		switch kind {
		case models.AccountKindEmployer:
			if employer, err := s.employerRepo.FindByEmailAndResetToken(db, req.Email, req.Token, now); err == nil {
				if err := s.employerRepo.CompletePasswordReset(db, employer.ID, hash); err != nil {
					return apperrors.InternalError(err)
				}
				s.sendResetConfirmation(ctx, employer.Email, employer.CompanyName)
				logger.CtxInfo(ctx, "password reset", "employer_id", employer.ID)
				return nil
			}
		case models.AccountKindCandidate:
			if candidate, err := s.candidateRepo.FindByEmailAndResetToken(db, req.Email, req.Token, now); err == nil {
				if err := s.candidateRepo.CompletePasswordReset(db, candidate.ID, hash); err != nil {
					return apperrors.InternalError(err)
				}
				s.sendResetConfirmation(ctx, candidate.Email, candidate.Name)
				logger.CtxInfo(ctx, "password reset", "candidate_id", candidate.ID)
				return nil
			}
		case models.AccountKindUser:
			if user, err := s.userRepo.FindByEmailAndResetToken(db, req.Email, req.Token, now); err == nil {
				if err := s.userRepo.CompletePasswordReset(db, user.ID, hash); err != nil {
					return apperrors.InternalError(err)
				}
				s.sendResetConfirmation(ctx, user.Email, user.Name)
				logger.CtxInfo(ctx, "password reset", "user_id", user.ID)
				return nil
			}
		}
	}

	return apperrors.ErrInvalidOrExpiredToken
}

// ChangePassword re-verifies the current password before installing the new
// one. Works for any signed-in kind.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, db *gorm.DB, principal *auth.Principal, req *dto.ChangePasswordRequest) error {
	if !auth.ValidatePassword(req.NewPassword) {
		return apperrors.ErrInvalidPassword
	}

	currentHash, err := s.principalPasswordHash(db, principal)
	if err != nil {
		return err
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, currentHash) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.updatePrincipalFields(db, principal, map[string]interface{}{"password_hash": hash}); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password changed", "account_id", principal.ID, "kind", principal.Kind)
	return nil
}

// DeleteAccount removes the signed-in account after re-verifying the password.
func (s *AuthServiceImpl) DeleteAccount(ctx context.Context, db *gorm.DB, principal *auth.Principal, req *dto.DeleteAccountRequest) error {
	currentHash, err := s.principalPasswordHash(db, principal)
	if err != nil {
		return err
	}
	if !auth.CheckPasswordHash(req.Password, currentHash) {
		return apperrors.ErrInvalidCredentials
	}

	var deleteErr error
	switch principal.Kind {
	case models.AccountKindUser:
		deleteErr = s.userRepo.Delete(db, principal.ID)
	case models.AccountKindCandidate:
		deleteErr = s.candidateRepo.Delete(db, principal.ID)
	case models.AccountKindEmployer:
		deleteErr = s.employerRepo.Delete(db, principal.ID)
	}
	if deleteErr != nil {
		if apperrors.Is(deleteErr, repositories.ErrAccountNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.InternalError(deleteErr)
	}

	logger.CtxInfo(ctx, "account deleted", "account_id", principal.ID, "kind", principal.Kind)
	return nil
}

func (s *AuthServiceImpl) principalPasswordHash(db *gorm.DB, principal *auth.Principal) (string, error) {
	switch principal.Kind {
	case models.AccountKindUser:
		user, err := s.userRepo.FindByID(db, principal.ID)
		if err != nil {
			return "", apperrors.ErrAccountNotFound
		}
		return user.PasswordHash, nil
	case models.AccountKindCandidate:
		candidate, err := s.candidateRepo.FindByID(db, principal.ID)
		if err != nil {
			return "", apperrors.ErrAccountNotFound
		}
		return candidate.PasswordHash, nil
	case models.AccountKindEmployer:
		employer, err := s.employerRepo.FindByID(db, principal.ID)
		if err != nil {
			return "", apperrors.ErrAccountNotFound
		}
		return employer.PasswordHash, nil
	}
	return "", apperrors.ErrNotAuthenticated
}

func (s *AuthServiceImpl) updatePrincipalFields(db *gorm.DB, principal *auth.Principal, fields map[string]interface{}) error {
	switch principal.Kind {
	case models.AccountKindUser:
		return s.userRepo.UpdateFields(db, principal.ID, fields)
	case models.AccountKindCandidate:
		return s.candidateRepo.UpdateFields(db, principal.ID, fields)
	case models.AccountKindEmployer:
		return s.employerRepo.UpdateFields(db, principal.ID, fields)
	}
	return apperrors.ErrNotAuthenticated
}

// ---------------- Email side effects ----------------

func buildVerifyURL(baseURL, emailAddr string, kind models.AccountKind, token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s&email=%s&type=%s",
		baseURL, url.QueryEscape(token), url.QueryEscape(emailAddr), kind)
}

func (s *AuthServiceImpl) verifyURL(emailAddr string, kind models.AccountKind, token string) string {
	return buildVerifyURL(s.cfg.App.BaseURL, emailAddr, kind, token)
}

func (s *AuthServiceImpl) resetURL(emailAddr string, kind models.AccountKind, token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s&email=%s&type=%s",
		s.cfg.App.BaseURL, url.QueryEscape(token), url.QueryEscape(emailAddr), kind)
}

func (s *AuthServiceImpl) sendVerificationEmail(ctx context.Context, to, name string, kind models.AccountKind, token string) {
	if err := s.emailSender.SendVerification(to, name, s.verifyURL(to, kind, token)); err != nil {
		logger.CtxWithError(ctx, "failed to send verification email", err)
	}
}

func (s *AuthServiceImpl) sendResetEmail(ctx context.Context, to, name string, kind models.AccountKind, token string) {
	if err := s.emailSender.SendPasswordReset(to, name, s.resetURL(to, kind, token)); err != nil {
		logger.CtxWithError(ctx, "failed to send password reset email", err)
	}
}

func (s *AuthServiceImpl) sendResetConfirmation(ctx context.Context, to, name string) {
	if err := s.emailSender.SendPasswordResetConfirmation(to, name); err != nil {
		logger.CtxWithError(ctx, "failed to send password reset confirmation", err)
	}
}

func (s *AuthServiceImpl) sendWelcomeEmail(ctx context.Context, to, name string, kind models.AccountKind) {
	if err := s.emailSender.SendWelcome(to, name, string(kind)); err != nil {
		logger.CtxWithError(ctx, "failed to send welcome email", err)
	}
}

// ---------------- Shared helpers ----------------

func validateCredentials(emailAddr, password string) error {
	if !auth.ValidateEmail(emailAddr) {
		return apperrors.ErrInvalidEmail
	}
	if password == "" {
		return apperrors.ErrMissingPassword
	}
	if !auth.ValidatePassword(password) {
		return apperrors.ErrInvalidPassword
	}
	return nil
}

func loginLookupError(err error) error {
	if apperrors.Is(err, repositories.ErrAccountNotFound) {
		return apperrors.ErrInvalidCredentials
	}
	return apperrors.InternalError(err)
}

func verificationLookupError(err error) error {
	if apperrors.Is(err, repositories.ErrAccountNotFound) {
		return apperrors.ErrInvalidOrExpiredToken
	}
	return apperrors.InternalError(err)
}
