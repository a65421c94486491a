package repositories

import (
	"errors"
	"time"

	"rtw_backend/internal/models"

	"gorm.io/gorm"
)

type EmployerRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Employer, error)
	FindByEmail(db *gorm.DB, email string) (*models.Employer, error)
	Create(db *gorm.DB, employer *models.Employer) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error

	FindByEmailAndVerificationToken(db *gorm.DB, email, token string, now time.Time) (*models.Employer, error)
	MarkEmailVerified(db *gorm.DB, id string) error
	SetVerificationToken(db *gorm.DB, id, token string, exp time.Time) error
	FindByEmailAndResetToken(db *gorm.DB, email, token string, now time.Time) (*models.Employer, error)
	SetResetToken(db *gorm.DB, id, token string, exp time.Time) error
	CompletePasswordReset(db *gorm.DB, id, passwordHash string) error
	TouchLastLogin(db *gorm.DB, id string) error

	CreditWallet(db *gorm.DB, id string, interviewCredits, contactUnlockCredits int, planID string, expiresAt time.Time) error
	SpendInterviewCredit(db *gorm.DB, id string) error
	SpendContactUnlockCredit(db *gorm.DB, id string) error
}

type EmployerRepositoryImpl struct{}

func NewEmployerRepository() EmployerRepository {
	return &EmployerRepositoryImpl{}
}

func (r *EmployerRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Employer, error) {
	var employer models.Employer
	err := db.Preload("Plan").First(&employer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &employer, nil
}

func (r *EmployerRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Employer, error) {
	var employer models.Employer
	err := db.Preload("Plan").First(&employer, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &employer, nil
}

func (r *EmployerRepositoryImpl) Create(db *gorm.DB, employer *models.Employer) error {
	var existing models.Employer
	if err := db.Where("email = ?", employer.Email).First(&existing).Error; err == nil {
		return ErrAccountAlreadyExists
	}
	return db.Create(employer).Error
}

func (r *EmployerRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.Employer{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *EmployerRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Employer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *EmployerRepositoryImpl) FindByEmailAndVerificationToken(db *gorm.DB, email, token string, now time.Time) (*models.Employer, error) {
	var employer models.Employer
	err := db.Where("email = ? AND verification_token = ? AND verification_token != '' AND verification_token_exp > ?",
		email, token, now).First(&employer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &employer, nil
}

func (r *EmployerRepositoryImpl) MarkEmailVerified(db *gorm.DB, id string) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"email_verified":         true,
		"verification_token":     "",
		"verification_token_exp": nil,
	})
}

func (r *EmployerRepositoryImpl) SetVerificationToken(db *gorm.DB, id, token string, exp time.Time) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"verification_token":     token,
		"verification_token_exp": exp,
	})
}

func (r *EmployerRepositoryImpl) FindByEmailAndResetToken(db *gorm.DB, email, token string, now time.Time) (*models.Employer, error) {
	var employer models.Employer
	err := db.Where("email = ? AND reset_token = ? AND reset_token != '' AND reset_token_exp > ?", email, token, now).
		First(&employer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &employer, nil
}

func (r *EmployerRepositoryImpl) SetResetToken(db *gorm.DB, id, token string, exp time.Time) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"reset_token":     token,
		"reset_token_exp": exp,
	})
}

func (r *EmployerRepositoryImpl) CompletePasswordReset(db *gorm.DB, id, passwordHash string) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"password_hash":   passwordHash,
		"reset_token":     "",
		"reset_token_exp": nil,
	})
}

func (r *EmployerRepositoryImpl) TouchLastLogin(db *gorm.DB, id string) error {
	return db.Model(&models.Employer{}).Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

// CreditWallet adds purchased credits and moves the subscription window.
func (r *EmployerRepositoryImpl) CreditWallet(db *gorm.DB, id string, interviewCredits, contactUnlockCredits int, planID string, expiresAt time.Time) error {
	result := db.Model(&models.Employer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"wallet_interview_credits":      gorm.Expr("wallet_interview_credits + ?", interviewCredits),
		"wallet_contact_unlock_credits": gorm.Expr("wallet_contact_unlock_credits + ?", contactUnlockCredits),
		"plan_id":                       planID,
		"subscription_expires_at":       expiresAt,
		"updated_at":                    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// SpendInterviewCredit decrements atomically; the balance guard lives in the
// WHERE clause so two concurrent spends cannot go negative.
func (r *EmployerRepositoryImpl) SpendInterviewCredit(db *gorm.DB, id string) error {
	result := db.Model(&models.Employer{}).
		Where("id = ? AND wallet_interview_credits > 0", id).
		UpdateColumn("wallet_interview_credits", gorm.Expr("wallet_interview_credits - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientCredits
	}
	return nil
}

func (r *EmployerRepositoryImpl) SpendContactUnlockCredit(db *gorm.DB, id string) error {
	result := db.Model(&models.Employer{}).
		Where("id = ? AND wallet_contact_unlock_credits > 0", id).
		UpdateColumn("wallet_contact_unlock_credits", gorm.Expr("wallet_contact_unlock_credits - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientCredits
	}
	return nil
}
