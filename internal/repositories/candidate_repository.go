package repositories

import (
	"errors"
	"time"

	"rtw_backend/internal/models"

	"gorm.io/gorm"
)

type CandidateRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Candidate, error)
	FindByEmail(db *gorm.DB, email string) (*models.Candidate, error)
	Create(db *gorm.DB, candidate *models.Candidate) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error

	FindByEmailAndVerificationToken(db *gorm.DB, email, token string, now time.Time) (*models.Candidate, error)
	MarkEmailVerified(db *gorm.DB, id string) error
	SetVerificationToken(db *gorm.DB, id, token string, exp time.Time) error
	FindByEmailAndResetToken(db *gorm.DB, email, token string, now time.Time) (*models.Candidate, error)
	SetResetToken(db *gorm.DB, id, token string, exp time.Time) error
	CompletePasswordReset(db *gorm.DB, id, passwordHash string) error
	TouchLastLogin(db *gorm.DB, id string) error

	IncrementProfileViews(db *gorm.DB, id string) error
}

type CandidateRepositoryImpl struct{}

func NewCandidateRepository() CandidateRepository {
	return &CandidateRepositoryImpl{}
}

func (r *CandidateRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := db.First(&candidate, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := db.First(&candidate, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepositoryImpl) Create(db *gorm.DB, candidate *models.Candidate) error {
	var existing models.Candidate
	if err := db.Where("email = ?", candidate.Email).First(&existing).Error; err == nil {
		return ErrAccountAlreadyExists
	}
	return db.Create(candidate).Error
}

func (r *CandidateRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.Candidate{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *CandidateRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Candidate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *CandidateRepositoryImpl) FindByEmailAndVerificationToken(db *gorm.DB, email, token string, now time.Time) (*models.Candidate, error) {
	var candidate models.Candidate
	err := db.Where("email = ? AND verification_token = ? AND verification_token != '' AND verification_token_exp > ?",
		email, token, now).First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

// MarkEmailVerified flips the flag and clears the token in one update.
func (r *CandidateRepositoryImpl) MarkEmailVerified(db *gorm.DB, id string) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"email_verified":         true,
		"verification_token":     "",
		"verification_token_exp": nil,
	})
}

func (r *CandidateRepositoryImpl) SetVerificationToken(db *gorm.DB, id, token string, exp time.Time) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"verification_token":     token,
		"verification_token_exp": exp,
	})
}

func (r *CandidateRepositoryImpl) FindByEmailAndResetToken(db *gorm.DB, email, token string, now time.Time) (*models.Candidate, error) {
	var candidate models.Candidate
	err := db.Where("email = ? AND reset_token = ? AND reset_token != '' AND reset_token_exp > ?", email, token, now).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepositoryImpl) SetResetToken(db *gorm.DB, id, token string, exp time.Time) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"reset_token":     token,
		"reset_token_exp": exp,
	})
}

func (r *CandidateRepositoryImpl) CompletePasswordReset(db *gorm.DB, id, passwordHash string) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"password_hash":   passwordHash,
		"reset_token":     "",
		"reset_token_exp": nil,
	})
}

func (r *CandidateRepositoryImpl) TouchLastLogin(db *gorm.DB, id string) error {
	return db.Model(&models.Candidate{}).Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

func (r *CandidateRepositoryImpl) IncrementProfileViews(db *gorm.DB, id string) error {
	return db.Model(&models.Candidate{}).Where("id = ?", id).
		UpdateColumn("profile_views", gorm.Expr("profile_views + 1")).Error
}
