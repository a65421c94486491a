package repositories

import (
	"errors"
	"time"

	"rtw_backend/internal/models"

	"gorm.io/gorm"
)

// UserRepository persists back-office accounts. Repositories are stateless;
// every method takes the request-scoped *gorm.DB (pool or test transaction).
type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error

	FindByEmailAndResetToken(db *gorm.DB, email, token string, now time.Time) (*models.User, error)
	SetResetToken(db *gorm.DB, id, token string, exp time.Time) error
	CompletePasswordReset(db *gorm.DB, id, passwordHash string) error
	TouchLastLogin(db *gorm.DB, id string) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrAccountAlreadyExists
	}
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// FindByEmailAndResetToken enforces token expiry at query time; there is no
// background sweep for stale reset tokens.
func (r *UserRepositoryImpl) FindByEmailAndResetToken(db *gorm.DB, email, token string, now time.Time) (*models.User, error) {
	var user models.User
	err := db.Where("email = ? AND reset_token = ? AND reset_token != '' AND reset_token_exp > ?", email, token, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) SetResetToken(db *gorm.DB, id, token string, exp time.Time) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"reset_token":     token,
		"reset_token_exp": exp,
	})
}

// CompletePasswordReset sets the new hash and clears the token in one update,
// making reset tokens single-use.
func (r *UserRepositoryImpl) CompletePasswordReset(db *gorm.DB, id, passwordHash string) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"password_hash":   passwordHash,
		"reset_token":     "",
		"reset_token_exp": nil,
	})
}

func (r *UserRepositoryImpl) TouchLastLogin(db *gorm.DB, id string) error {
	return db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}
