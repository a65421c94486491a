package repositories

import (
	"errors"

	"rtw_backend/internal/models"

	"gorm.io/gorm"
)

type MediaRepository interface {
	Create(db *gorm.DB, media *models.Media) error
	FindByID(db *gorm.DB, id string) (*models.Media, error)
	FindByOwner(db *gorm.DB, kind models.AccountKind, ownerID string) ([]models.Media, error)
	Delete(db *gorm.DB, id string) error
}

type MediaRepositoryImpl struct{}

func NewMediaRepository() MediaRepository {
	return &MediaRepositoryImpl{}
}

func (r *MediaRepositoryImpl) Create(db *gorm.DB, media *models.Media) error {
	return db.Create(media).Error
}

func (r *MediaRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Media, error) {
	var media models.Media
	err := db.First(&media, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepositoryImpl) FindByOwner(db *gorm.DB, kind models.AccountKind, ownerID string) ([]models.Media, error) {
	var media []models.Media
	err := db.Where("owner_kind = ? AND owner_id = ?", kind, ownerID).
		Order("created_at DESC").Find(&media).Error
	return media, err
}

func (r *MediaRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Media{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMediaNotFound
	}
	return nil
}
