package repositories

import (
	"errors"
	"time"

	"rtw_backend/internal/models"

	"gorm.io/gorm"
)

type PlanRepository interface {
	FindActive(db *gorm.DB) ([]models.Plan, error)
	FindByID(db *gorm.DB, id string) (*models.Plan, error)
	Create(db *gorm.DB, plan *models.Plan) error
	Count(db *gorm.DB) (int64, error)
}

type PlanRepositoryImpl struct{}

func NewPlanRepository() PlanRepository {
	return &PlanRepositoryImpl{}
}

func (r *PlanRepositoryImpl) FindActive(db *gorm.DB) ([]models.Plan, error) {
	var plans []models.Plan
	err := db.Where("is_active = ?", true).
		Order("sort_order ASC, price ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Plan, error) {
	var plan models.Plan
	err := db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepositoryImpl) Create(db *gorm.DB, plan *models.Plan) error {
	return db.Create(plan).Error
}

func (r *PlanRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Plan{}).Count(&count).Error
	return count, err
}

type PurchaseRepository interface {
	Create(db *gorm.DB, purchase *models.Purchase) error
	FindByID(db *gorm.DB, id string) (*models.Purchase, error)
	FindByReference(db *gorm.DB, reference string) (*models.Purchase, error)
	FindByEmployer(db *gorm.DB, employerID string, limit, offset int) ([]models.Purchase, int64, error)
	MarkPaid(db *gorm.DB, id string) error
	ExpireStalePending(db *gorm.DB, olderThan time.Time) (int64, error)
}

type PurchaseRepositoryImpl struct{}

func NewPurchaseRepository() PurchaseRepository {
	return &PurchaseRepositoryImpl{}
}

func (r *PurchaseRepositoryImpl) Create(db *gorm.DB, purchase *models.Purchase) error {
	return db.Create(purchase).Error
}

func (r *PurchaseRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := db.Preload("Plan").First(&purchase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepositoryImpl) FindByReference(db *gorm.DB, reference string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := db.Preload("Plan").First(&purchase, "reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepositoryImpl) FindByEmployer(db *gorm.DB, employerID string, limit, offset int) ([]models.Purchase, int64, error) {
	query := db.Model(&models.Purchase{}).Where("employer_id = ?", employerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var purchases []models.Purchase
	err := query.Preload("Plan").Order("created_at DESC").
		Limit(limit).Offset(offset).Find(&purchases).Error
	return purchases, total, err
}

// MarkPaid transitions pending -> paid. The status guard in the WHERE clause
// keeps a double confirmation from crediting the wallet twice.
func (r *PurchaseRepositoryImpl) MarkPaid(db *gorm.DB, id string) error {
	now := time.Now()
	result := db.Model(&models.Purchase{}).
		Where("id = ? AND status = ?", id, models.PurchaseStatusPending).
		Updates(map[string]interface{}{
			"status":     models.PurchaseStatusPaid,
			"paid_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var existing models.Purchase
		if err := db.First(&existing, "id = ?", id).Error; err != nil {
			return ErrPurchaseNotFound
		}
		return ErrPurchaseNotPending
	}
	return nil
}

func (r *PurchaseRepositoryImpl) ExpireStalePending(db *gorm.DB, olderThan time.Time) (int64, error) {
	result := db.Model(&models.Purchase{}).
		Where("status = ? AND created_at < ?", models.PurchaseStatusPending, olderThan).
		Updates(map[string]interface{}{
			"status":     models.PurchaseStatusExpired,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
