package repositories

import (
	"errors"
	"time"

	"rtw_backend/internal/models"

	"gorm.io/gorm"
)

type InvitationRepository interface {
	Create(db *gorm.DB, invitation *models.InterviewInvitation) error
	FindByID(db *gorm.DB, id string) (*models.InterviewInvitation, error)
	FindByEmployer(db *gorm.DB, employerID string, limit, offset int) ([]models.InterviewInvitation, int64, error)
	FindByCandidate(db *gorm.DB, candidateID string, limit, offset int) ([]models.InterviewInvitation, int64, error)
	Respond(db *gorm.DB, id, candidateID string, status models.InvitationStatus) error
	CountByEmployerAndStatus(db *gorm.DB, employerID string, status models.InvitationStatus) (int64, error)
	CountByCandidate(db *gorm.DB, candidateID string) (int64, error)
	CountByCandidateAndStatus(db *gorm.DB, candidateID string, status models.InvitationStatus) (int64, error)
}

type InvitationRepositoryImpl struct{}

func NewInvitationRepository() InvitationRepository {
	return &InvitationRepositoryImpl{}
}

func (r *InvitationRepositoryImpl) Create(db *gorm.DB, invitation *models.InterviewInvitation) error {
	return db.Create(invitation).Error
}

func (r *InvitationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.InterviewInvitation, error) {
	var invitation models.InterviewInvitation
	err := db.First(&invitation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepositoryImpl) FindByEmployer(db *gorm.DB, employerID string, limit, offset int) ([]models.InterviewInvitation, int64, error) {
	query := db.Model(&models.InterviewInvitation{}).Where("employer_id = ?", employerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invitations []models.InterviewInvitation
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&invitations).Error
	return invitations, total, err
}

func (r *InvitationRepositoryImpl) FindByCandidate(db *gorm.DB, candidateID string, limit, offset int) ([]models.InterviewInvitation, int64, error) {
	query := db.Model(&models.InterviewInvitation{}).Where("candidate_id = ?", candidateID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invitations []models.InterviewInvitation
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&invitations).Error
	return invitations, total, err
}

// Respond records the candidate's answer. The status guard makes a second
// answer fail instead of overwriting the first.
func (r *InvitationRepositoryImpl) Respond(db *gorm.DB, id, candidateID string, status models.InvitationStatus) error {
	now := time.Now()
	result := db.Model(&models.InterviewInvitation{}).
		Where("id = ? AND candidate_id = ? AND status = ?", id, candidateID, models.InvitationStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": now,
			"updated_at":   now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var existing models.InterviewInvitation
		if err := db.First(&existing, "id = ? AND candidate_id = ?", id, candidateID).Error; err != nil {
			return ErrInvitationNotFound
		}
		return ErrInvitationAlreadyAnswered
	}
	return nil
}

func (r *InvitationRepositoryImpl) CountByEmployerAndStatus(db *gorm.DB, employerID string, status models.InvitationStatus) (int64, error) {
	var count int64
	err := db.Model(&models.InterviewInvitation{}).
		Where("employer_id = ? AND status = ?", employerID, status).
		Count(&count).Error
	return count, err
}

func (r *InvitationRepositoryImpl) CountByCandidate(db *gorm.DB, candidateID string) (int64, error) {
	var count int64
	err := db.Model(&models.InterviewInvitation{}).
		Where("candidate_id = ?", candidateID).Count(&count).Error
	return count, err
}

func (r *InvitationRepositoryImpl) CountByCandidateAndStatus(db *gorm.DB, candidateID string, status models.InvitationStatus) (int64, error) {
	var count int64
	err := db.Model(&models.InterviewInvitation{}).
		Where("candidate_id = ? AND status = ?", candidateID, status).
		Count(&count).Error
	return count, err
}

type UnlockRepository interface {
	Create(db *gorm.DB, unlock *models.ContactUnlock) error
	FindByPair(db *gorm.DB, employerID, candidateID string) (*models.ContactUnlock, error)
	FindByEmployer(db *gorm.DB, employerID string, limit, offset int) ([]models.ContactUnlock, int64, error)
	CountByEmployer(db *gorm.DB, employerID string) (int64, error)
}

type UnlockRepositoryImpl struct{}

func NewUnlockRepository() UnlockRepository {
	return &UnlockRepositoryImpl{}
}

func (r *UnlockRepositoryImpl) Create(db *gorm.DB, unlock *models.ContactUnlock) error {
	return db.Create(unlock).Error
}

func (r *UnlockRepositoryImpl) FindByPair(db *gorm.DB, employerID, candidateID string) (*models.ContactUnlock, error) {
	var unlock models.ContactUnlock
	err := db.Where("employer_id = ? AND candidate_id = ?", employerID, candidateID).
		First(&unlock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnlockNotFound
		}
		return nil, err
	}
	return &unlock, nil
}

func (r *UnlockRepositoryImpl) FindByEmployer(db *gorm.DB, employerID string, limit, offset int) ([]models.ContactUnlock, int64, error) {
	query := db.Model(&models.ContactUnlock{}).Where("employer_id = ?", employerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var unlocks []models.ContactUnlock
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&unlocks).Error
	return unlocks, total, err
}

func (r *UnlockRepositoryImpl) CountByEmployer(db *gorm.DB, employerID string) (int64, error) {
	var count int64
	err := db.Model(&models.ContactUnlock{}).
		Where("employer_id = ?", employerID).Count(&count).Error
	return count, err
}
