package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/jmcateer/pulselog/internal/models"
)

type CheckInRepository struct {
	database *gorm.DB
}

func NewCheckInRepository(database *gorm.DB) *CheckInRepository {
	return &CheckInRepository{database: database}
}

func (repo *CheckInRepository) ListByUser(userID string) ([]models.CheckIn, error) {
	checkIns := make([]models.CheckIn, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("timestamp ASC, id ASC").
		Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}

// ListByUserRange returns check-ins with from <= timestamp < to; a nil
// bound leaves that side open.
func (repo *CheckInRepository) ListByUserRange(userID string, from *time.Time, to *time.Time) ([]models.CheckIn, error) {
	query := repo.database.Model(&models.CheckIn{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("timestamp >= ?", *from)
	}
	if to != nil {
		query = query.Where("timestamp < ?", *to)
	}

	checkIns := make([]models.CheckIn, 0)
	if err := query.Order("timestamp ASC, id ASC").Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (repo *CheckInRepository) ListFlaggedByUser(userID string) ([]models.CheckIn, error) {
	checkIns := make([]models.CheckIn, 0)
	if err := repo.database.
		Where("user_id = ? AND flagged_for_doctor = ?", userID, true).
		Order("timestamp ASC, id ASC").
		Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (repo *CheckInRepository) Create(checkIn *models.CheckIn) error {
	return repo.database.Create(checkIn).Error
}

func (repo *CheckInRepository) CountByUser(userID string) (int64, error) {
	var count int64
	if err := repo.database.
		Model(&models.CheckIn{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
