package repositories

import (
	"jafa-app/models"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	DB *gorm.DB
}

func NewHistoryRepository(DB *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: DB}
}

func (r *HistoryRepository) ListByRef(refNo string) ([]models.ShipmentHistory, error) {
	var rows []models.ShipmentHistory
	err := r.DB.Where("ref_no = ?", refNo).Order("created_at ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}
