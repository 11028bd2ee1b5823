package repositories

import (
	"jafa-app/models"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(DB *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: DB}
}

func (r *DocumentRepository) Create(doc *models.Document) error {
	return r.DB.Create(doc).Error
}

func (r *DocumentRepository) GetByID(id uint) (*models.Document, error) {
	var doc models.Document
	if err := r.DB.First(&doc, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

func (r *DocumentRepository) ListByShipment(shipmentID uint) ([]models.Document, error) {
	var docs []models.Document
	err := r.DB.Where("shipment_id = ?", shipmentID).Order("uploaded_at DESC").Order("id DESC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) Delete(id uint) error {
	res := r.DB.Delete(&models.Document{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
