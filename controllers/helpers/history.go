package helpers

import (
	"jafa-app/models"

	"gorm.io/gorm"
)

// InsertShipmentHistory appends an audit row for a shipment. Pass the open
// transaction when the change itself is transactional.
func InsertShipmentHistory(db *gorm.DB, refNo string, status models.ShipmentStatus, historyType, detail string, actor int) error {
	history := models.ShipmentHistory{
		RefNo:     refNo,
		Status:    string(status),
		Type:      historyType,
		Detail:    detail,
		CreatedBy: actor,
	}

	if err := db.Create(&history).Error; err != nil {
		return err
	}

	return nil
}
