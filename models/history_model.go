package models

import (
	"jafa-app/controllers/idgen"
	"jafa-app/types"
	"time"

	"gorm.io/gorm"
)

const (
	HistoryCreated         = "created"
	HistoryUpdated         = "updated"
	HistoryCarrierAssigned = "carrier_assigned"
	HistoryStatusChanged   = "status_changed"
	HistoryDocumentAdded   = "document_added"
	HistoryDocumentRemoved = "document_removed"
	HistoryDeleted         = "deleted"
	HistoryOrderSent       = "carrier_order_sent"
)

// ShipmentHistory is the audit trail of a shipment. Rows outlive the
// shipment they describe, so they are keyed by reference code.
type ShipmentHistory struct {
	ID        types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	RefNo     string            `json:"ref_no" gorm:"size:50;index"`
	Status    string            `json:"status" gorm:"size:20"`
	Type      string            `json:"type" gorm:"size:30"`
	Detail    string            `json:"detail" gorm:"type:text"`
	CreatedAt time.Time         `json:"created_at"`
	CreatedBy int               `json:"created_by"`
}

func (h *ShipmentHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == 0 {
		h.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
