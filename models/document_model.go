package models

import "time"

type Document struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ShipmentID       uint      `json:"shipment_id" gorm:"not null;index"`
	Name             string    `json:"name" gorm:"size:200;not null"`
	StoredRef        string    `json:"-" gorm:"size:500;not null"`
	OriginalFilename string    `json:"original_filename" gorm:"size:255"`
	ContentType      string    `json:"content_type" gorm:"size:100"`
	Size             int64     `json:"size"`
	UploadedAt       time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
	UploadedBy       int       `json:"uploaded_by"`
}
