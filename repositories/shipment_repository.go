package repositories

import (
	"errors"
	"fmt"
	"jafa-app/models"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShipmentRepository struct {
	DB *gorm.DB
}

func NewShipmentRepository(DB *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{DB: DB}
}

// WithTx binds the repository to an open transaction.
func (r *ShipmentRepository) WithTx(tx *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{DB: tx}
}

const (
	ScopeActive  = "active"
	ScopeArchive = "archive"
)

type ShipmentFilter struct {
	Q          string
	CustomerID uint
	CarrierID  uint
	Status     models.ShipmentStatus
	Scope      string
}

// ReferencePrefixFor returns "JAFA-<year>-".
func ReferencePrefixFor(year int) string {
	return fmt.Sprintf("%s-%d-", models.ReferencePrefix, year)
}

// FormatReferenceCode renders a counter as JAFA-<year>-<4 digits>.
func FormatReferenceCode(year, counter int) string {
	return fmt.Sprintf("%s%04d", ReferencePrefixFor(year), counter)
}

// NextReferenceCode reads the lexicographically greatest code of the year
// and returns the one after it, or the first code of the year.
func (r *ShipmentRepository) NextReferenceCode(year int) (string, error) {
	prefix := ReferencePrefixFor(year)

	var last models.Shipment
	err := r.DB.Select("id", "reference_code").
		Where("reference_code LIKE ?", prefix+"%").
		Order("reference_code DESC").
		First(&last).Error

	counter := 1
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
	} else {
		n, convErr := strconv.Atoi(strings.TrimPrefix(last.ReferenceCode, prefix))
		if convErr != nil {
			return "", fmt.Errorf("unparsable reference code %q: %w", last.ReferenceCode, convErr)
		}
		counter = n + 1
	}

	return FormatReferenceCode(year, counter), nil
}

// Create inserts a shipment. A missing reference code is allocated for the
// given year inside the same transaction as the insert; a clash with a
// concurrent writer comes back as ErrDuplicateReference.
func (r *ShipmentRepository) Create(shipment *models.Shipment, year int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if shipment.ReferenceCode == "" {
			code, err := r.WithTx(tx).NextReferenceCode(year)
			if err != nil {
				return err
			}
			shipment.ReferenceCode = code
		}

		err := tx.Omit(clause.Associations).Create(shipment).Error
		if isUniqueViolation(err) {
			return ErrDuplicateReference
		}
		return err
	})
}

func (r *ShipmentRepository) Update(shipment *models.Shipment) error {
	err := r.DB.Omit(clause.Associations, "reference_code", "created_at", "created_by").Save(shipment).Error
	if isUniqueViolation(err) {
		return ErrDuplicateReference
	}
	return err
}

func (r *ShipmentRepository) UpdateColumns(id uint, values map[string]interface{}) error {
	res := r.DB.Model(&models.Shipment{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ShipmentRepository) GetByID(id uint) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.DB.Preload("Customer").Preload("Carrier").
		Preload("Documents", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at DESC") }).
		First(&shipment, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &shipment, nil
}

func (r *ShipmentRepository) List(f ShipmentFilter) ([]models.Shipment, error) {
	query := r.DB.Model(&models.Shipment{}).Preload("Customer").Preload("Carrier")

	if q := strings.TrimSpace(f.Q); q != "" {
		query = query.Where("LOWER(reference_code) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if f.CustomerID != 0 {
		query = query.Where("customer_id = ?", f.CustomerID)
	}
	if f.CarrierID != 0 {
		query = query.Where("carrier_id = ?", f.CarrierID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	switch f.Scope {
	case ScopeActive:
		query = query.Where("status IN ?", models.ActiveStatuses)
	case ScopeArchive:
		query = query.Where("status IN ?", models.ArchiveStatuses)
	}

	var shipments []models.Shipment
	err := query.Order("created_at DESC").Order("id DESC").Find(&shipments).Error
	return shipments, err
}

// ListOpen returns the shipments still waiting to be sold, in loading order.
func (r *ShipmentRepository) ListOpen() ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.DB.Preload("Customer").
		Where("status = ?", models.StatusNew).
		Order("loading_time ASC").Order("id ASC").
		Find(&shipments).Error
	return shipments, err
}

// All feeds the dashboard; parties are preloaded for the top lists.
func (r *ShipmentRepository) All() ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.DB.Preload("Customer").Preload("Carrier").Order("created_at DESC").Find(&shipments).Error
	return shipments, err
}

// Delete removes the shipment and its document records in one transaction
// and returns the removed documents so their files can be cleaned up.
func (r *ShipmentRepository) Delete(id uint) (*models.Shipment, []models.Document, error) {
	var shipment models.Shipment
	var documents []models.Document

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&shipment, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("shipment_id = ?", id).Find(&documents).Error; err != nil {
			return err
		}
		if err := tx.Where("shipment_id = ?", id).Delete(&models.Document{}).Error; err != nil {
			return err
		}
		return tx.Delete(&shipment).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &shipment, documents, nil
}
