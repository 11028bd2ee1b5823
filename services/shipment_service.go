package services

import (
	"context"
	"errors"
	"fmt"
	"jafa-app/controllers/helpers"
	"jafa-app/models"
	"jafa-app/repositories"
	"jafa-app/storage"
	"jafa-app/validation"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ShipmentService struct {
	DB        *gorm.DB
	Shipments *repositories.ShipmentRepository
	Partners  *repositories.PartnerRepository
	History   *repositories.HistoryRepository
	Store     storage.FileStore
	Log       *zap.Logger
	Now       func() time.Time
}

func NewShipmentService(db *gorm.DB, store storage.FileStore, log *zap.Logger, now func() time.Time) *ShipmentService {
	return &ShipmentService{
		DB:        db,
		Shipments: repositories.NewShipmentRepository(db),
		Partners:  repositories.NewPartnerRepository(db),
		History:   repositories.NewHistoryRepository(db),
		Store:     store,
		Log:       log,
		Now:       now,
	}
}

func (s *ShipmentService) List(f repositories.ShipmentFilter) ([]models.Shipment, error) {
	return s.Shipments.List(f)
}

func (s *ShipmentService) Get(id uint) (*models.Shipment, error) {
	return s.Shipments.GetByID(id)
}

func (s *ShipmentService) HistoryOf(id uint) ([]models.ShipmentHistory, error) {
	shipment, err := s.Shipments.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.History.ListByRef(shipment.ReferenceCode)
}

// Create validates the input and stores a new shipment under the next
// reference code of the current year.
func (s *ShipmentService) Create(in ShipmentInput, actor int) (*models.Shipment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkParties(in.CustomerID, in.CarrierID); err != nil {
		return nil, err
	}

	shipment := models.Shipment{CreatedBy: actor, UpdatedBy: actor}
	in.Apply(&shipment)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Shipments.WithTx(tx).Create(&shipment, s.Now().Year()); err != nil {
			return err
		}
		return helpers.InsertShipmentHistory(tx, shipment.ReferenceCode, shipment.Status, models.HistoryCreated, "Shipment created", actor)
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("Shipment created", zap.String("reference_code", shipment.ReferenceCode), zap.Int("actor", actor))
	return s.Shipments.GetByID(shipment.ID)
}

// Update replaces the form fields. The reference code never changes.
func (s *ShipmentService) Update(id uint, in ShipmentInput, actor int) (*models.Shipment, error) {
	shipment, err := s.Shipments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkParties(in.CustomerID, in.CarrierID); err != nil {
		return nil, err
	}

	previous, carrierID := shipment.Status, shipment.CarrierID
	in.Apply(shipment)
	if in.CarrierID == nil {
		// the edit form leaves the carrier to AssignCarrier
		shipment.CarrierID = carrierID
	}
	shipment.UpdatedBy = actor
	shipment.Customer, shipment.Carrier, shipment.Documents = nil, nil, nil

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Shipments.WithTx(tx).Update(shipment); err != nil {
			return err
		}
		detail := "Shipment updated"
		if previous != shipment.Status {
			detail = fmt.Sprintf("Shipment updated, status %s -> %s", previous, shipment.Status)
		}
		return helpers.InsertShipmentHistory(tx, shipment.ReferenceCode, shipment.Status, models.HistoryUpdated, detail, actor)
	})
	if err != nil {
		return nil, err
	}
	return s.Shipments.GetByID(id)
}

// AssignCarrier sets the carrier and, when given, the carrier rate and
// currency in one step.
func (s *ShipmentService) AssignCarrier(id uint, in AssignCarrierInput, actor int) (*models.Shipment, error) {
	shipment, err := s.Shipments.GetByID(id)
	if err != nil {
		return nil, err
	}

	var errs validation.Errors
	if err := validation.Struct(in); err != nil {
		fe, ok := err.(validation.Errors)
		if !ok {
			return nil, err
		}
		errs = fe
	}
	errs = checkRate(errs, "carrier_rate_per_tonne", in.CarrierRatePerTonne)
	if len(errs) > 0 {
		return nil, errs
	}
	carrierID := in.CarrierID
	if err := s.checkParties(shipment.CustomerID, &carrierID); err != nil {
		return nil, err
	}

	values := map[string]interface{}{"carrier_id": in.CarrierID, "updated_by": actor}
	if in.CarrierRatePerTonne != nil {
		values["carrier_rate_per_tonne"] = decimal.NewNullDecimal(*in.CarrierRatePerTonne)
	}
	if in.CarrierCurrency != "" {
		values["carrier_currency"] = in.CarrierCurrency
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Shipments.WithTx(tx).UpdateColumns(id, values); err != nil {
			return err
		}
		return helpers.InsertShipmentHistory(tx, shipment.ReferenceCode, shipment.Status, models.HistoryCarrierAssigned,
			fmt.Sprintf("Carrier %d assigned", in.CarrierID), actor)
	})
	if err != nil {
		return nil, err
	}
	return s.Shipments.GetByID(id)
}

// ChangeStatus accepts any known status from any other; the lifecycle order
// is advisory.
func (s *ShipmentService) ChangeStatus(id uint, in StatusInput, actor int) (*models.Shipment, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	shipment, err := s.Shipments.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Shipments.WithTx(tx).UpdateColumns(id, map[string]interface{}{"status": in.Status, "updated_by": actor}); err != nil {
			return err
		}
		return helpers.InsertShipmentHistory(tx, shipment.ReferenceCode, in.Status, models.HistoryStatusChanged,
			fmt.Sprintf("%s -> %s", shipment.Status, in.Status), actor)
	})
	if err != nil {
		return nil, err
	}
	return s.Shipments.GetByID(id)
}

// Delete drops the shipment and its document records together, then removes
// the stored files. A file that cannot be removed is logged and left behind.
func (s *ShipmentService) Delete(ctx context.Context, id uint, actor int) error {
	var documents []models.Document

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		shipment, docs, err := s.Shipments.WithTx(tx).Delete(id)
		if err != nil {
			return err
		}
		documents = docs
		return helpers.InsertShipmentHistory(tx, shipment.ReferenceCode, shipment.Status, models.HistoryDeleted, "Shipment deleted", actor)
	})
	if err != nil {
		return err
	}

	for _, doc := range documents {
		if err := s.Store.Delete(ctx, doc.StoredRef); err != nil {
			s.Log.Warn("Orphaned document file", zap.String("key", doc.StoredRef), zap.Error(err))
		}
	}
	return nil
}

// checkParties reports role mismatches as field errors.
func (s *ShipmentService) checkParties(customerID uint, carrierID *uint) error {
	var errs validation.Errors

	customer, err := s.Partners.GetByID(customerID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		errs = errs.Add("customer_id", "exists", "Select a valid choice. That choice is not one of the available choices.")
	case err != nil:
		return err
	case !customer.IsCustomer():
		errs = errs.Add("customer_id", "partner_role", "The selected partner is not a customer.")
	}

	if carrierID != nil {
		carrier, err := s.Partners.GetByID(*carrierID)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			errs = errs.Add("carrier_id", "exists", "Select a valid choice. That choice is not one of the available choices.")
		case err != nil:
			return err
		case !carrier.IsCarrier():
			errs = errs.Add("carrier_id", "partner_role", "The selected partner is not a carrier.")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
