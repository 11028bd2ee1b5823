package services

import (
	"context"
	"io"
	"jafa-app/controllers/helpers"
	"jafa-app/models"
	"jafa-app/repositories"
	"jafa-app/storage"
	"jafa-app/validation"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DocumentService struct {
	DB        *gorm.DB
	Documents *repositories.DocumentRepository
	Shipments *repositories.ShipmentRepository
	Store     storage.FileStore
	Log       *zap.Logger
}

func NewDocumentService(db *gorm.DB, store storage.FileStore, log *zap.Logger) *DocumentService {
	return &DocumentService{
		DB:        db,
		Documents: repositories.NewDocumentRepository(db),
		Shipments: repositories.NewShipmentRepository(db),
		Store:     store,
		Log:       log,
	}
}

// Upload describes one file attached to a shipment.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (s *DocumentService) List(shipmentID uint) ([]models.Document, error) {
	if _, err := s.Shipments.GetByID(shipmentID); err != nil {
		return nil, err
	}
	return s.Documents.ListByShipment(shipmentID)
}

// Upload stores the bytes first and the record second. If the record cannot
// be written the stored file is removed again.
func (s *DocumentService) Upload(ctx context.Context, shipmentID uint, in DocumentInput, up Upload, actor int) (*models.Document, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if up.Body == nil || up.Filename == "" {
		return nil, validation.Field("file", "required", "No file was submitted.")
	}

	shipment, err := s.Shipments.GetByID(shipmentID)
	if err != nil {
		return nil, err
	}

	key, err := s.Store.Save(ctx, up.Filename, up.Body)
	if err != nil {
		return nil, err
	}

	doc := models.Document{
		ShipmentID:       shipmentID,
		Name:             in.Name,
		StoredRef:        key,
		OriginalFilename: up.Filename,
		ContentType:      up.ContentType,
		Size:             up.Size,
		UploadedBy:       actor,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewDocumentRepository(tx).Create(&doc); err != nil {
			return err
		}
		return helpers.InsertShipmentHistory(tx, shipment.ReferenceCode, shipment.Status, models.HistoryDocumentAdded, doc.Name, actor)
	})
	if err != nil {
		if delErr := s.Store.Delete(ctx, key); delErr != nil {
			s.Log.Warn("Orphaned document file", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	return &doc, nil
}

// Open returns the record and a reader over its bytes; the caller closes it.
func (s *DocumentService) Open(ctx context.Context, id uint) (*models.Document, io.ReadCloser, error) {
	doc, err := s.Documents.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.Store.Open(ctx, doc.StoredRef)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

// Delete removes the stored file, then the record. The two steps are not
// atomic; a failed file removal is logged and the record still goes.
func (s *DocumentService) Delete(ctx context.Context, id uint, actor int) (*models.Document, error) {
	doc, err := s.Documents.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.Store.Delete(ctx, doc.StoredRef); err != nil {
		s.Log.Warn("Could not remove document file", zap.String("key", doc.StoredRef), zap.Error(err))
	}

	shipment, err := s.Shipments.GetByID(doc.ShipmentID)
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewDocumentRepository(tx).Delete(doc.ID); err != nil {
			return err
		}
		return helpers.InsertShipmentHistory(tx, shipment.ReferenceCode, shipment.Status, models.HistoryDocumentRemoved, doc.Name, actor)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
