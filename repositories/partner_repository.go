package repositories

import (
	"jafa-app/models"
	"strings"

	"gorm.io/gorm"
)

type PartnerRepository struct {
	DB *gorm.DB
}

func NewPartnerRepository(DB *gorm.DB) *PartnerRepository {
	return &PartnerRepository{DB: DB}
}

// PartnerFilter narrows a partner listing. Types empty means every partner.
type PartnerFilter struct {
	Q     string
	Types []models.PartnerType
}

func (r *PartnerRepository) List(f PartnerFilter) ([]models.Partner, error) {
	query := r.DB.Model(&models.Partner{})
	if len(f.Types) > 0 {
		query = query.Where("partner_type IN ?", f.Types)
	}
	if q := strings.TrimSpace(f.Q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(tax_id) LIKE ? OR LOWER(vat_id) LIKE ? OR LOWER(contact_person) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?",
			like, like, like, like, like, like,
		)
	}

	var partners []models.Partner
	err := query.Order("name ASC").Order("id ASC").Find(&partners).Error
	return partners, err
}

func (r *PartnerRepository) Customers(q string) ([]models.Partner, error) {
	return r.List(PartnerFilter{Q: q, Types: models.CustomerTypes})
}

func (r *PartnerRepository) Carriers(q string) ([]models.Partner, error) {
	return r.List(PartnerFilter{Q: q, Types: models.CarrierTypes})
}

func (r *PartnerRepository) GetByID(id uint) (*models.Partner, error) {
	var partner models.Partner
	if err := r.DB.First(&partner, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &partner, nil
}

func (r *PartnerRepository) ExistsByTaxID(taxID string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Partner{}).Where("tax_id = ?", taxID).Count(&count).Error
	return count > 0, err
}

func (r *PartnerRepository) Create(partner *models.Partner) error {
	err := r.DB.Create(partner).Error
	if isUniqueViolation(err) {
		return ErrDuplicateTaxID
	}
	return err
}

func (r *PartnerRepository) Update(partner *models.Partner) error {
	err := r.DB.Save(partner).Error
	if isUniqueViolation(err) {
		return ErrDuplicateTaxID
	}
	return err
}

// ShipmentUsage counts the shipments that reference the partner in each role.
func (r *PartnerRepository) ShipmentUsage(id uint) (asCustomer, asCarrier int64, err error) {
	if err = r.DB.Model(&models.Shipment{}).Where("customer_id = ?", id).Count(&asCustomer).Error; err != nil {
		return 0, 0, err
	}
	err = r.DB.Model(&models.Shipment{}).Where("carrier_id = ?", id).Count(&asCarrier).Error
	return asCustomer, asCarrier, err
}

// Delete refuses while any shipment uses the partner as customer or carrier.
func (r *PartnerRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var partner models.Partner
		if err := tx.First(&partner, id).Error; err != nil {
			return notFound(err)
		}

		var inUse int64
		if err := tx.Model(&models.Shipment{}).
			Where("customer_id = ? OR carrier_id = ?", id, id).
			Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return ErrPartnerInUse
		}

		err := tx.Delete(&partner).Error
		if isForeignKeyViolation(err) {
			return ErrPartnerInUse
		}
		return err
	})
}
