package services

import (
	"fmt"
	"io"
	"jafa-app/models"
	"jafa-app/repositories"
	"jafa-app/validation"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PartnerService struct {
	DB       *gorm.DB
	Partners *repositories.PartnerRepository
	Log      *zap.Logger
}

func NewPartnerService(db *gorm.DB, log *zap.Logger) *PartnerService {
	return &PartnerService{DB: db, Partners: repositories.NewPartnerRepository(db), Log: log}
}

func (s *PartnerService) List(f repositories.PartnerFilter) ([]models.Partner, error) {
	return s.Partners.List(f)
}

func (s *PartnerService) Customers(q string) ([]models.Partner, error) {
	return s.Partners.Customers(q)
}

func (s *PartnerService) Carriers(q string) ([]models.Partner, error) {
	return s.Partners.Carriers(q)
}

func (s *PartnerService) Get(id uint) (*models.Partner, error) {
	return s.Partners.GetByID(id)
}

func (s *PartnerService) Create(in PartnerInput, actor int) (*models.Partner, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	partner := models.Partner{CreatedBy: actor, UpdatedBy: actor}
	in.Apply(&partner)
	if err := s.Partners.Create(&partner); err != nil {
		return nil, err
	}
	return &partner, nil
}

func (s *PartnerService) Update(id uint, in PartnerInput, actor int) (*models.Partner, error) {
	partner, err := s.Partners.GetByID(id)
	if err != nil {
		return nil, err
	}
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if err := s.checkRoleChange(partner.ID, in.PartnerType); err != nil {
		return nil, err
	}

	in.Apply(partner)
	partner.UpdatedBy = actor
	if err := s.Partners.Update(partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// checkRoleChange rejects a type that drops a role existing shipments use.
func (s *PartnerService) checkRoleChange(id uint, typ models.PartnerType) error {
	asCustomer, asCarrier, err := s.Partners.ShipmentUsage(id)
	if err != nil {
		return err
	}
	candidate := models.Partner{PartnerType: typ}
	if asCustomer > 0 && !candidate.IsCustomer() {
		return validation.Field("partner_type", "in_use",
			fmt.Sprintf("The partner is the customer of %d shipment(s) and must stay a customer.", asCustomer))
	}
	if asCarrier > 0 && !candidate.IsCarrier() {
		return validation.Field("partner_type", "in_use",
			fmt.Sprintf("The partner is the carrier of %d shipment(s) and must stay a carrier.", asCarrier))
	}
	return nil
}

func (s *PartnerService) Delete(id uint) error {
	return s.Partners.Delete(id)
}

type PartnerImportResult struct {
	TotalRows     int      `json:"total_rows"`
	SuccessCount  int      `json:"success_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	SkippedItems  []string `json:"skipped_items"`
	ErrorMessages []string `json:"error_messages"`
}

// PartnerImportColumns is the expected header row of an import workbook.
var PartnerImportColumns = []string{
	"NAZEV", "ICO", "DIC", "ADRESA", "TYP", "KONTAKTNI_OSOBA", "EMAIL", "TELEFON", "SPLATNOST_DNY",
}

// ImportExcel reads partners from the first sheet, one per row after the
// header. Rows whose tax ID already exists are skipped; invalid rows are
// reported and do not stop the import.
func (s *PartnerService) ImportExcel(r io.Reader, actor int) (*PartnerImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, validation.Field("file", "format", "Failed to read Excel file: "+err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, validation.Field("file", "sheet", "No sheets found in Excel file.")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, validation.Field("file", "rows", "Excel file must contain header and at least one data row.")
	}

	result := &PartnerImportResult{
		TotalRows:     len(rows) - 1,
		SkippedItems:  []string{},
		ErrorMessages: []string{},
	}

	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		in, err := partnerInputFromRow(row)
		if err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Row %d: %s", rowNum, err))
			continue
		}
		in.normalize()
		if err := validation.Struct(in); err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Row %d: %s", rowNum, err))
			continue
		}

		if in.TaxID != "" {
			exists, err := s.Partners.ExistsByTaxID(in.TaxID)
			if err != nil {
				return nil, err
			}
			if exists {
				result.SkippedCount++
				result.SkippedItems = append(result.SkippedItems, in.TaxID)
				continue
			}
		}

		partner := models.Partner{CreatedBy: actor, UpdatedBy: actor}
		in.Apply(&partner)
		if err := s.Partners.Create(&partner); err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Row %d: failed to create partner - %s", rowNum, err))
			continue
		}
		result.SuccessCount++
	}

	s.Log.Info("Partner import finished",
		zap.Int("success", result.SuccessCount),
		zap.Int("skipped", result.SkippedCount),
		zap.Int("errors", result.ErrorCount))
	return result, nil
}

func partnerInputFromRow(row []string) (PartnerInput, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	in := PartnerInput{
		Name:          cell(0),
		TaxID:         cell(1),
		VatID:         cell(2),
		Address:       cell(3),
		PartnerType:   parsePartnerType(cell(4)),
		ContactPerson: cell(5),
		Email:         cell(6),
		Phone:         cell(7),
	}
	if days := cell(8); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil {
			return in, fmt.Errorf("invalid payment due days %q", days)
		}
		in.PaymentDueDays = &n
	}
	return in, nil
}

// parsePartnerType accepts the stored value or its Czech label.
func parsePartnerType(v string) models.PartnerType {
	t := models.PartnerType(strings.ToLower(v))
	if t.Valid() {
		return t
	}
	for pt, label := range models.PartnerTypeLabels {
		if strings.EqualFold(label, v) {
			return pt
		}
	}
	return models.PartnerType(v)
}
