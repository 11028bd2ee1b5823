package services

import (
	"jafa-app/models"
	"jafa-app/validation"
	"strings"

	"github.com/shopspring/decimal"
)

type PartnerInput struct {
	Name           string             `json:"name" validate:"required,max=200"`
	TaxID          string             `json:"tax_id" validate:"max=20"`
	VatID          string             `json:"vat_id" validate:"max=20"`
	Address        string             `json:"address" validate:"required"`
	PartnerType    models.PartnerType `json:"partner_type" validate:"required,partner_type"`
	ContactPerson  string             `json:"contact_person" validate:"max=100"`
	Email          string             `json:"email" validate:"omitempty,email,max=254"`
	Phone          string             `json:"phone" validate:"max=20"`
	OtherContacts  string             `json:"other_contacts"`
	Certifications string             `json:"certifications"`
	VehicleTypes   string             `json:"vehicle_types"`
	BillingInfo    string             `json:"billing_info"`
	PaymentDueDays *int               `json:"payment_due_days" validate:"omitempty,gte=0"`
}

func (in *PartnerInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.TaxID = strings.TrimSpace(in.TaxID)
	in.VatID = strings.TrimSpace(in.VatID)
	in.Email = strings.TrimSpace(in.Email)
}

// Apply copies the input onto p. An empty tax ID is stored as NULL so that
// partners without one never collide on the unique index.
func (in PartnerInput) Apply(p *models.Partner) {
	p.Name = in.Name
	p.TaxID = nil
	if in.TaxID != "" {
		taxID := in.TaxID
		p.TaxID = &taxID
	}
	p.VatID = in.VatID
	p.Address = in.Address
	p.PartnerType = in.PartnerType
	p.ContactPerson = in.ContactPerson
	p.Email = in.Email
	p.Phone = in.Phone
	p.OtherContacts = in.OtherContacts
	p.Certifications = in.Certifications
	p.VehicleTypes = in.VehicleTypes
	p.BillingInfo = in.BillingInfo
	p.PaymentDueDays = in.PaymentDueDays
}

type ShipmentInput struct {
	CustomerID           uint                  `json:"customer_id" validate:"required"`
	CarrierID            *uint                 `json:"carrier_id"`
	LoadingPlace         string                `json:"loading_place" validate:"required"`
	LoadingTime          string                `json:"loading_time" validate:"max=50"`
	UnloadingPlace       string                `json:"unloading_place" validate:"required"`
	UnloadingTime        string                `json:"unloading_time" validate:"max=50"`
	ConsignorCMR         string                `json:"consignor_cmr"`
	ConsigneeCMR         string                `json:"consignee_cmr"`
	CargoDescription     string                `json:"cargo_description"`
	VehicleType          models.VehicleType    `json:"vehicle_type" validate:"omitempty,vehicle_type"`
	EstimatedWeightKg    *int                  `json:"estimated_weight_kg" validate:"omitempty,gte=0"`
	EstimatedWeightNote  string                `json:"estimated_weight_note" validate:"max=255"`
	FinalWeightKg        *int                  `json:"final_weight_kg" validate:"omitempty,gte=0"`
	FinalWeightNote      string                `json:"final_weight_note" validate:"max=255"`
	CustomerRatePerTonne *decimal.Decimal      `json:"customer_rate_per_tonne"`
	CustomerCurrency     models.Currency       `json:"customer_currency" validate:"omitempty,currency"`
	CarrierRatePerTonne  *decimal.Decimal      `json:"carrier_rate_per_tonne"`
	CarrierCurrency      models.Currency       `json:"carrier_currency" validate:"omitempty,currency"`
	Status               models.ShipmentStatus `json:"status" validate:"omitempty,shipment_status"`
}

// maxRate is the largest value a numeric(10,2) column holds.
var maxRate = decimal.RequireFromString("99999999.99")

// Validate runs the tag rules and the money rules tags cannot express.
func (in ShipmentInput) Validate() error {
	var errs validation.Errors
	if err := validation.Struct(in); err != nil {
		fe, ok := err.(validation.Errors)
		if !ok {
			return err
		}
		errs = fe
	}
	errs = checkRate(errs, "customer_rate_per_tonne", in.CustomerRatePerTonne)
	errs = checkRate(errs, "carrier_rate_per_tonne", in.CarrierRatePerTonne)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkRate(errs validation.Errors, field string, rate *decimal.Decimal) validation.Errors {
	if rate == nil {
		return errs
	}
	switch {
	case rate.IsNegative():
		return errs.Add(field, "gte", "Ensure this value is greater than or equal to 0.")
	case rate.GreaterThan(maxRate):
		return errs.Add(field, "max_digits", "Ensure that there are no more than 10 digits in total.")
	case !rate.Equal(rate.Round(2)):
		return errs.Add(field, "decimal_places", "Ensure that there are no more than 2 decimal places.")
	}
	return errs
}

// Apply copies the form fields onto s, filling the defaults of a new
// shipment. Reference code and status history are not touched here.
func (in ShipmentInput) Apply(s *models.Shipment) {
	s.CustomerID = in.CustomerID
	s.CarrierID = in.CarrierID
	s.LoadingPlace = in.LoadingPlace
	s.LoadingTime = in.LoadingTime
	s.UnloadingPlace = in.UnloadingPlace
	s.UnloadingTime = in.UnloadingTime
	s.ConsignorCMR = in.ConsignorCMR
	s.ConsigneeCMR = in.ConsigneeCMR
	s.CargoDescription = in.CargoDescription

	s.VehicleType = in.VehicleType
	if s.VehicleType == "" {
		s.VehicleType = models.VehicleTipper
	}
	s.EstimatedWeightKg = models.DefaultEstimatedWeightKg
	if in.EstimatedWeightKg != nil {
		s.EstimatedWeightKg = *in.EstimatedWeightKg
	}
	s.EstimatedWeightNote = in.EstimatedWeightNote
	s.FinalWeightKg = in.FinalWeightKg
	s.FinalWeightNote = in.FinalWeightNote

	s.CustomerRatePerTonne = nullDecimal(in.CustomerRatePerTonne)
	s.CarrierRatePerTonne = nullDecimal(in.CarrierRatePerTonne)
	s.CustomerCurrency = in.CustomerCurrency
	if s.CustomerCurrency == "" {
		s.CustomerCurrency = models.CZK
	}
	s.CarrierCurrency = in.CarrierCurrency
	if s.CarrierCurrency == "" {
		s.CarrierCurrency = models.CZK
	}
	if in.Status != "" {
		s.Status = in.Status
	}
	if s.Status == "" {
		s.Status = models.StatusNew
	}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

type AssignCarrierInput struct {
	CarrierID           uint             `json:"carrier_id" validate:"required"`
	CarrierRatePerTonne *decimal.Decimal `json:"carrier_rate_per_tonne"`
	CarrierCurrency     models.Currency  `json:"carrier_currency" validate:"omitempty,currency"`
}

type StatusInput struct {
	Status models.ShipmentStatus `json:"status" validate:"required,shipment_status"`
}

type DocumentInput struct {
	Name string `json:"name" validate:"required,max=200"`
}

type HolidayInput struct {
	Date        string `json:"date" validate:"required"`
	Name        string `json:"name" validate:"required,max=150"`
	CountryCode string `json:"country_code" validate:"required,country_code"`
	Regions     string `json:"regions" validate:"max=100"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
