package models

import "time"

type PartnerType string

const (
	PartnerCustomer        PartnerType = "customer"
	PartnerCarrier         PartnerType = "carrier"
	PartnerCustomerCarrier PartnerType = "customer_carrier"
)

var PartnerTypeLabels = map[PartnerType]string{
	PartnerCustomer:        "Zákazník",
	PartnerCarrier:         "Dopravce",
	PartnerCustomerCarrier: "Zákazník i dopravce",
}

// CustomerTypes and CarrierTypes list the partner types allowed in the
// customer and carrier slot of a shipment.
var (
	CustomerTypes = []PartnerType{PartnerCustomer, PartnerCustomerCarrier}
	CarrierTypes  = []PartnerType{PartnerCarrier, PartnerCustomerCarrier}
)

func (t PartnerType) Valid() bool {
	_, ok := PartnerTypeLabels[t]
	return ok
}

type Partner struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	Name           string      `json:"name" gorm:"size:200;not null;index"`
	TaxID          *string     `json:"tax_id" gorm:"size:20;uniqueIndex"`
	VatID          string      `json:"vat_id" gorm:"size:20"`
	Address        string      `json:"address" gorm:"type:text;not null"`
	PartnerType    PartnerType `json:"partner_type" gorm:"size:20;not null;index"`
	ContactPerson  string      `json:"contact_person" gorm:"size:100"`
	Email          string      `json:"email" gorm:"size:254"`
	Phone          string      `json:"phone" gorm:"size:20"`
	OtherContacts  string      `json:"other_contacts" gorm:"type:text"`
	Certifications string      `json:"certifications" gorm:"type:text"`
	VehicleTypes   string      `json:"vehicle_types" gorm:"type:text"`
	BillingInfo    string      `json:"billing_info" gorm:"type:text"`
	PaymentDueDays *int        `json:"payment_due_days"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	CreatedBy      int         `json:"created_by"`
	UpdatedBy      int         `json:"updated_by"`
}

func (p Partner) IsCustomer() bool {
	return p.PartnerType == PartnerCustomer || p.PartnerType == PartnerCustomerCarrier
}

func (p Partner) IsCarrier() bool {
	return p.PartnerType == PartnerCarrier || p.PartnerType == PartnerCustomerCarrier
}

// BillingText is what goes on the invoicing sheet: the billing info when
// filled in, the postal address otherwise.
func (p Partner) BillingText() string {
	if p.BillingInfo != "" {
		return p.BillingInfo
	}
	return p.Address
}
