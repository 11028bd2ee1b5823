package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type ShipmentStatus string

const (
	StatusNew        ShipmentStatus = "new"
	StatusPlanned    ShipmentStatus = "planned"
	StatusInProgress ShipmentStatus = "in_progress"
	StatusCompleted  ShipmentStatus = "completed"
	StatusInvoicing  ShipmentStatus = "invoicing"
	StatusClosed     ShipmentStatus = "closed"
	StatusNotSold    ShipmentStatus = "not_sold"
)

// Statuses is the lifecycle in happy-path order; not_sold is the side branch.
var Statuses = []ShipmentStatus{
	StatusNew, StatusPlanned, StatusInProgress, StatusCompleted,
	StatusInvoicing, StatusClosed, StatusNotSold,
}

var (
	RealizedStatuses = []ShipmentStatus{StatusPlanned, StatusInProgress, StatusCompleted, StatusInvoicing, StatusClosed}
	ActiveStatuses   = []ShipmentStatus{StatusNew, StatusPlanned, StatusInProgress}
	ArchiveStatuses  = []ShipmentStatus{StatusCompleted, StatusInvoicing, StatusClosed, StatusNotSold}
)

var statusLabels = map[ShipmentStatus]string{
	StatusNew:        "Nová",
	StatusPlanned:    "Plánovaná",
	StatusInProgress: "Probíhá",
	StatusCompleted:  "Dokončená",
	StatusInvoicing:  "K fakturaci",
	StatusClosed:     "Uzavřená",
	StatusNotSold:    "Neprodáno",
}

var statusBadges = map[ShipmentStatus]string{
	StatusNew:        "bg-primary",
	StatusPlanned:    "bg-warning",
	StatusInProgress: "bg-success text-dark",
	StatusCompleted:  "bg-success",
	StatusInvoicing:  "bg-info",
	StatusClosed:     "bg-secondary",
	StatusNotSold:    "bg-danger",
}

func (s ShipmentStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s ShipmentStatus) Label() string {
	return statusLabels[s]
}

func (s ShipmentStatus) Badge() string {
	if b, ok := statusBadges[s]; ok {
		return b
	}
	return "bg-light"
}

func (s ShipmentStatus) IsRealized() bool {
	for _, r := range RealizedStatuses {
		if r == s {
			return true
		}
	}
	return false
}

type VehicleType string

const (
	VehicleTipper       VehicleType = "SKL"
	VehicleWalkingFloor VehicleType = "WF"
	VehicleTipperOrWF   VehicleType = "SKL_WF"
)

var VehicleTypeLabels = map[VehicleType]string{
	VehicleTipper:       "Sklápěč",
	VehicleWalkingFloor: "Walking Floor",
	VehicleTipperOrWF:   "Sklápěč/Walking Floor",
}

type Currency string

const (
	CZK Currency = "CZK"
	EUR Currency = "EUR"
)

var CurrencySymbols = map[Currency]string{
	CZK: "Kč",
	EUR: "€",
}

func (c Currency) Symbol() string {
	if s, ok := CurrencySymbols[c]; ok {
		return s
	}
	return string(c)
}

const (
	ReferencePrefix          = "JAFA"
	DefaultEstimatedWeightKg = 25000
)

type Shipment struct {
	ID                   uint                `json:"id" gorm:"primaryKey"`
	ReferenceCode        string              `json:"reference_code" gorm:"size:50;uniqueIndex;not null"`
	CustomerID           uint                `json:"customer_id" gorm:"not null;index"`
	Customer             *Partner            `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CarrierID            *uint               `json:"carrier_id" gorm:"index"`
	Carrier              *Partner            `json:"carrier,omitempty" gorm:"foreignKey:CarrierID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	LoadingPlace         string              `json:"loading_place" gorm:"type:text;not null"`
	LoadingTime          string              `json:"loading_time" gorm:"size:50"`
	UnloadingPlace       string              `json:"unloading_place" gorm:"type:text;not null"`
	UnloadingTime        string              `json:"unloading_time" gorm:"size:50"`
	ConsignorCMR         string              `json:"consignor_cmr" gorm:"type:text"`
	ConsigneeCMR         string              `json:"consignee_cmr" gorm:"type:text"`
	CargoDescription     string              `json:"cargo_description" gorm:"type:text"`
	VehicleType          VehicleType         `json:"vehicle_type" gorm:"size:10;default:'SKL'"`
	EstimatedWeightKg    int                 `json:"estimated_weight_kg" gorm:"default:25000"`
	EstimatedWeightNote  string              `json:"estimated_weight_note" gorm:"size:255"`
	FinalWeightKg        *int                `json:"final_weight_kg"`
	FinalWeightNote      string              `json:"final_weight_note" gorm:"size:255"`
	CustomerRatePerTonne decimal.NullDecimal `json:"customer_rate_per_tonne" gorm:"type:numeric(10,2)"`
	CustomerCurrency     Currency            `json:"customer_currency" gorm:"size:3;default:'CZK'"`
	CarrierRatePerTonne  decimal.NullDecimal `json:"carrier_rate_per_tonne" gorm:"type:numeric(10,2)"`
	CarrierCurrency      Currency            `json:"carrier_currency" gorm:"size:3;default:'CZK'"`
	Status               ShipmentStatus      `json:"status" gorm:"size:20;default:'new';index"`
	CreatedAt            time.Time           `json:"created_at" gorm:"index"`
	UpdatedAt            time.Time           `json:"updated_at"`
	CreatedBy            int                 `json:"created_by"`
	UpdatedBy            int                 `json:"updated_by"`
	Documents            []Document          `json:"documents,omitempty" gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

const moneyPlaces = 2

// EffectiveWeightKg prefers the final weight; an unset or zero final weight
// falls back to the estimate.
func (s Shipment) EffectiveWeightKg() int {
	if s.FinalWeightKg != nil && *s.FinalWeightKg != 0 {
		return *s.FinalWeightKg
	}
	return s.EstimatedWeightKg
}

// EffectiveWeightTonnes is the effective weight divided by 1000, kept exact.
func (s Shipment) EffectiveWeightTonnes() decimal.Decimal {
	return decimal.New(int64(s.EffectiveWeightKg()), -3)
}

func (s Shipment) CustomerTotal() decimal.Decimal {
	return rateTotal(s.CustomerRatePerTonne, s.EffectiveWeightTonnes())
}

func (s Shipment) CarrierTotal() decimal.Decimal {
	return rateTotal(s.CarrierRatePerTonne, s.EffectiveWeightTonnes())
}

// Margin is customer total minus carrier total when both are non-zero and
// in the same currency, zero otherwise. A shipment with a cost but no price
// reports zero, not a negative margin.
func (s Shipment) Margin() decimal.Decimal {
	if !s.CurrenciesMatch() {
		return decimal.Zero
	}
	price := s.CustomerTotal()
	cost := s.CarrierTotal()
	if price.IsZero() || cost.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost)
}

func (s Shipment) CurrenciesMatch() bool {
	return s.CustomerCurrency == s.CarrierCurrency
}

func rateTotal(rate decimal.NullDecimal, tonnes decimal.Decimal) decimal.Decimal {
	if !rate.Valid || rate.Decimal.IsZero() || !tonnes.IsPositive() {
		return decimal.Zero
	}
	return rate.Decimal.Mul(tonnes).Round(moneyPlaces)
}

// ShipmentFinance is the derived money view serialised next to a shipment.
type ShipmentFinance struct {
	EffectiveWeightTonnes decimal.Decimal `json:"effective_weight_t"`
	CustomerTotal         decimal.Decimal `json:"customer_total"`
	CarrierTotal          decimal.Decimal `json:"carrier_total"`
	Margin                decimal.Decimal `json:"margin"`
	CurrenciesMatch       bool            `json:"currencies_match"`
}

// MarshalJSON prints money with two decimals, e.g. "25000.00".
func (f ShipmentFinance) MarshalJSON() ([]byte, error) {
	type plain ShipmentFinance
	return json.Marshal(struct {
		plain
		CustomerTotal string `json:"customer_total"`
		CarrierTotal  string `json:"carrier_total"`
		Margin        string `json:"margin"`
	}{plain(f), MoneyString(f.CustomerTotal), MoneyString(f.CarrierTotal), MoneyString(f.Margin)})
}

// MoneyString formats an amount with exactly two decimals.
func MoneyString(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (s Shipment) Finance() ShipmentFinance {
	return ShipmentFinance{
		EffectiveWeightTonnes: s.EffectiveWeightTonnes(),
		CustomerTotal:         s.CustomerTotal(),
		CarrierTotal:          s.CarrierTotal(),
		Margin:                s.Margin(),
		CurrenciesMatch:       s.CurrenciesMatch(),
	}
}
