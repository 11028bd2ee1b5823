// Package pdfsheet renders the printable shipment sheet: shipment details,
// the carrier order and the customer invoicing data.
package pdfsheet

import (
	"fmt"
	"jafa-app/models"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	empty      = "-"
	unassigned = "NEPŘIŘAZEN"
)

type Field struct {
	Label string
	Value string
}

type Section struct {
	Title  string
	Fields []Field
}

func FileName(s models.Shipment) string {
	return "podklady_" + s.ReferenceCode + ".pdf"
}

func Title(s models.Shipment) string {
	return "Podklady pro přepravu " + s.ReferenceCode
}

// Sections returns the three sheet sections in print order. The shipment
// should have Customer and Carrier loaded.
func Sections(s models.Shipment) []Section {
	return []Section{
		{
			Title: "Informace o přepravě",
			Fields: []Field{
				{"Místo nakládky", s.LoadingPlace},
				{"Datum a čas nakládky", s.LoadingTime},
				{"Místo vykládky", s.UnloadingPlace},
				{"Datum a čas vykládky", s.UnloadingTime},
				{"Odesílatel (CMR)", s.ConsignorCMR},
				{"Příjemce (CMR)", s.ConsigneeCMR},
				{"Zboží", s.CargoDescription},
				{"Typ vozidla", models.VehicleTypeLabels[s.VehicleType]},
				{"Odhadovaná hmotnost", fmt.Sprintf("%d kg", s.EstimatedWeightKg)},
				{"Finální hmotnost", finalWeight(s)},
			},
		},
		carrierSection(s),
		customerSection(s),
	}
}

func finalWeight(s models.Shipment) string {
	if s.FinalWeightKg == nil || *s.FinalWeightKg == 0 {
		return empty
	}
	return fmt.Sprintf("%d kg", *s.FinalWeightKg)
}

func carrierSection(s models.Shipment) Section {
	section := Section{Title: "Podklady pro objednávku dopravci"}
	if s.Carrier == nil {
		section.Fields = []Field{
			{"Dopravce", unassigned},
			{"Kontaktní osoba", empty},
			{"Telefon", empty},
			{"E-mail", empty},
		}
	} else {
		section.Fields = []Field{
			{"Dopravce", s.Carrier.Name},
			{"Kontaktní osoba", s.Carrier.ContactPerson},
			{"Telefon", s.Carrier.Phone},
			{"E-mail", s.Carrier.Email},
		}
	}
	section.Fields = append(section.Fields,
		Field{"Náklad za tunu", rateText(s.CarrierRatePerTonne, s.CarrierCurrency)},
		Field{"Celkový náklad", totalText(s.CarrierTotal(), s.CarrierCurrency, true)},
	)
	return section
}

func customerSection(s models.Shipment) Section {
	section := Section{Title: "Podklady pro fakturaci zákazníkovi"}
	c := s.Customer
	if c == nil {
		c = &models.Partner{}
	}

	taxID := ""
	if c.TaxID != nil {
		taxID = *c.TaxID
	}
	dueDays := empty
	if c.PaymentDueDays != nil && *c.PaymentDueDays != 0 {
		dueDays = strconv.Itoa(*c.PaymentDueDays)
	}

	section.Fields = []Field{
		{"Zákazník", c.Name},
		{"IČ", taxID},
		{"DIČ", c.VatID},
		{"Fakturační údaje", c.BillingText()},
		{"Splatnost faktur (dní)", dueDays},
		{"Cena za tunu", rateText(s.CustomerRatePerTonne, s.CustomerCurrency)},
		{"Celková cena", totalText(s.CustomerTotal(), s.CustomerCurrency, false)},
	}
	return section
}

func rateText(rate decimal.NullDecimal, c models.Currency) string {
	if !rate.Valid || rate.Decimal.IsZero() {
		return empty
	}
	return rate.Decimal.StringFixed(2) + " " + c.Symbol()
}

// totalText prints zero totals as "-" when dashIfZero is set, as the
// carrier block does; the invoicing block always shows the amount.
func totalText(total decimal.Decimal, c models.Currency, dashIfZero bool) string {
	if dashIfZero && total.IsZero() {
		return empty
	}
	return total.StringFixed(2) + " " + c.Symbol()
}
