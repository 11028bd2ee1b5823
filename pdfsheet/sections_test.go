package pdfsheet

import (
	"bytes"
	"jafa-app/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func fieldMap(s Section) map[string]string {
	m := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		m[f.Label] = f.Value
	}
	return m
}

func baseShipment() models.Shipment {
	taxID := "12345678"
	due := 30
	return models.Shipment{
		ReferenceCode:        "JAFA-2025-0042",
		LoadingPlace:         "Brno\nHala 3",
		LoadingTime:          "12.3. 8:00",
		UnloadingPlace:       "Wien",
		VehicleType:          models.VehicleWalkingFloor,
		EstimatedWeightKg:    25000,
		CustomerRatePerTonne: rate("1000.00"),
		CustomerCurrency:     models.CZK,
		CarrierCurrency:      models.EUR,
		Customer: &models.Partner{
			Name: "Acme a.s.", TaxID: &taxID, VatID: "CZ12345678", Address: "Praha 1", PaymentDueDays: &due,
		},
	}
}

func TestSectionsOrderAndTitles(t *testing.T) {
	sections := Sections(baseShipment())

	require.Len(t, sections, 3)
	assert.Equal(t, "Informace o přepravě", sections[0].Title)
	assert.Equal(t, "Podklady pro objednávku dopravci", sections[1].Title)
	assert.Equal(t, "Podklady pro fakturaci zákazníkovi", sections[2].Title)
	assert.Equal(t, "podklady_JAFA-2025-0042.pdf", FileName(baseShipment()))
}

func TestSectionsUnassignedCarrier(t *testing.T) {
	carrier := fieldMap(Sections(baseShipment())[1])

	assert.Equal(t, "NEPŘIŘAZEN", carrier["Dopravce"])
	assert.Equal(t, "-", carrier["Kontaktní osoba"])
	assert.Equal(t, "-", carrier["Náklad za tunu"])
	assert.Equal(t, "-", carrier["Celkový náklad"])
}

func TestSectionsAssignedCarrier(t *testing.T) {
	s := baseShipment()
	s.Carrier = &models.Partner{Name: "Truckers", ContactPerson: "Petr", Phone: "+420 1", Email: "d@t.cz"}
	s.CarrierRatePerTonne = rate("40")
	s.FinalWeightKg = new(int)
	*s.FinalWeightKg = 20000

	info := fieldMap(Sections(s)[0])
	carrier := fieldMap(Sections(s)[1])

	assert.Equal(t, "20000 kg", info["Finální hmotnost"])
	assert.Equal(t, "Walking Floor", info["Typ vozidla"])
	assert.Equal(t, "Truckers", carrier["Dopravce"])
	assert.Equal(t, "40.00 €", carrier["Náklad za tunu"])
	assert.Equal(t, "800.00 €", carrier["Celkový náklad"])
}

func TestSectionsCustomerBilling(t *testing.T) {
	customer := fieldMap(Sections(baseShipment())[2])

	assert.Equal(t, "Acme a.s.", customer["Zákazník"])
	assert.Equal(t, "12345678", customer["IČ"])
	assert.Equal(t, "Praha 1", customer["Fakturační údaje"])
	assert.Equal(t, "30", customer["Splatnost faktur (dní)"])
	assert.Equal(t, "1000.00 Kč", customer["Cena za tunu"])
	assert.Equal(t, "25000.00 Kč", customer["Celková cena"])

	s := baseShipment()
	s.Customer.BillingInfo = "Acme a.s.\nKB 123/0100"
	s.Customer.PaymentDueDays = nil
	customer = fieldMap(Sections(s)[2])
	assert.Equal(t, "Acme a.s.\nKB 123/0100", customer["Fakturační údaje"])
	assert.Equal(t, "-", customer["Splatnost faktur (dní)"])
}

func TestValueLines(t *testing.T) {
	assert.Equal(t, []string{"-"}, valueLines(""))
	assert.Equal(t, []string{"-"}, valueLines("  "))
	assert.Equal(t, []string{"a", "b"}, valueLines("a\r\nb\n"))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	s := baseShipment()

	require.NoError(t, Render(&buf, Title(s), Sections(s)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestCheckFontDir(t *testing.T) {
	assert.NoError(t, CheckFontDir(""))
	assert.Error(t, CheckFontDir(t.TempDir()))
}
