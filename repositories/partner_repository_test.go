package repositories

import (
	"jafa-app/database/dbtest"
	"jafa-app/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPartnerRoleLists(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPartnerRepository(db)

	dbtest.Partner(t, db, "Zeta Customer", models.PartnerCustomer)
	dbtest.Partner(t, db, "Alpha Carrier", models.PartnerCarrier)
	dbtest.Partner(t, db, "Both Ways", models.PartnerCustomerCarrier)

	customers, err := repo.Customers("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Both Ways", "Zeta Customer"}, names(customers))

	carriers, err := repo.Carriers("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Carrier", "Both Ways"}, names(carriers))

	found, err := repo.Carriers("ALPHA")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Carrier"}, names(found))
}

func TestPartnerSearchFields(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPartnerRepository(db)

	require.NoError(t, repo.Create(&models.Partner{
		Name: "Kamion s.r.o.", TaxID: strPtr("12345678"), VatID: "CZ12345678", Address: "Praha",
		PartnerType: models.PartnerCarrier, ContactPerson: "Jana Nováková", Email: "dispo@kamion.cz", Phone: "+420777000111",
	}))
	require.NoError(t, repo.Create(&models.Partner{Name: "Other", Address: "Brno", PartnerType: models.PartnerCustomer}))

	for _, q := range []string{"kamion", "1234", "cz1234", "jana", "DISPO@", "777000"} {
		got, err := repo.List(PartnerFilter{Q: q})
		require.NoError(t, err)
		assert.Equal(t, []string{"Kamion s.r.o."}, names(got), "query %q", q)
	}
}

func TestPartnerDuplicateTaxID(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPartnerRepository(db)

	require.NoError(t, repo.Create(&models.Partner{Name: "A", TaxID: strPtr("111"), Address: "x", PartnerType: models.PartnerCustomer}))
	err := repo.Create(&models.Partner{Name: "B", TaxID: strPtr("111"), Address: "y", PartnerType: models.PartnerCustomer})
	assert.ErrorIs(t, err, ErrDuplicateTaxID)

	// partners without a tax ID never collide
	require.NoError(t, repo.Create(&models.Partner{Name: "C", Address: "z", PartnerType: models.PartnerCarrier}))
	require.NoError(t, repo.Create(&models.Partner{Name: "D", Address: "w", PartnerType: models.PartnerCarrier}))

	exists, err := repo.ExistsByTaxID("111")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPartnerDeleteBlockedWhileReferenced(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPartnerRepository(db)
	shipments := NewShipmentRepository(db)

	customer := dbtest.Partner(t, db, "Acme", models.PartnerCustomer)
	carrier := dbtest.Partner(t, db, "Truckers", models.PartnerCarrier)
	idle := dbtest.Partner(t, db, "Idle", models.PartnerCarrier)

	s := newShipment(customer.ID)
	s.CarrierID = &carrier.ID
	require.NoError(t, shipments.Create(s, 2025))

	assert.ErrorIs(t, repo.Delete(customer.ID), ErrPartnerInUse)
	assert.ErrorIs(t, repo.Delete(carrier.ID), ErrPartnerInUse)
	assert.NoError(t, repo.Delete(idle.ID))
	assert.ErrorIs(t, repo.Delete(idle.ID), ErrNotFound)

	_, err := repo.GetByID(customer.ID)
	assert.NoError(t, err)
}

func names(partners []models.Partner) []string {
	out := make([]string, 0, len(partners))
	for _, p := range partners {
		out = append(out, p.Name)
	}
	return out
}
