package repositories

import (
	"jafa-app/database/dbtest"
	"jafa-app/models"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShipment(customerID uint) *models.Shipment {
	return &models.Shipment{
		CustomerID:        customerID,
		LoadingPlace:      "Brno",
		UnloadingPlace:    "Wien",
		VehicleType:       models.VehicleTipper,
		EstimatedWeightKg: models.DefaultEstimatedWeightKg,
		CustomerCurrency:  models.CZK,
		CarrierCurrency:   models.CZK,
		Status:            models.StatusNew,
	}
}

func TestNextReferenceCode(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewShipmentRepository(db)
	customer := dbtest.Partner(t, db, "Acme", models.PartnerCustomer)

	code, err := repo.NextReferenceCode(2025)
	require.NoError(t, err)
	assert.Equal(t, "JAFA-2025-0001", code)

	for _, ref := range []string{"JAFA-2025-0007", "JAFA-2025-0012", "JAFA-2024-0099"} {
		s := newShipment(customer.ID)
		s.ReferenceCode = ref
		require.NoError(t, repo.Create(s, 2025))
	}

	code, err = repo.NextReferenceCode(2025)
	require.NoError(t, err)
	assert.Equal(t, "JAFA-2025-0013", code)

	code, err = repo.NextReferenceCode(2024)
	require.NoError(t, err)
	assert.Equal(t, "JAFA-2024-0100", code)

	code, err = repo.NextReferenceCode(2026)
	require.NoError(t, err)
	assert.Equal(t, "JAFA-2026-0001", code)
}

func TestCreateAllocatesSequentialCodes(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewShipmentRepository(db)
	customer := dbtest.Partner(t, db, "Acme", models.PartnerCustomer)

	var codes []string
	for i := 0; i < 3; i++ {
		s := newShipment(customer.ID)
		require.NoError(t, repo.Create(s, 2025))
		codes = append(codes, s.ReferenceCode)
	}
	assert.Equal(t, []string{"JAFA-2025-0001", "JAFA-2025-0002", "JAFA-2025-0003"}, codes)

	// an explicit code is kept as given
	s := newShipment(customer.ID)
	s.ReferenceCode = "JAFA-2025-0100"
	require.NoError(t, repo.Create(s, 2025))
	assert.Equal(t, "JAFA-2025-0100", s.ReferenceCode)
}

func TestCreateDuplicateReference(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewShipmentRepository(db)
	customer := dbtest.Partner(t, db, "Acme", models.PartnerCustomer)

	first := newShipment(customer.ID)
	require.NoError(t, repo.Create(first, 2025))

	clash := newShipment(customer.ID)
	clash.ReferenceCode = first.ReferenceCode
	assert.ErrorIs(t, repo.Create(clash, 2025), ErrDuplicateReference)

	var count int64
	require.NoError(t, db.Model(&models.Shipment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateConcurrentNeverDuplicates(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewShipmentRepository(db)
	customer := dbtest.Partner(t, db, "Acme", models.PartnerCustomer)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(newShipment(customer.ID), 2025)
		}(i)
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateReference)
	}

	var codes []string
	require.NoError(t, db.Model(&models.Shipment{}).Pluck("reference_code", &codes).Error)
	assert.Len(t, codes, created)
	seen := map[string]bool{}
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
}

func TestShipmentListScopes(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewShipmentRepository(db)
	acme := dbtest.Partner(t, db, "Acme", models.PartnerCustomer)
	beta := dbtest.Partner(t, db, "Beta", models.PartnerCustomerCarrier)

	statuses := []models.ShipmentStatus{models.StatusNew, models.StatusPlanned, models.StatusClosed, models.StatusNotSold}
	for i, st := range statuses {
		s := newShipment(acme.ID)
		if i%2 == 1 {
			s.CustomerID = beta.ID
		}
		s.Status = st
		require.NoError(t, repo.Create(s, 2025))
	}

	active, err := repo.List(ShipmentFilter{Scope: ScopeActive})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	archive, err := repo.List(ShipmentFilter{Scope: ScopeArchive})
	require.NoError(t, err)
	assert.Len(t, archive, 2)

	byCustomer, err := repo.List(ShipmentFilter{CustomerID: beta.ID})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)
	for _, s := range byCustomer {
		require.NotNil(t, s.Customer)
		assert.Equal(t, "Beta", s.Customer.Name)
	}

	byRef, err := repo.List(ShipmentFilter{Q: "jafa-2025-0003"})
	require.NoError(t, err)
	require.Len(t, byRef, 1)
	assert.Equal(t, models.StatusClosed, byRef[0].Status)

	open, err := repo.ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, models.StatusNew, open[0].Status)
}

func TestShipmentDeleteCascadesDocuments(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewShipmentRepository(db)
	customer := dbtest.Partner(t, db, "Acme", models.PartnerCustomer)

	s := newShipment(customer.ID)
	require.NoError(t, repo.Create(s, 2025))
	docs := NewDocumentRepository(db)
	require.NoError(t, docs.Create(&models.Document{ShipmentID: s.ID, Name: "CMR", StoredRef: "dokumenty/a.pdf"}))
	require.NoError(t, docs.Create(&models.Document{ShipmentID: s.ID, Name: "Invoice", StoredRef: "dokumenty/b.pdf"}))

	deleted, removed, err := repo.Delete(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ReferenceCode, deleted.ReferenceCode)
	assert.Len(t, removed, 2)

	left, err := docs.ListByShipment(s.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = repo.GetByID(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = repo.Delete(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
