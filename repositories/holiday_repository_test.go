package repositories

import (
	"jafa-app/database/dbtest"
	"jafa-app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func day(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestHolidayUniqueness(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewHolidayRepository(db)

	require.NoError(t, repo.Create(&models.Holiday{Date: day(2025, 12, 24), Name: "Štědrý den", CountryCode: "CZ"}))
	err := repo.Create(&models.Holiday{Date: day(2025, 12, 24), Name: "Štědrý den", CountryCode: "CZ"})
	assert.ErrorIs(t, err, ErrDuplicateHoliday)

	// same day and name in another country is a different holiday
	require.NoError(t, repo.Create(&models.Holiday{Date: day(2025, 12, 24), Name: "Štědrý den", CountryCode: "SK"}))
}

func TestHolidayUpcomingAndOrdering(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewHolidayRepository(db)

	for _, h := range []models.Holiday{
		{Date: day(2025, 5, 1), Name: "Svátek práce", CountryCode: "CZ"},
		{Date: day(2025, 5, 8), Name: "Den vítězství", CountryCode: "SK"},
		{Date: day(2025, 5, 8), Name: "Den vítězství", CountryCode: "CZ"},
		{Date: day(2025, 7, 5), Name: "Cyril a Metoděj", CountryCode: "CZ"},
		{Date: day(2025, 1, 1), Name: "Nový rok", CountryCode: "CZ"},
	} {
		h := h
		require.NoError(t, repo.Create(&h))
	}

	prague, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)

	upcoming, err := repo.Upcoming(time.Date(2025, 5, 1, 23, 30, 0, 0, prague), 3)
	require.NoError(t, err)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "Svátek práce", upcoming[0].Name)
	assert.Equal(t, "CZ", upcoming[1].CountryCode)
	assert.Equal(t, "SK", upcoming[2].CountryCode)

	from := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	cz, err := repo.List(HolidayFilter{CountryCode: "cz", From: &from})
	require.NoError(t, err)
	require.Len(t, cz, 2)
	assert.Equal(t, "Den vítězství", cz[0].Name)
	assert.Equal(t, "Cyril a Metoděj", cz[1].Name)
}
