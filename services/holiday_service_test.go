package services

import (
	"jafa-app/database/dbtest"
	"jafa-app/repositories"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayService(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewHolidayService(repositories.NewHolidayRepository(db), fixedNow)

	h, err := svc.Create(HolidayInput{Date: "2025-05-08", Name: "Den vítězství", CountryCode: "cz"})
	require.NoError(t, err)
	assert.Equal(t, "CZ", h.CountryCode)
	assert.Equal(t, "2025-05-08 - Den vítězství (CZ)", h.String())

	_, err = svc.Create(HolidayInput{Date: "2025-05-08", Name: "Den vítězství", CountryCode: "CZ"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateHoliday)

	_, err = svc.Create(HolidayInput{Date: "8.5.2025", Name: "X", CountryCode: "CZ"})
	assert.Equal(t, []string{"date"}, fieldsOf(t, err))

	_, err = svc.Create(HolidayInput{Date: "2025-05-09", Name: "X", CountryCode: "CZE"})
	assert.Equal(t, []string{"country_code"}, fieldsOf(t, err))

	_, err = svc.Create(HolidayInput{Date: "2025-01-01", Name: "Nový rok", CountryCode: "CZ"})
	require.NoError(t, err)

	upcoming, err := svc.Upcoming(0)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, h.ID, upcoming[0].ID)

	require.NoError(t, svc.Delete(h.ID))
	assert.ErrorIs(t, svc.Delete(h.ID), repositories.ErrNotFound)
}
