package repositories

import (
	"jafa-app/models"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HolidayRepository struct {
	DB *gorm.DB
}

func NewHolidayRepository(DB *gorm.DB) *HolidayRepository {
	return &HolidayRepository{DB: DB}
}

type HolidayFilter struct {
	CountryCode string
	From        *time.Time
	To          *time.Time
}

func (r *HolidayRepository) List(f HolidayFilter) ([]models.Holiday, error) {
	query := r.DB.Model(&models.Holiday{})
	if f.CountryCode != "" {
		query = query.Where("country_code = ?", strings.ToUpper(f.CountryCode))
	}
	if f.From != nil {
		query = query.Where("date >= ?", dayOf(*f.From))
	}
	if f.To != nil {
		query = query.Where("date <= ?", dayOf(*f.To))
	}

	var holidays []models.Holiday
	err := query.Order("date ASC").Order("country_code ASC").Order("name ASC").Find(&holidays).Error
	return holidays, err
}

// Upcoming returns the next n holidays on or after the given day.
func (r *HolidayRepository) Upcoming(today time.Time, n int) ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := r.DB.Where("date >= ?", dayOf(today)).
		Order("date ASC").Order("country_code ASC").Order("name ASC").
		Limit(n).Find(&holidays).Error
	return holidays, err
}

func (r *HolidayRepository) Create(h *models.Holiday) error {
	err := r.DB.Create(h).Error
	if isUniqueViolation(err) {
		return ErrDuplicateHoliday
	}
	return err
}

func (r *HolidayRepository) Delete(id uint) error {
	res := r.DB.Delete(&models.Holiday{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// dayOf keeps the calendar day of t in its own zone and pins it to UTC
// midnight, which is how holiday dates are stored.
func dayOf(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}
