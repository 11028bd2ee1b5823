package services

import (
	"jafa-app/models"
	"jafa-app/repositories"
	"jafa-app/validation"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type HolidayService struct {
	Holidays *repositories.HolidayRepository
	Now      func() time.Time
}

func NewHolidayService(holidays *repositories.HolidayRepository, now func() time.Time) *HolidayService {
	return &HolidayService{Holidays: holidays, Now: now}
}

func (s *HolidayService) List(f repositories.HolidayFilter) ([]models.Holiday, error) {
	return s.Holidays.List(f)
}

func (s *HolidayService) Upcoming(n int) ([]models.Holiday, error) {
	if n <= 0 {
		n = upcomingHolidays
	}
	return s.Holidays.Upcoming(s.Now(), n)
}

func (s *HolidayService) Create(in HolidayInput) (*models.Holiday, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CountryCode = strings.ToUpper(strings.TrimSpace(in.CountryCode))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, validation.Field("date", "date", "Enter a valid date in YYYY-MM-DD format.")
	}

	holiday := models.Holiday{
		Date:        datatypes.Date(day),
		Name:        in.Name,
		CountryCode: in.CountryCode,
		Regions:     strings.TrimSpace(in.Regions),
	}
	if err := s.Holidays.Create(&holiday); err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (s *HolidayService) Delete(id uint) error {
	return s.Holidays.Delete(id)
}
