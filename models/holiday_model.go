package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type Holiday struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Date        datatypes.Date `json:"date" gorm:"not null;uniqueIndex:idx_holiday_date_country_name,priority:1"`
	Name        string         `json:"name" gorm:"size:150;not null;uniqueIndex:idx_holiday_date_country_name,priority:3"`
	CountryCode string         `json:"country_code" gorm:"size:2;not null;index;uniqueIndex:idx_holiday_date_country_name,priority:2"`
	Regions     string         `json:"regions" gorm:"size:100"`
}

func (h Holiday) Day() time.Time {
	return time.Time(h.Date)
}

func (h Holiday) String() string {
	return fmt.Sprintf("%s - %s (%s)", h.Day().Format("2006-01-02"), h.Name, h.CountryCode)
}
