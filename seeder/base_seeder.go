package seed

import (
	"errors"
	"jafa-app/models"
	"jafa-app/repositories"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedAdmin creates the first account from the environment, but only while
// the users table is empty.
func SeedAdmin(db *gorm.DB, log *zap.Logger, username, email, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Admin account can only be initialized if no users exist")
		return nil
	}
	if username == "" || password == "" {
		log.Warn("ADMIN_USERNAME and ADMIN_PASSWORD must be set to create the first account")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	log.Info("Creating account", zap.String("username", username))
	return repositories.NewUserRepository(db).Create(&models.User{Username: username, Email: email, Password: string(hash), IsActive: true})
}

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

var fixedHolidays = map[string][]fixedHoliday{
	"CZ": {
		{time.January, 1, "Den obnovy samostatného českého státu"},
		{time.May, 1, "Svátek práce"},
		{time.May, 8, "Den vítězství"},
		{time.July, 5, "Den slovanských věrozvěstů Cyrila a Metoděje"},
		{time.July, 6, "Den upálení mistra Jana Husa"},
		{time.September, 28, "Den české státnosti"},
		{time.October, 28, "Den vzniku samostatného československého státu"},
		{time.November, 17, "Den boje za svobodu a demokracii"},
		{time.December, 24, "Štědrý den"},
		{time.December, 25, "1. svátek vánoční"},
		{time.December, 26, "2. svátek vánoční"},
	},
	"SK": {
		{time.January, 1, "Deň vzniku Slovenskej republiky"},
		{time.January, 6, "Zjavenie Pána"},
		{time.May, 1, "Sviatok práce"},
		{time.May, 8, "Deň víťazstva nad fašizmom"},
		{time.July, 5, "Sviatok svätého Cyrila a Metoda"},
		{time.August, 29, "Výročie SNP"},
		{time.September, 15, "Sedembolestná Panna Mária"},
		{time.November, 1, "Sviatok všetkých svätých"},
		{time.November, 17, "Deň boja za slobodu a demokraciu"},
		{time.December, 24, "Štedrý deň"},
		{time.December, 25, "Prvý sviatok vianočný"},
		{time.December, 26, "Druhý sviatok vianočný"},
	},
}

var easterHolidays = map[string][]struct {
	offset int
	name   string
}{
	"CZ": {{-2, "Velký pátek"}, {1, "Velikonoční pondělí"}},
	"SK": {{-2, "Veľký piatok"}, {1, "Veľkonočný pondelok"}},
}

// HolidaysForYear returns the Czech and Slovak public holidays of a year,
// including the Easter-dependent ones.
func HolidaysForYear(year int) []models.Holiday {
	easter := EasterSunday(year)
	var holidays []models.Holiday
	for _, country := range []string{"CZ", "SK"} {
		for _, h := range fixedHolidays[country] {
			holidays = append(holidays, models.Holiday{
				Date:        datatypes.Date(time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC)),
				Name:        h.name,
				CountryCode: country,
			})
		}
		for _, h := range easterHolidays[country] {
			holidays = append(holidays, models.Holiday{
				Date:        datatypes.Date(easter.AddDate(0, 0, h.offset)),
				Name:        h.name,
				CountryCode: country,
			})
		}
	}
	return holidays
}

// EasterSunday uses the anonymous Gregorian algorithm.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// SeedHolidays inserts missing holidays for the given years; existing
// (date, country, name) rows are left alone.
func SeedHolidays(db *gorm.DB, years ...int) error {
	for _, year := range years {
		for _, h := range HolidaysForYear(year) {
			var existing models.Holiday
			err := db.Where("date = ? AND country_code = ? AND name = ?", h.Date, h.CountryCode, h.Name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := db.Create(&h).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
