package services

import (
	"encoding/json"
	"jafa-app/models"
	"jafa-app/repositories"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	topPartnersLimit    = 5
	recentRealizedLimit = 10
	upcomingHolidays    = 3
)

// CurrencyMargins always carries both buckets, zero when nothing counted.
type CurrencyMargins struct {
	CZK decimal.Decimal `json:"CZK"`
	EUR decimal.Decimal `json:"EUR"`
}

func (m CurrencyMargins) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[models.Currency]string{
		models.CZK: models.MoneyString(m.CZK),
		models.EUR: models.MoneyString(m.EUR),
	})
}

type MarginWindows struct {
	Today CurrencyMargins `json:"today"`
	Week  CurrencyMargins `json:"week"`
	Month CurrencyMargins `json:"month"`
}

type PartnerCount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type RecentShipment struct {
	ID            uint                  `json:"id"`
	ReferenceCode string                `json:"reference_code"`
	Customer      string                `json:"customer"`
	Carrier       string                `json:"carrier"`
	Status        models.ShipmentStatus `json:"status"`
	StatusLabel   string                `json:"status_label"`
	CreatedAt     time.Time             `json:"created_at"`
	Margin        decimal.Decimal       `json:"margin"`
	Currency      models.Currency       `json:"currency"`
}

func (r RecentShipment) MarshalJSON() ([]byte, error) {
	type plain RecentShipment
	return json.Marshal(struct {
		plain
		Margin string `json:"margin"`
	}{plain(r), models.MoneyString(r.Margin)})
}

type DashboardSummary struct {
	Margins          MarginWindows                 `json:"margins"`
	StatusCounts     map[models.ShipmentStatus]int `json:"status_counts"`
	TopCustomers     []PartnerCount                `json:"top_customers"`
	TopCarriers      []PartnerCount                `json:"top_carriers"`
	RecentRealized   []RecentShipment              `json:"recent_realized"`
	UpcomingHolidays []models.Holiday              `json:"upcoming_holidays"`
}

// BuildDashboard aggregates the given shipments as seen at now. Windows
// start at local midnight, on Monday and on the first of the month in now's
// location. Only realized shipments with matching currencies add margin.
func BuildDashboard(shipments []models.Shipment, holidays []models.Holiday, now time.Time) DashboardSummary {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	summary := DashboardSummary{
		Margins: MarginWindows{
			Today: zeroMargins(),
			Week:  zeroMargins(),
			Month: zeroMargins(),
		},
		StatusCounts:     make(map[models.ShipmentStatus]int, len(models.Statuses)),
		TopCustomers:     []PartnerCount{},
		TopCarriers:      []PartnerCount{},
		RecentRealized:   []RecentShipment{},
		UpcomingHolidays: []models.Holiday{},
	}
	for _, st := range models.Statuses {
		summary.StatusCounts[st] = 0
	}

	customers := map[uint]*PartnerCount{}
	carriers := map[uint]*PartnerCount{}
	var realized []models.Shipment

	for _, s := range shipments {
		summary.StatusCounts[s.Status]++
		countPartner(customers, s.CustomerID, s.Customer)

		if !s.Status.IsRealized() {
			continue
		}
		realized = append(realized, s)
		if s.CarrierID != nil {
			countPartner(carriers, *s.CarrierID, s.Carrier)
		}

		if !s.CurrenciesMatch() {
			continue
		}
		created := s.CreatedAt.In(now.Location())
		margin := s.Margin()
		if !created.Before(today) && created.Before(tomorrow) {
			summary.Margins.Today.add(s.CustomerCurrency, margin)
		}
		if !created.Before(weekStart) && created.Before(tomorrow) {
			summary.Margins.Week.add(s.CustomerCurrency, margin)
		}
		if !created.Before(monthStart) && created.Before(tomorrow) {
			summary.Margins.Month.add(s.CustomerCurrency, margin)
		}
	}

	summary.TopCustomers = topPartners(customers)
	summary.TopCarriers = topPartners(carriers)

	sort.SliceStable(realized, func(i, j int) bool {
		if realized[i].CreatedAt.Equal(realized[j].CreatedAt) {
			return realized[i].ID > realized[j].ID
		}
		return realized[i].CreatedAt.After(realized[j].CreatedAt)
	})
	for i, s := range realized {
		if i == recentRealizedLimit {
			break
		}
		summary.RecentRealized = append(summary.RecentRealized, recentShipment(s))
	}

	summary.UpcomingHolidays = nextHolidays(holidays, today, upcomingHolidays)
	return summary
}

func zeroMargins() CurrencyMargins {
	return CurrencyMargins{CZK: decimal.Zero, EUR: decimal.Zero}
}

func (m *CurrencyMargins) add(c models.Currency, v decimal.Decimal) {
	switch c {
	case models.CZK:
		m.CZK = m.CZK.Add(v)
	case models.EUR:
		m.EUR = m.EUR.Add(v)
	}
}

func countPartner(counts map[uint]*PartnerCount, id uint, p *models.Partner) {
	pc, ok := counts[id]
	if !ok {
		pc = &PartnerCount{ID: id}
		if p != nil {
			pc.Name = p.Name
		}
		counts[id] = pc
	}
	pc.Count++
}

// topPartners ranks by count, then name, then ID, so equal counts have a
// stable order.
func topPartners(counts map[uint]*PartnerCount) []PartnerCount {
	out := make([]PartnerCount, 0, len(counts))
	for _, pc := range counts {
		out = append(out, *pc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > topPartnersLimit {
		out = out[:topPartnersLimit]
	}
	return out
}

func recentShipment(s models.Shipment) RecentShipment {
	r := RecentShipment{
		ID:            s.ID,
		ReferenceCode: s.ReferenceCode,
		Status:        s.Status,
		StatusLabel:   s.Status.Label(),
		CreatedAt:     s.CreatedAt,
		Margin:        s.Margin(),
		Currency:      s.CustomerCurrency,
	}
	if s.Customer != nil {
		r.Customer = s.Customer.Name
	}
	if s.Carrier != nil {
		r.Carrier = s.Carrier.Name
	}
	return r
}

// nextHolidays compares calendar days, ignoring the zone a date was
// stored in.
func nextHolidays(holidays []models.Holiday, today time.Time, n int) []models.Holiday {
	y, m, d := today.Date()
	todayKey := y*10000 + int(m)*100 + d

	var out []models.Holiday
	for _, h := range holidays {
		hy, hm, hd := h.Day().Date()
		if hy*10000+int(hm)*100+hd >= todayKey {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Day(), out[j].Day()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if out[i].CountryCode != out[j].CountryCode {
			return out[i].CountryCode < out[j].CountryCode
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	if out == nil {
		out = []models.Holiday{}
	}
	return out
}

// DashboardService loads what BuildDashboard needs.
type DashboardService struct {
	Shipments *repositories.ShipmentRepository
	Holidays  *repositories.HolidayRepository
	Now       func() time.Time
}

func NewDashboardService(shipments *repositories.ShipmentRepository, holidays *repositories.HolidayRepository, now func() time.Time) *DashboardService {
	return &DashboardService{Shipments: shipments, Holidays: holidays, Now: now}
}

func (s *DashboardService) Summary() (DashboardSummary, error) {
	now := s.Now()

	shipments, err := s.Shipments.All()
	if err != nil {
		return DashboardSummary{}, err
	}
	holidays, err := s.Holidays.Upcoming(now, upcomingHolidays)
	if err != nil {
		return DashboardSummary{}, err
	}
	return BuildDashboard(shipments, holidays, now), nil
}
