package view

import (
	"time"

	"ridepilot/pkg/models"
)

type Card struct {
	Trip     *models.Trip
	Urgency  Urgency
	Expanded bool

	Time      string
	DateLabel string
	Price     string
	// FullPrice is set only when the driver fee differs from the trip price.
	FullPrice string
	Phone     string
	Passenger string

	CallURL     string
	WhatsAppURL string
	PickupURL   string
	DropoffURL  string
}

type DateSection struct {
	Date      string
	Label     string
	TripCount string
	Cards     []Card
}

type Page struct {
	DriverID   string
	DriverName string

	TodayTrips    int
	TotalEarnings string
	Sections      []DateSection
	Empty         bool
	Error         string
	LastUpdated   string
}

// Build lays out the dashboard for trips as seen at now.
// expanded reports, per trip id, whether the card is open.
func Build(driver models.DriverIdentity, trips []*models.Trip, expanded map[string]bool, now time.Time) Page {
	stats := ComputeStats(trips, now)
	page := Page{
		DriverID:      driver.ID,
		DriverName:    driver.Name,
		TodayTrips:    stats.TodayCount,
		TotalEarnings: FormatEarnings(stats.TotalEarnings),
		Empty:         len(trips) == 0,
	}

	for _, g := range GroupByDate(trips) {
		section := DateSection{
			Date:      g.Date,
			Label:     DateLabel(g.Date, now),
			TripCount: Plural(len(g.Trips), "trip"),
		}
		for _, t := range g.Trips {
			section.Cards = append(section.Cards, buildCard(t, driver.Name, expanded[t.ID], now))
		}
		page.Sections = append(page.Sections, section)
	}
	return page
}

func buildCard(t *models.Trip, driverName string, expanded bool, now time.Time) Card {
	c := Card{
		Trip:        t,
		Urgency:     UrgencyOf(t, now),
		Expanded:    expanded,
		Time:        FormatTime(t.Time),
		DateLabel:   DateLabel(t.Date, now),
		Price:       FormatPrice(t.DisplayPrice()),
		Phone:       "No phone provided",
		Passenger:   Plural(t.Passengers, "passenger"),
		WhatsAppURL: WhatsAppLink(t, driverName),
		PickupURL:   NavigateLink(t.PickupLocation),
		DropoffURL:  NavigateLink(t.DropoffLocation),
	}
	if t.DriverFee != nil && *t.DriverFee != t.Price {
		c.FullPrice = FormatPrice(t.Price)
	}
	phone := ""
	if t.ClientPhone != nil {
		phone = *t.ClientPhone
	}
	if phone != "" {
		c.Phone = phone
	}
	c.CallURL = CallLink(phone)
	return c
}
