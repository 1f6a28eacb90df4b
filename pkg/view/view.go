// Package view derives everything the driver dashboard shows from a list of
// trips: urgency, date labels, grouping, totals and the action links on each card.
// Nothing here performs I/O; callers pass the clock and the viewer's location.
package view

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strings"
	"time"

	"ridepilot/pkg/models"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
	longDateLayout = "Monday, Jan 2"
)

type UrgencyStatus string

const (
	UrgencyOverdue   UrgencyStatus = "overdue"
	UrgencyUrgent    UrgencyStatus = "urgent"
	UrgencyToday     UrgencyStatus = "today"
	UrgencyScheduled UrgencyStatus = "scheduled"
)

type Urgency struct {
	Status  UrgencyStatus
	Color   string
	Message string
}

var (
	overdue      = Urgency{UrgencyOverdue, "red", "Overdue"}
	startingSoon = Urgency{UrgencyUrgent, "orange", "Starting Soon"}
	today        = Urgency{UrgencyToday, "blue", "Today"}
	scheduled    = Urgency{UrgencyScheduled, "gray", "Scheduled"}
)

// TripTime parses the trip's date and time in loc. Times may omit seconds.
func TripTime(t *models.Trip, loc *time.Location) (time.Time, error) {
	clock := t.Time
	if len(clock) == 5 {
		clock += ":00"
	}
	if len(clock) > 8 {
		clock = clock[:8]
	}
	return time.ParseInLocation(dateTimeLayout, t.Date+"T"+clock, loc)
}

// HoursUntil is the signed number of hours from now to the trip's start.
func HoursUntil(t *models.Trip, now time.Time) (float64, error) {
	at, err := TripTime(t, now.Location())
	if err != nil {
		return 0, err
	}
	return at.Sub(now).Hours(), nil
}

// UrgencyOf buckets a trip by hours until start. Each range includes its
// upper edge: exactly 2h is Starting Soon, exactly 24h is Today.
// A trip whose date or time cannot be parsed is Scheduled.
func UrgencyOf(t *models.Trip, now time.Time) Urgency {
	hours, err := HoursUntil(t, now)
	if err != nil {
		return scheduled
	}
	switch {
	case hours <= 0:
		return overdue
	case hours <= 2:
		return startingSoon
	case hours <= 24:
		return today
	default:
		return scheduled
	}
}

// DateLabel renders a YYYY-MM-DD date relative to the viewer's calendar day.
func DateLabel(date string, now time.Time) string {
	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return date
	}
	y, m, d := now.Date()
	todayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch {
	case day.Equal(todayStart):
		return "Today"
	case day.Equal(todayStart.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return day.Format(longDateLayout)
	}
}

// FormatTime keeps HH:MM.
func FormatTime(clock string) string {
	if len(clock) < 5 {
		return clock
	}
	return clock[:5]
}

func FormatPrice(amount float64) string {
	return fmt.Sprintf("€%.2f", amount)
}

func FormatEarnings(amount float64) string {
	return fmt.Sprintf("€%.0f", math.Round(amount))
}

func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

type Group struct {
	Date  string
	Trips []*models.Trip
}

// GroupByDate buckets trips by their exact date string, groups ascending.
// Trips keep their relative order inside a group.
func GroupByDate(trips []*models.Trip) []Group {
	index := map[string]int{}
	var groups []Group
	for _, t := range trips {
		i, ok := index[t.Date]
		if !ok {
			i = len(groups)
			index[t.Date] = i
			groups = append(groups, Group{Date: t.Date})
		}
		groups[i].Trips = append(groups[i].Trips, t)
	}
	slices.SortFunc(groups, func(a, b Group) int {
		return strings.Compare(a.Date, b.Date)
	})
	return groups
}

type Stats struct {
	TodayCount    int
	TotalEarnings float64
}

func ComputeStats(trips []*models.Trip, now time.Time) Stats {
	todayKey := now.Format(dateLayout)
	var s Stats
	for _, t := range trips {
		if t.Date == todayKey {
			s.TodayCount++
		}
		s.TotalEarnings += t.DisplayPrice()
	}
	return s
}

// CallLink is the tel: URI for the client's phone.
func CallLink(phone string) string {
	return "tel:" + phone
}

// WhatsAppLink opens a chat with the client prefilled with a pickup greeting.
// The trip time goes into the text as stored.
func WhatsAppLink(t *models.Trip, driverName string) string {
	phone := ""
	if t.ClientPhone != nil {
		phone = digitsOnly(*t.ClientPhone)
	}
	return "https://wa.me/" + phone + "?text=Hello%20" + encodeComponent(t.ClientName) +
		"%2C%20this%20is%20your%20driver%20" + encodeComponent(driverName) +
		".%20I%20will%20be%20picking%20you%20up%20at%20" + t.Time +
		"%20from%20" + encodeComponent(t.PickupLocation) + "."
}

// NavigateLink opens turn-by-turn directions to a free-text location.
func NavigateLink(location string) string {
	return "https://maps.google.com/maps?daddr=" + encodeComponent(location)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var componentUnescaper = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// encodeComponent escapes like a URI component: spaces become %20 and
// !'()* stay literal.
func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
