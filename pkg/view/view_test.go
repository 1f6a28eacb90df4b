package view

import (
	"testing"
	"time"

	"ridepilot/pkg/models"
)

var lisbon = time.FixedZone("WEST", 60*60)

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, lisbon)
	if err != nil {
		panic(err)
	}
	return t
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestUrgencyOfBoundaries(t *testing.T) {
	now := at("2024-06-01 10:00:00")
	tests := []struct {
		name string
		date string
		time string
		want string
	}{
		{"in the past", "2024-06-01", "09:00:00", "Overdue"},
		{"exactly now", "2024-06-01", "10:00:00", "Overdue"},
		{"one second out", "2024-06-01", "10:00:01", "Starting Soon"},
		{"exactly two hours", "2024-06-01", "12:00:00", "Starting Soon"},
		{"just over two hours", "2024-06-01", "12:00:01", "Today"},
		{"exactly 24 hours", "2024-06-02", "10:00:00", "Today"},
		{"just over 24 hours", "2024-06-02", "10:00:01", "Scheduled"},
		{"next week", "2024-06-08", "10:00:00", "Scheduled"},
		{"time without seconds", "2024-06-01", "11:30", "Starting Soon"},
		{"unparseable", "someday", "10:00:00", "Scheduled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := &models.Trip{Date: tt.date, Time: tt.time}
			if got := UrgencyOf(trip, now).Message; got != tt.want {
				t.Errorf("UrgencyOf(%s %s) = %q, want %q", tt.date, tt.time, got, tt.want)
			}
		})
	}
}

func TestUrgencyColors(t *testing.T) {
	now := at("2024-06-01 10:00:00")
	cases := map[string]string{
		"08:00:00": "red",
		"11:00:00": "orange",
		"20:00:00": "blue",
	}
	for clock, color := range cases {
		if got := UrgencyOf(&models.Trip{Date: "2024-06-01", Time: clock}, now).Color; got != color {
			t.Errorf("color at %s = %q, want %q", clock, got, color)
		}
	}
}

func TestDateLabel(t *testing.T) {
	now := at("2024-06-01 23:30:00")
	tests := []struct {
		date string
		want string
	}{
		{"2024-06-01", "Today"},
		{"2024-06-02", "Tomorrow"},
		{"2024-06-03", "Monday, Jun 3"},
		{"2024-05-31", "Friday, May 31"},
		{"not-a-date", "not-a-date"},
	}
	for _, tt := range tests {
		if got := DateLabel(tt.date, now); got != tt.want {
			t.Errorf("DateLabel(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestDateLabelUsesViewerCalendarDay(t *testing.T) {
	// 00:30 local is still the previous day in UTC.
	now := at("2024-06-02 00:30:00")
	if got := DateLabel("2024-06-02", now); got != "Today" {
		t.Errorf("DateLabel = %q, want Today", got)
	}
}

func TestDisplayPrice(t *testing.T) {
	tests := []struct {
		name string
		trip models.Trip
		want float64
	}{
		{"no driver fee", models.Trip{Price: 50}, 50},
		{"driver fee", models.Trip{Price: 50, DriverFee: floatPtr(35)}, 35},
		{"zero driver fee is still a fee", models.Trip{Price: 50, DriverFee: floatPtr(0)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trip.DisplayPrice(); got != tt.want {
				t.Errorf("DisplayPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupByDate(t *testing.T) {
	trips := []*models.Trip{
		{ID: "a", Date: "2024-06-01", Time: "09:00:00"},
		{ID: "b", Date: "2024-05-31", Time: "18:00:00"},
		{ID: "c", Date: "2024-06-01", Time: "14:00:00"},
	}

	groups := GroupByDate(trips)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if groups[0].Date != "2024-05-31" || groups[1].Date != "2024-06-01" {
		t.Errorf("group order = %s, %s", groups[0].Date, groups[1].Date)
	}
	if len(groups[1].Trips) != 2 || groups[1].Trips[0].ID != "a" || groups[1].Trips[1].ID != "c" {
		t.Errorf("June group = %+v", groups[1].Trips)
	}
}

func TestComputeStats(t *testing.T) {
	now := at("2024-06-01 08:00:00")
	trips := []*models.Trip{
		{Date: "2024-06-01", Price: 50},
		{Date: "2024-06-01", Price: 80, DriverFee: floatPtr(35)},
		{Date: "2024-06-02", Price: 20},
	}

	got := ComputeStats(trips, now)
	if got.TodayCount != 2 {
		t.Errorf("TodayCount = %d, want 2", got.TodayCount)
	}
	if got.TotalEarnings != 105 {
		t.Errorf("TotalEarnings = %v, want 105", got.TotalEarnings)
	}
}

func TestLinks(t *testing.T) {
	trip := &models.Trip{
		ClientName:     "Maria José",
		ClientPhone:    strPtr("+351 912-345-678"),
		Time:           "14:30:00",
		PickupLocation: "Rua Augusta 1, Lisboa",
	}

	if got, want := CallLink(*trip.ClientPhone), "tel:+351 912-345-678"; got != want {
		t.Errorf("CallLink = %q, want %q", got, want)
	}

	wa := WhatsAppLink(trip, "Ana")
	wantWA := "https://wa.me/351912345678?text=Hello%20Maria%20Jos%C3%A9%2C%20this%20is%20your%20driver%20Ana.%20I%20will%20be%20picking%20you%20up%20at%2014:30:00%20from%20Rua%20Augusta%201%2C%20Lisboa."
	if wa != wantWA {
		t.Errorf("WhatsAppLink =\n %s\nwant\n %s", wa, wantWA)
	}

	if got, want := NavigateLink("Terminal 1 (Arrivals)"), "https://maps.google.com/maps?daddr=Terminal%201%20(Arrivals)"; got != want {
		t.Errorf("NavigateLink = %q, want %q", got, want)
	}
	if got, want := NavigateLink("Aeroporto de Lisboa"), "https://maps.google.com/maps?daddr=Aeroporto%20de%20Lisboa"; got != want {
		t.Errorf("NavigateLink = %q, want %q", got, want)
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatTime("09:05:00"); got != "09:05" {
		t.Errorf("FormatTime = %q", got)
	}
	if got := FormatPrice(35); got != "€35.00" {
		t.Errorf("FormatPrice = %q", got)
	}
	for amount, want := range map[float64]string{104.6: "€105", 12.5: "€13", 40.5: "€41", 0.5: "€1", 12.49: "€12"} {
		if got := FormatEarnings(amount); got != want {
			t.Errorf("FormatEarnings(%v) = %q, want %q", amount, got, want)
		}
	}
	if got := Plural(1, "trip"); got != "1 trip" {
		t.Errorf("Plural(1) = %q", got)
	}
	if got := Plural(3, "passenger"); got != "3 passengers" {
		t.Errorf("Plural(3) = %q", got)
	}
}

func TestBuild(t *testing.T) {
	now := at("2024-05-31 12:00:00")
	driver := models.DriverIdentity{ID: "D100", Name: "Ana", UUID: "uuid-100"}
	trips := []*models.Trip{
		{ID: "may", Date: "2024-05-31", Time: "13:00:00", Price: 50, Passengers: 1, PickupLocation: "A", DropoffLocation: "B"},
		{ID: "jun1", Date: "2024-06-01", Time: "09:00:00", Price: 80, DriverFee: floatPtr(35), Passengers: 3, ClientPhone: strPtr("123")},
		{ID: "jun2", Date: "2024-06-01", Time: "10:00:00", Price: 20, Passengers: 2},
	}

	page := Build(driver, trips, map[string]bool{"jun1": true}, now)

	if page.TodayTrips != 1 {
		t.Errorf("TodayTrips = %d, want 1", page.TodayTrips)
	}
	if page.TotalEarnings != "€105" {
		t.Errorf("TotalEarnings = %q, want €105", page.TotalEarnings)
	}
	if len(page.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(page.Sections))
	}
	if page.Sections[0].Label != "Today" || page.Sections[1].Label != "Tomorrow" {
		t.Errorf("labels = %q, %q", page.Sections[0].Label, page.Sections[1].Label)
	}
	if page.Sections[1].TripCount != "2 trips" {
		t.Errorf("TripCount = %q", page.Sections[1].TripCount)
	}

	may := page.Sections[0].Cards[0]
	if may.Urgency.Message != "Starting Soon" || may.Expanded || may.Phone != "No phone provided" || may.FullPrice != "" {
		t.Errorf("may card = %+v", may)
	}
	jun1 := page.Sections[1].Cards[0]
	if !jun1.Expanded || jun1.Price != "€35.00" || jun1.FullPrice != "€80.00" || jun1.CallURL != "tel:123" {
		t.Errorf("jun1 card = %+v", jun1)
	}
	if page.Sections[1].Cards[1].Expanded {
		t.Error("jun2 expanded without being toggled")
	}
}

func TestBuildEmpty(t *testing.T) {
	page := Build(models.DriverIdentity{ID: "D1"}, nil, nil, at("2024-05-31 12:00:00"))
	if !page.Empty || page.TotalEarnings != "€0" || len(page.Sections) != 0 {
		t.Errorf("empty page = %+v", page)
	}
}
