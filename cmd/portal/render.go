package main

import (
	"fmt"
	"io"
	"strings"

	"ridepilot/pkg/portal"
	"ridepilot/pkg/view"
)

// render writes the dashboard as plain text. Cards are numbered from 1 in
// display order; the numbers are what the toggle command takes.
func render(w io.Writer, snap portal.DashboardSnapshot) []string {
	page := snap.Page
	var b strings.Builder

	fmt.Fprintf(&b, "\nWelcome, %s\n", page.DriverName)
	fmt.Fprintf(&b, "Driver ID: %s\n", page.DriverID)

	if snap.State == portal.DashboardLoading {
		b.WriteString("\nLoading your trips...\n")
		io.WriteString(w, b.String())
		return nil
	}

	fmt.Fprintf(&b, "Today's trips: %d   Total earnings: %s\n", page.TodayTrips, page.TotalEarnings)
	if page.Error != "" {
		fmt.Fprintf(&b, "\n! %s\n", page.Error)
	}

	var order []string
	if page.Empty {
		b.WriteString("\nNo trips assigned\nCheck back later for new assignments\n")
	}
	for _, section := range page.Sections {
		fmt.Fprintf(&b, "\n== %s (%s) ==\n", section.Label, section.TripCount)
		for _, card := range section.Cards {
			order = append(order, card.Trip.ID)
			writeCard(&b, len(order), card)
		}
	}

	if page.LastUpdated != "" {
		fmt.Fprintf(&b, "\nLast updated: %s\n", page.LastUpdated)
	}
	b.WriteString("[r] refresh  [n] open/close trip n  [l] logout  [q] quit\n")

	io.WriteString(w, b.String())
	return order
}

func writeCard(b *strings.Builder, n int, card view.Card) {
	t := card.Trip
	booking := ""
	if t.BookingID != "" {
		booking = "  #" + t.BookingID
	}
	fmt.Fprintf(b, "[%d] %s  %-13s  %s  %s%s\n", n, card.Time, card.Urgency.Message, t.ClientName, card.Price, booking)
	fmt.Fprintf(b, "    %s -> %s\n", t.PickupLocation, t.DropoffLocation)
	if !card.Expanded {
		return
	}

	fmt.Fprintf(b, "    %s\n", t.CompanyName)
	fmt.Fprintf(b, "    Phone: %s\n", card.Phone)
	fmt.Fprintf(b, "    %s  |  %s\n", card.Passenger, t.CarTypeName)
	if card.FullPrice != "" {
		fmt.Fprintf(b, "    Total: %s\n", card.FullPrice)
	}
	if t.Description != "" {
		fmt.Fprintf(b, "    Special Instructions: %s\n", t.Description)
	}
	fmt.Fprintf(b, "    Call:     %s\n", card.CallURL)
	fmt.Fprintf(b, "    WhatsApp: %s\n", card.WhatsAppURL)
	fmt.Fprintf(b, "    Pickup:   %s\n", card.PickupURL)
	fmt.Fprintf(b, "    Dropoff:  %s\n", card.DropoffURL)
}
