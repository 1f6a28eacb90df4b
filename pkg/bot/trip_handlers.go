package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"ridepilot/pkg/logger"
	"ridepilot/pkg/models"
	"ridepilot/pkg/view"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) handleTrips(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	driver, err := b.Stg.Driver().GetByTelegramID(ctx, c.Chat().ID)
	if err != nil {
		b.Log.Error("telegram trips lookup failed", logger.Error(err))
		return c.Send(messages["error"])
	}
	if driver == nil {
		return c.Send(messages["not_linked"])
	}

	trips, err := b.Trips.ListActive(ctx, driver.ID)
	if err != nil {
		b.Log.Error("telegram trips listing failed", logger.String("driver", driver.ID), logger.Error(err))
		return c.Send(messages["error"])
	}
	return c.Send(tripsMessage(driver, trips, time.Now()), tele.ModeHTML)
}

// tripsMessage lists trips grouped by day, one line per trip.
func tripsMessage(driver *models.Driver, trips []*models.Trip, now time.Time) string {
	if len(trips) == 0 {
		return messages["no_trips"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, messages["trips_title"], html.EscapeString(driver.Name))
	for _, g := range view.GroupByDate(trips) {
		fmt.Fprintf(&b, "\n<b>%s</b> · %s\n", view.DateLabel(g.Date, now), view.Plural(len(g.Trips), "trip"))
		for _, t := range g.Trips {
			fmt.Fprintf(&b, "%s %s · %s → %s · %s\n",
				view.FormatTime(t.Time),
				html.EscapeString(t.ClientName),
				html.EscapeString(t.PickupLocation),
				html.EscapeString(t.DropoffLocation),
				view.FormatPrice(t.DisplayPrice()),
			)
		}
	}
	stats := view.ComputeStats(trips, now)
	fmt.Fprintf(&b, "\nToday: %s · Total: %s", view.Plural(stats.TodayCount, "trip"), view.FormatEarnings(stats.TotalEarnings))
	return b.String()
}
