package service

import (
	"cmp"
	"slices"

	"ridepilot/pkg/models"
)

// sortTrips orders by date then time; both are zero-padded so string order is chronological.
func sortTrips(trips []*models.Trip) {
	slices.SortStableFunc(trips, func(a, b *models.Trip) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Time, b.Time)
	})
}
