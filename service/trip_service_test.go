package service

import (
	"context"
	"errors"
	"testing"

	"ridepilot/pkg/logger"
	"ridepilot/pkg/models"
)

func TestListActive(t *testing.T) {
	stg := newFakeStore()
	stg.trips["uuid-100"] = []*models.Trip{
		{ID: "t3", Date: "2024-06-01", Time: "15:00:00", Status: models.TripStatusActive, Price: 80, CompanyName: "Lisbon Cars", CarTypeName: "Van"},
		{ID: "t2", Date: "2024-06-01", Time: "09:30:00", Status: models.TripStatusActive, Price: 50},
		{ID: "t1", Date: "2024-05-31", Time: "22:00:00", Status: models.TripStatusActive, Price: 40, DriverFee: floatPtr(35)},
		{ID: "t0", Date: "2024-05-30", Time: "08:00:00", Status: models.TripStatusCompleted, Price: 10},
	}
	svc := NewTripService(stg, logger.NewNop())

	trips, err := svc.ListActive(context.Background(), "uuid-100")
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}

	var ids []string
	for _, trip := range trips {
		ids = append(ids, trip.ID)
		if trip.Status != models.TripStatusActive {
			t.Errorf("trip %s has status %q", trip.ID, trip.Status)
		}
	}
	want := []string{"t1", "t2", "t3"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}

	if trips[1].CompanyName != models.UnknownCompanyName {
		t.Errorf("company name = %q, want %q", trips[1].CompanyName, models.UnknownCompanyName)
	}
	if trips[1].CarTypeName != models.StandardCarTypeName {
		t.Errorf("car type = %q, want %q", trips[1].CarTypeName, models.StandardCarTypeName)
	}
	if trips[2].CompanyName != "Lisbon Cars" || trips[2].CarTypeName != "Van" {
		t.Errorf("resolved names overwritten: %q / %q", trips[2].CompanyName, trips[2].CarTypeName)
	}
	if trips[0].DriverFee == nil || *trips[0].DriverFee != 35 {
		t.Errorf("driver fee not passed through: %v", trips[0].DriverFee)
	}
}

func TestListActiveEmptyIsNotNil(t *testing.T) {
	svc := NewTripService(newFakeStore(), logger.NewNop())

	trips, err := svc.ListActive(context.Background(), "uuid-nobody")
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if trips == nil {
		t.Error("ListActive() = nil, want empty slice")
	}
}

func TestListActiveErrors(t *testing.T) {
	svc := NewTripService(newFakeStore(), logger.NewNop())
	if _, err := svc.ListActive(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank id: error = %v, want ErrInvalidInput", err)
	}

	stg := newFakeStore()
	stg.fail = true
	svc = NewTripService(stg, logger.NewNop())
	if _, err := svc.ListActive(context.Background(), "uuid-100"); !errors.Is(err, ErrUpstream) {
		t.Errorf("store down: error = %v, want ErrUpstream", err)
	}
}
