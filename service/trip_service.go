package service

import (
	"context"
	"fmt"
	"strings"

	"ridepilot/pkg/logger"
	"ridepilot/pkg/models"
	"ridepilot/storage"
)

type TripService interface {
	ListActive(ctx context.Context, driverID string) ([]*models.Trip, error)
}

type tripService struct {
	stg storage.ITripStorage
	log logger.ILogger
}

func NewTripService(stg storage.IStorage, log logger.ILogger) TripService {
	return &tripService{
		stg: stg.Trip(),
		log: log,
	}
}

// ListActive returns the driver's active trips by date then time. The result is never nil.
func (s *tripService) ListActive(ctx context.Context, driverID string) ([]*models.Trip, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return nil, fmt.Errorf("%w: driver uuid is required", ErrInvalidInput)
	}

	trips, err := s.stg.GetActiveByDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("%w: list trips: %v", ErrUpstream, err)
	}

	out := make([]*models.Trip, 0, len(trips))
	for _, t := range trips {
		if t == nil || t.Status != models.TripStatusActive {
			continue
		}
		normalizeTrip(t)
		out = append(out, t)
	}
	sortTrips(out)

	s.log.Debug("listed driver trips", logger.String("driver", driverID), logger.Int("count", len(out)))
	return out, nil
}

func normalizeTrip(t *models.Trip) {
	if t.CompanyName == "" {
		t.CompanyName = models.UnknownCompanyName
	}
	if t.CarTypeName == "" {
		t.CarTypeName = models.StandardCarTypeName
	}
}
