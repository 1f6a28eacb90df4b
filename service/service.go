package service

import (
	"context"

	"ridepilot/pkg/logger"
	"ridepilot/pkg/models"
	"ridepilot/storage"
)

// LinkNotifier delivers a freshly minted magic link to the driver it belongs to.
type LinkNotifier interface {
	NotifyToken(ctx context.Context, driver *models.Driver, token string) error
}

type IServiceManager interface {
	Driver() DriverService
	Trip() TripService
}

type service struct {
	driverService DriverService
	tripService   TripService
}

// New wires the services; notifier may be nil.
func New(stg storage.IStorage, log logger.ILogger, notifier LinkNotifier) IServiceManager {
	return &service{
		driverService: NewDriverService(stg, log, notifier),
		tripService:   NewTripService(stg, log),
	}
}

func (s *service) Driver() DriverService {
	return s.driverService
}

func (s *service) Trip() TripService {
	return s.tripService
}
