package service

import (
	"context"
	"fmt"
	"strings"

	"ridepilot/pkg/logger"
	"ridepilot/pkg/models"
	"ridepilot/storage"
)

type DriverService interface {
	Login(ctx context.Context, code, pin string) (*models.DriverIdentity, error)
	AuthenticateToken(ctx context.Context, token string) (*models.DriverIdentity, error)
	RegenerateToken(ctx context.Context, driverID string) (string, error)
}

type driverService struct {
	stg      storage.IDriverStorage
	log      logger.ILogger
	notifier LinkNotifier
}

func NewDriverService(stg storage.IStorage, log logger.ILogger, notifier LinkNotifier) DriverService {
	return &driverService{
		stg:      stg.Driver(),
		log:      log,
		notifier: notifier,
	}
}

func (s *driverService) Login(ctx context.Context, code, pin string) (*models.DriverIdentity, error) {
	code = strings.TrimSpace(code)
	pin = strings.TrimSpace(pin)
	if code == "" || pin == "" {
		return nil, fmt.Errorf("%w: driver id and pin are required", ErrInvalidInput)
	}

	driver, err := s.stg.GetByLicense(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: find driver by license: %v", ErrUpstream, err)
	}
	if driver == nil {
		s.log.Info("driver login rejected", logger.String("reason", "unknown driver"))
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, ErrUnknownDriver)
	}

	if pin != strings.TrimSpace(driver.ExpectedPIN()) {
		s.log.Info("driver login rejected", logger.String("reason", "wrong pin"), logger.String("driver", driver.ID))
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, ErrWrongPIN)
	}

	s.log.Info("driver logged in", logger.String("driver", driver.ID))
	return driver.Identity(), nil
}

func (s *driverService) AuthenticateToken(ctx context.Context, token string) (*models.DriverIdentity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	driver, err := s.stg.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: find driver by token: %v", ErrUpstream, err)
	}
	if driver == nil || !driver.Active {
		return nil, ErrInvalidOrExpiredToken
	}

	s.log.Info("driver authenticated by token", logger.String("driver", driver.ID))
	return driver.Identity(), nil
}

func (s *driverService) RegenerateToken(ctx context.Context, driverID string) (string, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return "", fmt.Errorf("%w: driver id is required", ErrInvalidInput)
	}

	token, err := s.stg.RotateToken(ctx, driverID)
	if err != nil {
		return "", fmt.Errorf("%w: rotate token: %v", ErrUpstream, err)
	}
	if token == "" {
		return "", fmt.Errorf("%w: token procedure returned nothing for driver %s", ErrUpstream, driverID)
	}

	s.log.Info("driver token rotated", logger.String("driver", driverID))
	s.notify(ctx, driverID, token)
	return token, nil
}

func (s *driverService) notify(ctx context.Context, driverID, token string) {
	if s.notifier == nil {
		return
	}
	driver, err := s.stg.GetByID(ctx, driverID)
	if err != nil || driver == nil {
		s.log.Warning("skipping magic link delivery", logger.String("driver", driverID), logger.Error(err))
		return
	}
	if err := s.notifier.NotifyToken(ctx, driver, token); err != nil {
		s.log.Warning("magic link delivery failed", logger.String("driver", driverID), logger.Error(err))
	}
}
