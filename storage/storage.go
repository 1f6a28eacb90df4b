package storage

import (
	"context"
	"errors"

	"ridepilot/pkg/models"
)

// ErrAmbiguousDriver is returned when a lookup that must match one driver matches several.
var ErrAmbiguousDriver = errors.New("more than one driver matches")

type IStorage interface {
	Driver() IDriverStorage
	Trip() ITripStorage
	Ping(ctx context.Context) error
	Close()
}

// Lookups return (nil, nil) when nothing matches.
type IDriverStorage interface {
	GetByLicense(ctx context.Context, license string) (*models.Driver, error)
	GetByToken(ctx context.Context, token string) (*models.Driver, error)
	GetByID(ctx context.Context, id string) (*models.Driver, error)
	// GetByTelegramID matches active drivers only.
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.Driver, error)
	// RotateToken runs the store's token procedure and returns the new token,
	// or "" when the driver does not exist.
	RotateToken(ctx context.Context, id string) (string, error)
}

type ITripStorage interface {
	GetActiveByDriver(ctx context.Context, driverID string) ([]*models.Trip, error)
}
