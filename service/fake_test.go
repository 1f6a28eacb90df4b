package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ridepilot/pkg/models"
	"ridepilot/storage"
)

var errStoreDown = errors.New("connection refused")

// fakeStore implements storage.IStorage in memory.
type fakeStore struct {
	mu      sync.Mutex
	drivers []*models.Driver
	trips   map[string][]*models.Trip
	fail    bool
	minted  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{trips: map[string][]*models.Trip{}}
}

func (f *fakeStore) Driver() storage.IDriverStorage { return fakeDrivers{f} }
func (f *fakeStore) Trip() storage.ITripStorage     { return fakeTrips{f} }
func (f *fakeStore) Ping(ctx context.Context) error { return nil }
func (f *fakeStore) Close()                         {}

type fakeDrivers struct{ f *fakeStore }

func (d fakeDrivers) GetByLicense(ctx context.Context, license string) (*models.Driver, error) {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	if d.f.fail {
		return nil, errStoreDown
	}
	var found *models.Driver
	for _, drv := range d.f.drivers {
		if drv.License == license {
			if found != nil {
				return nil, storage.ErrAmbiguousDriver
			}
			found = drv
		}
	}
	return found, nil
}

func (d fakeDrivers) GetByToken(ctx context.Context, token string) (*models.Driver, error) {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	if d.f.fail {
		return nil, errStoreDown
	}
	for _, drv := range d.f.drivers {
		if drv.AuthToken != nil && *drv.AuthToken == token && drv.Active {
			return drv, nil
		}
	}
	return nil, nil
}

func (d fakeDrivers) GetByID(ctx context.Context, id string) (*models.Driver, error) {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	if d.f.fail {
		return nil, errStoreDown
	}
	for _, drv := range d.f.drivers {
		if drv.ID == id {
			return drv, nil
		}
	}
	return nil, nil
}

func (d fakeDrivers) GetByTelegramID(ctx context.Context, telegramID int64) (*models.Driver, error) {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	if d.f.fail {
		return nil, errStoreDown
	}
	for _, drv := range d.f.drivers {
		if drv.TelegramID != nil && *drv.TelegramID == telegramID && drv.Active {
			return drv, nil
		}
	}
	return nil, nil
}

func (d fakeDrivers) RotateToken(ctx context.Context, id string) (string, error) {
	d.f.mu.Lock()
	defer d.f.mu.Unlock()
	if d.f.fail {
		return "", errStoreDown
	}
	for _, drv := range d.f.drivers {
		if drv.ID == id {
			d.f.minted++
			token := fmt.Sprintf("token-%s-%d", id, d.f.minted)
			drv.AuthToken = &token
			return token, nil
		}
	}
	return "", nil
}

type fakeTrips struct{ f *fakeStore }

func (t fakeTrips) GetActiveByDriver(ctx context.Context, driverID string) ([]*models.Trip, error) {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if t.f.fail {
		return nil, errStoreDown
	}
	var out []*models.Trip
	for _, trip := range t.f.trips[driverID] {
		cp := *trip
		out = append(out, &cp)
	}
	return out, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	tokens map[string]string
	err    error
}

func (n *recordingNotifier) NotifyToken(ctx context.Context, driver *models.Driver, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tokens == nil {
		n.tokens = map[string]string{}
	}
	n.tokens[driver.ID] = token
	return n.err
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
