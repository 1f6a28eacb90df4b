package portal

import (
	"context"
	"errors"
	"sync"
	"time"

	"ridepilot/pkg/logger"
	"ridepilot/pkg/models"
	"ridepilot/pkg/view"
)

const DefaultPollInterval = 120 * time.Second

const (
	msgTransportFailure = "Failed to load trips"
	msgServerFailure    = "Failed to load your assigned trips"
)

type DashboardState string

const (
	DashboardLoading DashboardState = "loading"
	DashboardReady   DashboardState = "ready"
	DashboardError   DashboardState = "error"
)

// TripFetcher is the part of Client the dashboard needs.
type TripFetcher interface {
	Projects(ctx context.Context, driverUUID string) ([]*models.Trip, error)
}

// Dashboard holds one driver's trip list and keeps it fresh.
//
// Every fetch is stamped with a generation number when it starts. A response
// is applied only if no later-started fetch has been applied already, so a
// slow poll can never overwrite a newer manual refresh.
type Dashboard struct {
	fetcher TripFetcher
	driver  models.DriverIdentity
	log     logger.ILogger

	// Interval, Clock and OnChange must be set before Run.
	Interval time.Duration
	Clock    func() time.Time
	OnChange func()

	mu          sync.Mutex
	state       DashboardState
	trips       []*models.Trip
	errMsg      string
	expanded    map[string]bool
	lastUpdated time.Time
	issued      uint64
	applied     uint64
}

func NewDashboard(fetcher TripFetcher, driver models.DriverIdentity, log logger.ILogger) *Dashboard {
	return &Dashboard{
		fetcher:  fetcher,
		driver:   driver,
		log:      log,
		Interval: DefaultPollInterval,
		Clock:    time.Now,
		state:    DashboardLoading,
		trips:    []*models.Trip{},
		expanded: map[string]bool{},
	}
}

// Run fetches immediately and then every Interval until ctx is done.
func (d *Dashboard) Run(ctx context.Context) {
	interval := d.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.poll(ctx)
		}
	}
}

func (d *Dashboard) poll(ctx context.Context) {
	if err := d.Refresh(ctx); err != nil && ctx.Err() == nil {
		d.log.Warning("trip poll failed", logger.String("driver", d.driver.ID), logger.Error(err))
	}
}

// Refresh fetches the trip list now. The returned error is the fetch error,
// whether or not its response was applied.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.issued++
	gen := d.issued
	d.mu.Unlock()

	trips, err := d.fetcher.Projects(ctx, d.driver.UUID)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	d.mu.Lock()
	if gen <= d.applied {
		d.mu.Unlock()
		return err
	}
	d.applied = gen
	if err != nil {
		d.state = DashboardError
		d.errMsg = failureMessage(err)
	} else {
		if trips == nil {
			trips = []*models.Trip{}
		}
		d.trips = trips
		d.state = DashboardReady
		d.errMsg = ""
		d.lastUpdated = d.Clock()
	}
	notify := d.OnChange
	d.mu.Unlock()

	if notify != nil {
		notify()
	}
	return err
}

func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgServerFailure
	}
	return msgTransportFailure
}

// Toggle flips the expanded flag of one card.
func (d *Dashboard) Toggle(tripID string) {
	d.mu.Lock()
	if d.expanded[tripID] {
		delete(d.expanded, tripID)
	} else {
		d.expanded[tripID] = true
	}
	notify := d.OnChange
	d.mu.Unlock()

	if notify != nil {
		notify()
	}
}

type DashboardSnapshot struct {
	State       DashboardState
	Trips       []*models.Trip
	Error       string
	LastUpdated time.Time
	Page        view.Page
}

func (d *Dashboard) Snapshot() DashboardSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	trips := make([]*models.Trip, len(d.trips))
	copy(trips, d.trips)
	expanded := make(map[string]bool, len(d.expanded))
	for id, open := range d.expanded {
		expanded[id] = open
	}

	page := view.Build(d.driver, trips, expanded, d.Clock())
	page.Error = d.errMsg
	if !d.lastUpdated.IsZero() {
		page.LastUpdated = d.lastUpdated.Format("15:04:05")
	}

	return DashboardSnapshot{
		State:       d.state,
		Trips:       trips,
		Error:       d.errMsg,
		LastUpdated: d.lastUpdated,
		Page:        page,
	}
}
