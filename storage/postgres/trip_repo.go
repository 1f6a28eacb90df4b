package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ridepilot/pkg/logger"
	"ridepilot/pkg/models"
	"ridepilot/storage"
)

type tripRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewTripRepo(db *pgxpool.Pool, log logger.ILogger) storage.ITripStorage {
	return &tripRepo{db: db, log: log}
}

func (r *tripRepo) GetActiveByDriver(ctx context.Context, driverID string) ([]*models.Trip, error) {
	query := `
		SELECT p.id::text, p.company_id::text,
		       COALESCE(NULLIF(c.name, ''), 'Unknown Company') AS company_name,
		       p.client_name, p.client_phone, p.pickup_location, p.dropoff_location,
		       to_char(p.date, 'YYYY-MM-DD'), to_char(p.time, 'HH24:MI:SS'),
		       p.passengers, p.price::float8, p.driver_fee::float8, p.status,
		       COALESCE(p.description, ''), COALESCE(p.booking_id, ''),
		       COALESCE(NULLIF(ct.name, ''), 'Standard') AS car_type_name
		FROM projects p
		LEFT JOIN companies c ON p.company_id = c.id
		LEFT JOIN car_types ct ON p.car_type_id = ct.id
		WHERE p.driver_id::text = $1 AND p.status = 'active'
		ORDER BY p.date ASC, p.time ASC
	`
	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		r.log.Error("failed to get driver trips", logger.String("driver_id", driverID), logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	trips := []*models.Trip{}
	for rows.Next() {
		var t models.Trip
		err := rows.Scan(
			&t.ID, &t.CompanyID, &t.CompanyName,
			&t.ClientName, &t.ClientPhone, &t.PickupLocation, &t.DropoffLocation,
			&t.Date, &t.Time,
			&t.Passengers, &t.Price, &t.DriverFee, &t.Status,
			&t.Description, &t.BookingID,
			&t.CarTypeName,
		)
		if err != nil {
			r.log.Error("failed to scan trip", logger.Error(err))
			return nil, err
		}
		trips = append(trips, &t)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("failed to read trips", logger.Error(err))
		return nil, err
	}
	return trips, nil
}
