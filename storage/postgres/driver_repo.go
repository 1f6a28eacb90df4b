package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridepilot/pkg/logger"
	"ridepilot/pkg/models"
	"ridepilot/storage"
)

const driverColumns = `id::text, license, name, phone, pin, auth_token, active, telegram_id`

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

func (r *driverRepo) GetByLicense(ctx context.Context, license string) (*models.Driver, error) {
	// Two rows are enough to tell "one" from "many".
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE license = $1 LIMIT 2`
	rows, err := r.db.Query(ctx, query, license)
	if err != nil {
		r.log.Error("failed to get driver by license", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var found []*models.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			r.log.Error("failed to scan driver", logger.Error(err))
			return nil, err
		}
		found = append(found, d)
	}
	if err := rows.Err(); err != nil {
		r.log.Error("failed to read drivers", logger.Error(err))
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		r.log.Error("driver license is not unique", logger.String("license", license))
		return nil, storage.ErrAmbiguousDriver
	}
}

func (r *driverRepo) GetByToken(ctx context.Context, token string) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE auth_token = $1 AND active = true LIMIT 1`
	d, err := scanDriver(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get driver by token", logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id string) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id::text = $1`
	d, err := scanDriver(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get driver by id", logger.String("id", id), logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE telegram_id = $1 AND active = true LIMIT 1`
	d, err := scanDriver(r.db.QueryRow(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get driver by telegram id", logger.Int64("telegram_id", telegramID), logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) RotateToken(ctx context.Context, id string) (string, error) {
	var token *string
	err := r.db.QueryRow(ctx, `SELECT generate_driver_token($1)`, id).Scan(&token)
	if err != nil {
		r.log.Error("failed to rotate driver token", logger.String("id", id), logger.Error(err))
		return "", err
	}
	if token == nil {
		return "", nil
	}
	return *token, nil
}

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID, &d.License, &d.Name, &d.Phone, &d.PIN, &d.AuthToken, &d.Active, &d.TelegramID,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
