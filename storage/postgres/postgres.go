package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridepilot/config"
	"ridepilot/pkg/logger"
	"ridepilot/storage"
)

type Store struct {
	pool *pgxpool.Pool
	log  logger.ILogger
}

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStorage, error) {
	url, err := cfg.StoreDSN()
	if err != nil {
		log.Error("error while building store url", logger.Error(err))
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Error("error while parsing Postgres config", logger.Error(err))
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("failed to connect Postgres", logger.Error(err))
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error("failed to ping Postgres", logger.Error(err))
		return nil, err
	}

	if cfg.StoreMigrate {
		if err := runMigrations(url, cfg.MigrationsPath, log); err != nil {
			pool.Close()
			return nil, err
		}
	}

	log.Info("Postgres connected")

	return NewFromPool(pool, log), nil
}

// NewFromPool wraps an existing pool; migrations are the caller's business.
func NewFromPool(pool *pgxpool.Pool, log logger.ILogger) *Store {
	return &Store{pool: pool, log: log}
}

func runMigrations(url, dir string, log logger.ILogger) error {
	mPath := dir
	if !filepath.IsAbs(mPath) {
		cwd, _ := os.Getwd()
		mPath = filepath.Join(cwd, dir)
	}
	if _, err := os.Stat(filepath.Join(mPath, "postgres")); err == nil {
		mPath = filepath.Join(mPath, "postgres")
	}

	m, err := migrate.New("file://"+mPath, url)
	if err != nil {
		log.Warning("migration init error or no migrations found", logger.String("path", mPath), logger.Error(err))
		return nil
	}
	defer m.Close()

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		log.Error("migration up error", logger.Error(err))
		return err
	}
	log.Info("migrations applied", logger.String("path", mPath))
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Driver() storage.IDriverStorage { return NewDriverRepo(s.pool, s.log) }
func (s *Store) Trip() storage.ITripStorage     { return NewTripRepo(s.pool, s.log) }
