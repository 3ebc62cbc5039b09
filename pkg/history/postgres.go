package history

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/transitkit/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresConfig configures the PostgreSQL pool used by PostgresStorage.
type PostgresConfig struct {
	ConnectionString  string        `env:"TRANSITKIT_PG_URL,required"`
	MaxOpenConns      int32         `env:"TRANSITKIT_PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"TRANSITKIT_PG_MAX_IDLE_CONNS" envDefault:"2"`
	HealthCheckPeriod time.Duration `env:"TRANSITKIT_PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"TRANSITKIT_PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"TRANSITKIT_PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"TRANSITKIT_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"TRANSITKIT_PG_RETRY_INTERVAL" envDefault:"5s"`

	MigrationsTable string `env:"TRANSITKIT_PG_MIGRATIONS_TABLE" envDefault:"transitkit_migrations"`
}

// ConnectPostgres opens a pgx pool. Attempt n waits n*RetryInterval before
// the next one.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	}
	poolConfig.MinConns = cfg.MaxIdleConns
	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}

	for i, n := 0, max(cfg.RetryAttempts, 1); i < n; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, ErrFailedToOpenDBConnection
}

// MigratePostgres applies the embedded schema migrations.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, cfg PostgresConfig, log *slog.Logger) error {
	if log == nil {
		log = logger.Discard()
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", logger.Error(err))
		}
	}()

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log})
	if cfg.MigrationsTable != "" {
		goose.SetTableName(cfg.MigrationsTable)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// PostgresStorage stores records in the transition_history table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) (*PostgresStorage, error) {
	if pool == nil {
		return nil, ErrNilStorage
	}
	return &PostgresStorage{pool: pool}, nil
}

const insertRecord = `
INSERT INTO transition_history (id, entity_id, source, destination, trigger, kind, actions, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (s *PostgresStorage) Store(ctx context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}

	actions := rec.Actions
	if actions == nil {
		actions = []string{}
	}

	_, err := s.pool.Exec(ctx, insertRecord,
		rec.ID.String(), rec.EntityID, rec.Source, rec.Destination, rec.Trigger, rec.Kind, actions, rec.CreatedAt)
	if err != nil {
		return errors.Join(ErrFailedToStoreRecord, err)
	}
	return nil
}

const selectRecords = `
SELECT id::text, entity_id, source, destination, trigger, kind, actions, created_at
FROM transition_history
WHERE entity_id = $1
ORDER BY created_at DESC, id
LIMIT $2`

func (s *PostgresStorage) List(ctx context.Context, entityID string, limit int) ([]Record, error) {
	if entityID == "" {
		return nil, ErrEmptyEntityID
	}

	var lim *int
	if limit > 0 {
		lim = &limit
	}

	rows, err := s.pool.Query(ctx, selectRecords, entityID, lim)
	if err != nil {
		return nil, errors.Join(ErrFailedToListRecords, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec Record
			id  string
		)
		if err := rows.Scan(&id, &rec.EntityID, &rec.Source, &rec.Destination, &rec.Trigger, &rec.Kind, &rec.Actions, &rec.CreatedAt); err != nil {
			return nil, errors.Join(ErrFailedToListRecords, err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, errors.Join(ErrFailedToListRecords, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToListRecords, err)
	}
	return out, nil
}
