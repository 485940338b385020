// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/alfredjeanlab/traceviz/internal/model"
	"github.com/alfredjeanlab/traceviz/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateWorkItem(ctx context.Context, item *model.WorkItem) error {
	return queryCreateWorkItem(ctx, s.db, item)
}

func (s *PostgresStore) GetWorkItem(ctx context.Context, id string) (*model.WorkItem, error) {
	return queryGetWorkItem(ctx, s.db, id)
}

func (s *PostgresStore) ListWorkItems(ctx context.Context, limit int) ([]*model.WorkItem, error) {
	return queryListWorkItems(ctx, s.db, limit)
}

func (s *PostgresStore) UpdateWorkItem(ctx context.Context, id string, patch model.WorkItemPatch) (*model.WorkItem, error) {
	return queryUpdateWorkItem(ctx, s.db, id, patch)
}

func (s *PostgresStore) DeleteWorkItem(ctx context.Context, id string) error {
	return queryDeleteWorkItem(ctx, s.db, id)
}

func (s *PostgresStore) SearchWorkItems(ctx context.Context, query string, limit int) ([]*model.WorkItem, error) {
	return querySearchWorkItems(ctx, s.db, query, limit)
}

func (s *PostgresStore) CreateRelationship(ctx context.Context, rel *model.Relationship) error {
	return queryCreateRelationship(ctx, s.db, rel)
}

func (s *PostgresStore) DeleteRelationship(ctx context.Context, id string) error {
	return queryDeleteRelationship(ctx, s.db, id)
}

func (s *PostgresStore) ListRelationships(ctx context.Context) ([]*model.Relationship, error) {
	return queryListRelationships(ctx, s.db)
}
