package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/avolkov/pdfchat/internal/server/migrations"
	"github.com/avolkov/pdfchat/internal/server/repositories/files"
	"github.com/avolkov/pdfchat/internal/server/repositories/users"
)

// PostgresRepositoryManager is the durable backend, connected through the
// pgx stdlib driver.
type PostgresRepositoryManager struct {
	db    *sql.DB
	users *users.PostgresRepository
	files *files.PostgresRepository
}

func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	return &PostgresRepositoryManager{
		db:    conn,
		users: users.NewPostgresRepository(conn),
		files: files.NewPostgresRepository(conn),
	}, nil
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Files() files.Repository {
	return m.files
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
