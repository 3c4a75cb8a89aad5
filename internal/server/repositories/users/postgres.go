package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/dbx"
	"github.com/avolkov/pdfchat/internal/server/models"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// PostgresRepository is the durable identity store backed by PostgreSQL
// through the pgx stdlib driver.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create checks username then email inside a transaction and inserts the
// record. The unique constraints remain the backstop for races between
// concurrent transactions.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		var exists bool

		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, user.Username).Scan(&exists); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if exists {
			return common.ErrDuplicateUsername
		}

		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, user.Email).Scan(&exists); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if exists {
			return common.ErrDuplicateEmail
		}

		query :=
			`INSERT INTO users (id, username, email, full_name, password_hash, role, created_at, active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 `

		if _, err := tx.ExecContext(ctx, query,
			user.ID, user.Username, user.Email, user.FullName,
			user.PasswordHash, user.Role, user.CreatedAt, user.Active); err != nil {
			return mapInsertError(err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getByField(ctx, "username", username)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByField(ctx, "email", email)
}

func (r *PostgresRepository) getByField(ctx context.Context, field, value string) (*models.User, error) {
	query := fmt.Sprintf(
		`SELECT id, username, email, full_name, password_hash, role, created_at, active FROM users
		 WHERE %s = $1
		 `, field)

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.PasswordHash, &user.Role, &user.CreatedAt, &user.Active)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// mapInsertError converts a unique-constraint violation raised by a racing
// transaction into the matching duplicate sentinel.
func mapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if pgErr.ConstraintName == "users_email_key" {
			return common.ErrDuplicateEmail
		}
		return common.ErrDuplicateUsername
	}
	return fmt.Errorf("db error: %w", err)
}
