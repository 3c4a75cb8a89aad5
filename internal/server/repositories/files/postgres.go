package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/server/models"
)

// PostgresRepository is the durable metadata store.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, meta *models.FileMeta) (*models.FileMeta, error) {

	query :=
		`INSERT INTO files (id, file_name, original_file_name, size, content_type, uploaded_at, user_id, storage_key)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		meta.ID, meta.FileName, meta.OriginalFileName, meta.Size,
		meta.ContentType, meta.UploadedAt, meta.UserID, meta.StorageKey)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return meta, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.FileMeta, error) {
	query :=
		`SELECT id, file_name, original_file_name, size, content_type, uploaded_at, user_id, storage_key FROM files
		 WHERE id = $1
		 `

	meta := &models.FileMeta{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&meta.ID, &meta.FileName, &meta.OriginalFileName, &meta.Size,
		&meta.ContentType, &meta.UploadedAt, &meta.UserID, &meta.StorageKey)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return meta, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.FileMeta, error) {
	query :=
		`SELECT id, file_name, original_file_name, size, content_type, uploaded_at, user_id, storage_key FROM files
		 WHERE user_id = $1
		 ORDER BY uploaded_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.FileMeta
	for rows.Next() {
		meta := &models.FileMeta{}
		if err := rows.Scan(
			&meta.ID, &meta.FileName, &meta.OriginalFileName, &meta.Size,
			&meta.ContentType, &meta.UploadedAt, &meta.UserID, &meta.StorageKey); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
