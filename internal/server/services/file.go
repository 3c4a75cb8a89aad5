package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/logging"
	"github.com/avolkov/pdfchat/internal/server/blob"
	"github.com/avolkov/pdfchat/internal/server/models"
	"github.com/avolkov/pdfchat/internal/server/repositories/files"
)

const pdfContentType = "application/pdf"

// FileService stores uploaded PDFs and their metadata, scoped to the
// owning identity. Every read and delete checks ownership; a non-owner
// observes "not found" so file ids do not leak across accounts.
type FileService struct {
	repo        files.Repository
	blobs       blob.Store
	logger      logging.Logger
	maxFileSize int64
}

func NewFileService(repo files.Repository, blobs blob.Store, logger logging.Logger, maxFileSize int64) *FileService {
	return &FileService{
		repo:        repo,
		blobs:       blobs,
		logger:      logger.With("module", "file_service"),
		maxFileSize: maxFileSize,
	}
}

// Upload validates and stores a PDF for the owner. The size cap is
// enforced while streaming; an oversized upload is removed from blob
// storage before the error is returned.
func (s *FileService) Upload(ctx context.Context, owner *models.Identity, originalName, contentType string, content io.Reader) (*models.FileMeta, error) {

	if contentType != pdfContentType {
		return nil, fmt.Errorf("%w: only PDF files are allowed, got %s", common.ErrorValidation, contentType)
	}

	id := uuid.NewString()
	fileName := id + filepath.Ext(originalName)

	limited := &cappedReader{r: content, max: s.maxFileSize}
	if err := s.blobs.Put(ctx, fileName, limited); err != nil {
		if errors.Is(err, errSizeExceeded) {
			_ = s.blobs.Delete(ctx, fileName)
			return nil, fmt.Errorf("%w: file exceeds maximum size %d bytes", common.ErrorValidation, s.maxFileSize)
		}
		s.logger.Error(ctx, "error storing blob", "error", err.Error())
		return nil, common.ErrorInternal
	}

	meta := &models.FileMeta{
		ID:               id,
		FileName:         fileName,
		OriginalFileName: originalName,
		Size:             limited.read,
		ContentType:      contentType,
		UploadedAt:       time.Now().UTC(),
		UserID:           owner.ID,
		StorageKey:       fileName,
	}

	meta, err := s.repo.Create(ctx, meta)
	if err != nil {
		_ = s.blobs.Delete(ctx, fileName)
		s.logger.Error(ctx, "error storing file metadata", "error", err.Error())
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "file uploaded", "file_id", meta.ID, "user_id", owner.ID, "size", meta.Size)
	return meta, nil
}

// List returns the owner's uploads, newest first.
func (s *FileService) List(ctx context.Context, owner *models.Identity) ([]*models.FileMeta, error) {
	list, err := s.repo.ListByUser(ctx, owner.ID)
	if err != nil {
		s.logger.Error(ctx, "error listing files", "error", err.Error())
		return nil, common.ErrorInternal
	}
	return list, nil
}

// Get returns metadata for one of the owner's files.
func (s *FileService) Get(ctx context.Context, owner *models.Identity, fileID string) (*models.FileMeta, error) {
	meta, err := s.repo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "error loading file metadata", "error", err.Error())
		return nil, common.ErrorInternal
	}

	// Ownership check: someone else's file looks absent.
	if meta.UserID != owner.ID {
		return nil, common.ErrorNotFound
	}

	return meta, nil
}

// Open returns metadata plus the blob content for download. The caller
// closes the ReadCloser.
func (s *FileService) Open(ctx context.Context, owner *models.Identity, fileID string) (*models.FileMeta, io.ReadCloser, error) {
	meta, err := s.Get(ctx, owner, fileID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Get(ctx, meta.StorageKey)
	if err != nil {
		s.logger.Error(ctx, "error opening blob", "error", err.Error(), "file_id", fileID)
		return nil, nil, common.ErrorInternal
	}

	return meta, rc, nil
}

// Delete removes one of the owner's files and its metadata.
func (s *FileService) Delete(ctx context.Context, owner *models.Identity, fileID string) error {
	meta, err := s.Get(ctx, owner, fileID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, fileID); err != nil {
		s.logger.Error(ctx, "error deleting file metadata", "error", err.Error())
		return common.ErrorInternal
	}

	if err := s.blobs.Delete(ctx, meta.StorageKey); err != nil {
		// Metadata is gone; an orphaned blob is logged, not surfaced.
		s.logger.Warn(ctx, "error deleting blob", "error", err.Error(), "storage_key", meta.StorageKey)
	}

	s.logger.Info(ctx, "file deleted", "file_id", fileID, "user_id", owner.ID)
	return nil
}

var errSizeExceeded = errors.New("size exceeded")

// cappedReader counts bytes and fails the stream as soon as the running
// total passes max, so an oversized upload aborts mid-copy instead of
// being buffered whole.
type cappedReader struct {
	r    io.Reader
	max  int64
	read int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	if c.read > c.max {
		return n, errSizeExceeded
	}
	return n, err
}
