package files

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/server/models"
)

func meta(id, userID string, uploadedAt time.Time) *models.FileMeta {
	return &models.FileMeta{
		ID:               id,
		FileName:         id + ".pdf",
		OriginalFileName: "report.pdf",
		Size:             1024,
		ContentType:      "application/pdf",
		UploadedAt:       uploadedAt,
		UserID:           userID,
		StorageKey:       "uploads/" + id + ".pdf",
	}
}

func TestInMemory_CreateGetDelete(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, meta("f1", "u1", time.Now())); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.GetByID(ctx, "f1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.UserID != "u1" || got.ContentType != "application/pdf" {
		t.Fatalf("unexpected meta: %+v", got)
	}

	if err := repo.Delete(ctx, "f1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := repo.GetByID(ctx, "f1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "f1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound on second delete, got %v", err)
	}
}

func TestInMemory_ListByUserNewestFirst(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		if _, err := repo.Create(ctx, meta(id, "u1", base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}
	if _, err := repo.Create(ctx, meta("other", "u2", base)); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	list, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("want 3 files, got %d", len(list))
	}
	if list[0].ID != "new" || list[1].ID != "mid" || list[2].ID != "old" {
		t.Fatalf("wrong order: %s %s %s", list[0].ID, list[1].ID, list[2].ID)
	}
}
