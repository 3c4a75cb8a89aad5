package models

import "time"

// FileMeta describes an uploaded document. The binary content lives in
// blob storage under StorageKey; this record only carries metadata.
type FileMeta struct {
	// ID is the public identifier clients use to reference the file.
	ID string
	// FileName is the server-generated unique name (ID + extension).
	FileName string
	// OriginalFileName is the name the client uploaded the file under.
	OriginalFileName string
	// Size is the stored content length in bytes.
	Size int64
	// ContentType is the MIME type declared at upload.
	ContentType string
	// UploadedAt is the server-side upload timestamp.
	UploadedAt time.Time
	// UserID is the owner identity key. Ownership checks compare against it.
	UserID string
	// StorageKey locates the blob in the storage backend. Internal only.
	StorageKey string
}
