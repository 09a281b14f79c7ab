package repository

import (
	"context"
	"time"

	"pdfstore/internal/model"
)

// FileRepository defines data access for stored files using SQL queries only.
// No business logic here — strictly persistence operations.
//
// There is deliberately no Delete or Update: stored files are immutable and
// removal, if it ever happens, is an administrative operation outside the
// service.
type FileRepository interface {
	// Create inserts a new file row. The database generates id and
	// uploaded_at; both are returned on the stored record.
	Create(ctx context.Context, filename string, data []byte) (*model.StoredFile, error)

	// FindByID returns a file, payload included, by its generated id.
	// Missing rows surface as sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.StoredFile, error)

	// List returns metadata for every stored file, newest first.
	List(ctx context.Context) ([]model.FileInfo, error)

	// ServerTime performs a lightweight round-trip and returns the database
	// server's current time. Used by the status endpoint to classify
	// connectivity.
	ServerTime(ctx context.Context) (time.Time, error)
}
