package postgres

import (
	"context"
	"database/sql"
	"time"

	"pdfstore/internal/model"
	"pdfstore/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

// Create inserts a new file row, letting the database generate id and
// uploaded_at, and returns the stored record without re-reading the payload.
func (r *FilePostgres) Create(ctx context.Context, filename string, data []byte) (*model.StoredFile, error) {
	const q = `
		INSERT INTO files (filename, file_data)
		VALUES ($1, $2)
		RETURNING id, uploaded_at
	`
	out := model.StoredFile{
		Filename: filename,
		Size:     int64(len(data)),
	}
	row := r.db.QueryRowContext(ctx, q, filename, data)
	if err := row.Scan(&out.ID, &out.UploadedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single file, payload included, by its id.
func (r *FilePostgres) FindByID(ctx context.Context, id int64) (*model.StoredFile, error) {
	const q = `
		SELECT id, filename, file_data, uploaded_at
		FROM files
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var f model.StoredFile
	if err := row.Scan(
		&f.ID,
		&f.Filename,
		&f.Data,
		&f.UploadedAt,
	); err != nil {
		return nil, err
	}
	f.Size = int64(len(f.Data))
	return &f, nil
}

// List returns metadata for all files ordered newest first. The payload
// column is never selected here.
func (r *FilePostgres) List(ctx context.Context) ([]model.FileInfo, error) {
	const q = `
		SELECT id, filename, uploaded_at
		FROM files
		ORDER BY uploaded_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FileInfo, 0)
	for rows.Next() {
		var f model.FileInfo
		if err := rows.Scan(&f.ID, &f.Filename, &f.UploadedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ServerTime returns the database server's current time.
func (r *FilePostgres) ServerTime(ctx context.Context) (time.Time, error) {
	const q = `SELECT now()`
	var t time.Time
	if err := r.db.QueryRowContext(ctx, q).Scan(&t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}
