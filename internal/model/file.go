package model

import "time"

// StoredFile represents a PDF persisted in the database.
// This is a pure domain model with no database-specific dependencies or tags.
// Data holds the raw payload and is never serialized into JSON responses;
// downloads write it as the response body instead.
type StoredFile struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	Data       []byte    `json:"-"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// FileInfo is the metadata-only projection used by listings, where loading
// the payload column would be wasted work.
type FileInfo struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
}
