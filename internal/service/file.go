package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"

	"pdfstore/internal/model"
	"pdfstore/internal/repository"
	"pdfstore/internal/storage"
)

var (
	ErrReaderNil    = errors.New("reader is nil")
	ErrNotPDF       = errors.New("file is not a PDF")
	ErrEmptyUpload  = errors.New("uploaded file is empty")
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	ErrNotFound     = errors.New("file not found")
)

// pdfMagic is the signature every PDF starts with. The declared multipart
// Content-Type is client-controlled, so the payload is re-sniffed here.
var pdfMagic = []byte("%PDF-")

// FileService defines the use cases for storing and retrieving PDF files.
type FileService interface {
	// Upload validates the payload (PDF magic bytes, size cap) and persists
	// it. declaredType is the client-supplied MIME type and declaredSize the
	// multipart part size; both are advisory and re-checked against the
	// actual bytes.
	Upload(ctx context.Context, r io.Reader, filename, declaredType string, declaredSize int64) (*model.StoredFile, error)

	// Download returns a stored file, payload included, by id.
	Download(ctx context.Context, id int64) (*model.StoredFile, error)

	// List returns metadata for all stored files, newest first.
	List(ctx context.Context) ([]model.FileInfo, error)
}

// fileService is a concrete implementation of FileService.
type fileService struct {
	repo     repository.FileRepository
	archive  storage.Archive // nil when the mirror is disabled
	maxBytes int64
}

// NewFileService constructs a new FileService. archive may be nil.
func NewFileService(repo repository.FileRepository, archive storage.Archive, maxBytes int64) FileService {
	return &fileService{repo: repo, archive: archive, maxBytes: maxBytes}
}

func (s *fileService) Upload(ctx context.Context, r io.Reader, filename, declaredType string, declaredSize int64) (*model.StoredFile, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if declaredType != "" && !isPDFMediaType(declaredType) {
		return nil, ErrNotPDF
	}
	// Cheap reject on the declared size before reading anything.
	if declaredSize > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	// Read at most one byte past the cap so oversized payloads are detected
	// without buffering them whole.
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, ErrNotPDF
	}

	stored, err := s.repo.Create(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	// Mirror to the archive bucket, best effort: the row is already durable,
	// so a mirror failure must not fail the upload.
	if s.archive != nil {
		key := fmt.Sprintf("pdfs/%d.pdf", stored.ID)
		_, mirrorErr := s.archive.Put(ctx, key, bytes.NewReader(data), storage.PutOptions{
			Size:        int64(len(data)),
			ContentType: "application/pdf",
			Metadata: map[string]string{
				"original-filename": filename,
			},
		})
		if mirrorErr != nil {
			log.Printf("archive mirror failed for file %d: %v", stored.ID, mirrorErr)
		}
	}

	return stored, nil
}

// Download returns a file by id, translating missing rows to ErrNotFound.
func (s *fileService) Download(ctx context.Context, id int64) (*model.StoredFile, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *fileService) List(ctx context.Context) ([]model.FileInfo, error) {
	return s.repo.List(ctx)
}

// isPDFMediaType accepts application/pdf with or without parameters
// (e.g. "application/pdf; charset=binary").
func isPDFMediaType(declared string) bool {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return false
	}
	return mediaType == "application/pdf"
}
