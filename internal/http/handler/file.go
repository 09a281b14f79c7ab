package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pdfstore/internal/model"
	"pdfstore/internal/service"
)

// uploadResponse is the body of a successful POST /upload.
type uploadResponse struct {
	Message string            `json:"message"`
	File    *model.StoredFile `json:"file"`
}

// listResponse is the body of GET /files.
type listResponse struct {
	Files []model.FileInfo `json:"files"`
}

// UploadFile accepts one multipart file under the "pdf" field, constrained to
// application/pdf and the configured size cap.
func UploadFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("pdf")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", `missing file in form field "pdf"`)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		declaredType := fh.Header.Get(fiber.HeaderContentType)

		stored, err := fileSvc.Upload(c.UserContext(), f, fh.Filename, declaredType, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotPDF):
				return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_TYPE", "only application/pdf files are accepted")
			case errors.Is(err, service.ErrEmptyUpload):
				return writeError(c, fiber.StatusBadRequest, "EMPTY_FILE", "uploaded file is empty")
			case errors.Is(err, service.ErrFileTooLarge):
				return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds the maximum allowed size")
			default:
				return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "failed to store file")
			}
		}

		return c.Status(fiber.StatusOK).JSON(uploadResponse{
			Message: "File uploaded successfully",
			File:    stored,
		})
	}
}

// DownloadFile streams a stored PDF by integer id. Exactly one body is
// written: the raw bytes on success, a JSON error otherwise.
func DownloadFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			// Never touches the database.
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_ID", "Invalid file ID")
		}

		f, err := fileSvc.Download(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "FILE_NOT_FOUND", "File not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "failed to read file")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(f.Filename)))
		c.Set(fiber.HeaderContentLength, strconv.FormatInt(f.Size, 10))
		return c.Send(f.Data)
	}
}

// ListFiles returns metadata for every stored file, newest first.
func ListFiles(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := fileSvc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "failed to list files")
		}
		return c.Status(fiber.StatusOK).JSON(listResponse{Files: files})
	}
}

// sanitizeFilename makes a client-supplied filename safe for a quoted
// Content-Disposition parameter: control bytes are stripped, backslashes and
// quotes escaped.
func sanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch < 0x20 || ch == 0x7f:
			// drop control characters outright
		case ch == '"' || ch == '\\':
			b.WriteByte('\\')
			b.WriteByte(ch)
		default:
			b.WriteByte(ch)
		}
	}
	if b.Len() == 0 {
		return "download.pdf"
	}
	return b.String()
}
