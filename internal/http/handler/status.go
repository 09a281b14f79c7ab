package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"pdfstore/internal/repository"
)

// statusResponse is the body of GET /status. The endpoint always returns 200:
// a broken database is reported as data, not as an HTTP failure.
type statusResponse struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Database  databaseStatus `json:"database"`
	Error     string         `json:"error,omitempty"`
}

type databaseStatus struct {
	Status      string     `json:"status"`
	CurrentTime *time.Time `json:"current_time,omitempty"`
}

// Status reports process liveness plus database reachability. The database
// probe is a SELECT of the server's current time; the single response is
// written only after the probe settles.
func Status(repo repository.FileRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := statusResponse{
			Status:    "running",
			Message:   "PDF storage service is up",
			Timestamp: time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		serverTime, err := repo.ServerTime(ctx)
		if err != nil {
			res.Database = databaseStatus{Status: "disconnected"}
			res.Error = err.Error()
		} else {
			res.Database = databaseStatus{Status: "connected", CurrentTime: &serverTime}
		}

		return c.Status(fiber.StatusOK).JSON(res)
	}
}

// LivenessProbe is a bare liveness check for orchestrators.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
