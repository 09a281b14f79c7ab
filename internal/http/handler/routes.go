package handler

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"pdfstore/internal/repository"
	"pdfstore/internal/service"
)

// Embedded so the served contract does not depend on the process working
// directory.
//
//go:embed openapi.yaml
var openAPISpec []byte

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; validation and persistence live in
// the service and repository layers.
func RegisterRoutes(app *fiber.App, repo repository.FileRepository, fileSvc service.FileService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.Send(openAPISpec)
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Prometheus exposition
	app.Get("/metrics", Metrics())

	// Service/database health report; always 200
	app.Get("/status", Status(repo))

	// Bare liveness probe
	app.Get("/healthz", LivenessProbe())

	// File operations
	app.Post("/upload", UploadFile(fileSvc))
	app.Get("/download/:id", DownloadFile(fileSvc))
	app.Get("/files", ListFiles(fileSvc))
}

// Metrics serves the default Prometheus registry through fiber's fasthttp
// transport.
func Metrics() fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}
