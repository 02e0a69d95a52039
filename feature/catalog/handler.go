package catalog

import (
	"errors"

	"catalog-sync/core/logger"
	core "catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/feed"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for catalog reconciliation.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Post("/sync", h.HandleSync)
	group.Get("/sync/last", h.HandleLast)
}

// HandleSync runs a reconciliation pass and returns its summary.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	summary, err := h.service.Sync(c.Context())
	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, core.ErrRunInProgress):
			status = fiber.StatusConflict
		case errors.Is(err, feed.ErrFetch):
			status = fiber.StatusBadGateway
		}
		l.Error("Reconciliation failed", zap.Error(err), zap.Int("status", status))

		body := fiber.Map{"error": err.Error()}
		if summary != nil {
			body["summary"] = summary
		}
		return c.Status(status).JSON(body)
	}

	l.Info("Reconciliation triggered over HTTP", zap.String("run_id", summary.RunID))
	return c.JSON(summary)
}

// HandleLast returns the summary of the most recent run.
func (h *Handler) HandleLast(c *fiber.Ctx) error {
	summary, err := h.service.Last(c.Context())
	if errors.Is(err, ErrNoRun) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to load last run report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}
