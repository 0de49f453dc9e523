package compare

import (
	"errors"
	"io/fs"

	"modpack-updater/core/diff"
	"modpack-updater/core/logger"
	"modpack-updater/core/manifest"
	"modpack-updater/feature/servers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Get("/manifests", h.HandleManifests)
	group.Get("/servers/:id", h.HandleServer)
}

// HandleManifests compares two stored manifests.
// @Summary Compare Manifests
// @Description Compare two stored manifests. Returns a change list, or a customization report when custom=true (left is the customized manifest).
// @Tags compare
// @Produce json
// @Param left query string true "Left manifest object key"
// @Param right query string true "Right manifest object key"
// @Param custom query bool false "Return a customization report"
// @Success 200 {object} diff.ChangeList
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "Invalid Manifest"
// @Router /compare/manifests [get]
func (h *Handler) HandleManifests(c *fiber.Ctx) error {
	// Fiber reuses query buffers after the request; keys may be cached.
	left, right := utils.CopyString(c.Query("left")), utils.CopyString(c.Query("right"))
	if left == "" || right == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "left and right manifest keys are required"})
	}

	if c.QueryBool("custom") {
		report, err := h.service.Customizations(c.Context(), left, right)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(report)
	}

	changes, err := h.service.Manifests(c.Context(), left, right)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(changes)
}

// HandleServer plans the update of a registered server.
// @Summary Plan Server Update
// @Description Compare a server's live manifest with its target manifest.
// @Tags compare
// @Produce json
// @Param id path int true "Server ID"
// @Success 200 {object} compare.UpdatePlan
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "Invalid Manifest"
// @Router /compare/servers/{id} [get]
func (h *Handler) HandleServer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid server id"})
	}

	plan, err := h.service.Server(c.Context(), uint(id))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(plan)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Comparison failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, diff.ErrInvalidRecord):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, manifest.ErrNotFound), errors.Is(err, servers.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fiber.StatusNotFound
	case errors.Is(err, ErrNoManifest):
		return fiber.StatusConflict
	case errors.Is(err, ErrRegistryDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
