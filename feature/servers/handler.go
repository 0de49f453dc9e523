package servers

import (
	"errors"
	"strings"

	"modpack-updater/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the server registry.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// RegisterRoutes registers the server routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/servers")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandleUpdate)
}

// HandleList returns every registered server.
// @Summary List Servers
// @Description List the game servers tracked by the updater.
// @Tags servers
// @Produce json
// @Success 200 {array} servers.Server
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /servers [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	servers, err := h.repo.List(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Listing servers failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(servers)
}

// HandleGet returns one server.
// @Summary Get Server
// @Tags servers
// @Produce json
// @Param id path int true "Server ID"
// @Success 200 {object} servers.Server
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /servers/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid server id"})
	}

	server, err := h.repo.Get(c.Context(), uint(id))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(server)
}

// HandleUpdate creates or replaces a server record.
// @Summary Update Server
// @Description Create or replace the server with the given id.
// @Tags servers
// @Accept json
// @Produce json
// @Param id path int true "Server ID"
// @Param server body servers.UpdateRequest true "Server"
// @Success 200 {object} servers.Server
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /servers/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid server id"})
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	server := &Server{ID: uint(id)}
	if existing, err := h.repo.Get(c.Context(), uint(id)); err == nil {
		server = existing
	} else if !errors.Is(err, ErrNotFound) {
		return h.fail(c, err)
	}

	server.Name = req.Name
	server.Modpack = req.Modpack
	server.InstalledVersion = req.InstalledVersion
	server.LiveManifest = req.LiveManifest
	server.TargetManifest = req.TargetManifest

	if err := h.repo.Save(c.Context(), server); err != nil {
		return h.fail(c, err)
	}
	logger.WithRayID(h.logger, c).Info("Server updated", zap.Uint("id", server.ID), zap.String("name", server.Name))
	return c.JSON(server)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.logger, c).Error("Server registry request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
