package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/onboarding-api/internal/api/dto"
	"github.com/spec-kit/onboarding-api/internal/service"
	apperrors "github.com/spec-kit/onboarding-api/pkg/util"
)

// AdminApplicationsHandler exposes the admin review endpoints.
type AdminApplicationsHandler struct {
	service *service.ApplicationService
}

// NewAdminApplicationsHandler constructs handler.
func NewAdminApplicationsHandler(applicationService *service.ApplicationService) *AdminApplicationsHandler {
	return &AdminApplicationsHandler{service: applicationService}
}

// List GET /admin/applications.
func (h *AdminApplicationsHandler) List(c *fiber.Ctx) error {
	apps, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		items = append(items, dto.NewApplicationResponse(&apps[i]))
	}
	return c.JSON(items)
}

// Get GET /admin/applications/:id.
func (h *AdminApplicationsHandler) Get(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return err
	}
	app, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewApplicationResponse(app))
}

// UpdateStatus PUT /admin/applications/:id/status.
func (h *AdminApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	app, err := h.service.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateStatusResponse{ID: app.ID, Status: app.Status, UpdatedAt: app.UpdatedAt})
}

// applicationID parses :id. Ids that cannot name a row are reported as
// missing applications.
func applicationID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("application", map[string]any{"id": c.Params("id")})
	}
	return int64(id), nil
}
