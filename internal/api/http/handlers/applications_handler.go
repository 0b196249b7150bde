package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/onboarding-api/internal/api/dto"
	"github.com/spec-kit/onboarding-api/internal/auth"
	"github.com/spec-kit/onboarding-api/internal/service"
	apperrors "github.com/spec-kit/onboarding-api/pkg/util"
)

// ApplicationsHandler manages the public submission endpoint.
type ApplicationsHandler struct {
	service *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{service: applicationService}
}

// Submit POST /applications.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.SubmitApplicationInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		ProductType: req.ProductType,
	}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		uid := principal.UserID
		input.UserID = &uid
	}

	app, err := h.service.Submit(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.SubmitApplicationResponse{
		ApplicationID: app.ID,
		Status:        app.Status,
	})
}
