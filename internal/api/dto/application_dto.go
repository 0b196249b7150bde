package dto

import (
	"time"

	"github.com/spec-kit/onboarding-api/internal/domain"
)

// SubmitApplicationRequest payload.
type SubmitApplicationRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	ProductType string `json:"productType"`
}

// SubmitApplicationResponse is returned once an application is stored.
type SubmitApplicationResponse struct {
	ApplicationID int64                    `json:"applicationId"`
	Status        domain.ApplicationStatus `json:"status"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.ApplicationStatus `json:"status"`
}

// UpdateStatusResponse is returned after a status change.
type UpdateStatusResponse struct {
	ID        int64                    `json:"id"`
	Status    domain.ApplicationStatus `json:"status"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// ApplicationResponse is the admin view of an application.
type ApplicationResponse struct {
	ID          int64                    `json:"id"`
	UserID      *int64                   `json:"userId"`
	FirstName   string                   `json:"firstName"`
	LastName    string                   `json:"lastName"`
	Email       string                   `json:"email"`
	ProductType string                   `json:"productType"`
	Status      domain.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

// NewApplicationResponse maps a domain application.
func NewApplicationResponse(app *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          app.ID,
		UserID:      app.UserID,
		FirstName:   app.FirstName,
		LastName:    app.LastName,
		Email:       app.Email,
		ProductType: app.ProductType,
		Status:      app.Status,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}
