package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/onboarding-api/internal/domain"
	"github.com/spec-kit/onboarding-api/internal/events"
	"github.com/spec-kit/onboarding-api/internal/repository"
	apperrors "github.com/spec-kit/onboarding-api/pkg/util"
)

// ApplicationService coordinates onboarding application workflows. It never
// caches records; every read goes to the repository.
type ApplicationService struct {
	applications repository.ApplicationRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	validate     *validator.Validate
}

// ApplicationDependencies bundles collaborators for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// SubmitApplicationInput describes an applicant submission.
type SubmitApplicationInput struct {
	UserID      *int64 `json:"-"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,simple_email"`
	ProductType string `json:"productType"`
}

type statusUpdateInput struct {
	Status domain.ApplicationStatus `json:"status" validate:"required,application_status"`
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
		validate:     newValidator(),
	}
}

// Submit validates and stores a new application with status submitted.
// The same email may submit any number of applications.
func (s *ApplicationService) Submit(ctx context.Context, input SubmitApplicationInput) (*domain.Application, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.ProductType = strings.TrimSpace(input.ProductType)

	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	app := &domain.Application{
		UserID:      input.UserID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		ProductType: input.ProductType,
		Status:      domain.ApplicationStatusSubmitted,
	}
	if app.ProductType == "" {
		app.ProductType = domain.DefaultProductType
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventApplicationSubmitted,
		EntityID: app.ID,
		Actor:    events.Actor{UserID: app.UserID},
		Payload: events.ApplicationSubmittedPayload{
			Email:       app.Email,
			ProductType: app.ProductType,
		},
	})
	return app, nil
}

// List returns every application, newest first. It returns an empty slice
// when nothing is stored.
func (s *ApplicationService) List(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.applications.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

// GetByID fetches one application.
func (s *ApplicationService) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, applicationNotFound(id)
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

// UpdateStatus moves an application to status. Any status may follow any
// other; an invalid status leaves the stored record untouched.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	if err := validateInput(s.validate, statusUpdateInput{Status: status}); err != nil {
		return nil, err
	}

	app, err := s.applications.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, applicationNotFound(id)
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventApplicationStatusChanged,
		EntityID: app.ID,
		Payload:  events.ApplicationStatusChangedPayload{Status: app.Status},
	})
	return app, nil
}

func applicationNotFound(id int64) error {
	return apperrors.NewNotFound("application", map[string]any{"id": id})
}
