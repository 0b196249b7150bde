package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/onboarding-api/internal/config"
	"github.com/spec-kit/onboarding-api/internal/events"
	"github.com/spec-kit/onboarding-api/internal/observability"
	"github.com/spec-kit/onboarding-api/internal/repository/memstore"
)

func TestNotificationService_HandlesApplicationEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	notifier := NewNotificationService(dispatcher, zap.New(core), observability.NewMetrics(), config.NotificationConfig{
		EmailFrom:  "noreply@example.com",
		WebhookURL: "https://hooks.example.com/onboarding",
	})
	notifier.RegisterHandlers()

	svc := NewApplicationService(ApplicationDependencies{
		ApplicationRepo: memstore.NewApplicationStore(nil),
		Dispatcher:      dispatcher,
	})
	app, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), app.ID, "approved")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("ApplicationSubmitted").Len())
	assert.Equal(t, 1, logs.FilterMessage("ApplicationStatusChanged").Len())
	assert.Equal(t, 2, logs.FilterMessage("sendWebhookNotificationStub").Len())
	assert.Equal(t, 2, logs.FilterMessage("sendEmailNotificationStub").Len())
}

func TestNotificationService_SkipsUnconfiguredChannels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.New(core), nil, config.NotificationConfig{}).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventUserRegistered, EntityID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("UserRegistered").Len())
	assert.Equal(t, 0, logs.FilterMessage("sendEmailNotificationStub").Len())
}

func TestNotificationService_NilDispatcher(t *testing.T) {
	NewNotificationService(nil, zap.NewNop(), nil, config.NotificationConfig{}).RegisterHandlers()
}
