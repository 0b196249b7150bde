package worker

import (
	"github.com/spec-kit/onboarding-api/internal/service"
)

// StartNotificationWorker registers notification handlers on the dispatcher
// so application and account events reach the notification stubs.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
