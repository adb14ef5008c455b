package worker

import (
	"github.com/spec-kit/agent-management/internal/events"
	"github.com/spec-kit/agent-management/internal/service"
)

// StartNotificationWorker registers the notification listener on the
// agent event pipeline.
func StartNotificationWorker(publisher *events.Publisher, notifications *service.NotificationService) {
	if publisher == nil || notifications == nil {
		return
	}
	publisher.Register(notifications)
}
