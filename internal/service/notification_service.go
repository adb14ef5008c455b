package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-management/internal/config"
	"github.com/spec-kit/agent-management/internal/events"
)

// NotificationService reacts to agent lifecycle events with structured
// logs and notification stubs. It is a plain event listener; failures
// here never reach the mutation that triggered the event.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{logger: logger, cfg: cfg}
}

// OnAgentEvent implements events.AgentListener.
func (n *NotificationService) OnAgentEvent(event events.AgentEvent) {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int64("agent_id", event.AgentID),
	}
	if event.Agent != nil {
		fields = append(fields, zap.String("agent_code", event.Agent.Code))
	}
	n.logger.Info("agent event", fields...)

	n.sendEmailNotificationStub(event)
	n.sendWebhookNotificationStub(event)
}

func (n *NotificationService) sendEmailNotificationStub(event events.AgentEvent) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("agent_id", event.AgentID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(event events.AgentEvent) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("agent_id", event.AgentID),
		zap.String("event_type", string(event.Type)))
}
