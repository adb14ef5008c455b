package events

import (
	"time"

	"github.com/spec-kit/agent-management/internal/domain"
)

// EventType enumerates agent lifecycle events.
type EventType string

const (
	EventAgentCreated EventType = "agent_created"
	EventAgentUpdated EventType = "agent_updated"
	EventAgentDeleted EventType = "agent_deleted"
)

// AgentEvent is the envelope delivered to listeners. Agent is nil for
// deletions; AgentID is always set.
type AgentEvent struct {
	ID         string
	Type       EventType
	AgentID    int64
	Agent      *domain.Agent
	OccurredAt time.Time
}

// AgentListener receives agent lifecycle events. Implementations must
// tolerate being invoked on the mutating task's goroutine; a failure in
// one listener is isolated and never reaches the mutation's caller.
type AgentListener interface {
	OnAgentEvent(event AgentEvent)
}
