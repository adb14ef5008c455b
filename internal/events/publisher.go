package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/agent-management/internal/domain"
)

// Publisher broadcasts agent lifecycle events to registered listeners,
// synchronously and in registration order. Delivery is best effort: a
// panicking listener is recovered and the remaining listeners still
// receive the event.
type Publisher struct {
	mu        sync.RWMutex
	listeners []AgentListener
	logger    *zap.Logger
}

// NewPublisher creates an empty publisher.
func NewPublisher(logger *zap.Logger) *Publisher {
	return &Publisher{logger: logger}
}

// Register appends a listener. Registering the same listener twice
// yields duplicate delivery; callers own de-duplication.
func (p *Publisher) Register(listener AgentListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, listener)
}

// Unregister removes the first registration of the listener, if any.
func (p *Publisher) Unregister(listener AgentListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, registered := range p.listeners {
		if registered == listener {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			return
		}
	}
}

// PublishCreated announces a freshly persisted agent.
func (p *Publisher) PublishCreated(agent *domain.Agent) {
	p.publish(newEvent(EventAgentCreated, agent.ID, agent))
}

// PublishUpdated announces a replaced agent.
func (p *Publisher) PublishUpdated(agent *domain.Agent) {
	p.publish(newEvent(EventAgentUpdated, agent.ID, agent))
}

// PublishDeleted announces a deletion by id.
func (p *Publisher) PublishDeleted(agentID int64) {
	p.publish(newEvent(EventAgentDeleted, agentID, nil))
}

func newEvent(eventType EventType, agentID int64, agent *domain.Agent) AgentEvent {
	return AgentEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		AgentID:    agentID,
		Agent:      agent,
		OccurredAt: time.Now(),
	}
}

func (p *Publisher) publish(event AgentEvent) {
	p.mu.RLock()
	listeners := append([]AgentListener(nil), p.listeners...)
	p.mu.RUnlock()

	for _, listener := range listeners {
		p.deliver(listener, event)
	}
}

func (p *Publisher) deliver(listener AgentListener, event AgentEvent) {
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("agent event listener panicked",
					zap.String("event_id", event.ID),
					zap.String("event_type", string(event.Type)),
					zap.Int64("agent_id", event.AgentID),
					zap.Any("panic", r))
			}
		}
	}()
	listener.OnAgentEvent(event)
}
