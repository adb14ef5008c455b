package events

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/agent-management/internal/domain"
)

type recordingListener struct {
	name   string
	events []AgentEvent
	order  *[]string
}

func (l *recordingListener) OnAgentEvent(event AgentEvent) {
	l.events = append(l.events, event)
	if l.order != nil {
		*l.order = append(*l.order, l.name)
	}
}

type panickyListener struct{}

func (panickyListener) OnAgentEvent(AgentEvent) { panic("listener exploded") }

func sampleAgent() *domain.Agent {
	return &domain.Agent{
		Person: domain.Person{ID: 9, Name: "Marta Rossi"},
		Code:   "AG-9",
		Status: domain.AgentStatusActive,
	}
}

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	publisher := NewPublisher(zap.NewNop())

	var order []string
	first := &recordingListener{name: "first", order: &order}
	second := &recordingListener{name: "second", order: &order}
	publisher.Register(first)
	publisher.Register(second)

	publisher.PublishCreated(sampleAgent())

	require.Equal(t, []string{"first", "second"}, order)
	require.Len(t, first.events, 1)
	require.Equal(t, EventAgentCreated, first.events[0].Type)
	require.Equal(t, int64(9), first.events[0].AgentID)
	require.NotEmpty(t, first.events[0].ID)
	require.NotNil(t, first.events[0].Agent)
}

func TestDoubleRegistrationDeliversTwice(t *testing.T) {
	publisher := NewPublisher(zap.NewNop())
	listener := &recordingListener{}
	publisher.Register(listener)
	publisher.Register(listener)

	publisher.PublishUpdated(sampleAgent())

	require.Len(t, listener.events, 2)
}

func TestPanickingListenerDoesNotBlockOthers(t *testing.T) {
	publisher := NewPublisher(zap.NewNop())
	survivor := &recordingListener{}
	publisher.Register(panickyListener{})
	publisher.Register(survivor)

	publisher.PublishDeleted(9)

	require.Len(t, survivor.events, 1)
	require.Equal(t, EventAgentDeleted, survivor.events[0].Type)
	require.Nil(t, survivor.events[0].Agent, "deletion events carry no agent payload")
}

func TestUnregisterStopsDelivery(t *testing.T) {
	publisher := NewPublisher(zap.NewNop())
	listener := &recordingListener{}
	publisher.Register(listener)
	publisher.Unregister(listener)

	publisher.PublishCreated(sampleAgent())

	require.Empty(t, listener.events)
}

func TestUnregisterRemovesOnlyOneRegistration(t *testing.T) {
	publisher := NewPublisher(zap.NewNop())
	listener := &recordingListener{}
	publisher.Register(listener)
	publisher.Register(listener)
	publisher.Unregister(listener)

	publisher.PublishCreated(sampleAgent())

	require.Len(t, listener.events, 1)
}

func TestEventIDsAreUnique(t *testing.T) {
	publisher := NewPublisher(zap.NewNop())
	listener := &recordingListener{}
	publisher.Register(listener)

	publisher.PublishCreated(sampleAgent())
	publisher.PublishCreated(sampleAgent())

	require.Len(t, listener.events, 2)
	require.NotEqual(t, listener.events[0].ID, listener.events[1].ID)
}
