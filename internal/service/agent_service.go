package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-management/internal/async"
	"github.com/spec-kit/agent-management/internal/domain"
	"github.com/spec-kit/agent-management/internal/events"
	"github.com/spec-kit/agent-management/internal/repository"
)

// AgentService coordinates agent CRUD workflows. Every public operation
// runs on the service's own worker pool and returns a future; a
// lifecycle event goes out after each successful write, never on
// failure, and never more than once per mutation.
type AgentService struct {
	agents    repository.AgentRepository
	publisher *events.Publisher
	pool      *async.Pool
	logger    *zap.Logger
}

// AgentDependencies bundles collaborators for the agent service.
type AgentDependencies struct {
	AgentRepo repository.AgentRepository
	Publisher *events.Publisher
	Logger    *zap.Logger
	Workers   int
	QueueSize int
}

// NewAgentService constructs the service with its worker pool.
func NewAgentService(deps AgentDependencies) *AgentService {
	return &AgentService{
		agents:    deps.AgentRepo,
		publisher: deps.Publisher,
		pool:      async.NewPool("agent-service", deps.Workers, deps.QueueSize, deps.Logger),
		logger:    deps.Logger,
	}
}

// ListAll returns every agent, ordered by id.
func (s *AgentService) ListAll(ctx context.Context) *async.Future[[]domain.Agent] {
	return async.Run(s.pool, func() ([]domain.Agent, error) {
		return s.agents.FindAll(ctx)
	})
}

// GetByID resolves to the agent or nil when absent.
func (s *AgentService) GetByID(ctx context.Context, id int64) *async.Future[*domain.Agent] {
	return async.Run(s.pool, func() (*domain.Agent, error) {
		return s.agents.FindByID(ctx, id)
	})
}

// Create builds an agent from the input, persists it atomically and
// publishes the created event.
func (s *AgentService) Create(ctx context.Context, input domain.AgentInput) *async.Future[*domain.Agent] {
	return async.Run(s.pool, func() (*domain.Agent, error) {
		agent := domain.NewAgent(input)
		saved, err := s.agents.Save(ctx, agent)
		if err != nil {
			return nil, err
		}
		s.publisher.PublishCreated(saved)
		return saved, nil
	})
}

// Update overlays the input onto the stored agent and replaces it. A
// missing id resolves to nil with no error and no event.
func (s *AgentService) Update(ctx context.Context, id int64, input domain.AgentInput) *async.Future[*domain.Agent] {
	return async.Run(s.pool, func() (*domain.Agent, error) {
		existing, err := s.agents.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, nil
		}
		existing.ApplyInput(input)
		updated, err := s.agents.Update(ctx, id, existing)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			// lost the race against a concurrent delete
			return nil, nil
		}
		s.publisher.PublishUpdated(updated)
		return updated, nil
	})
}

// Delete removes the agent. A missing id resolves to false with no
// event; a successful delete publishes exactly one deleted event.
func (s *AgentService) Delete(ctx context.Context, id int64) *async.Future[bool] {
	return async.Run(s.pool, func() (bool, error) {
		existing, err := s.agents.FindByID(ctx, id)
		if err != nil {
			return false, err
		}
		if existing == nil {
			return false, nil
		}
		if err := s.agents.Delete(ctx, id); err != nil {
			return false, err
		}
		s.publisher.PublishDeleted(id)
		return true, nil
	})
}

// Close drains the worker pool. In-flight tasks finish; new submissions
// are rejected.
func (s *AgentService) Close() {
	s.pool.Shutdown()
}
