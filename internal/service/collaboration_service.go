package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-management/internal/async"
	"github.com/spec-kit/agent-management/internal/domain"
	"github.com/spec-kit/agent-management/internal/repository"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

// CollaborationService exposes async read access to teams, employees
// and clients, plus the team chat workflow.
type CollaborationService struct {
	collab repository.CollaborationRepository
	pool   *async.Pool
	logger *zap.Logger
}

// CollaborationDependencies bundles collaborators for the service.
type CollaborationDependencies struct {
	CollaborationRepo repository.CollaborationRepository
	Logger            *zap.Logger
	Workers           int
	QueueSize         int
}

// NewCollaborationService constructs the service with its worker pool.
func NewCollaborationService(deps CollaborationDependencies) *CollaborationService {
	return &CollaborationService{
		collab: deps.CollaborationRepo,
		pool:   async.NewPool("collaboration-service", deps.Workers, deps.QueueSize, deps.Logger),
		logger: deps.Logger,
	}
}

// ListTeams returns every team with its members.
func (s *CollaborationService) ListTeams(ctx context.Context) *async.Future[[]domain.Team] {
	return async.Run(s.pool, func() ([]domain.Team, error) {
		return s.collab.FindAllTeams(ctx)
	})
}

// ListEmployees returns all employee-role persons ordered by name.
func (s *CollaborationService) ListEmployees(ctx context.Context) *async.Future[[]domain.Employee] {
	return async.Run(s.pool, func() ([]domain.Employee, error) {
		return s.collab.FindAllEmployees(ctx)
	})
}

// ListClients returns all client contacts ordered by name.
func (s *CollaborationService) ListClients(ctx context.Context) *async.Future[[]domain.ClientContact] {
	return async.Run(s.pool, func() ([]domain.ClientContact, error) {
		return s.collab.FindAllClients(ctx)
	})
}

// ListMessages returns a team's chat history, oldest first.
func (s *CollaborationService) ListMessages(ctx context.Context, teamID int64) *async.Future[[]domain.ChatMessage] {
	return async.Run(s.pool, func() ([]domain.ChatMessage, error) {
		return s.collab.FindMessagesByTeam(ctx, teamID)
	})
}

// SendMessage appends a chat message. The repository enforces the
// membership precondition; a non-member sender resolves to a validation
// error the handler maps to a client error.
func (s *CollaborationService) SendMessage(ctx context.Context, teamID, senderID int64, body string) *async.Future[*domain.ChatMessage] {
	return async.Run(s.pool, func() (*domain.ChatMessage, error) {
		if strings.TrimSpace(body) == "" {
			return nil, apperrors.NewValidationError("message text must not be empty", nil)
		}
		return s.collab.SaveMessage(ctx, teamID, senderID, body)
	})
}

// Close drains the worker pool.
func (s *CollaborationService) Close() {
	s.pool.Shutdown()
}
