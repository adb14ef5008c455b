package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-management/internal/async"
	"github.com/spec-kit/agent-management/internal/domain"
	"github.com/spec-kit/agent-management/internal/repository"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

// MailTransport dispatches a composed message. The SMTP mechanics live
// behind this seam; the service owns only validation, resolution and
// the logging contract around a send.
type MailTransport interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// MailService composes and sends outbound client email.
type MailService struct {
	collab    repository.CollaborationRepository
	transport MailTransport
	pool      *async.Pool
	logger    *zap.Logger
}

// MailDependencies bundles collaborators for the mail service.
type MailDependencies struct {
	CollaborationRepo repository.CollaborationRepository
	Transport         MailTransport
	Logger            *zap.Logger
	Workers           int
	QueueSize         int
}

// NewMailService constructs the service with its worker pool.
func NewMailService(deps MailDependencies) *MailService {
	return &MailService{
		collab:    deps.CollaborationRepo,
		transport: deps.Transport,
		pool:      async.NewPool("mail-service", deps.Workers, deps.QueueSize, deps.Logger),
		logger:    deps.Logger,
	}
}

// SendEmail validates the request, resolves both parties, dispatches the
// message and logs it. The identifier check runs before any lookup. A
// transport failure aborts before anything is logged; a log failure
// after a successful send resolves to the dedicated email-log error so
// operators can reconcile without re-sending.
func (s *MailService) SendEmail(ctx context.Context, request domain.EmailRequest) *async.Future[struct{}] {
	return async.Run(s.pool, func() (struct{}, error) {
		return struct{}{}, s.sendEmail(ctx, request)
	})
}

func (s *MailService) sendEmail(ctx context.Context, request domain.EmailRequest) error {
	if request.EmployeeID == nil || request.ClientID == nil {
		return apperrors.NewValidationError("employee and client identifiers are required", nil)
	}

	employee, err := s.collab.FindEmployeeByID(ctx, *request.EmployeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return apperrors.NewValidationError(
			fmt.Sprintf("employee not found: %d", *request.EmployeeID), nil)
	}

	client, err := s.collab.FindClientByID(ctx, *request.ClientID)
	if err != nil {
		return err
	}
	if client == nil {
		return apperrors.NewValidationError(
			fmt.Sprintf("client not found: %d", *request.ClientID), nil)
	}

	if strings.TrimSpace(employee.Email) == "" {
		return apperrors.NewStateError("employee email address is not configured")
	}
	if strings.TrimSpace(client.Email) == "" {
		return apperrors.NewStateError("client email address is not configured")
	}

	if err := s.transport.Send(ctx, employee.Email, client.Email, request.Subject, request.Body); err != nil {
		return apperrors.NewMailTransportError(err)
	}

	if err := s.collab.LogEmail(ctx, employee.ID, client.ID, request.Subject, request.Body); err != nil {
		// the send already happened and must not be retried
		s.logger.Error("email sent but log write failed",
			zap.Int64("employee_id", employee.ID),
			zap.Int64("client_id", client.ID),
			zap.Error(err))
		return apperrors.NewEmailLogError(err)
	}
	return nil
}

// Close drains the worker pool.
func (s *MailService) Close() {
	s.pool.Shutdown()
}
