package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/agent-management/internal/domain"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

type fakeTransport struct {
	mu    sync.Mutex
	sends []string
	err   error
}

func (f *fakeTransport) Send(_ context.Context, from, to, subject, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sends = append(f.sends, from+"->"+to+":"+subject)
	return nil
}

func newMailFixture(t *testing.T) (*MailService, *fakeCollabRepo, *fakeTransport) {
	t.Helper()
	repo := newFakeCollabRepo()
	transport := &fakeTransport{}
	svc := NewMailService(MailDependencies{
		CollaborationRepo: repo,
		Transport:         transport,
		Logger:            zap.NewNop(),
		Workers:           1,
		QueueSize:         4,
	})
	t.Cleanup(svc.Close)
	return svc, repo, transport
}

func seedParties(repo *fakeCollabRepo) {
	repo.employees[3] = domain.Employee{
		Person: domain.Person{ID: 3, Name: "Ada", Email: "ada@example.com"},
	}
	repo.clients[8] = domain.ClientContact{
		Person: domain.Person{ID: 8, Name: "Acme", Email: "billing@acme.example"},
	}
}

func emailRequest(employeeID, clientID int64) domain.EmailRequest {
	return domain.EmailRequest{
		EmployeeID: &employeeID,
		ClientID:   &clientID,
		Subject:    "Renewal",
		Body:       "Dear client",
	}
}

func TestMailServiceSendEmail(t *testing.T) {
	t.Run("resolves both parties, sends and logs", func(t *testing.T) {
		svc, repo, transport := newMailFixture(t)
		seedParties(repo)

		_, err := svc.SendEmail(context.Background(), emailRequest(3, 8)).Wait(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"ada@example.com->billing@acme.example:Renewal"}, transport.sends)
		require.Len(t, repo.emailLog, 1)
	})

	t.Run("missing identifiers fail before any lookup", func(t *testing.T) {
		svc, repo, _ := newMailFixture(t)
		seedParties(repo)

		_, err := svc.SendEmail(context.Background(), domain.EmailRequest{Subject: "x"}).Wait(context.Background())
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, apperrors.CodeValidation, domainErr.Code)
		require.Zero(t, repo.employeeLookups)
		require.Zero(t, repo.clientLookups)
	})

	t.Run("unknown employee is a validation failure", func(t *testing.T) {
		svc, repo, transport := newMailFixture(t)
		seedParties(repo)

		_, err := svc.SendEmail(context.Background(), emailRequest(99, 8)).Wait(context.Background())
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, apperrors.CodeValidation, domainErr.Code)
		require.Empty(t, transport.sends)
	})

	t.Run("blank client email is an invalid-state failure", func(t *testing.T) {
		svc, repo, transport := newMailFixture(t)
		seedParties(repo)
		client := repo.clients[8]
		client.Email = "  "
		repo.clients[8] = client

		_, err := svc.SendEmail(context.Background(), emailRequest(3, 8)).Wait(context.Background())
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, apperrors.CodeInvalidState, domainErr.Code)
		require.Empty(t, transport.sends)
		require.Empty(t, repo.emailLog)
	})

	t.Run("transport failure logs nothing", func(t *testing.T) {
		svc, repo, transport := newMailFixture(t)
		seedParties(repo)
		transport.err = errors.New("smtp unreachable")

		_, err := svc.SendEmail(context.Background(), emailRequest(3, 8)).Wait(context.Background())
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, apperrors.CodeMailTransport, domainErr.Code)
		require.Empty(t, repo.emailLog)
	})

	t.Run("log failure after a send reports the partial consequence", func(t *testing.T) {
		svc, repo, transport := newMailFixture(t)
		seedParties(repo)
		repo.logErr = errors.New("disk full")

		_, err := svc.SendEmail(context.Background(), emailRequest(3, 8)).Wait(context.Background())
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, apperrors.CodeEmailLog, domainErr.Code)
		require.Len(t, transport.sends, 1, "the message went out before the log failure")
	})
}
