package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

func chatColumns() []string {
	return []string{"id", "team_id", "sender_id", "full_name", "message", "sent_at"}
}

func TestCollaborationRepositoryFindAllTeams(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCollaborationRepository(mock)

	name := "Ada"
	email := "ada@example.com"
	phone := ""
	title := "Engineer"
	memberID := int64(3)

	mock.ExpectQuery(`SELECT t\.id`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "description", "person_id", "full_name", "email", "phone", "job_title",
		}).
			AddRow(int64(1), "Alpha", "first team", &memberID, &name, &email, &phone, &title).
			AddRow(int64(2), "Beta", "", nil, nil, nil, nil, nil))

	teams, err := repo.FindAllTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Equal(t, "Alpha", teams[0].Name)
	require.Len(t, teams[0].Members, 1)
	require.Equal(t, int64(3), teams[0].Members[0].ID)
	require.Equal(t, "Ada", teams[0].Members[0].Name)
	require.Equal(t, "Engineer", teams[0].Members[0].JobTitle)
	require.Empty(t, teams[1].Members, "a memberless team still appears, with no members")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaborationRepositorySaveMessage(t *testing.T) {
	now := time.Now()

	t.Run("member insert re-reads the stored row", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCollaborationRepository(mock)

		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs(int64(1), int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`INSERT INTO team_chat_messages`).
			WithArgs(int64(1), int64(3), "hello").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(77)))
		mock.ExpectQuery(`SELECT m\.id`).
			WithArgs(int64(77)).
			WillReturnRows(pgxmock.NewRows(chatColumns()).
				AddRow(int64(77), int64(1), int64(3), "Ada", "hello", now))

		msg, err := repo.SaveMessage(context.Background(), 1, 3, "hello")
		require.NoError(t, err)
		require.Equal(t, int64(77), msg.ID)
		require.Equal(t, "Ada", msg.SenderName)
		require.Equal(t, "hello", msg.Body)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-member is rejected before any insert", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCollaborationRepository(mock)

		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs(int64(1), int64(9)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

		_, err := repo.SaveMessage(context.Background(), 1, 9, "hello")
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, apperrors.CodeValidation, domainErr.Code)
		require.NoError(t, mock.ExpectationsWereMet(), "no insert may happen for a non-member")
	})
}

func TestCollaborationRepositoryFindMessagesByTeam(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCollaborationRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT m\.id`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(chatColumns()).
			AddRow(int64(10), int64(1), int64(3), "Ada", "first", now).
			AddRow(int64(11), int64(1), int64(4), "Bob", "second", now.Add(time.Minute)))

	messages, err := repo.FindMessagesByTeam(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, "first", messages[0].Body)
	require.Equal(t, "Bob", messages[1].SenderName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollaborationRepositoryFindEmployeeByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCollaborationRepository(mock)

		mock.ExpectQuery(`SELECT e\.person_id`).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"person_id", "full_name", "email", "phone", "job_title"}).
				AddRow(int64(3), "Ada", "ada@example.com", "", "Engineer"))

		employee, err := repo.FindEmployeeByID(context.Background(), 3)
		require.NoError(t, err)
		require.NotNil(t, employee)
		require.Equal(t, "Ada", employee.Name)
	})

	t.Run("absent yields nil and nil", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCollaborationRepository(mock)

		mock.ExpectQuery(`SELECT e\.person_id`).
			WithArgs(int64(404)).
			WillReturnError(pgx.ErrNoRows)

		employee, err := repo.FindEmployeeByID(context.Background(), 404)
		require.NoError(t, err)
		require.Nil(t, employee)
	})
}

func TestCollaborationRepositoryLogEmail(t *testing.T) {
	t.Run("inserts a log row", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCollaborationRepository(mock)

		mock.ExpectExec(`INSERT INTO email_messages`).
			WithArgs(int64(3), int64(8), "Renewal", "Dear client").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.LogEmail(context.Background(), 3, 8, "Renewal", "Dear client"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps storage failures", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewCollaborationRepository(mock)

		mock.ExpectExec(`INSERT INTO email_messages`).
			WithArgs(int64(3), int64(8), "Renewal", "Dear client").
			WillReturnError(errors.New("disk full"))

		err := repo.LogEmail(context.Background(), 3, 8, "Renewal", "Dear client")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, apperrors.CodeStorage, domainErr.Code)
	})
}
