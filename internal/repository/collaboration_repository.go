package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agent-management/internal/domain"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

// CollaborationRepository manages persistence for teams, employees,
// clients, team chat and the outbound email log.
type CollaborationRepository interface {
	FindAllTeams(ctx context.Context) ([]domain.Team, error)
	FindMessagesByTeam(ctx context.Context, teamID int64) ([]domain.ChatMessage, error)
	SaveMessage(ctx context.Context, teamID, senderID int64, body string) (*domain.ChatMessage, error)
	IsMemberOfTeam(ctx context.Context, teamID, employeeID int64) (bool, error)
	FindAllEmployees(ctx context.Context) ([]domain.Employee, error)
	FindEmployeeByID(ctx context.Context, id int64) (*domain.Employee, error)
	FindAllClients(ctx context.Context) ([]domain.ClientContact, error)
	FindClientByID(ctx context.Context, id int64) (*domain.ClientContact, error)
	LogEmail(ctx context.Context, employeeID, clientID int64, subject, body string) error
}

type collaborationRepository struct {
	db DB
}

// NewCollaborationRepository instantiates the repository.
func NewCollaborationRepository(db DB) CollaborationRepository {
	return &collaborationRepository{db: db}
}

// FindAllTeams loads every team with its members in one joined query,
// grouped in team-name order.
func (r *collaborationRepository) FindAllTeams(ctx context.Context) ([]domain.Team, error) {
	const query = `
        SELECT t.id, t.name, t.description,
               p.id, p.full_name, p.email, p.phone, e.job_title
        FROM teams t
        LEFT JOIN team_members tm ON t.id = tm.team_id
        LEFT JOIN employees e ON tm.employee_id = e.person_id
        LEFT JOIN persons p ON e.person_id = p.id
        ORDER BY t.name, p.full_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError("unable to load teams", err)
	}
	defer rows.Close()

	var teams []domain.Team
	index := make(map[int64]int)
	for rows.Next() {
		var (
			teamID      int64
			name        string
			description string
			memberID    *int64
			memberName  *string
			memberEmail *string
			memberPhone *string
			jobTitle    *string
		)
		if err := rows.Scan(&teamID, &name, &description,
			&memberID, &memberName, &memberEmail, &memberPhone, &jobTitle); err != nil {
			return nil, apperrors.NewStorageError("unable to load teams", err)
		}
		pos, ok := index[teamID]
		if !ok {
			pos = len(teams)
			index[teamID] = pos
			teams = append(teams, domain.Team{ID: teamID, Name: name, Description: description})
		}
		if memberID != nil {
			teams[pos].Members = append(teams[pos].Members, domain.Employee{
				Person: domain.Person{
					ID:    *memberID,
					Name:  stringValue(memberName),
					Email: stringValue(memberEmail),
					Phone: stringValue(memberPhone),
				},
				JobTitle: stringValue(jobTitle),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("unable to load teams", err)
	}
	return teams, nil
}

const chatSelect = `
        SELECT m.id, m.team_id, m.sender_id, p.full_name, m.message, m.sent_at
        FROM team_chat_messages m
        JOIN persons p ON m.sender_id = p.id`

func (r *collaborationRepository) FindMessagesByTeam(ctx context.Context, teamID int64) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx, chatSelect+` WHERE m.team_id=$1 ORDER BY m.sent_at`, teamID)
	if err != nil {
		return nil, apperrors.NewStorageError("unable to load chat messages", err)
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := scanChatMessage(rows, &msg); err != nil {
			return nil, apperrors.NewStorageError("unable to load chat messages", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("unable to load chat messages", err)
	}
	return messages, nil
}

// SaveMessage enforces the membership precondition, inserts the row and
// re-reads it joined with the sender's name so the returned message is
// fully populated from storage.
func (r *collaborationRepository) SaveMessage(ctx context.Context, teamID, senderID int64, body string) (*domain.ChatMessage, error) {
	member, err := r.IsMemberOfTeam(ctx, teamID, senderID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("employee %d is not a member of team %d", senderID, teamID), nil)
	}

	const insert = `
        INSERT INTO team_chat_messages (team_id, sender_id, message)
        VALUES ($1,$2,$3)
        RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, insert, teamID, senderID, body).Scan(&id); err != nil {
		return nil, apperrors.NewStorageError("unable to store chat message", err)
	}

	var msg domain.ChatMessage
	if err := scanChatMessage(r.db.QueryRow(ctx, chatSelect+` WHERE m.id=$1`, id), &msg); err != nil {
		return nil, apperrors.NewStorageError("unable to fetch created chat message", err)
	}
	return &msg, nil
}

func (r *collaborationRepository) IsMemberOfTeam(ctx context.Context, teamID, employeeID int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM team_members WHERE team_id=$1 AND employee_id=$2`
	var count int
	if err := r.db.QueryRow(ctx, query, teamID, employeeID).Scan(&count); err != nil {
		return false, apperrors.NewStorageError("unable to verify team membership", err)
	}
	return count > 0, nil
}

const employeeSelect = `
        SELECT e.person_id, p.full_name, p.email, p.phone, e.job_title
        FROM employees e
        JOIN persons p ON e.person_id = p.id`

func (r *collaborationRepository) FindAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx, employeeSelect+` ORDER BY p.full_name`)
	if err != nil {
		return nil, apperrors.NewStorageError("unable to load employees", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := scanEmployee(rows, &employee); err != nil {
			return nil, apperrors.NewStorageError("unable to load employees", err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("unable to load employees", err)
	}
	return employees, nil
}

func (r *collaborationRepository) FindEmployeeByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var employee domain.Employee
	err := scanEmployee(r.db.QueryRow(ctx, employeeSelect+` WHERE e.person_id=$1`, id), &employee)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("unable to find employee", err)
	}
	return &employee, nil
}

const clientSelect = `
        SELECT c.person_id, p.full_name, p.email, p.phone, c.company_name, c.vat_number
        FROM clients c
        JOIN persons p ON c.person_id = p.id`

func (r *collaborationRepository) FindAllClients(ctx context.Context) ([]domain.ClientContact, error) {
	rows, err := r.db.Query(ctx, clientSelect+` ORDER BY p.full_name`)
	if err != nil {
		return nil, apperrors.NewStorageError("unable to load clients", err)
	}
	defer rows.Close()

	var clients []domain.ClientContact
	for rows.Next() {
		var client domain.ClientContact
		if err := scanClient(rows, &client); err != nil {
			return nil, apperrors.NewStorageError("unable to load clients", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("unable to load clients", err)
	}
	return clients, nil
}

func (r *collaborationRepository) FindClientByID(ctx context.Context, id int64) (*domain.ClientContact, error) {
	var client domain.ClientContact
	err := scanClient(r.db.QueryRow(ctx, clientSelect+` WHERE c.person_id=$1`, id), &client)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("unable to find client", err)
	}
	return &client, nil
}

// LogEmail appends an entry to the email log after a successful send.
func (r *collaborationRepository) LogEmail(ctx context.Context, employeeID, clientID int64, subject, body string) error {
	const insert = `
        INSERT INTO email_messages (employee_id, client_id, subject, body)
        VALUES ($1,$2,$3,$4)`
	if _, err := r.db.Exec(ctx, insert, employeeID, clientID, subject, body); err != nil {
		return apperrors.NewStorageError("unable to log email communication", err)
	}
	return nil
}

func scanChatMessage(row pgx.Row, msg *domain.ChatMessage) error {
	return row.Scan(&msg.ID, &msg.TeamID, &msg.SenderID, &msg.SenderName, &msg.Body, &msg.SentAt)
}

func scanEmployee(row pgx.Row, employee *domain.Employee) error {
	return row.Scan(&employee.ID, &employee.Name, &employee.Email, &employee.Phone, &employee.JobTitle)
}

func scanClient(row pgx.Row, client *domain.ClientContact) error {
	return row.Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.CompanyName, &client.VATNumber)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
