package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agent-management/internal/domain"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

// AgentRepository encapsulates agent persistence. An agent spans a
// person row and an agent-role row; Save and Update write both inside
// one transaction so the aggregate is never partially persisted.
//
// Lookups report absence as a nil aggregate with a nil error; every
// non-nil error wraps a storage-level cause.
type AgentRepository interface {
	FindAll(ctx context.Context) ([]domain.Agent, error)
	FindByID(ctx context.Context, id int64) (*domain.Agent, error)
	Save(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	Update(ctx context.Context, id int64, agent *domain.Agent) (*domain.Agent, error)
	Delete(ctx context.Context, id int64) error
}

type agentRepository struct {
	db DB
}

// NewAgentRepository instantiates the repository.
func NewAgentRepository(db DB) AgentRepository {
	return &agentRepository{db: db}
}

const agentSelect = `
        SELECT a.person_id, p.full_name, p.email, p.phone,
               a.code, a.region, a.status, a.last_update
        FROM agents a
        JOIN persons p ON a.person_id = p.id`

func (r *agentRepository) FindAll(ctx context.Context) ([]domain.Agent, error) {
	rows, err := r.db.Query(ctx, agentSelect+` ORDER BY a.person_id`)
	if err != nil {
		return nil, apperrors.NewStorageError("unable to retrieve agents", err)
	}
	defer rows.Close()

	var result []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		if err := scanAgent(rows, &agent); err != nil {
			return nil, apperrors.NewStorageError("unable to retrieve agents", err)
		}
		result = append(result, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("unable to retrieve agents", err)
	}
	return result, nil
}

func (r *agentRepository) FindByID(ctx context.Context, id int64) (*domain.Agent, error) {
	var agent domain.Agent
	err := scanAgent(r.db.QueryRow(ctx, agentSelect+` WHERE a.person_id=$1`, id), &agent)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("unable to retrieve agent", err)
	}
	return &agent, nil
}

// Save inserts the person and agent-role rows atomically and returns the
// aggregate carrying its generated identity.
func (r *agentRepository) Save(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("unable to save agent", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertPerson = `
        INSERT INTO persons (full_name, email, phone)
        VALUES ($1,$2,$3)
        RETURNING id`
	if err := tx.QueryRow(ctx, insertPerson, agent.Name, agent.Email, agent.Phone).Scan(&agent.ID); err != nil {
		return nil, apperrors.NewStorageError("unable to save agent", err)
	}

	const insertAgent = `
        INSERT INTO agents (person_id, code, region, status, last_update)
        VALUES ($1,$2,$3,$4,$5)`
	if _, err := tx.Exec(ctx, insertAgent, agent.ID, agent.Code, agent.Region, agent.Status, agent.LastUpdate); err != nil {
		return nil, apperrors.NewStorageError("unable to save agent", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.NewStorageError("unable to save agent", err)
	}
	return agent, nil
}

// Update fully replaces the business fields of both rows, refreshing the
// last-update timestamp. A vanished agent yields (nil, nil).
func (r *agentRepository) Update(ctx context.Context, id int64, agent *domain.Agent) (*domain.Agent, error) {
	agent.LastUpdate = time.Now()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("unable to update agent", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const updatePerson = `
        UPDATE persons SET full_name=$1, email=$2, phone=$3 WHERE id=$4`
	if _, err := tx.Exec(ctx, updatePerson, agent.Name, agent.Email, agent.Phone, id); err != nil {
		return nil, apperrors.NewStorageError("unable to update agent", err)
	}

	const updateAgent = `
        UPDATE agents SET code=$1, region=$2, status=$3, last_update=$4 WHERE person_id=$5`
	cmd, err := tx.Exec(ctx, updateAgent, agent.Code, agent.Region, agent.Status, agent.LastUpdate, id)
	if err != nil {
		return nil, apperrors.NewStorageError("unable to update agent", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.NewStorageError("unable to update agent", err)
	}
	agent.ID = id
	return agent, nil
}

// Delete removes the person row; the agent-role row goes with it via the
// foreign-key cascade.
func (r *agentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM persons WHERE id=$1`, id); err != nil {
		return apperrors.NewStorageError("unable to delete agent", err)
	}
	return nil
}

func scanAgent(row pgx.Row, agent *domain.Agent) error {
	return row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.Email,
		&agent.Phone,
		&agent.Code,
		&agent.Region,
		&agent.Status,
		&agent.LastUpdate,
	)
}
