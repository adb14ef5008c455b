package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agent-management/internal/domain"
	apperrors "github.com/spec-kit/agent-management/pkg/util"
)

// UserRepository looks up login accounts. Accounts are provisioned out
// of band; this service only reads them for credential checks.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository instantiates the repository.
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, created_at
        FROM users WHERE username=$1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("unable to find user", err)
	}
	return &user, nil
}
