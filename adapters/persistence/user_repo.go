package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/careerforge/portfolio-api/internal/domain/user"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type postgresUserRepo struct {
	db     PgxPool
	logger logger.Logger
}

func NewPostgresUserRepo(db PgxPool, logger logger.Logger) user.Repository {
	return &postgresUserRepo{db: db, logger: logger}
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, name, password_hash
		FROM users
		WHERE email = $1
	`
	row := r.db.QueryRow(ctx, query, email)

	u := &user.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, apperror.NewInternal("failed to scan user row", err)
	}
	return u, nil
}
