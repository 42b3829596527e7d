package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/careerforge/portfolio-api/internal/domain/portfolio"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type postgresPortfolioRepo struct {
	db     PgxPool
	logger logger.Logger
}

func NewPostgresPortfolioRepo(db PgxPool, logger logger.Logger) portfolio.Repository {
	return &postgresPortfolioRepo{db: db, logger: logger}
}

var psqlPortfolio = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const portfolioColumns = "id, owner_id, title, theme, is_published, sections, created_at, updated_at"

func scanPortfolio(row pgx.Row, l logger.Logger) (*portfolio.Portfolio, error) {
	p := &portfolio.Portfolio{}
	var sectionBytes []byte

	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Theme,
		&p.IsPublished,
		&sectionBytes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("portfolio", "")
		}
		return nil, apperror.NewInternal("failed to scan portfolio row", err)
	}

	if err := json.Unmarshal(sectionBytes, &p.Sections); err != nil {
		l.Warn("Failed to unmarshal portfolio sections", zap.String("portfolio_id", p.ID.String()), zap.Error(err))
		p.Sections = portfolio.DefaultSections()
	}

	return p, nil
}

func scanPortfolios(rows pgx.Rows, l logger.Logger) ([]*portfolio.Portfolio, error) {
	defer rows.Close()
	portfolios := make([]*portfolio.Portfolio, 0)

	for rows.Next() {
		p, err := scanPortfolio(rows, l)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating portfolio rows", err)
	}
	return portfolios, nil
}

func (r *postgresPortfolioRepo) Save(ctx context.Context, p *portfolio.Portfolio) error {
	sectionBytes, err := json.Marshal(p.Sections)
	if err != nil {
		return apperror.NewInternal("failed to marshal portfolio sections", err)
	}

	query := `
		INSERT INTO portfolios (id, owner_id, title, theme, is_published, sections, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.OwnerID, p.Title, p.Theme, p.IsPublished,
		sectionBytes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save portfolio", err)
	}
	return nil
}

// Update is a full-row write scoped to the owner. Zero rows affected means
// the row is missing or belongs to someone else; both answer not-found.
func (r *postgresPortfolioRepo) Update(ctx context.Context, p *portfolio.Portfolio) error {
	sectionBytes, err := json.Marshal(p.Sections)
	if err != nil {
		return apperror.NewInternal("failed to marshal portfolio sections for update", err)
	}

	query := `
		UPDATE portfolios SET
			title = $2, theme = $3, is_published = $4, sections = $5, updated_at = NOW()
		WHERE id = $1 AND owner_id = $6
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.ID, p.Title, p.Theme, p.IsPublished, sectionBytes, p.OwnerID,
	)
	if err != nil {
		return apperror.NewInternal("failed to update portfolio", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("portfolio", p.ID.String())
	}
	return nil
}

func (r *postgresPortfolioRepo) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	query := `DELETE FROM portfolios WHERE id = $1 AND owner_id = $2`
	cmdTag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return apperror.NewInternal("failed to delete portfolio", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("portfolio", id.String())
	}
	return nil
}

func (r *postgresPortfolioRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	query := `
		SELECT ` + portfolioColumns + `
		FROM portfolios
		WHERE id = $1 AND owner_id = $2
	`
	row := r.db.QueryRow(ctx, query, id, ownerID)
	return scanPortfolio(row, r.logger)
}

func (r *postgresPortfolioRepo) FindPublished(ctx context.Context, id uuid.UUID) (*portfolio.Portfolio, error) {
	query := `
		SELECT ` + portfolioColumns + `
		FROM portfolios
		WHERE id = $1 AND is_published = true
	`
	row := r.db.QueryRow(ctx, query, id)
	return scanPortfolio(row, r.logger)
}

func (r *postgresPortfolioRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*portfolio.Portfolio, error) {
	builder := psqlPortfolio.Select(portfolioColumns).
		From("portfolios").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list portfolios query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query portfolios by owner", err)
	}

	return scanPortfolios(rows, r.logger)
}
