package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/careerforge/portfolio-api/internal/domain/generation"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type postgresGenerationRepo struct {
	db     PgxPool
	logger logger.Logger
}

func NewPostgresGenerationRepo(db PgxPool, logger logger.Logger) generation.Repository {
	return &postgresGenerationRepo{db: db, logger: logger}
}

var psqlGeneration = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const generationColumns = "id, owner_id, portfolio_id, generation_type, input_data, status, generated_content, error_message, created_at, updated_at"

func scanGeneration(row pgx.Row, l logger.Logger) (*generation.Record, error) {
	rec := &generation.Record{}
	var inputBytes []byte
	var contentBytes []byte
	var errMsg *string

	err := row.Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.PortfolioID,
		&rec.Type,
		&inputBytes,
		&rec.Status,
		&contentBytes,
		&errMsg,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("ai generation", "")
		}
		return nil, apperror.NewInternal("failed to scan generation row", err)
	}

	if err := json.Unmarshal(inputBytes, &rec.Input); err != nil {
		l.Warn("Failed to unmarshal generation input", zap.String("generation_id", rec.ID.String()), zap.Error(err))
	}
	if len(contentBytes) > 0 {
		rec.GeneratedContent = json.RawMessage(contentBytes)
	}
	if errMsg != nil {
		rec.ErrorMessage = *errMsg
	}

	return rec, nil
}

func (r *postgresGenerationRepo) Save(ctx context.Context, rec *generation.Record) error {
	inputBytes, err := json.Marshal(rec.Input)
	if err != nil {
		return apperror.NewInternal("failed to marshal generation input", err)
	}

	query := `
		INSERT INTO ai_generations (id, owner_id, portfolio_id, generation_type, input_data, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query,
		rec.ID, rec.OwnerID, rec.PortfolioID, rec.Type,
		inputBytes, rec.Status, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save generation record", err)
	}
	return nil
}

// MarkCompleted only moves a processing record; a record already terminal
// stays as it is.
func (r *postgresGenerationRepo) MarkCompleted(ctx context.Context, id uuid.UUID, content json.RawMessage) error {
	query := `
		UPDATE ai_generations SET
			status = $2, generated_content = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`
	cmdTag, err := r.db.Exec(ctx, query, id, generation.StatusCompleted, []byte(content), generation.StatusProcessing)
	if err != nil {
		return apperror.NewInternal("failed to mark generation completed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("ai generation", id.String())
	}
	return nil
}

func (r *postgresGenerationRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE ai_generations SET
			status = $2, error_message = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`
	cmdTag, err := r.db.Exec(ctx, query, id, generation.StatusFailed, reason, generation.StatusProcessing)
	if err != nil {
		return apperror.NewInternal("failed to mark generation failed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("ai generation", id.String())
	}
	return nil
}

func (r *postgresGenerationRepo) FindByID(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*generation.Record, error) {
	query := `
		SELECT ` + generationColumns + `
		FROM ai_generations
		WHERE id = $1 AND owner_id = $2
	`
	row := r.db.QueryRow(ctx, query, id, ownerID)
	return scanGeneration(row, r.logger)
}

func (r *postgresGenerationRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*generation.Record, error) {
	builder := psqlGeneration.Select(generationColumns).
		From("ai_generations").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list generations query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query generations by owner", err)
	}
	defer rows.Close()

	records := make([]*generation.Record, 0)
	for rows.Next() {
		rec, err := scanGeneration(rows, r.logger)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating generation rows", err)
	}
	return records, nil
}
