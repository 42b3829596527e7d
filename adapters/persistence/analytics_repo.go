package persistence

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/careerforge/portfolio-api/internal/domain/analytics"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

// postgresAnalyticsRepo is append-only: events are never updated or deleted
// through the application.
type postgresAnalyticsRepo struct {
	db     PgxPool
	logger logger.Logger
}

func NewPostgresAnalyticsRepo(db PgxPool, logger logger.Logger) analytics.Repository {
	return &postgresAnalyticsRepo{db: db, logger: logger}
}

func (r *postgresAnalyticsRepo) Append(ctx context.Context, e *analytics.Event) error {
	metaBytes, err := json.Marshal(e.Metadata)
	if err != nil {
		return apperror.NewInternal("failed to marshal event metadata", err)
	}

	query := `
		INSERT INTO portfolio_analytics (id, portfolio_id, event_type, visitor_ip, user_agent, referrer, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query,
		e.ID, e.PortfolioID, e.Type, e.VisitorIP, e.UserAgent, e.Referrer,
		metaBytes, e.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to append analytics event", err)
	}
	return nil
}

func (r *postgresAnalyticsRepo) ListRecent(ctx context.Context, portfolioID uuid.UUID, limit int) ([]*analytics.Event, error) {
	query := `
		SELECT id, portfolio_id, event_type, visitor_ip, user_agent, referrer, metadata, created_at
		FROM portfolio_analytics
		WHERE portfolio_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, portfolioID, limit)
	if err != nil {
		return nil, apperror.NewInternal("failed to query analytics events", err)
	}
	defer rows.Close()

	events := make([]*analytics.Event, 0)
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating analytics rows", err)
	}
	return events, nil
}

func (r *postgresAnalyticsRepo) scanEvent(row pgx.Row) (*analytics.Event, error) {
	e := &analytics.Event{}
	var metaBytes []byte

	err := row.Scan(
		&e.ID,
		&e.PortfolioID,
		&e.Type,
		&e.VisitorIP,
		&e.UserAgent,
		&e.Referrer,
		&metaBytes,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, apperror.NewInternal("failed to scan analytics row", err)
	}

	if len(metaBytes) > 0 {
		if err := json.Unmarshal(metaBytes, &e.Metadata); err != nil {
			r.logger.Warn("Failed to unmarshal event metadata", zap.String("event_id", e.ID.String()), zap.Error(err))
		}
	}
	return e, nil
}
