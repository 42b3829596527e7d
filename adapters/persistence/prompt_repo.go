package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/careerforge/portfolio-api/internal/domain/prompt"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type postgresPromptRepo struct {
	db     PgxPool
	logger logger.Logger
}

func NewPostgresPromptRepo(db PgxPool, logger logger.Logger) prompt.Repository {
	return &postgresPromptRepo{db: db, logger: logger}
}

// Find prefers an exact (category, industry) match and falls back to the
// category's generic template, the one stored with industry 'general'.
func (r *postgresPromptRepo) Find(ctx context.Context, category, industry string) (*prompt.Template, error) {
	query := `
		SELECT id, category, industry, prompt_template
		FROM ai_prompts
		WHERE category = $1 AND industry IN ($2, 'general')
		ORDER BY (industry = $2) DESC
		LIMIT 1
	`
	row := r.db.QueryRow(ctx, query, category, industry)

	t := &prompt.Template{}
	err := row.Scan(&t.ID, &t.Category, &t.Industry, &t.Body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("ai prompt", category)
		}
		return nil, apperror.NewInternal("failed to scan prompt row", err)
	}
	return t, nil
}

const promptCacheTTL = 10 * time.Minute

// cachedPromptRepo is a read-through cache in front of the postgres repo.
// Templates change rarely and are read on every section generation, so a
// short TTL keeps edits visible without hammering the table. Cache failures
// degrade to the database.
type cachedPromptRepo struct {
	inner  prompt.Repository
	rdb    *redis.Client
	logger logger.Logger
}

func NewCachedPromptRepo(inner prompt.Repository, rdb *redis.Client, logger logger.Logger) prompt.Repository {
	return &cachedPromptRepo{inner: inner, rdb: rdb, logger: logger}
}

func promptCacheKey(category, industry string) string {
	return "prompt:" + category + ":" + industry
}

func (r *cachedPromptRepo) Find(ctx context.Context, category, industry string) (*prompt.Template, error) {
	key := promptCacheKey(category, industry)

	if raw, err := r.rdb.Get(ctx, key).Bytes(); err == nil {
		var t prompt.Template
		if err := json.Unmarshal(raw, &t); err == nil {
			return &t, nil
		}
		r.logger.Warn("Corrupt prompt cache entry, falling through", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("Prompt cache read failed", zap.Error(err))
	}

	t, err := r.inner.Find(ctx, category, industry)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(t); err == nil {
		if err := r.rdb.Set(ctx, key, raw, promptCacheTTL).Err(); err != nil {
			r.logger.Warn("Prompt cache write failed", zap.Error(err))
		}
	}
	return t, nil
}
