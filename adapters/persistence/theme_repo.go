package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/careerforge/portfolio-api/internal/domain/theme"
	"github.com/careerforge/portfolio-api/pkg/apperror"
	"github.com/careerforge/portfolio-api/pkg/logger"
)

type postgresThemeRepo struct {
	db     PgxPool
	logger logger.Logger
}

func NewPostgresThemeRepo(db PgxPool, logger logger.Logger) theme.Repository {
	return &postgresThemeRepo{db: db, logger: logger}
}

func (r *postgresThemeRepo) ListAll(ctx context.Context) ([]*theme.Theme, error) {
	query := `
		SELECT id, name, display_name, description, config, is_premium, preview_url, created_at
		FROM portfolio_themes
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewInternal("failed to query themes", err)
	}
	defer rows.Close()

	themes := make([]*theme.Theme, 0)
	for rows.Next() {
		t := &theme.Theme{}
		var configBytes []byte
		err := rows.Scan(&t.ID, &t.Name, &t.DisplayName, &t.Description, &configBytes, &t.IsPremium, &t.PreviewURL, &t.CreatedAt)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan theme row", err)
		}
		if len(configBytes) > 0 {
			if err := json.Unmarshal(configBytes, &t.Config); err != nil {
				r.logger.Warn("Failed to unmarshal theme config", zap.String("theme", t.Name), zap.Error(err))
			}
		}
		themes = append(themes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating theme rows", err)
	}
	return themes, nil
}

const (
	themeCacheKey = "themes:all"
	themeCacheTTL = time.Hour
)

// cachedThemeRepo caches the full catalog under one key. The catalog is tiny
// and effectively static between deploys.
type cachedThemeRepo struct {
	inner  theme.Repository
	rdb    *redis.Client
	logger logger.Logger
}

func NewCachedThemeRepo(inner theme.Repository, rdb *redis.Client, logger logger.Logger) theme.Repository {
	return &cachedThemeRepo{inner: inner, rdb: rdb, logger: logger}
}

func (r *cachedThemeRepo) ListAll(ctx context.Context) ([]*theme.Theme, error) {
	if raw, err := r.rdb.Get(ctx, themeCacheKey).Bytes(); err == nil {
		var themes []*theme.Theme
		if err := json.Unmarshal(raw, &themes); err == nil {
			return themes, nil
		}
		r.logger.Warn("Corrupt theme cache entry, falling through")
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("Theme cache read failed", zap.Error(err))
	}

	themes, err := r.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(themes); err == nil {
		if err := r.rdb.Set(ctx, themeCacheKey, raw, themeCacheTTL).Err(); err != nil {
			r.logger.Warn("Theme cache write failed", zap.Error(err))
		}
	}
	return themes, nil
}
