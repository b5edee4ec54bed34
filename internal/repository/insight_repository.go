package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"socialdash/internal/apperrors"
	"socialdash/internal/models"
)

type insightRepository struct {
	db *sqlx.DB
}

func NewInsightRepository(db *sqlx.DB) InsightRepository {
	return &insightRepository{db: db}
}

// ListEntities returns the user's entities, all platforms when platform is empty.
func (r *insightRepository) ListEntities(ctx context.Context, userID, platform string) ([]models.PlatformEntity, error) {
	entities := make([]models.PlatformEntity, 0)

	query := `
		SELECT user_id, platform, entity_id, name
		FROM platform_entities
		WHERE user_id = $1 AND ($2 = '' OR platform = $2)
		ORDER BY platform, entity_id
	`

	err := r.db.SelectContext(ctx, &entities, query, userID, platform)
	if err != nil {
		return nil, apperrors.Storage("ошибка при получении сущностей платформы", err)
	}

	return entities, nil
}

// ListSamples reads samples with insight_date in [from, to], ascending by date.
func (r *insightRepository) ListSamples(ctx context.Context, userID string, entityIDs, metricNames []string, from, to time.Time) ([]models.InsightSample, error) {
	samples := make([]models.InsightSample, 0)
	if len(entityIDs) == 0 || len(metricNames) == 0 {
		return samples, nil
	}

	query := `
		SELECT platform_entity_id AS entity_id, metric_name, metric_value, insight_date
		FROM insights
		WHERE user_id = $1
			AND platform_entity_id = ANY($2)
			AND metric_name = ANY($3)
			AND insight_date BETWEEN $4 AND $5
		ORDER BY insight_date ASC
	`

	err := r.db.SelectContext(ctx, &samples, query,
		userID, pq.Array(entityIDs), pq.Array(metricNames), from, to)
	if err != nil {
		return nil, apperrors.Storage("ошибка при получении статистики", err)
	}

	return samples, nil
}
