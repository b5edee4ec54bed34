package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"socialdash/internal/apperrors"
	"socialdash/internal/models"
)

const postColumns = `id, user_id, platform, content, scheduled_time, media_url, status, external_id, published_at, created_at`

type scheduledPostRepository struct {
	db *sqlx.DB
}

func NewScheduledPostRepository(db *sqlx.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

func (r *scheduledPostRepository) Create(ctx context.Context, post *models.ScheduledPost) error {
	query := `
		INSERT INTO scheduled_posts (id, user_id, platform, content, scheduled_time, media_url, status, created_at)
		VALUES (:id, :user_id, :platform, :content, :scheduled_time, :media_url, :status, :created_at)
	`

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.Status = models.StatusPending
	post.CreatedAt = time.Now().UTC()

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return apperrors.Storage("ошибка при создании поста", err)
	}

	return nil
}

// GetByID only returns posts owned by userID.
func (r *scheduledPostRepository) GetByID(ctx context.Context, userID, postID string) (*models.ScheduledPost, error) {
	var post models.ScheduledPost

	query := `SELECT ` + postColumns + ` FROM scheduled_posts WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &post, query, postID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост %s не найден: %w", postID, apperrors.ErrNotFound)
		}
		return nil, apperrors.Storage("ошибка при получении поста", err)
	}

	return &post, nil
}

func (r *scheduledPostRepository) ListByUser(ctx context.Context, userID string) ([]*models.ScheduledPost, error) {
	posts := make([]*models.ScheduledPost, 0)

	query := `SELECT ` + postColumns + ` FROM scheduled_posts WHERE user_id = $1 ORDER BY scheduled_time ASC, created_at ASC`

	err := r.db.SelectContext(ctx, &posts, query, userID)
	if err != nil {
		return nil, apperrors.Storage("ошибка при получении постов", err)
	}

	return posts, nil
}

func (r *scheduledPostRepository) MarkPublished(ctx context.Context, userID, postID, externalID string, publishedAt time.Time) (bool, error) {
	query := `
		UPDATE scheduled_posts
		SET status = $1, external_id = $2, published_at = $3
		WHERE id = $4 AND user_id = $5 AND status = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		models.StatusPublished, externalID, publishedAt, postID, userID, models.StatusPending)
	if err != nil {
		return false, apperrors.Storage("ошибка при публикации поста", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Storage("ошибка при проверке обновленных строк", err)
	}

	return rowsAffected == 1, nil
}
