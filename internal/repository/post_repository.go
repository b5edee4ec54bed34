package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"socialdash/internal/apperrors"
	"socialdash/internal/models"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts (id, user_id, content, created_at)
        VALUES (:id, :user_id, :content, :created_at)
    `

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.CreatedAt = time.Now().UTC()

	_, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return apperrors.Storage("ошибка при создании поста", err)
	}

	return nil
}

// ListByUser returns the user's feed, newest first, with the author name.
func (r *PostRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*models.Post, error) {
	query := `
        SELECT posts.id, posts.user_id, posts.content, posts.created_at, users.name
        FROM posts
        JOIN users ON posts.user_id = users.user_id
        WHERE posts.user_id = $1
        ORDER BY posts.created_at DESC
    `

	posts := make([]*models.Post, 0)
	err := r.DB.SelectContext(ctx, &posts, query, userID)
	if err != nil {
		return nil, apperrors.Storage("ошибка при получении постов", err)
	}

	return posts, nil
}
