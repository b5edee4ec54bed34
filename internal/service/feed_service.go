package service

import (
	"context"
	"strings"

	"socialdash/internal/apperrors"
	"socialdash/internal/models"
	"socialdash/internal/repository"
)

type CreatePostRequest struct {
	Content string `json:"content"`
}

// FeedService manages the internal feed. Feed posts never leave the service.
type FeedService interface {
	CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*models.Post, error)
	ListPosts(ctx context.Context, userID string) ([]*models.Post, error)
}

type feedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository) FeedService {
	return &feedService{postRepo: postRepo, userRepo: userRepo}
}

func (f *feedService) CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*models.Post, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.Validation("content обязателен")
	}

	post := &models.Post{
		UserID:  userID,
		Content: content,
	}

	if err := f.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if user, err := f.userRepo.GetUserByID(ctx, userID); err == nil {
		post.Name = user.Name
	}

	return post, nil
}

func (f *feedService) ListPosts(ctx context.Context, userID string) ([]*models.Post, error) {
	return f.postRepo.ListByUser(ctx, userID)
}
