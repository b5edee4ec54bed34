package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"socialdash/internal/models"
	"socialdash/internal/security"
)

type Repository struct {
	User          UserRepository
	Credential    CredentialRepository
	ScheduledPost ScheduledPostRepository
	Post          PostRepository
	Insight       InsightRepository
	Tables        TablesRepository
}

func NewRepository(db *sqlx.DB, cipher security.TokenCipher) *Repository {
	return &Repository{
		User:          NewUserRepository(db),
		Credential:    NewCredentialRepository(db, cipher),
		ScheduledPost: NewScheduledPostRepository(db),
		Post:          NewPostRepository(db),
		Insight:       NewInsightRepository(db),
		Tables:        NewTablesRepository(db),
	}
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

// CredentialRepository stores one token pair per (user, platform).
type CredentialRepository interface {
	Upsert(ctx context.Context, userID, platform, accessToken string, refreshToken *string) error
	Get(ctx context.Context, userID, platform string) (*models.Credential, error)
	SetConnected(ctx context.Context, userID, platform string, connected bool) error
	ListConnections(ctx context.Context, userID string) ([]models.Connection, error)
}

// PostRepository stores the internal feed.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	ListByUser(ctx context.Context, userID string) ([]*models.Post, error)
}

type ScheduledPostRepository interface {
	Create(ctx context.Context, post *models.ScheduledPost) error
	GetByID(ctx context.Context, userID, postID string) (*models.ScheduledPost, error)
	ListByUser(ctx context.Context, userID string) ([]*models.ScheduledPost, error)
	// MarkPublished reports false when the post was no longer pending.
	MarkPublished(ctx context.Context, userID, postID, externalID string, publishedAt time.Time) (bool, error)
}

type InsightRepository interface {
	ListEntities(ctx context.Context, userID, platform string) ([]models.PlatformEntity, error)
	ListSamples(ctx context.Context, userID string, entityIDs, metricNames []string, from, to time.Time) ([]models.InsightSample, error)
}
