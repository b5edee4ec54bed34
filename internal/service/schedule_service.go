package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"socialdash/internal/apperrors"
	"socialdash/internal/metrics"
	"socialdash/internal/models"
	"socialdash/internal/platform"
	"socialdash/internal/repository"
)

// datetime-local form value sent by browsers
const localTimeLayout = "2006-01-02T15:04"

type ScheduleRequest struct {
	Content       string  `json:"content"`
	ScheduledTime string  `json:"scheduled_time"`
	MediaURL      *string `json:"mediaUrl"`
	Platform      string  `json:"platform"`
}

type PublishRequest struct {
	PostID string `json:"postId" validate:"required"`
	// Platform, when set, must match the post's platform.
	Platform string `json:"-"`
}

type ScheduleService interface {
	Schedule(ctx context.Context, userID string, req ScheduleRequest) (*models.ScheduledPost, error)
	List(ctx context.Context, userID string) ([]*models.ScheduledPost, error)
	Publish(ctx context.Context, userID string, req PublishRequest) (*models.ScheduledPost, error)
}

type scheduleService struct {
	posts       repository.ScheduledPostRepository
	credentials repository.CredentialRepository
	platforms   PlatformRegistry
	lock        PublishLock
	log         *zap.Logger
	now         func() time.Time
}

func NewScheduleService(
	posts repository.ScheduledPostRepository,
	credentials repository.CredentialRepository,
	platforms PlatformRegistry,
	lock PublishLock,
	log *zap.Logger,
) ScheduleService {
	if lock == nil {
		lock = NewNoopPublishLock()
	}
	return &scheduleService{
		posts:       posts,
		credentials: credentials,
		platforms:   platforms,
		lock:        lock,
		log:         log,
		now:         time.Now,
	}
}

func (s *scheduleService) Schedule(ctx context.Context, userID string, req ScheduleRequest) (*models.ScheduledPost, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || strings.TrimSpace(req.ScheduledTime) == "" {
		return nil, apperrors.Validation("content и scheduled_time обязательны")
	}

	scheduledTime, err := parseScheduledTime(req.ScheduledTime)
	if err != nil {
		return nil, err
	}

	var mediaURL *string
	if req.MediaURL != nil && strings.TrimSpace(*req.MediaURL) != "" {
		trimmed := strings.TrimSpace(*req.MediaURL)
		mediaURL = &trimmed
	}

	// the default platform is stored as is, Publish reports a missing configuration
	platformName := platform.Facebook
	if req.Platform != "" {
		p, err := s.platforms.Get(req.Platform)
		if err != nil {
			return nil, err
		}
		if p.RequiresMedia && mediaURL == nil {
			return nil, apperrors.Validation(req.Platform + " требует mediaUrl")
		}
		platformName = req.Platform
	}

	post := &models.ScheduledPost{
		UserID:        userID,
		Platform:      platformName,
		Content:       content,
		ScheduledTime: scheduledTime,
		MediaURL:      mediaURL,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *scheduleService) List(ctx context.Context, userID string) ([]*models.ScheduledPost, error) {
	return s.posts.ListByUser(ctx, userID)
}

// Publish moves a pending post to published, calling the platform at most once
// per successful transition.
func (s *scheduleService) Publish(ctx context.Context, userID string, req PublishRequest) (*models.ScheduledPost, error) {
	post, err := s.posts.GetByID(ctx, userID, req.PostID)
	if err != nil {
		return nil, err
	}

	if req.Platform != "" && post.Platform != req.Platform {
		return nil, apperrors.Validation("пост запланирован для другой платформы")
	}

	if post.Status == models.StatusPublished {
		return nil, apperrors.ErrAlreadyPublished
	}

	p, err := s.platforms.Get(post.Platform)
	if err != nil {
		return nil, err
	}

	cred, err := s.credentials.Get(ctx, userID, post.Platform)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotConnected
		}
		return nil, err
	}
	if !cred.Connected || cred.AccessToken == "" {
		return nil, apperrors.ErrNotConnected
	}

	token, acquired, err := s.lock.Acquire(ctx, post.ID)
	if err != nil {
		s.log.Warn("блокировка публикации недоступна", zap.String("post_id", post.ID), zap.Error(err))
		acquired = true
	}
	if !acquired {
		return nil, apperrors.ErrPublishInProgress
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), post.ID, token); err != nil {
			s.log.Warn("ошибка снятия блокировки публикации", zap.String("post_id", post.ID), zap.Error(err))
		}
	}()

	fresh, err := s.posts.GetByID(ctx, userID, post.ID)
	if err != nil {
		return nil, err
	}
	if fresh.Status == models.StatusPublished {
		return nil, apperrors.ErrAlreadyPublished
	}

	content := platform.Content{Text: fresh.Content}
	if fresh.MediaURL != nil {
		content.MediaURL = *fresh.MediaURL
	}

	externalID, err := p.Publish(ctx, cred.AccessToken, content)
	if err != nil {
		metrics.PublishTotal.WithLabelValues(post.Platform, metrics.ResultFailure).Inc()
		s.log.Warn("ошибка публикации на платформе",
			zap.String("platform", post.Platform),
			zap.String("post_id", post.ID),
			zap.Error(err),
		)
		return nil, err
	}

	// the post is live on the platform; the local write must not be cancelled
	writeCtx := context.WithoutCancel(ctx)
	publishedAt := s.now().UTC()

	updated, err := s.posts.MarkPublished(writeCtx, userID, post.ID, externalID, publishedAt)
	if err != nil {
		metrics.PublishTotal.WithLabelValues(post.Platform, metrics.ResultFailure).Inc()
		s.log.Error("пост опубликован, но статус не сохранен",
			zap.String("platform", post.Platform),
			zap.String("post_id", post.ID),
			zap.String("reconcile", externalID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.PublishTotal.WithLabelValues(post.Platform, metrics.ResultSuccess).Inc()

	if !updated {
		s.log.Warn("пост опубликован параллельным запросом",
			zap.String("post_id", post.ID),
			zap.String("reconcile", externalID),
		)
		return s.posts.GetByID(writeCtx, userID, post.ID)
	}

	fresh.Status = models.StatusPublished
	fresh.ExternalID = &externalID
	fresh.PublishedAt = &publishedAt

	s.log.Info("пост опубликован",
		zap.String("platform", post.Platform),
		zap.String("post_id", post.ID),
		zap.String("external_id", externalID),
	)

	return fresh, nil
}

func parseScheduledTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(localTimeLayout, value); err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, apperrors.Validation("неверный формат scheduled_time")
}
