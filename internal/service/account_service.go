package service

import (
	"context"

	"go.uber.org/zap"
	"socialdash/internal/models"
	"socialdash/internal/repository"
)

type AccountService interface {
	List(ctx context.Context, userID string) ([]models.Connection, error)
	Connect(ctx context.Context, userID, platform string) error
	Disconnect(ctx context.Context, userID, platform string) error
	Entities(ctx context.Context, userID, platform string) ([]models.PlatformEntity, error)
}

type accountService struct {
	platforms   PlatformRegistry
	credentials repository.CredentialRepository
	insights    repository.InsightRepository
	log         *zap.Logger
}

func NewAccountService(
	platforms PlatformRegistry,
	credentials repository.CredentialRepository,
	insights repository.InsightRepository,
	log *zap.Logger,
) AccountService {
	return &accountService{
		platforms:   platforms,
		credentials: credentials,
		insights:    insights,
		log:         log,
	}
}

func (s *accountService) List(ctx context.Context, userID string) ([]models.Connection, error) {
	return s.credentials.ListConnections(ctx, userID)
}

// Connect re-enables a previously linked account without a new OAuth round trip.
func (s *accountService) Connect(ctx context.Context, userID, platformName string) error {
	if _, err := s.platforms.Get(platformName); err != nil {
		return err
	}

	return s.credentials.SetConnected(ctx, userID, platformName, true)
}

func (s *accountService) Disconnect(ctx context.Context, userID, platformName string) error {
	if _, err := s.platforms.Get(platformName); err != nil {
		return err
	}

	if err := s.credentials.SetConnected(ctx, userID, platformName, false); err != nil {
		return err
	}

	s.log.Info("аккаунт платформы отключен",
		zap.String("platform", platformName),
		zap.String("user_id", userID),
	)
	return nil
}

func (s *accountService) Entities(ctx context.Context, userID, platformName string) ([]models.PlatformEntity, error) {
	if _, err := s.platforms.Get(platformName); err != nil {
		return nil, err
	}

	return s.insights.ListEntities(ctx, userID, platformName)
}
