package service

import (
	"go.uber.org/zap"
	"socialdash/internal/config"
	"socialdash/internal/logger"
	"socialdash/internal/platform"
	"socialdash/internal/repository"
	"socialdash/internal/security"
	"socialdash/internal/storage"
)

// PlatformRegistry resolves a platform name to its descriptor.
type PlatformRegistry interface {
	Get(name string) (*platform.Platform, error)
}

type Service struct {
	Auth      AuthService
	Linking   LinkingService
	Account   AccountService
	Schedule  ScheduleService
	Analytics AnalyticsService
	Media     MediaService
	Feed      FeedService
	Tables    TablesService
}

type Deps struct {
	Repo      *repository.Repository
	Platforms PlatformRegistry
	State     *security.StateCodec
	Lock      PublishLock
	Storage   storage.Storage
}

func NewService(deps Deps, cfg *config.Config, log *zap.Logger) *Service {
	auth := NewAuthService(deps.Repo.User, cfg)

	return &Service{
		Auth: auth,
		Linking: NewLinkingService(deps.Platforms, auth, deps.State, deps.Repo.Credential,
			cfg.FrontendURL, logger.WithComponent(log, "linking")),
		Account: NewAccountService(deps.Platforms, deps.Repo.Credential, deps.Repo.Insight,
			logger.WithComponent(log, "accounts")),
		Schedule: NewScheduleService(deps.Repo.ScheduledPost, deps.Repo.Credential, deps.Platforms, deps.Lock,
			logger.WithComponent(log, "schedule")),
		Analytics: NewAnalyticsService(deps.Repo.Insight, deps.Platforms),
		Media:     NewMediaService(deps.Storage, cfg.MaxUploadSize, logger.WithComponent(log, "media")),
		Feed:      NewFeedService(deps.Repo.Post, deps.Repo.User),
		Tables:    NewTablesService(deps.Repo.Tables),
	}
}
