package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"socialdash/internal/config"
	"socialdash/internal/service"
)

type Handlers struct {
	AuthService      service.AuthService
	LinkingService   service.LinkingService
	AccountService   service.AccountService
	ScheduleService  service.ScheduleService
	AnalyticsService service.AnalyticsService
	MediaService     service.MediaService
	FeedService      service.FeedService
	TablesService    service.TablesService
	Cfg              *config.Config
	Validate         *validator.Validate
	Log              *zap.Logger
}

func NewHandlers(service *service.Service, config *config.Config, log *zap.Logger) *Handlers {
	return &Handlers{
		AuthService:      service.Auth,
		LinkingService:   service.Linking,
		AccountService:   service.Account,
		ScheduleService:  service.Schedule,
		AnalyticsService: service.Analytics,
		MediaService:     service.Media,
		FeedService:      service.Feed,
		TablesService:    service.Tables,
		Cfg:              config,
		Validate:         validator.New(),
		Log:              log,
	}
}
