package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"socialdash/internal/config"
	"socialdash/internal/database"
	"socialdash/internal/platform"
	"socialdash/internal/repository"
	"socialdash/internal/security"
	"socialdash/internal/service"
	"socialdash/internal/storage"
)

// App holds the process-wide dependencies built at startup.
type App struct {
	DB       *database.DB
	Redis    *database.Redis
	Repo     *repository.Repository
	Services *service.Service
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	// connection DB
	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	cipher, err := security.NewTokenCipher(cfg.TokenEncryptionKey)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("ошибка ключа шифрования токенов: %w", err)
	}
	if cfg.TokenEncryptionKey == "" {
		log.Warn("TOKEN_ENCRYPTION_KEY не задан, токены платформ хранятся без шифрования")
	}

	repo := repository.NewRepository(db.DB, cipher)

	platforms, err := platform.NewRegistry(cfg.Platforms)
	if err != nil {
		db.CloseDB()
		return nil, err
	}
	log.Info("платформы настроены", zap.Strings("platforms", platforms.Names()))

	app := &App{DB: db, Repo: repo}

	// the lock is optional, without Redis publishes rely on the guarded update alone
	var lock service.PublishLock
	if cfg.Redis.Addr != "" {
		redis, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis недоступен, блокировка публикаций отключена", zap.Error(err))
		} else {
			app.Redis = redis
			lock = service.NewRedisPublishLock(redis, cfg.Redis.LockTTL)
		}
	}

	// connection MinIO
	var media storage.Storage
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		log.Warn("MinIO недоступен, загрузка медиафайлов отключена", zap.Error(err))
	} else {
		media = minioClient
	}

	app.Services = service.NewService(service.Deps{
		Repo:      repo,
		Platforms: platforms,
		State:     security.NewStateCodec(cfg.StateSecretKey, cfg.StateTokenTTL),
		Lock:      lock,
		Storage:   media,
	}, cfg, log)

	return app, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		a.Redis.Close()
	}
	a.DB.CloseDB()
}
