package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"socialdash/internal/apperrors"
	"socialdash/internal/storage"
)

var allowedMediaExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".mp4":  true,
}

type MediaService interface {
	// Upload stores a file and returns the public URL to use as a post's media.
	Upload(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error)
}

type mediaService struct {
	storage storage.Storage
	maxSize int64
	log     *zap.Logger
}

func NewMediaService(storage storage.Storage, maxSize int64, log *zap.Logger) MediaService {
	return &mediaService{storage: storage, maxSize: maxSize, log: log}
}

func (s *mediaService) Upload(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error) {
	if s.storage == nil {
		return "", apperrors.Validation("хранилище медиафайлов не настроено")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedMediaExtensions[ext] {
		return "", apperrors.Validation("неподдерживаемый тип файла " + ext)
	}
	if size <= 0 {
		return "", apperrors.Validation("пустой файл")
	}
	if s.maxSize > 0 && size > s.maxSize {
		return "", apperrors.Validation(fmt.Sprintf("файл больше %d байт", s.maxSize))
	}

	objectName, mediaURL, err := s.storage.UploadMedia(ctx, userID, fileName, file, size)
	if err != nil {
		return "", apperrors.Storage("ошибка загрузки медиафайла", err)
	}

	s.log.Info("медиафайл загружен", zap.String("user_id", userID), zap.String("object", objectName))
	return mediaURL, nil
}
