// Package apperrors defines the stable error codes the API returns.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is a business or protocol error with a stable code.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrUnauthorized = &AppError{Code: "unauthorized", Message: "Требуется авторизация", Status: http.StatusUnauthorized}
	ErrMissingToken = &AppError{Code: "missing_token", Message: "Отсутствует токен пользователя", Status: http.StatusBadRequest}

	ErrMissingParameters = &AppError{Code: "missing_parameters", Message: "В ответе OAuth отсутствует code или state", Status: http.StatusBadRequest}
	ErrInvalidState      = &AppError{Code: "invalid_state", Message: "Недействительный state токен", Status: http.StatusForbidden}
	ErrUnknownPlatform   = &AppError{Code: "unknown_platform", Message: "Платформа не поддерживается", Status: http.StatusNotFound}

	ErrNotFound          = &AppError{Code: "not_found", Message: "Не найдено", Status: http.StatusNotFound}
	ErrAlreadyPublished  = &AppError{Code: "already_published", Message: "Пост уже опубликован", Status: http.StatusConflict}
	ErrPublishInProgress = &AppError{Code: "publish_in_progress", Message: "Публикация уже выполняется", Status: http.StatusConflict}
	ErrNotConnected      = &AppError{Code: "not_connected", Message: "Аккаунт платформы не подключен", Status: http.StatusConflict}
	ErrValidation        = &AppError{Code: "validation_error", Message: "Неверные данные", Status: http.StatusBadRequest}

	ErrStorage = &AppError{Code: "storage_error", Message: "Ошибка сервера", Status: http.StatusInternalServerError}
)

// Storage wraps a driver error as ErrStorage keeping the cause for logs.
func Storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

// Validation returns an ErrValidation with a specific message.
func Validation(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// ExchangeError is an upstream failure while converting an authorization code.
type ExchangeError struct {
	Platform string
	// Payload is the upstream response body or error text, already sanitized.
	Payload string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("ошибка обмена кода %s: %s", e.Platform, e.Payload)
}

// PublishError is an upstream failure while publishing content.
type PublishError struct {
	Platform string
	Message  string
}

func (e *PublishError) Error() string {
	return e.Message
}

// Sanitize removes every non-empty secret from s.
func Sanitize(s string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}

// Describe maps any error to the code, user message and HTTP status to return.
func Describe(err error) (code, message string, status int) {
	var exchangeErr *ExchangeError
	if errors.As(err, &exchangeErr) {
		return "exchange_failed", exchangeErr.Error(), http.StatusBadGateway
	}

	var publishErr *PublishError
	if errors.As(err, &publishErr) {
		return "publish_failed", publishErr.Message, http.StatusBadGateway
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr == ErrStorage {
			return appErr.Code, appErr.Message, appErr.Status
		}
		if appErr == ErrValidation {
			return appErr.Code, strings.TrimPrefix(err.Error(), appErr.Message+": "), appErr.Status
		}
		return appErr.Code, appErr.Message, appErr.Status
	}

	return ErrStorage.Code, ErrStorage.Message, http.StatusInternalServerError
}
