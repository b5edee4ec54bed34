package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"socialdash/internal/apperrors"
	handlers "socialdash/internal/handler"
	"socialdash/internal/models"
	"socialdash/internal/service"
)

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Успешная регистрация", func(t *testing.T) {
		f := newFixture(t)
		req := service.RegisterRequest{Name: "Anna", Email: "anna@example.com", Password: "password123"}
		f.auth.On("Register", mock.Anything, req).
			Return(&models.User{UserID: "user-1", Name: "Anna", Email: "anna@example.com", PasswordHash: "hash"}, nil)

		rr := f.do(jsonRequest(t, http.MethodPost, "/api/auth/register", req), false)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "hash")

		var response handlers.RegisterResponse
		decode(t, rr, &response)
		assert.Equal(t, "user-1", response.User.UserID)
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "Неверный JSON", body: `{"email":`},
		{name: "Неверный email", body: `{"email":"not-an-email","password":"password123"}`},
		{name: "Короткий пароль", body: `{"email":"anna@example.com","password":"123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))

			rr := f.do(req, false)

			assertJSONError(t, rr, http.StatusBadRequest, "validation_error")
			f.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}

	t.Run("Email уже существует", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Register", mock.Anything, mock.Anything).
			Return(nil, apperrors.Validation("пользователь с таким email уже существует"))

		rr := f.do(jsonRequest(t, http.MethodPost, "/api/auth/register",
			service.RegisterRequest{Email: "anna@example.com", Password: "password123"}), false)

		assertJSONError(t, rr, http.StatusBadRequest, "validation_error")
		assert.Contains(t, rr.Body.String(), "уже существует")
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("Успешный вход", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, "anna@example.com", "password123").
			Return(&models.User{UserID: "user-1"}, "jwt-token", nil)

		rr := f.do(jsonRequest(t, http.MethodPost, "/api/auth/login",
			handlers.LoginRequest{Email: "anna@example.com", Password: "password123"}), false)

		assert.Equal(t, http.StatusOK, rr.Code)
		var response handlers.LoginResponse
		decode(t, rr, &response)
		assert.Equal(t, "jwt-token", response.Token)
		assert.NotEmpty(t, response.Message)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, "anna@example.com", "wrong").
			Return(nil, "", apperrors.ErrUnauthorized)

		rr := f.do(jsonRequest(t, http.MethodPost, "/api/auth/login",
			handlers.LoginRequest{Email: "anna@example.com", Password: "wrong"}), false)

		assertJSONError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("Без пароля", func(t *testing.T) {
		f := newFixture(t)

		rr := f.do(jsonRequest(t, http.MethodPost, "/api/auth/login",
			handlers.LoginRequest{Email: "anna@example.com"}), false)

		assertJSONError(t, rr, http.StatusBadRequest, "validation_error")
	})
}

func TestGetCurrentUser(t *testing.T) {
	t.Run("Текущий пользователь", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("GetUser", mock.Anything, "user-1").
			Return(&models.User{UserID: "user-1", Email: "anna@example.com"}, nil)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), true)

		assert.Equal(t, http.StatusOK, rr.Code)
		var user models.User
		decode(t, rr, &user)
		assert.Equal(t, "anna@example.com", user.Email)
	})

	t.Run("Пользователь удален", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("GetUser", mock.Anything, "user-1").Return(nil, apperrors.ErrNotFound)

		rr := f.do(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), true)

		assertJSONError(t, rr, http.StatusNotFound, "not_found")
	})
}
