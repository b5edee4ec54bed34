package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"socialdash/internal/apperrors"
	"socialdash/internal/models"
	"socialdash/internal/service"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAppError(w, apperrors.Validation("Неверный формат запроса"))
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		if strings.Contains(err.Error(), "Email") {
			WriteAppError(w, apperrors.Validation("Неверный формат email"))
		} else {
			WriteAppError(w, apperrors.Validation("Пароль должен быть не менее 6 символов"))
		}
		return
	}

	user, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, RegisterResponse{Message: "Пользователь зарегистрирован", User: user}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAppError(w, apperrors.Validation("Неверный формат запроса"))
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteAppError(w, apperrors.Validation("Неверный email или пароль"))
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, LoginResponse{Message: "Вход выполнен", Token: token}, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}
