package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"socialdash/internal/apperrors"
)

type ConnectRequest struct {
	Platform string `json:"platform" validate:"required"`
}

type DisconnectResponse struct {
	Platform  string `json:"platform"`
	Connected bool   `json:"connected"`
}

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	connections, err := h.AccountService.List(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, connections, http.StatusOK)
}

func (h *Handlers) ConnectAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAppError(w, apperrors.Validation("Неверный формат запроса"))
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteAppError(w, apperrors.Validation("platform обязателен"))
		return
	}

	if err := h.AccountService.Connect(r.Context(), userID, req.Platform); err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Аккаунт " + req.Platform + " подключен"}, http.StatusOK)
}

func (h *Handlers) DisconnectAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	platformName := mux.Vars(r)["platform"]

	if err := h.AccountService.Disconnect(r.Context(), userID, platformName); err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, DisconnectResponse{Platform: platformName, Connected: false}, http.StatusOK)
}

func (h *Handlers) ListEntities(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	entities, err := h.AccountService.Entities(r.Context(), userID, mux.Vars(r)["platform"])
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, entities, http.StatusOK)
}
