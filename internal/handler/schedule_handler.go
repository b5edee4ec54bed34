package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"socialdash/internal/apperrors"
	"socialdash/internal/service"
)

func (h *Handlers) SchedulePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req service.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAppError(w, apperrors.Validation("Неверный формат запроса"))
		return
	}

	post, err := h.ScheduleService.Schedule(r.Context(), userID, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) ListSchedules(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	posts, err := h.ScheduleService.List(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

// PublishPost serves /publish and /{platform}/publish; with a platform in the path
// the post must be scheduled for it.
func (h *Handlers) PublishPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req service.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAppError(w, apperrors.Validation("Неверный формат запроса"))
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteAppError(w, apperrors.Validation("postId обязателен"))
		return
	}
	req.Platform = mux.Vars(r)["platform"]

	post, err := h.ScheduleService.Publish(r.Context(), userID, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}
