package handlers

import (
	"encoding/json"
	"net/http"

	"socialdash/internal/apperrors"
	"socialdash/internal/service"
)

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req service.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAppError(w, apperrors.Validation("Неверный формат запроса"))
		return
	}

	post, err := h.FeedService.CreatePost(r.Context(), userID, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	posts, err := h.FeedService.ListPosts(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}
