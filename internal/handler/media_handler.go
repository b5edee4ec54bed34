package handlers

import (
	"net/http"

	"socialdash/internal/apperrors"
)

type MediaResponse struct {
	MediaURL string `json:"mediaUrl"`
}

func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	// multipart overhead on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteAppError(w, apperrors.Validation("Файл слишком большой или запрос поврежден"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteAppError(w, apperrors.Validation("Поле file обязательно"))
		return
	}
	defer file.Close()

	mediaURL, err := h.MediaService.Upload(r.Context(), userID, header.Filename, file, header.Size)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, MediaResponse{MediaURL: mediaURL}, http.StatusCreated)
}
