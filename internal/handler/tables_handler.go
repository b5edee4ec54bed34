package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// TablesHandler reports whether the schema is fully migrated.
func (h *Handlers) TablesHandler(w http.ResponseWriter, r *http.Request) {
	status, err := h.TablesService.Check(r.Context())
	if err != nil {
		if h.Log != nil {
			h.Log.Error("ошибка проверки таблиц", zap.Error(err))
		}
		writeSuccess(w, status, http.StatusServiceUnavailable)
		return
	}

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeSuccess(w, status, code)
}
