package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the API on r. requireAuth guards every route that needs a session.
func (h *Handlers) RegisterRoutes(r *mux.Router, requireAuth func(http.Handler) http.Handler) {
	r.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/tables", h.TablesHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api/auth").Subrouter()
	api.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/{platform}/login", h.OAuthLogin).Methods(http.MethodGet)
	api.HandleFunc("/{platform}/callback", h.OAuthCallback).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(requireAuth)
	protected.HandleFunc("/me", h.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/accounts", h.ListAccounts).Methods(http.MethodGet)
	protected.HandleFunc("/accounts", h.ConnectAccount).Methods(http.MethodPost)
	protected.HandleFunc("/schedule", h.SchedulePost).Methods(http.MethodPost)
	protected.HandleFunc("/schedules", h.ListSchedules).Methods(http.MethodGet)
	protected.HandleFunc("/publish", h.PublishPost).Methods(http.MethodPost)
	protected.HandleFunc("/analytics", h.Analytics).Methods(http.MethodGet)
	protected.HandleFunc("/media", h.UploadMedia).Methods(http.MethodPost)
	protected.HandleFunc("/post", h.CreatePost).Methods(http.MethodPost)
	protected.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	protected.HandleFunc("/{platform}/disconnect", h.DisconnectAccount).Methods(http.MethodPost)
	protected.HandleFunc("/{platform}/entities", h.ListEntities).Methods(http.MethodGet)

	// paths the frontend calls outside /api/auth
	aliases := r.PathPrefix("/api").Subrouter()
	aliases.Use(requireAuth)
	aliases.HandleFunc("/{platform}/disconnect", h.DisconnectAccount).Methods(http.MethodPost)
	aliases.HandleFunc("/{platform}/publish", h.PublishPost).Methods(http.MethodPost)
	aliases.HandleFunc("/{platform}/pages", h.ListEntities).Methods(http.MethodGet)
	aliases.HandleFunc("/{platform}/insights/stored", h.StoredInsights).Methods(http.MethodGet)
}
