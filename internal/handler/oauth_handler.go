package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"socialdash/internal/apperrors"
)

var callbackErrorPage = template.Must(template.New("callback_error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Подключение не удалось</title></head>
<body>
<h2>Не удалось подключить {{.Platform}}</h2>
<p>{{.Message}}</p>
{{if .Detail}}<pre>{{.Detail}}</pre>{{end}}
<p><a href="{{.BackURL}}">Вернуться к аккаунтам</a></p>
</body>
</html>
`))

type callbackErrorView struct {
	Platform string
	Message  string
	Detail   string
	BackURL  string
}

// OAuthLogin starts linking. The browser navigates here, so the session token comes in the query.
func (h *Handlers) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	platformName := mux.Vars(r)["platform"]

	bearer := r.URL.Query().Get("token")
	if bearer == "" {
		bearer = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}

	authURL, err := h.LinkingService.BeginLogin(r.Context(), platformName, bearer)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *Handlers) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	platformName := mux.Vars(r)["platform"]
	query := r.URL.Query()

	// the user declined on the consent screen
	if providerErr := query.Get("error"); providerErr != "" {
		detail := query.Get("error_description")
		if detail == "" {
			detail = providerErr
		}
		h.renderCallbackError(w, platformName, http.StatusBadRequest, "Доступ не предоставлен", detail)
		return
	}

	redirect, err := h.LinkingService.HandleCallback(r.Context(), platformName, query.Get("code"), query.Get("state"))
	if err != nil {
		_, message, status := apperrors.Describe(err)

		var detail string
		var exchangeErr *apperrors.ExchangeError
		if errors.As(err, &exchangeErr) {
			message = "Платформа отклонила код авторизации"
			detail = exchangeErr.Payload
		}

		h.renderCallbackError(w, platformName, status, message, detail)
		return
	}

	http.Redirect(w, r, redirect, http.StatusFound)
}

func (h *Handlers) renderCallbackError(w http.ResponseWriter, platformName string, status int, message, detail string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	view := callbackErrorView{
		Platform: platformName,
		Message:  message,
		Detail:   detail,
		BackURL:  strings.TrimSuffix(h.Cfg.FrontendURL, "/") + "/accounts",
	}
	if err := callbackErrorPage.Execute(w, view); err != nil && h.Log != nil {
		h.Log.Error("ошибка отрисовки страницы callback", zap.Error(err))
	}
}
