package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/passgen/passgen-frontend/internal/backend"
	"github.com/passgen/passgen-frontend/internal/model"
	"github.com/passgen/passgen-frontend/internal/service"
	"github.com/passgen/passgen-frontend/internal/settings"
	"github.com/passgen/passgen-frontend/internal/shell"
)

// GeneratorHandler serves the generator page and its JSON variant. The
// query string of each request is the settings store.
type GeneratorHandler struct {
	service   *service.GeneratorService
	templates *template.Template
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService, templates *template.Template) *GeneratorHandler {
	return &GeneratorHandler{service: svc, templates: templates}
}

type indexViewData struct {
	Title string
	service.View
	Passwords []model.Password
	Error     string
}

// HandleIndex handles GET / requests. A submitted max below the min is
// dropped by redirecting to the same location without it.
func (h *GeneratorHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query(); settings.MaxBelowMin(q.Get(settings.ParamMinLength), q.Get(settings.ParamMaxLength)) {
		slog.Warn("rejected max password length below min",
			"min", q.Get(settings.ParamMinLength), "max", q.Get(settings.ParamMaxLength))
		q.Del(settings.ParamMaxLength)
		target := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
		http.Redirect(w, r, target.String(), http.StatusSeeOther)
		return
	}

	view := h.service.Generate(r.Context(), settings.HistoryAt(r.URL))

	data := indexViewData{Title: "Password Generator", View: view, Passwords: view.State.Passwords}
	status := http.StatusOK
	if view.State.Failed() {
		data.Error = userMessage(view.State.Err)
		status = http.StatusBadGateway
	}

	h.render(w, status, "index.html", data)
}

// HandleJSON handles GET /json requests.
func (h *GeneratorHandler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	view := h.service.Generate(r.Context(), settings.HistoryAt(r.URL))

	switch view.State.Status {
	case shell.StatusInvalid:
		writeJSON(w, http.StatusBadRequest, errorResponse("num must be a number between 1 and 1000"))
	case shell.StatusFailed:
		writeJSON(w, http.StatusBadGateway, errorResponse(userMessage(view.State.Err)))
	default:
		passwords := view.State.Passwords
		if passwords == nil {
			passwords = []model.Password{}
		}
		writeJSON(w, http.StatusOK, passwords)
	}
}

type helpViewData struct {
	Title string
	Host  string
}

// HandleHelp handles GET /help requests.
func (h *GeneratorHandler) HandleHelp(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "help.html", helpViewData{Title: "Help", Host: origin(r)})
}

func (h *GeneratorHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func userMessage(err error) string {
	var statusErr *backend.StatusError
	switch {
	case errors.As(err, &statusErr):
		return "the password service returned an error, please try again"
	case errors.Is(err, backend.ErrDecode):
		return "the password service sent an unexpected response"
	default:
		return "the password service is unavailable, please try again"
	}
}

func origin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd == "http" || fwd == "https" {
		scheme = fwd
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
