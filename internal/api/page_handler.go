package api

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/phrazzld/pantry-chef/internal/api/shared"
	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/form"
)

// SessionCookieName names the cookie that binds a browser to its form.
const SessionCookieName = "pantry_session"

// DefaultPollSeconds is the refresh interval of the page while a submission
// is in flight.
const DefaultPollSeconds = 2

//go:embed templates/*.tmpl
var templateFS embed.FS

// pageData is the template input for the form page.
type pageData struct {
	View                   form.View
	Cards                  []RecipeResponse
	Succeeded              bool
	AgeBrackets            []domain.AgeBracket
	Genders                []domain.Gender
	HealthConditionOptions []string
	Modes                  []domain.RecipeMode
	PollSeconds            int
}

// PageHandler serves the server-rendered recipe form.
type PageHandler struct {
	registry     *form.Registry
	logger       *slog.Logger
	tmpl         *template.Template
	pollSeconds  int
	secureCookie bool
}

// PageOption configures a PageHandler.
type PageOption func(*PageHandler)

// WithPollSeconds sets the refresh interval used while submitting.
func WithPollSeconds(seconds int) PageOption {
	return func(h *PageHandler) {
		if seconds > 0 {
			h.pollSeconds = seconds
		}
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) PageOption {
	return func(h *PageHandler) {
		h.secureCookie = secure
	}
}

// NewPageHandler creates a PageHandler backed by registry.
func NewPageHandler(registry *form.Registry, logger *slog.Logger, opts ...PageOption) (*PageHandler, error) {
	if registry == nil {
		return nil, errors.New("registry cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	h := &PageHandler{
		registry:    registry,
		logger:      logger.With("component", "page_handler"),
		tmpl:        tmpl,
		pollSeconds: DefaultPollSeconds,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// ShowForm handles GET / requests by rendering the caller's form. Callers
// without a known session see a fresh form; no session is created until they
// submit.
func (h *PageHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	f, ok := h.existingSession(r)
	if !ok {
		h.render(w, r, http.StatusOK, form.View{State: form.StateIdle, Input: form.DefaultInput()})
		return
	}
	r = r.WithContext(shared.SetSessionID(r.Context(), f.ID()))
	h.render(w, r, http.StatusOK, f.View())
}

// SubmitForm handles POST / requests. A valid submission starts generation
// and redirects back to the page, which then polls until the form settles.
func (h *PageHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	f, r, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderInvalid(w, r, f.View(), err)
		return
	}
	in := inputFromForm(r.PostForm)

	// The generation call outlives this request.
	_, err := f.Submit(context.WithoutCancel(r.Context()), in)
	switch {
	case err == nil:
		h.logger.DebugContext(r.Context(), "Form submission accepted",
			"trace_id", shared.GetTraceID(r.Context()),
			"session_id", f.ID())
		http.Redirect(w, r, "/", http.StatusSeeOther)

	case errors.Is(err, form.ErrSubmitInProgress):
		h.logger.DebugContext(r.Context(), "Ignoring submission while one is in progress",
			"session_id", f.ID())
		http.Redirect(w, r, "/", http.StatusSeeOther)

	case errors.Is(err, form.ErrInvalidInput):
		view := f.View()
		view.Input = in
		h.renderInvalid(w, r, view, err)

	default:
		h.logger.ErrorContext(r.Context(), "Form submission failed",
			"trace_id", shared.GetTraceID(r.Context()),
			"session_id", f.ID(),
			"error", err)
		view := f.View()
		view.Error = GetSafeErrorMessage(err)
		h.render(w, r, http.StatusInternalServerError, view)
	}
}

func (h *PageHandler) renderInvalid(w http.ResponseWriter, r *http.Request, view form.View, err error) {
	h.logger.DebugContext(r.Context(), "Invalid form submission",
		"trace_id", shared.GetTraceID(r.Context()),
		"error", err)
	if errors.Is(err, form.ErrInvalidInput) {
		view.Error = GetSafeErrorMessage(err)
	} else {
		view.Error = "Invalid request format"
	}
	h.render(w, r, http.StatusBadRequest, view)
}

// existingSession returns the form named by the caller's cookie, if any.
func (h *PageHandler) existingSession(r *http.Request) (*form.Form, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, false
	}
	return h.registry.Get(cookie.Value)
}

// session resolves the caller's form, creating one and issuing a new cookie
// when needed, and records the session on the request context.
func (h *PageHandler) session(w http.ResponseWriter, r *http.Request) (*form.Form, *http.Request, bool) {
	var id string
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		id = cookie.Value
	}

	f, created, err := h.registry.GetOrCreate(id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to create form session",
			"trace_id", shared.GetTraceID(r.Context()),
			"error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return nil, r, false
	}

	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    f.ID(),
			Path:     "/",
			HttpOnly: true,
			Secure:   h.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return f, r.WithContext(shared.SetSessionID(r.Context(), f.ID())), true
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, view form.View) {
	data := pageData{
		View:                   view,
		Cards:                  recipesToResponse(view.Recipes),
		Succeeded:              view.State == form.StateSuccess,
		AgeBrackets:            domain.AgeBrackets,
		Genders:                domain.Genders,
		HealthConditionOptions: domain.HealthConditionOptions,
		Modes:                  domain.RecipeModes,
		PollSeconds:            h.pollSeconds,
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render page", "error", err)
		http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write page", "error", err)
	}
}

// inputFromForm reads the six fields from a urlencoded body.
func inputFromForm(values url.Values) form.Input {
	return form.Input{
		Age:                  domain.AgeBracket(values.Get("age")),
		Gender:               domain.Gender(values.Get("gender")),
		HealthConditions:     values["health_conditions"],
		OtherHealthCondition: values.Get("other_health_condition"),
		Allergies:            values.Get("allergies"),
		Ingredients:          values.Get("ingredients"),
		Mode:                 domain.RecipeMode(values.Get("mode")),
	}
}
