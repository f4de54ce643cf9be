package webui

import (
	"bytes"
	"errors"
	"net/http"
	"sort"

	"wageconv.org/explorer/internal/logging"
	"wageconv.org/explorer/internal/results"
	"wageconv.org/explorer/internal/utils"
)

type dashboardPage struct {
	View        *results.View
	Modes       []results.Mode
	Groups      []results.Group
	Scenarios   []results.Scenario
	Thresholds  []results.Threshold
	MaxCompare  int
	FieldErrors []string
}

type errorPage struct {
	Status  int
	Title   string
	Message string
	Details []string
}

func (webUI *WebUI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	config := webUI.Results.Config()
	req, fieldErrors := utils.ParseRequest(r.URL.Query(), config.DefaultMode())
	if len(fieldErrors) > 0 {
		webUI.renderError(w, r, http.StatusBadRequest, "Invalid selection", flattenFieldErrors(fieldErrors))
		return
	}

	view, err := webUI.Presenter.Render(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, results.ErrTooManyCountries), errors.Is(err, results.ErrModeDisabled):
		webUI.renderError(w, r, http.StatusBadRequest, "Invalid selection", []string{err.Error()})
		return
	default:
		logging.LogError(logging.FromContext(r.Context()), "dashboard render failed", err)
		webUI.renderError(w, r, http.StatusInternalServerError, "Results unavailable", nil)
		return
	}

	page := dashboardPage{
		View:       view,
		Modes:      config.Modes,
		Groups:     results.Groups,
		Scenarios:  results.Scenarios,
		Thresholds: results.Thresholds,
		MaxCompare: results.MaxCompare,
	}
	webUI.render(w, r, http.StatusOK, "dashboard.html", page)
}

func (webUI *WebUI) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	webUI.renderError(w, r, http.StatusNotFound, "Not found", nil)
}

func (webUI *WebUI) renderError(w http.ResponseWriter, r *http.Request, status int, title string, details []string) {
	webUI.render(w, r, status, "error.html", errorPage{
		Status:  status,
		Title:   title,
		Message: http.StatusText(status),
		Details: details,
	})
}

// render executes the template into a buffer first so a failing template never
// leaves a half-written page behind.
func (webUI *WebUI) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "template execution failed", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Debug("writing page failed", "error", err)
	}
}

func flattenFieldErrors(fieldErrors map[string][]string) []string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var messages []string
	for _, field := range fields {
		for _, msg := range fieldErrors[field] {
			messages = append(messages, field+": "+msg)
		}
	}
	return messages
}
