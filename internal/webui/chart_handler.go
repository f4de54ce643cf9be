package webui

import (
	"errors"
	"mime"
	"net/http"
	"os"

	"wageconv.org/explorer/internal/logging"
	"wageconv.org/explorer/internal/results"
	"wageconv.org/explorer/internal/utils"
)

func (webUI *WebUI) chartHandler(w http.ResponseWriter, r *http.Request) {
	webUI.serveChart(w, r, false)
}

func (webUI *WebUI) downloadHandler(w http.ResponseWriter, r *http.Request) {
	webUI.serveChart(w, r, true)
}

// chartMode reads the mode query parameter, falling back to the default mode.
func (webUI *WebUI) chartMode(r *http.Request) (results.Mode, error) {
	config := webUI.Results.Config()
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return config.DefaultMode(), nil
	}
	mode, err := results.ParseMode(raw)
	if err != nil {
		return mode, err
	}
	if !config.ModeEnabled(mode) {
		return mode, results.ErrModeDisabled
	}
	return mode, nil
}

func (webUI *WebUI) serveChart(w http.ResponseWriter, r *http.Request, attachment bool) {
	country := utils.ExtractParam(r, "country")
	if err := utils.ValidateCountryName(country); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode, err := webUI.chartMode(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	charts := webUI.Results.Charts()
	chart, err := charts.Resolve(country, mode)
	if errors.Is(err, results.ErrChartNotFound) {
		http.Error(w, "Plot not available.", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.LogError(logging.FromContext(r.Context()), "chart lookup failed", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	file, err := os.Open(chart.Path)
	if err != nil {
		http.Error(w, "Plot not available.", http.StatusNotFound)
		return
	}
	defer logging.SafeCloseWithLogging(file, logging.FromContext(r.Context()), "chart_file")

	info, err := file.Stat()
	if err != nil {
		http.Error(w, "Plot not available.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if attachment {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": charts.DownloadName(country, mode),
		}))
	}
	http.ServeContent(w, r, chart.Path, info.ModTime(), file)
}
