package webui

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"wageconv.org/explorer/internal/results"
)

type debugData struct {
	Title string
	Pre   string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	webUI.render(w, r, http.StatusOK, "debug_index.html", debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
}

// tableWarnings lists the oddities of a loaded table that do not stop it from loading.
func (webUI *WebUI) tableWarnings(table *results.CountryTable) []string {
	var warnings []string

	divergers := make(map[string]bool)
	for _, country := range table.Countries(results.DivergersOnly) {
		divergers[country] = true
	}
	for _, country := range table.Countries(results.ConvergersOnly) {
		if divergers[country] {
			warnings = append(warnings, country+" is listed as both converger and diverger")
		}
	}

	charts := webUI.Results.Charts()
	for _, country := range table.Countries(results.AllCountries) {
		if _, err := charts.Resolve(country, table.Mode); err != nil {
			warnings = append(warnings, "No plot for "+country+" at "+charts.Path(country, table.Mode))
		}
	}

	return warnings
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	mode, err := webUI.chartMode(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	table, err := webUI.Results.Tables(r.Context(), mode)
	if err != nil {
		webUI.renderError(w, r, http.StatusInternalServerError, "Results unavailable", []string{err.Error()})
		return
	}

	var data interface{}
	var title string

	switch dataType {
	case "convergers":
		data = table.Convergers
		title = "Convergers - " + mode.Label()
	case "divergers":
		data = table.Divergers
		title = "Divergers - " + mode.Label()
	case "config":
		data = webUI.Results.Config()
		title = "Result configuration"
	case "warnings":
		data = webUI.tableWarnings(table)
		title = "Load warnings - " + mode.Label()
	default:
		data = map[string]string{
			"error": "Please use one of the following: convergers, divergers, config, warnings.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, r, title, data)
}
