package restapi

import (
	"net/http"

	"wageconv.org/explorer/internal/models"
	"wageconv.org/explorer/internal/utils"
)

func (api *RestAPI) resultHandler(w http.ResponseWriter, r *http.Request) {
	country := utils.ExtractParam(r, "country")

	if err := utils.ValidateCountryName(country); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"country": {err.Error()}})
		return
	}

	req, fieldErrors := utils.ParseRequest(r.URL.Query(), api.Results.Config().DefaultMode())
	if fieldErrors = onlyFields(fieldErrors, "mode", "group", "scenario", "threshold"); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	req.Country = country

	lookup, view, err := api.Presenter.Lookup(r.Context(), req)
	if err != nil {
		api.resultsErrorResponse(w, r, err)
		return
	}
	if !lookup.Found {
		api.sendNotFound(w, r)
		return
	}

	entry := models.NewResultEntry(req.Mode, lookup, view.Message)

	charts := api.Results.Charts()
	if _, err := charts.Resolve(country, req.Mode); err == nil {
		entry.ChartAvailable = true
		entry.ChartURL = chartURL(country, req.Mode)
		entry.DownloadFilename = charts.DownloadName(country, req.Mode)
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
