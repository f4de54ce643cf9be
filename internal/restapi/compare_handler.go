package restapi

import (
	"net/http"

	"wageconv.org/explorer/internal/models"
	"wageconv.org/explorer/internal/results"
	"wageconv.org/explorer/internal/utils"
)

func (api *RestAPI) compareHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, fieldErrors := utils.ParseRequest(query, api.Results.Config().DefaultMode())
	fieldErrors = onlyFields(fieldErrors, "mode")

	var countries []string
	for _, raw := range query["country"] {
		if country := utils.SanitizeInput(raw); country != "" {
			countries = append(countries, country)
		}
	}
	if err := utils.ValidateCountryList(countries, results.MaxCompare); err != nil {
		fieldErrors["country"] = append(fieldErrors["country"], err.Error())
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	entries, err := api.Presenter.Compare(r.Context(), req.Mode, countries)
	if err != nil {
		api.resultsErrorResponse(w, r, err)
		return
	}

	list := make([]models.ComparisonEntry, 0, len(entries))
	for _, entry := range entries {
		item := models.ComparisonEntry{
			Country:   entry.Country,
			Column:    entry.Column,
			Available: entry.Available,
			Warning:   entry.Warning,
		}
		if entry.Available {
			item.ChartURL = chartURL(entry.Country, req.Mode)
		}
		list = append(list, item)
	}

	api.sendResponse(w, r, models.NewListResponse(list, false))
}
