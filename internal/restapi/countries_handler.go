package restapi

import (
	"net/http"

	"wageconv.org/explorer/internal/models"
	"wageconv.org/explorer/internal/utils"
)

func (api *RestAPI) countriesHandler(w http.ResponseWriter, r *http.Request) {
	req, fieldErrors := utils.ParseRequest(r.URL.Query(), api.Results.Config().DefaultMode())
	if fieldErrors = onlyFields(fieldErrors, "mode", "group"); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	table, err := api.Results.Tables(r.Context(), req.Mode)
	if err != nil {
		api.resultsErrorResponse(w, r, err)
		return
	}

	list := models.NewCountryList(req.Mode, req.Group, table.Countries(req.Group))
	api.sendResponse(w, r, models.NewEntryResponse(list))
}
