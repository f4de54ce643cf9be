package restapi

import (
	"net/http"

	"wageconv.org/explorer/internal/models"
)

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{Status: "ok", Rows: make(map[string]int)}
	code := http.StatusOK

	for _, mode := range api.Results.Config().Modes {
		table, err := api.Results.Tables(r.Context(), mode)
		if err != nil {
			api.Logger.Warn("health check failed", "mode", mode.String(), "error", err)
			status.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Rows[mode.String()] = len(table.All())
	}

	response := models.NewResponse(code, status, http.StatusText(code))
	setJSONResponseType(&w)
	w.WriteHeader(code)
	api.sendResponse(w, r, response)
}
