package restapi

import (
	"net/http"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.Handle("GET /api/countries.json", validateAPIKey(api, api.countriesHandler))
	mux.Handle("GET /api/result/{country}", validateAPIKey(api, api.resultHandler))
	mux.Handle("GET /api/compare.json", validateAPIKey(api, api.compareHandler))
	mux.HandleFunc("GET /healthz", api.healthHandler)
}
