package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Handler returns the router for every web UI page.
func (webUI *WebUI) Handler() http.Handler {
	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/", webUI.dashboardHandler)
	router.HandlerFunc(http.MethodGet, "/charts/:country", webUI.chartHandler)
	router.HandlerFunc(http.MethodGet, "/download/:country", webUI.downloadHandler)
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
	router.NotFound = http.HandlerFunc(webUI.notFoundHandler)
	return router
}

// SetWebUIRoutes mounts the web UI at the root of mux.
func (webUI *WebUI) SetWebUIRoutes(mux *http.ServeMux) {
	mux.Handle("/", webUI.Handler())
}
