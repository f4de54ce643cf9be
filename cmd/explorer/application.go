package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"wageconv.org/explorer/internal/app"
	"wageconv.org/explorer/internal/metrics"
	"wageconv.org/explorer/internal/restapi"
	"wageconv.org/explorer/internal/results"
	"wageconv.org/explorer/internal/webui"
)

// newApplication loads the result tables and wires the shared dependencies.
// registry may be nil when metrics are not exported.
func (rt *runtime) newApplication(registry *prometheus.Registry) (*app.Application, error) {
	application := &app.Application{
		Config: rt.config,
		Logger: rt.logger,
	}

	var recorder results.Recorder
	if registry != nil {
		m, err := metrics.NewMetrics(registry)
		if err != nil {
			return nil, err
		}
		application.Metrics = m
		recorder = m
	}

	manager, err := results.InitManager(rt.config.Data, rt.logger, recorder)
	if err != nil {
		return nil, fmt.Errorf("failed to load result tables: %w", err)
	}
	application.Results = manager
	application.Presenter = results.NewPresenter(manager)

	return application, nil
}

// newHandler composes the JSON API, the web UI and the metrics endpoint behind the shared middleware.
func newHandler(application *app.Application) (http.Handler, *restapi.RestAPI) {
	mux := http.NewServeMux()

	api := restapi.NewRestAPI(application)
	api.SetRoutes(mux)

	if application.Metrics != nil {
		mux.Handle("GET /metrics", application.Metrics.Handler())
	}

	webui.NewWebUI(application).SetWebUIRoutes(mux)

	return api.Wrap(mux), api
}
