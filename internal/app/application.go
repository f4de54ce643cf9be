package app

import (
	"log/slog"

	"wageconv.org/explorer/internal/appconf"
	"wageconv.org/explorer/internal/metrics"
	"wageconv.org/explorer/internal/results"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	Results   *results.Manager
	Presenter *results.Presenter
	Metrics   *metrics.Metrics
}
