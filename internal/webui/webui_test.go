package webui

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"wageconv.org/explorer/internal/app"
	"wageconv.org/explorer/internal/appconf"
	"wageconv.org/explorer/internal/results"
)

func createTestWebUI(t *testing.T, mutate ...func(*results.Config)) *WebUI {
	t.Helper()

	config := results.FixtureConfig(t)
	for _, m := range mutate {
		m(&config)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager, err := results.InitManager(config, logger, nil)
	require.NoError(t, err)

	return NewWebUI(&app.Application{
		Config:    appconf.Config{Env: appconf.Test},
		Logger:    logger,
		Results:   manager,
		Presenter: results.NewPresenter(manager),
	})
}

// get serves target through a ServeMux with the web UI mounted and returns the response body.
func get(t *testing.T, webUI *WebUI, target string) (*http.Response, string) {
	t.Helper()

	mux := http.NewServeMux()
	webUI.SetWebUIRoutes(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Get(server.URL + target)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}
