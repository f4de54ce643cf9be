// Package webui serves the HTML dashboard, chart images and the debug data dump.
package webui

import (
	"embed"
	"html/template"
	"net/url"

	"wageconv.org/explorer/internal/app"
	"wageconv.org/explorer/internal/results"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"chartURL":    chartURL,
	"downloadURL": downloadURL,
	"selected": func(selected bool) template.HTMLAttr {
		if selected {
			return "selected"
		}
		return ""
	},
	"checked": func(checked bool) template.HTMLAttr {
		if checked {
			return "checked"
		}
		return ""
	},
	"contains": func(list []string, s string) bool {
		for _, item := range list {
			if item == s {
				return true
			}
		}
		return false
	},
}

var templates = template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))

type WebUI struct {
	*app.Application
}

func NewWebUI(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}

func chartURL(country string, mode results.Mode) string {
	return "/charts/" + url.PathEscape(country) + "?mode=" + url.QueryEscape(mode.String())
}

func downloadURL(country string, mode results.Mode) string {
	return "/download/" + url.PathEscape(country) + "?mode=" + url.QueryEscape(mode.String())
}
