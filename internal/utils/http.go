package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractParam retrieves a path parameter from either an httprouter route or a ServeMux
// pattern and removes a trailing ".json" or ".png" extension.
func ExtractParam(r *http.Request, paramName string) string {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(paramName)
	if raw == "" {
		raw = r.PathValue(paramName)
	}
	for _, ext := range []string{".json", ".png"} {
		if trimmed, ok := strings.CutSuffix(raw, ext); ok {
			return trimmed
		}
	}
	return raw
}
