package restapi

import (
	"net/url"

	"wageconv.org/explorer/internal/results"
)

// chartURL is the web UI address of a country's chart in mode.
func chartURL(country string, mode results.Mode) string {
	return "/charts/" + url.PathEscape(country) + "?mode=" + url.QueryEscape(mode.String())
}

// onlyFields keeps the field errors an endpoint actually reads.
func onlyFields(fieldErrors map[string][]string, fields ...string) map[string][]string {
	picked := make(map[string][]string)
	for _, field := range fields {
		if msgs, ok := fieldErrors[field]; ok {
			picked[field] = msgs
		}
	}
	return picked
}
