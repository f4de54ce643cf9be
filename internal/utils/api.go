package utils

import (
	"net/url"

	"wageconv.org/explorer/internal/results"
)

// CompareParam is the repeated query parameter carrying comparison selections.
const CompareParam = "cmp"

// ParseRequest builds a dashboard request from query parameters. Missing parameters take
// their defaults; invalid ones are reported in fieldErrors.
// - params: URL query parameters.
// - defaultMode: the mode used when "mode" is absent.
// Returns the request and a map of field name to validation messages (empty when valid).
func ParseRequest(params url.Values, defaultMode results.Mode) (results.Request, map[string][]string) {
	fieldErrors := make(map[string][]string)
	req := results.Request{
		Mode:      defaultMode,
		Group:     results.AllCountries,
		Scenario:  results.Low,
		Threshold: results.Threshold70,
	}

	if raw := params.Get("mode"); raw != "" {
		if mode, err := results.ParseMode(raw); err != nil {
			fieldErrors["mode"] = append(fieldErrors["mode"], invalidFieldMessage("mode"))
		} else {
			req.Mode = mode
		}
	}

	if raw := params.Get("group"); raw != "" {
		if group, err := results.ParseGroup(raw); err != nil {
			fieldErrors["group"] = append(fieldErrors["group"], invalidFieldMessage("group"))
		} else {
			req.Group = group
		}
	}

	if raw := params.Get("scenario"); raw != "" {
		if scenario, err := results.ParseScenario(raw); err != nil {
			fieldErrors["scenario"] = append(fieldErrors["scenario"], invalidFieldMessage("scenario"))
		} else {
			req.Scenario = scenario
		}
	}

	if raw := params.Get("threshold"); raw != "" {
		if threshold, err := results.ParseThreshold(raw); err != nil {
			fieldErrors["threshold"] = append(fieldErrors["threshold"], invalidFieldMessage("threshold"))
		} else {
			req.Threshold = threshold
		}
	}

	if raw := SanitizeInput(params.Get("country")); raw != "" {
		if err := ValidateCountryName(raw); err != nil {
			fieldErrors["country"] = append(fieldErrors["country"], err.Error())
		}
		req.Country = raw
	}

	req.CompareEnabled = params.Get("compare") == "on" || params.Get("compare") == "true"
	if req.CompareEnabled {
		var selected []string
		for _, raw := range params[CompareParam] {
			if country := SanitizeInput(raw); country != "" {
				selected = append(selected, country)
			}
		}
		if err := ValidateCountryList(selected, results.MaxCompare); err != nil {
			fieldErrors[CompareParam] = append(fieldErrors[CompareParam], err.Error())
		}
		req.Compare = selected
	}

	return req, fieldErrors
}

func invalidFieldMessage(key string) string {
	return "Invalid field value for field \"" + key + "\"."
}
