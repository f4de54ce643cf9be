package utils

import (
	"fmt"
	"regexp"
	"strings"

	"wageconv.org/explorer/internal/results"
)

// Detect HTML/script tags
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ValidateCountryName validates a country name received from a request
func ValidateCountryName(country string) error {
	return results.ValidateCountryName(country)
}

// ValidateCountryList validates a multi-country selection of at most max entries
func ValidateCountryList(countries []string, max int) error {
	if len(countries) > max {
		return fmt.Errorf("select at most %d countries", max)
	}
	seen := make(map[string]bool, len(countries))
	for _, country := range countries {
		if err := ValidateCountryName(country); err != nil {
			return fmt.Errorf("%q: %w", country, err)
		}
		if seen[country] {
			return fmt.Errorf("%q selected more than once", country)
		}
		seen[country] = true
	}
	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}
