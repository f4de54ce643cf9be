package results

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Letters in any script plus the punctuation found in country names
// ("Côte d'Ivoire", "Korea, Rep.", "Bosnia and Herzegovina").
var validCountryPattern = regexp.MustCompile(`^[\p{L}\p{M}0-9 .,'’()&-]+$`)

// MaxCountryLength caps country names in tables and requests.
const MaxCountryLength = 100

// ValidateCountryName checks a country name against the rule shared by the
// table loader and request parsing, so every loaded row can be selected.
func ValidateCountryName(country string) error {
	if country == "" {
		return errors.New("country cannot be empty")
	}

	if utf8.RuneCountInString(country) > MaxCountryLength {
		return fmt.Errorf("country too long (max %d characters)", MaxCountryLength)
	}

	if strings.Contains(country, "..") || !validCountryPattern.MatchString(country) {
		return errors.New("country contains invalid characters")
	}

	return nil
}
