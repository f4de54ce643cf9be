package results

import "errors"

var (
	// ErrTableNotFound is returned when a source CSV is missing.
	ErrTableNotFound = errors.New("result table not found")
	// ErrTableParse is returned when a source CSV is malformed.
	ErrTableParse = errors.New("result table malformed")
	// ErrChartNotFound is returned when no readable PNG exists for a country.
	ErrChartNotFound = errors.New("chart not available")
	// ErrTooManyCountries is returned when a comparison exceeds MaxCompare countries.
	ErrTooManyCountries = errors.New("too many countries selected for comparison")
	// ErrInvalidParameter wraps every request parameter parse failure.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrModeDisabled is returned when a mode is requested that the server was not configured to load.
	ErrModeDisabled = errors.New("mode not enabled")
)
