package results

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects which upstream dataset variant is read and how charts are named.
type Mode int

const (
	// LinearOnly reads the reduced dataset (files carrying the linear suffix).
	LinearOnly Mode = iota
	// BestModel reads the full dataset with per-country model metadata.
	BestModel
)

// Modes lists every known mode in display order.
var Modes = []Mode{LinearOnly, BestModel}

func (m Mode) String() string {
	switch m {
	case LinearOnly:
		return "linear-only"
	case BestModel:
		return "best-model"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Label is the human readable name shown in the dashboard.
func (m Mode) Label() string {
	switch m {
	case LinearOnly:
		return "Linear only"
	case BestModel:
		return "Best-model (original)"
	default:
		return m.String()
	}
}

// HasModelMetadata reports whether records loaded in this mode carry best_model and cv_mse.
func (m Mode) HasModelMetadata() bool {
	return m == BestModel
}

// ParseMode accepts the canonical name, the label, or a short alias.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear-only", "linear", "linear only":
		return LinearOnly, nil
	case "best-model", "best", "best-model (original)":
		return BestModel, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, s)
}

// Group selects which record set country lists and lookups draw from.
type Group int

const (
	AllCountries Group = iota
	ConvergersOnly
	DivergersOnly
)

// Groups lists every group in display order.
var Groups = []Group{AllCountries, ConvergersOnly, DivergersOnly}

func (g Group) String() string {
	switch g {
	case AllCountries:
		return "all"
	case ConvergersOnly:
		return "convergers-only"
	case DivergersOnly:
		return "divergers-only"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

func (g Group) Label() string {
	switch g {
	case ConvergersOnly:
		return "Convergers only"
	case DivergersOnly:
		return "Divergers only"
	default:
		return "All"
	}
}

func ParseGroup(s string) (Group, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return AllCountries, nil
	case "convergers-only", "convergers":
		return ConvergersOnly, nil
	case "divergers-only", "divergers":
		return DivergersOnly, nil
	}
	return 0, fmt.Errorf("%w: unknown group %q", ErrInvalidParameter, s)
}

// Scenario is an assumed macroeconomic growth path.
type Scenario int

const (
	Low Scenario = iota
	Medium
	High
)

var Scenarios = []Scenario{Low, Medium, High}

func (s Scenario) String() string {
	switch s {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	default:
		return fmt.Sprintf("scenario(%d)", int(s))
	}
}

// Initial is the letter used in result column names.
func (s Scenario) Initial() string {
	return s.String()[:1]
}

// ParseScenario accepts a scenario name or its initial, in any case.
func ParseScenario(s string) (Scenario, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return Low, nil
	case "medium", "m":
		return Medium, nil
	case "high", "h":
		return High, nil
	}
	return 0, fmt.Errorf("%w: unknown scenario %q", ErrInvalidParameter, s)
}

// Threshold is the percentage convergence criterion.
type Threshold int

const (
	Threshold70 Threshold = 70
	Threshold80 Threshold = 80
	Threshold90 Threshold = 90
)

var Thresholds = []Threshold{Threshold70, Threshold80, Threshold90}

func (t Threshold) String() string {
	return strconv.Itoa(int(t))
}

func ParseThreshold(s string) (Threshold, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0, fmt.Errorf("%w: threshold %q is not a number", ErrInvalidParameter, s)
	}
	for _, t := range Thresholds {
		if int(t) == n {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unsupported threshold %d", ErrInvalidParameter, n)
}

// ColumnKey identifies one result column, e.g. "M-80".
type ColumnKey struct {
	Scenario  Scenario
	Threshold Threshold
}

func (k ColumnKey) String() string {
	return k.Scenario.Initial() + "-" + k.Threshold.String()
}

// ColumnKeys returns all nine scenario/threshold combinations.
func ColumnKeys() []ColumnKey {
	keys := make([]ColumnKey, 0, len(Scenarios)*len(Thresholds))
	for _, s := range Scenarios {
		for _, t := range Thresholds {
			keys = append(keys, ColumnKey{Scenario: s, Threshold: t})
		}
	}
	return keys
}

// ParseColumnKey parses a CSV header such as "L-70".
func ParseColumnKey(s string) (ColumnKey, error) {
	letter, threshold, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return ColumnKey{}, fmt.Errorf("%w: malformed column key %q", ErrInvalidParameter, s)
	}
	scenario, err := ParseScenario(letter)
	if err != nil || len(letter) != 1 {
		return ColumnKey{}, fmt.Errorf("%w: unknown scenario in column key %q", ErrInvalidParameter, s)
	}
	t, err := ParseThreshold(threshold)
	if err != nil {
		return ColumnKey{}, err
	}
	return ColumnKey{Scenario: scenario, Threshold: t}, nil
}

// NonConvergenceMarker is the cell value the upstream pipeline writes for "never converges".
const NonConvergenceMarker = "X"

// Outcome is a resolved result cell.
type Outcome struct {
	Converges bool
	Year      int
}

func (o Outcome) String() string {
	if !o.Converges {
		return NonConvergenceMarker
	}
	return strconv.Itoa(o.Year)
}

// ParseOutcome reads a result cell. Years written as floats ("2045.0") are accepted.
func ParseOutcome(cell string) (Outcome, error) {
	cell = strings.TrimSpace(cell)
	if cell == NonConvergenceMarker {
		return Outcome{}, nil
	}
	if year, err := strconv.Atoi(cell); err == nil {
		return Outcome{Converges: true, Year: year}, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != float64(int(f)) {
		return Outcome{}, fmt.Errorf("result cell %q is neither %q nor a year", cell, NonConvergenceMarker)
	}
	return Outcome{Converges: true, Year: int(f)}, nil
}

// ProjectionRecord is one country row of a source table.
type ProjectionRecord struct {
	Country   string
	Group     Group
	Results   map[ColumnKey]Outcome
	GapIn2080 float64
	BestModel *string
	CVMSE     *float64
}

// RecordSet is the ordered content of one source table.
type RecordSet []ProjectionRecord
