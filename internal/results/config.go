package results

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ImageScheme selects how chart files are laid out under the result directory.
type ImageScheme int

const (
	// SuffixScheme names charts <Country>.png / <Country><LinearSuffix>.png.
	SuffixScheme ImageScheme = iota
	// SubdirectoryScheme nests charts as <PlotsDir>/<Country>.png for every mode.
	SubdirectoryScheme
)

func (s ImageScheme) String() string {
	if s == SubdirectoryScheme {
		return "subdirectory"
	}
	return "suffix"
}

func ParseImageScheme(s string) (ImageScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "suffix", "":
		return SuffixScheme, nil
	case "subdirectory", "subdir", "plots":
		return SubdirectoryScheme, nil
	}
	return 0, fmt.Errorf("%w: unknown image scheme %q", ErrInvalidParameter, s)
}

type Config struct {
	ResultDir      string
	ConvergersBase string
	DivergersBase  string
	LinearSuffix   string
	ImageScheme    ImageScheme
	PlotsDir       string
	NameJoiner     string
	CacheTTL       time.Duration
	Modes          []Mode
}

// DefaultConfig matches the file layout written by the upstream analysis.
func DefaultConfig() Config {
	return Config{
		ResultDir:      "Result",
		ConvergersBase: "V30_convergers_low70",
		DivergersBase:  "V30_divergers_low70",
		LinearSuffix:   "_linear",
		ImageScheme:    SuffixScheme,
		PlotsDir:       "Plots",
		NameJoiner:     "_",
		CacheTTL:       10 * time.Minute,
		Modes:          []Mode{LinearOnly, BestModel},
	}
}

func (config Config) Validate() error {
	if config.ResultDir == "" {
		return fmt.Errorf("%w: result directory is empty", ErrInvalidParameter)
	}
	if config.ConvergersBase == "" || config.DivergersBase == "" {
		return fmt.Errorf("%w: table base names must be set", ErrInvalidParameter)
	}
	if config.ConvergersBase == config.DivergersBase {
		return fmt.Errorf("%w: convergers and divergers tables share the name %q", ErrInvalidParameter, config.ConvergersBase)
	}
	if config.LinearSuffix == "" {
		return fmt.Errorf("%w: linear suffix is empty", ErrInvalidParameter)
	}
	if len(config.Modes) == 0 {
		return fmt.Errorf("%w: no modes enabled", ErrInvalidParameter)
	}
	return nil
}

// ModeEnabled reports whether mode is in the configured set.
func (config Config) ModeEnabled(mode Mode) bool {
	for _, m := range config.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// DefaultMode is the first configured mode.
func (config Config) DefaultMode() Mode {
	if len(config.Modes) == 0 {
		return LinearOnly
	}
	return config.Modes[0]
}

// suffix is appended to table and chart file names for the given mode.
func (config Config) suffix(mode Mode) string {
	if mode == LinearOnly {
		return config.LinearSuffix
	}
	return ""
}

// TablePaths returns the convergers and divergers CSV paths for mode.
func (config Config) TablePaths(mode Mode) (convergers, divergers string) {
	suffix := config.suffix(mode)
	convergers = filepath.Join(config.ResultDir, config.ConvergersBase+suffix+".csv")
	divergers = filepath.Join(config.ResultDir, config.DivergersBase+suffix+".csv")
	return convergers, divergers
}
