package models

import "wageconv.org/explorer/internal/results"

// ResultEntry is a single lookup of a country's projection under one scenario and threshold.
type ResultEntry struct {
	Country          string   `json:"country"`
	Group            string   `json:"group"`
	Mode             string   `json:"mode"`
	Scenario         string   `json:"scenario"`
	Threshold        int      `json:"threshold"`
	Column           string   `json:"column"`
	Converges        bool     `json:"converges"`
	ConvergenceYear  *int     `json:"convergenceYear"`
	Message          string   `json:"message"`
	GapIn2080        float64  `json:"gapIn2080"`
	BestModel        string   `json:"bestModel,omitempty"`
	CVMSE            *float64 `json:"cvMse,omitempty"`
	ChartAvailable   bool     `json:"chartAvailable"`
	ChartURL         string   `json:"chartUrl,omitempty"`
	DownloadFilename string   `json:"downloadFilename,omitempty"`
}

// NewResultEntry builds the entry for a found lookup. The caller fills in chart fields.
func NewResultEntry(mode results.Mode, lookup results.LookupResult, message string) ResultEntry {
	entry := ResultEntry{
		Country:   lookup.Country,
		Group:     lookup.Group.String(),
		Mode:      mode.String(),
		Scenario:  lookup.Key.Scenario.String(),
		Threshold: int(lookup.Key.Threshold),
		Column:    lookup.Key.String(),
		Converges: lookup.Outcome.Converges,
		Message:   message,
		GapIn2080: lookup.GapIn2080,
	}
	if lookup.Outcome.Converges {
		year := lookup.Outcome.Year
		entry.ConvergenceYear = &year
	}
	if mode.HasModelMetadata() {
		entry.BestModel = UnknownValue
		if lookup.BestModel != nil {
			entry.BestModel = *lookup.BestModel
		}
		entry.CVMSE = lookup.CVMSE
	}
	return entry
}

// ComparisonEntry is one slot of a side-by-side chart comparison.
type ComparisonEntry struct {
	Country   string `json:"country"`
	Column    int    `json:"column"`
	Available bool   `json:"available"`
	ChartURL  string `json:"chartUrl,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// HealthStatus reports the loaded tables per mode.
type HealthStatus struct {
	Status string         `json:"status"`
	Rows   map[string]int `json:"rows"`
}
