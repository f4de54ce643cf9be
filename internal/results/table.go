package results

import (
	"slices"
)

// CountryTable is the row concatenation of the convergers and divergers tables of one mode.
// It is never mutated after construction.
type CountryTable struct {
	Mode       Mode
	Convergers RecordSet
	Divergers  RecordSet
	all        RecordSet
}

func NewCountryTable(mode Mode, convergers, divergers RecordSet) *CountryTable {
	all := make(RecordSet, 0, len(convergers)+len(divergers))
	all = append(all, convergers...)
	all = append(all, divergers...)
	return &CountryTable{
		Mode:       mode,
		Convergers: convergers,
		Divergers:  divergers,
		all:        all,
	}
}

// All returns every record, convergers first. Duplicates across the two sets are kept.
func (table *CountryTable) All() RecordSet {
	return table.all
}

// Records returns the record set a group draws from.
func (table *CountryTable) Records(group Group) RecordSet {
	switch group {
	case ConvergersOnly:
		return table.Convergers
	case DivergersOnly:
		return table.Divergers
	default:
		return table.all
	}
}

// Countries returns the sorted, duplicate-free country names of a group.
func (table *CountryTable) Countries(group Group) []string {
	records := table.Records(group)
	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, record.Country)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Find returns the first record of the group matching country exactly.
func (table *CountryTable) Find(group Group, country string) (*ProjectionRecord, bool) {
	records := table.Records(group)
	for i := range records {
		if records[i].Country == country {
			return &records[i], true
		}
	}
	return nil, false
}

// LookupResult is the resolved cell plus the fields displayed next to it.
type LookupResult struct {
	Found     bool
	Country   string
	Group     Group
	Key       ColumnKey
	Outcome   Outcome
	GapIn2080 float64
	BestModel *string
	CVMSE     *float64
}

// Lookup resolves the result for country under key. A missing country is reported
// through Found, never as an error.
func (table *CountryTable) Lookup(group Group, country string, key ColumnKey) LookupResult {
	result := LookupResult{Country: country, Key: key}

	record, ok := table.Find(group, country)
	if !ok {
		return result
	}

	result.Found = true
	result.Group = record.Group
	result.Outcome = record.Results[key]
	result.GapIn2080 = record.GapIn2080
	if table.Mode.HasModelMetadata() {
		result.BestModel = record.BestModel
		result.CVMSE = record.CVMSE
	}
	return result
}
