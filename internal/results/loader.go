package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"wageconv.org/explorer/internal/logging"
)

const (
	countryColumn   = "country"
	gapColumn       = "gap_low_2080"
	bestModelColumn = "best_model"
	cvMSEColumn     = "cv_mse"
)

// LoadTables reads the convergers and divergers tables for mode.
// Any missing or malformed file is returned as an error; nothing is recovered.
func LoadTables(config Config, mode Mode, logger *slog.Logger) (*CountryTable, error) {
	convergersPath, divergersPath := config.TablePaths(mode)

	convergers, err := loadRecordSet(convergersPath, mode, ConvergersOnly, logger)
	if err != nil {
		return nil, err
	}
	divergers, err := loadRecordSet(divergersPath, mode, DivergersOnly, logger)
	if err != nil {
		return nil, err
	}

	return NewCountryTable(mode, convergers, divergers), nil
}

func loadRecordSet(path string, mode Mode, group Group, logger *slog.Logger) (records RecordSet, err error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTableNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer logging.HandleDeferredError(&err, file.Close, logger, "close_result_table")

	records, err = parseRecordSet(file, mode, group)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.LogOperation(logger, "result_table_loaded",
		slog.String("path", path),
		slog.String("mode", mode.String()),
		slog.String("group", group.String()),
		slog.Int("rows", len(records)))

	return records, nil
}

type tableLayout struct {
	country   int
	gap       int
	bestModel int
	cvMSE     int
	results   map[ColumnKey]int
}

func readLayout(headers []string, mode Mode) (tableLayout, error) {
	layout := tableLayout{country: -1, gap: -1, bestModel: -1, cvMSE: -1, results: make(map[ColumnKey]int)}

	for i, h := range headers {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case name == countryColumn:
			layout.country = i
		case name == gapColumn:
			layout.gap = i
		case name == bestModelColumn:
			layout.bestModel = i
		case name == cvMSEColumn:
			layout.cvMSE = i
		case looksLikeColumnKey(name):
			key, err := ParseColumnKey(name)
			if err != nil {
				return layout, fmt.Errorf("%w: header %q: %v", ErrTableParse, name, err)
			}
			if _, dup := layout.results[key]; dup {
				return layout, fmt.Errorf("%w: duplicate column %q", ErrTableParse, name)
			}
			layout.results[key] = i
		}
	}

	var missing []string
	if layout.country < 0 {
		missing = append(missing, countryColumn)
	}
	if layout.gap < 0 {
		missing = append(missing, gapColumn)
	}
	for _, key := range ColumnKeys() {
		if _, ok := layout.results[key]; !ok {
			missing = append(missing, key.String())
		}
	}
	if mode.HasModelMetadata() {
		if layout.bestModel < 0 {
			missing = append(missing, bestModelColumn)
		}
		if layout.cvMSE < 0 {
			missing = append(missing, cvMSEColumn)
		}
	}
	if len(missing) > 0 {
		return layout, fmt.Errorf("%w: missing columns %s", ErrTableParse, strings.Join(missing, ", "))
	}
	return layout, nil
}

// looksLikeColumnKey matches "<letter>-<digits>" headers so that typos fail loudly
// instead of being skipped as unrelated columns.
func looksLikeColumnKey(name string) bool {
	letter, digits, ok := strings.Cut(name, "-")
	if !ok || len(letter) != 1 || digits == "" {
		return false
	}
	if letter[0] < 'A' || letter[0] > 'Z' {
		return false
	}
	_, err := strconv.Atoi(digits)
	return err == nil
}

func parseRecordSet(r io.Reader, mode Mode, group Group) (RecordSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrTableParse, err)
	}
	layout, err := readLayout(headers, mode)
	if err != nil {
		return nil, err
	}

	var records RecordSet
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTableParse, err)
		}
		line, _ := reader.FieldPos(0)
		if len(row) != len(headers) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrTableParse, line, len(row), len(headers))
		}

		record, err := parseRecord(row, layout, mode, group)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrTableParse, line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRecord(row []string, layout tableLayout, mode Mode, group Group) (ProjectionRecord, error) {
	record := ProjectionRecord{
		Country: strings.TrimSpace(row[layout.country]),
		Group:   group,
		Results: make(map[ColumnKey]Outcome, len(layout.results)),
	}
	if record.Country == "" {
		return record, errors.New("empty country")
	}
	if err := ValidateCountryName(record.Country); err != nil {
		return record, fmt.Errorf("country %q: %v", record.Country, err)
	}

	for key, idx := range layout.results {
		outcome, err := ParseOutcome(row[idx])
		if err != nil {
			return record, fmt.Errorf("column %s: %v", key, err)
		}
		record.Results[key] = outcome
	}

	gap, err := strconv.ParseFloat(strings.TrimSpace(row[layout.gap]), 64)
	if err != nil {
		return record, fmt.Errorf("column %s: %q is not numeric", gapColumn, row[layout.gap])
	}
	record.GapIn2080 = gap

	if !mode.HasModelMetadata() {
		return record, nil
	}

	if model := strings.TrimSpace(row[layout.bestModel]); model != "" {
		record.BestModel = &model
	}
	if raw := strings.TrimSpace(row[layout.cvMSE]); raw != "" && !strings.EqualFold(raw, "nan") {
		mse, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return record, fmt.Errorf("column %s: %q is not numeric", cvMSEColumn, raw)
		}
		record.CVMSE = &mse
	}
	return record, nil
}
