package results

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// MaxCompare is the largest number of countries shown side by side.
const MaxCompare = 4

// CompareColumns is the number of columns comparison charts alternate between.
const CompareColumns = 2

// Request holds every user selection for one render. It is passed by value and never mutated.
type Request struct {
	Mode           Mode
	Group          Group
	Country        string
	Scenario       Scenario
	Threshold      Threshold
	CompareEnabled bool
	Compare        []string
}

// Key is the result column addressed by the request.
func (req Request) Key() ColumnKey {
	return ColumnKey{Scenario: req.Scenario, Threshold: req.Threshold}
}

type ResultView struct {
	Found     bool
	Converges bool
	Year      int
	Message   string
	Gap       string
	BestModel string
	CVMSE     string
}

// HasModelMetadata reports whether model details should be shown.
func (v ResultView) HasModelMetadata() bool {
	return v.BestModel != "" || v.CVMSE != ""
}

type ChartView struct {
	Available    bool
	Chart        ChartImage
	DownloadName string
	Message      string
}

type ComparisonEntry struct {
	Index     int
	Column    int
	Country   string
	Available bool
	Chart     ChartImage
	Warning   string
}

// View is everything the dashboard shows for one Request.
type View struct {
	Request    Request
	ModeLabel  string
	Countries  []string
	Country    string
	Key        ColumnKey
	Result     ResultView
	Chart      ChartView
	Comparison []ComparisonEntry
}

// Columns splits the comparison entries into their display columns.
func (v *View) Columns() [CompareColumns][]ComparisonEntry {
	var columns [CompareColumns][]ComparisonEntry
	for _, entry := range v.Comparison {
		columns[entry.Column] = append(columns[entry.Column], entry)
	}
	return columns
}

// Presenter turns requests into views. It holds no per-request state.
type Presenter struct {
	manager *Manager
}

func NewPresenter(manager *Manager) *Presenter {
	return &Presenter{manager: manager}
}

// Render derives the complete view for req from the loaded tables.
func (p *Presenter) Render(ctx context.Context, req Request) (*View, error) {
	if req.CompareEnabled && len(req.Compare) > MaxCompare {
		return nil, fmt.Errorf("%w: %d selected, at most %d allowed", ErrTooManyCountries, len(req.Compare), MaxCompare)
	}

	table, err := p.manager.Tables(ctx, req.Mode)
	if err != nil {
		return nil, err
	}

	view := &View{
		Request:   req,
		ModeLabel: req.Mode.Label(),
		Countries: table.Countries(req.Group),
		Country:   req.Country,
		Key:       req.Key(),
	}
	if view.Country == "" && len(view.Countries) > 0 {
		view.Country = view.Countries[0]
	}

	lookup := table.Lookup(req.Group, view.Country, view.Key)
	view.Result = p.resultView(lookup, req)

	if lookup.Found {
		view.Chart = p.chartView(view.Country, req.Mode)
	}

	if req.CompareEnabled {
		view.Comparison, err = p.Compare(ctx, req.Mode, req.Compare)
		if err != nil {
			return nil, err
		}
	}

	return view, nil
}

// Lookup resolves the single result cell addressed by req, without chart or comparison work.
func (p *Presenter) Lookup(ctx context.Context, req Request) (LookupResult, ResultView, error) {
	table, err := p.manager.Tables(ctx, req.Mode)
	if err != nil {
		return LookupResult{}, ResultView{}, err
	}
	lookup := table.Lookup(req.Group, req.Country, req.Key())
	return lookup, p.resultView(lookup, req), nil
}

func (p *Presenter) resultView(lookup LookupResult, req Request) ResultView {
	mode := req.Mode.String()
	if !lookup.Found {
		p.manager.recorder.IncLookup(mode, "not_found")
		return ResultView{Message: fmt.Sprintf("No data for %s in this mode.", lookup.Country)}
	}

	view := ResultView{
		Found:     true,
		Converges: lookup.Outcome.Converges,
		Year:      lookup.Outcome.Year,
		Gap:       formatNumber(lookup.GapIn2080),
	}
	if lookup.Outcome.Converges {
		p.manager.recorder.IncLookup(mode, "converges")
		view.Message = fmt.Sprintf("Converges in %d under %s/%s%%.", lookup.Outcome.Year, req.Scenario, req.Threshold)
	} else {
		p.manager.recorder.IncLookup(mode, "does_not_converge")
		view.Message = fmt.Sprintf("%s does not converge under %s/%s%%.", lookup.Country, req.Scenario, req.Threshold)
	}
	if lookup.BestModel != nil {
		view.BestModel = *lookup.BestModel
	}
	if lookup.CVMSE != nil {
		view.CVMSE = formatNumber(*lookup.CVMSE)
	}
	return view
}

func (p *Presenter) chartView(country string, mode Mode) ChartView {
	charts := p.manager.Charts()
	chart, err := charts.Resolve(country, mode)
	if err != nil {
		p.manager.recorder.IncChartMissing(mode.String())
		return ChartView{Message: "Plot not available."}
	}
	return ChartView{
		Available:    true,
		Chart:        chart,
		DownloadName: charts.DownloadName(country, mode),
	}
}

// Compare resolves the charts of up to MaxCompare countries in selection order.
// Missing charts become per-country warnings.
func (p *Presenter) Compare(ctx context.Context, mode Mode, countries []string) ([]ComparisonEntry, error) {
	if len(countries) > MaxCompare {
		return nil, fmt.Errorf("%w: %d selected, at most %d allowed", ErrTooManyCountries, len(countries), MaxCompare)
	}

	entries := make([]ComparisonEntry, 0, len(countries))
	for idx, country := range countries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry := ComparisonEntry{
			Index:   idx,
			Column:  idx % CompareColumns,
			Country: country,
		}
		chart, err := p.manager.Charts().Resolve(country, mode)
		switch {
		case err == nil:
			entry.Available = true
			entry.Chart = chart
		case errors.Is(err, ErrChartNotFound):
			p.manager.recorder.IncChartMissing(mode.String())
			entry.Warning = fmt.Sprintf("No plot for %s", country)
		default:
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
