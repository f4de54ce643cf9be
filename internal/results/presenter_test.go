package results

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixturePresenter(t *testing.T, mutate ...func(*Config)) (*Presenter, *countingRecorder) {
	t.Helper()

	config := FixtureConfig(t)
	for _, m := range mutate {
		m(&config)
	}
	recorder := newCountingRecorder()
	manager, err := InitManager(config, nil, recorder)
	require.NoError(t, err)
	return NewPresenter(manager), recorder
}

func TestRenderAlbaniaExample(t *testing.T) {
	presenter, recorder := newFixturePresenter(t)
	ctx := context.Background()

	t.Run("low 70 does not converge", func(t *testing.T) {
		view, err := presenter.Render(ctx, Request{
			Mode: BestModel, Group: AllCountries, Country: "Albania",
			Scenario: Low, Threshold: Threshold70,
		})
		require.NoError(t, err)

		assert.Equal(t, "L-70", view.Key.String())
		assert.True(t, view.Result.Found)
		assert.False(t, view.Result.Converges)
		assert.Equal(t, "Albania does not converge under Low/70%.", view.Result.Message)
		assert.Equal(t, "0.32", view.Result.Gap)
	})

	t.Run("medium 80 converges in 2045", func(t *testing.T) {
		view, err := presenter.Render(ctx, Request{
			Mode: BestModel, Group: AllCountries, Country: "Albania",
			Scenario: Medium, Threshold: Threshold80,
		})
		require.NoError(t, err)

		assert.True(t, view.Result.Converges)
		assert.Equal(t, 2045, view.Result.Year)
		assert.Equal(t, "Converges in 2045 under Medium/80%.", view.Result.Message)
		assert.Equal(t, "0.32", view.Result.Gap)
		assert.Equal(t, "quadratic", view.Result.BestModel)
		assert.Equal(t, "0.0012", view.Result.CVMSE)
		assert.True(t, view.Result.HasModelMetadata())
		assert.Equal(t, "Best-model (original)", view.ModeLabel)

		require.True(t, view.Chart.Available)
		assert.Equal(t, "Albania_convergence.png", view.Chart.DownloadName)
	})

	assert.Equal(t, 1, recorder.lookups["best-model/does_not_converge"])
	assert.Equal(t, 1, recorder.lookups["best-model/converges"])
}

func TestRenderLinearMode(t *testing.T) {
	presenter, _ := newFixturePresenter(t)

	view, err := presenter.Render(context.Background(), Request{
		Mode: LinearOnly, Group: AllCountries, Country: "Albania",
		Scenario: Low, Threshold: Threshold80,
	})
	require.NoError(t, err)

	assert.Equal(t, "Linear only", view.ModeLabel)
	assert.Equal(t, 2077, view.Result.Year)
	assert.Equal(t, "0.35", view.Result.Gap)
	assert.False(t, view.Result.HasModelMetadata())
	require.True(t, view.Chart.Available)
	assert.Contains(t, view.Chart.Chart.Path, "Albania_linear.png")
	assert.Equal(t, "Albania_convergence_linear.png", view.Chart.DownloadName)
}

func TestRenderDefaultsToFirstCountry(t *testing.T) {
	presenter, _ := newFixturePresenter(t)

	view, err := presenter.Render(context.Background(), Request{
		Mode: BestModel, Group: DivergersOnly, Scenario: High, Threshold: Threshold90,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Moldova", "Serbia", "Ukraine"}, view.Countries)
	assert.Equal(t, "Moldova", view.Country)
	assert.Equal(t, 2079, view.Result.Year)
}

func TestRenderUnknownCountry(t *testing.T) {
	presenter, recorder := newFixturePresenter(t)

	view, err := presenter.Render(context.Background(), Request{
		Mode: BestModel, Country: "Atlantis", Scenario: Low, Threshold: Threshold70,
	})
	require.NoError(t, err)

	assert.False(t, view.Result.Found)
	assert.Equal(t, "No data for Atlantis in this mode.", view.Result.Message)
	assert.False(t, view.Chart.Available)
	assert.NotEmpty(t, view.Countries, "the rest of the view is still populated")
	assert.Equal(t, 1, recorder.lookups["best-model/not_found"])
}

func TestRenderMissingChart(t *testing.T) {
	presenter, recorder := newFixturePresenter(t)

	view, err := presenter.Render(context.Background(), Request{
		Mode: BestModel, Country: "Serbia", Scenario: Low, Threshold: Threshold70,
	})
	require.NoError(t, err)

	assert.True(t, view.Result.Found)
	assert.False(t, view.Chart.Available)
	assert.Equal(t, "Plot not available.", view.Chart.Message)
	assert.Equal(t, 1, recorder.chartsMissing)
}

func TestCompare(t *testing.T) {
	presenter, _ := newFixturePresenter(t)
	ctx := context.Background()

	t.Run("alternates columns and warns per missing chart", func(t *testing.T) {
		entries, err := presenter.Compare(ctx, BestModel, []string{"Albania", "Serbia", "Bosnia and Herzegovina", "Ukraine"})
		require.NoError(t, err)
		require.Len(t, entries, 4)

		for idx, entry := range entries {
			assert.Equal(t, idx, entry.Index)
			assert.Equal(t, idx%2, entry.Column)
		}
		assert.True(t, entries[0].Available)
		assert.False(t, entries[1].Available)
		assert.Equal(t, "No plot for Serbia", entries[1].Warning)
		assert.True(t, entries[2].Available)
		assert.False(t, entries[3].Available)
	})

	t.Run("every chart missing still succeeds", func(t *testing.T) {
		entries, err := presenter.Compare(ctx, LinearOnly, []string{"Serbia", "Ukraine", "Atlantis", "Bosnia and Herzegovina"})
		require.NoError(t, err)
		require.Len(t, entries, 4)
		for _, entry := range entries {
			assert.False(t, entry.Available)
			assert.NotEmpty(t, entry.Warning)
		}
	})

	t.Run("empty selection", func(t *testing.T) {
		entries, err := presenter.Compare(ctx, BestModel, nil)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("more than four is rejected", func(t *testing.T) {
		_, err := presenter.Compare(ctx, BestModel, []string{"a", "b", "c", "d", "e"})
		assert.ErrorIs(t, err, ErrTooManyCountries)
	})
}

func TestRenderComparison(t *testing.T) {
	presenter, _ := newFixturePresenter(t)
	ctx := context.Background()

	view, err := presenter.Render(ctx, Request{
		Mode: BestModel, Country: "Albania", Scenario: Low, Threshold: Threshold70,
		CompareEnabled: true, Compare: []string{"Albania", "Moldova", "Bosnia and Herzegovina"},
	})
	require.NoError(t, err)
	require.Len(t, view.Comparison, 3)

	columns := view.Columns()
	assert.Len(t, columns[0], 2)
	assert.Len(t, columns[1], 1)
	assert.Equal(t, "Moldova", columns[1][0].Country)

	_, err = presenter.Render(ctx, Request{
		Mode: BestModel, CompareEnabled: true, Compare: []string{"a", "b", "c", "d", "e"},
	})
	assert.ErrorIs(t, err, ErrTooManyCountries)

	view, err = presenter.Render(ctx, Request{Mode: BestModel, Compare: []string{"Albania"}})
	require.NoError(t, err)
	assert.Empty(t, view.Comparison, "selections are ignored while comparison is off")
}

func TestRenderSubdirectoryScheme(t *testing.T) {
	presenter, _ := newFixturePresenter(t, func(c *Config) { c.ImageScheme = SubdirectoryScheme })

	view, err := presenter.Render(context.Background(), Request{
		Mode: LinearOnly, Country: "Albania", Scenario: Low, Threshold: Threshold70,
	})
	require.NoError(t, err)
	require.True(t, view.Chart.Available)
	assert.Contains(t, view.Chart.Chart.Path, "Plots")
	assert.Equal(t, 6, view.Chart.Chart.Width)
}

func TestPresenterLookup(t *testing.T) {
	presenter, recorder := newFixturePresenter(t)
	ctx := context.Background()

	lookup, view, err := presenter.Lookup(ctx, Request{
		Mode: BestModel, Group: DivergersOnly, Country: "Moldova", Scenario: High, Threshold: Threshold90,
	})
	require.NoError(t, err)
	assert.True(t, lookup.Found)
	assert.Equal(t, "Converges in 2079 under High/90%.", view.Message)
	assert.Equal(t, "0.61", view.Gap)

	lookup, view, err = presenter.Lookup(ctx, Request{
		Mode: BestModel, Group: ConvergersOnly, Country: "Moldova", Scenario: High, Threshold: Threshold90,
	})
	require.NoError(t, err)
	assert.False(t, lookup.Found)
	assert.Equal(t, "No data for Moldova in this mode.", view.Message)
	assert.Equal(t, 1, recorder.lookups["best-model/not_found"])

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = presenter.Lookup(ctx, Request{Mode: BestModel, Country: "Moldova"})
	assert.ErrorIs(t, err, context.Canceled)
}
