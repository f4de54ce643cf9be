package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartPath(t *testing.T) {
	config := DefaultConfig()

	t.Run("suffix scheme", func(t *testing.T) {
		resolver := NewChartResolver(config, nil)

		assert.Equal(t, filepath.Join("Result", "Bosnia_and_Herzegovina.png"), resolver.Path("Bosnia and Herzegovina", BestModel))
		assert.Equal(t, filepath.Join("Result", "Bosnia_and_Herzegovina_linear.png"), resolver.Path("Bosnia and Herzegovina", LinearOnly))
	})

	t.Run("subdirectory scheme ignores mode", func(t *testing.T) {
		config := config
		config.ImageScheme = SubdirectoryScheme
		resolver := NewChartResolver(config, nil)

		want := filepath.Join("Result", "Plots", "North_Macedonia.png")
		assert.Equal(t, want, resolver.Path("North Macedonia", BestModel))
		assert.Equal(t, want, resolver.Path("North Macedonia", LinearOnly))
	})

	t.Run("path is a pure function", func(t *testing.T) {
		resolver := NewChartResolver(config, nil)
		first := resolver.Path("Albania", LinearOnly)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, resolver.Path("Albania", LinearOnly))
		}
	})
}

func TestDownloadName(t *testing.T) {
	config := DefaultConfig()
	resolver := NewChartResolver(config, nil)

	assert.Equal(t, "Albania_convergence_linear.png", resolver.DownloadName("Albania", LinearOnly))
	assert.Equal(t, "Albania_convergence.png", resolver.DownloadName("Albania", BestModel))

	config.ImageScheme = SubdirectoryScheme
	resolver = NewChartResolver(config, nil)
	assert.Equal(t, "Albania_convergence.png", resolver.DownloadName("Albania", LinearOnly))
}

func TestResolveChart(t *testing.T) {
	config := FixtureConfig(t)
	resolver := NewChartResolver(config, nil)

	t.Run("existing chart", func(t *testing.T) {
		chart, err := resolver.Resolve("Albania", BestModel)
		require.NoError(t, err)
		assert.Equal(t, "Albania", chart.Country)
		assert.Equal(t, filepath.Join(config.ResultDir, "Albania.png"), chart.Path)
		assert.Equal(t, 4, chart.Width)
		assert.Equal(t, 3, chart.Height)
	})

	t.Run("country with spaces", func(t *testing.T) {
		chart, err := resolver.Resolve("Bosnia and Herzegovina", BestModel)
		require.NoError(t, err)
		assert.Equal(t, 5, chart.Width)
	})

	t.Run("missing chart", func(t *testing.T) {
		_, err := resolver.Resolve("Serbia", BestModel)
		assert.ErrorIs(t, err, ErrChartNotFound)
	})

	t.Run("file that is not a PNG", func(t *testing.T) {
		_, err := resolver.Resolve("Ukraine", BestModel)
		assert.ErrorIs(t, err, ErrChartNotFound)
	})

	t.Run("names cannot escape the result directory", func(t *testing.T) {
		dir := t.TempDir()
		config := config
		config.ResultDir = filepath.Join(dir, "Result")
		require.NoError(t, os.MkdirAll(config.ResultDir, 0o755))
		png, err := os.ReadFile(filepath.Join(GetFixtureResultDir(t), "Albania.png"))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "escape.png"), png, 0o600))

		_, err = NewChartResolver(config, nil).Resolve("../escape", BestModel)
		assert.ErrorIs(t, err, ErrChartNotFound)
	})

	t.Run("subdirectory scheme", func(t *testing.T) {
		config := config
		config.ImageScheme = SubdirectoryScheme
		resolver := NewChartResolver(config, nil)

		chart, err := resolver.Resolve("Moldova", LinearOnly)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(config.ResultDir, "Plots", "Moldova.png"), chart.Path)
		assert.Equal(t, 3, chart.Width)
	})
}
