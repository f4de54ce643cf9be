package results

import (
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"wageconv.org/explorer/internal/logging"
)

// ChartImage is a pre-rendered PNG found on disk.
type ChartImage struct {
	Country string
	Path    string
	Width   int
	Height  int
}

// ChartResolver maps countries to chart files under the configured result directory.
type ChartResolver struct {
	config Config
	logger *slog.Logger
}

func NewChartResolver(config Config, logger *slog.Logger) *ChartResolver {
	return &ChartResolver{config: config, logger: logger}
}

// FileStem is the country name with spaces replaced by the configured joiner.
func (resolver *ChartResolver) FileStem(country string) string {
	return strings.ReplaceAll(country, " ", resolver.config.NameJoiner)
}

// Path returns where the chart for country is expected. It does not touch the disk.
func (resolver *ChartResolver) Path(country string, mode Mode) string {
	stem := resolver.FileStem(country)
	if resolver.config.ImageScheme == SubdirectoryScheme {
		return filepath.Join(resolver.config.ResultDir, resolver.config.PlotsDir, stem+".png")
	}
	return filepath.Join(resolver.config.ResultDir, stem+resolver.config.suffix(mode)+".png")
}

// DownloadName is the file name offered when a chart is downloaded.
func (resolver *ChartResolver) DownloadName(country string, mode Mode) string {
	suffix := ""
	if resolver.config.ImageScheme == SuffixScheme {
		suffix = resolver.config.suffix(mode)
	}
	return country + "_convergence" + suffix + ".png"
}

// Resolve checks that the chart exists and is a PNG. Absent or unreadable charts
// yield ErrChartNotFound.
func (resolver *ChartResolver) Resolve(country string, mode Mode) (chart ChartImage, err error) {
	path := resolver.Path(country, mode)
	if !withinDir(resolver.config.ResultDir, path) {
		return ChartImage{}, fmt.Errorf("%w: %s", ErrChartNotFound, country)
	}

	file, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.LogError(resolver.logger, "failed to open chart", err, slog.String("path", path))
		}
		return ChartImage{}, fmt.Errorf("%w: %s", ErrChartNotFound, country)
	}
	defer logging.SafeCloseWithLogging(file, resolver.logger, "close_chart")

	cfg, err := png.DecodeConfig(file)
	if err != nil {
		logging.LogError(resolver.logger, "chart is not a readable PNG", err, slog.String("path", path))
		return ChartImage{}, fmt.Errorf("%w: %s", ErrChartNotFound, country)
	}

	return ChartImage{
		Country: country,
		Path:    path,
		Width:   cfg.Width,
		Height:  cfg.Height,
	}, nil
}

// withinDir guards against country names such as "../secrets" escaping the result directory.
func withinDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
