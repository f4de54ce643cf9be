package results

import (
	"path/filepath"
	"testing"
)

// GetFixtureResultDir returns the absolute path of the "testdata/Result" directory at the project root.
func GetFixtureResultDir(t *testing.T) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", "Result"))
	if err != nil {
		t.Fatalf("Failed to get absolute path to testdata/Result: %v", err)
	}

	return absPath
}

// FixtureConfig returns the default configuration pointed at the fixture result directory.
func FixtureConfig(t *testing.T) Config {
	t.Helper()

	config := DefaultConfig()
	config.ResultDir = GetFixtureResultDir(t)
	return config
}
