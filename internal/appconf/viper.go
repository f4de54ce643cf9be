package appconf

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"wageconv.org/explorer/internal/logging"
	"wageconv.org/explorer/internal/results"
)

// EnvPrefix prefixes every environment variable the explorer reads.
const EnvPrefix = "EXPLORER"

// SetDefaults registers the default value of every configuration key.
func SetDefaults(v *viper.Viper) {
	data := results.DefaultConfig()

	v.SetDefault("server.port", 4000)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.api_keys", []string{})
	v.SetDefault("server.rate_limit", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("data.result_dir", data.ResultDir)
	v.SetDefault("data.convergers_base", data.ConvergersBase)
	v.SetDefault("data.divergers_base", data.DivergersBase)
	v.SetDefault("data.linear_suffix", data.LinearSuffix)
	v.SetDefault("data.image_scheme", data.ImageScheme.String())
	v.SetDefault("data.plots_dir", data.PlotsDir)
	v.SetDefault("data.name_joiner", data.NameJoiner)
	v.SetDefault("data.cache_ttl", data.CacheTTL)
	v.SetDefault("data.modes", []string{results.LinearOnly.String(), results.BestModel.String()})
}

// envBinding holds metadata for environment variable bindings
type envBinding struct {
	ConfigKey string
	EnvVar    string
	Validate  func(string) error
}

func getEnvBindings() []envBinding {
	return []envBinding{
		{"server.port", EnvPrefix + "_PORT", validateEnvPort},
		{"server.env", EnvPrefix + "_ENV", nil},
		{"server.api_keys", EnvPrefix + "_API_KEYS", nil},
		{"server.rate_limit", EnvPrefix + "_RATE_LIMIT", validateEnvNonNegativeInt},
		{"log.level", EnvPrefix + "_LOG_LEVEL", validateEnvLogLevel},
		{"log.format", EnvPrefix + "_LOG_FORMAT", nil},
		{"data.result_dir", EnvPrefix + "_RESULT_DIR", nil},
		{"data.convergers_base", EnvPrefix + "_CONVERGERS_BASE", nil},
		{"data.divergers_base", EnvPrefix + "_DIVERGERS_BASE", nil},
		{"data.linear_suffix", EnvPrefix + "_LINEAR_SUFFIX", nil},
		{"data.image_scheme", EnvPrefix + "_IMAGE_SCHEME", validateEnvImageScheme},
		{"data.plots_dir", EnvPrefix + "_PLOTS_DIR", nil},
		{"data.cache_ttl", EnvPrefix + "_CACHE_TTL", nil},
		{"data.modes", EnvPrefix + "_MODES", nil},
	}
}

// BindEnv binds the EXPLORER_* environment variables and validates any that are set.
func BindEnv(v *viper.Viper) error {
	var warnings []string

	for _, binding := range getEnvBindings() {
		if err := v.BindEnv(binding.ConfigKey, binding.EnvVar); err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to bind %s: %v", binding.EnvVar, err))
			continue
		}
		if binding.Validate == nil {
			continue
		}
		if value := os.Getenv(binding.EnvVar); value != "" {
			if err := binding.Validate(value); err != nil {
				warnings = append(warnings, fmt.Sprintf("Invalid %s value '%s': %v", binding.EnvVar, value, err))
			}
		}
	}

	if len(warnings) > 0 {
		return fmt.Errorf("environment variable issues:\n  - %s", strings.Join(warnings, "\n  - "))
	}
	return nil
}

func validateEnvPort(value string) error {
	port, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("must be between 1 and 65535")
	}
	return nil
}

func validateEnvNonNegativeInt(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}

func validateEnvLogLevel(value string) error {
	_, err := logging.ParseLevel(value)
	return err
}

func validateEnvImageScheme(value string) error {
	_, err := results.ParseImageScheme(value)
	return err
}

// ReadConfigFile loads path, or an optional explorer.yaml from the working directory when path is empty.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("explorer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// FromViper builds a validated Config from the resolved keys.
func FromViper(v *viper.Viper) (Config, error) {
	scheme, err := results.ParseImageScheme(v.GetString("data.image_scheme"))
	if err != nil {
		return Config{}, err
	}

	var modes []results.Mode
	for _, name := range splitList(v.GetStringSlice("data.modes")) {
		mode, err := results.ParseMode(name)
		if err != nil {
			return Config{}, err
		}
		modes = append(modes, mode)
	}

	cfg := Config{
		Port:      v.GetInt("server.port"),
		Env:       EnvFlagToEnvironment(v.GetString("server.env")),
		ApiKeys:   splitList(v.GetStringSlice("server.api_keys")),
		RateLimit: v.GetInt("server.rate_limit"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Data: results.Config{
			ResultDir:      v.GetString("data.result_dir"),
			ConvergersBase: v.GetString("data.convergers_base"),
			DivergersBase:  v.GetString("data.divergers_base"),
			LinearSuffix:   v.GetString("data.linear_suffix"),
			ImageScheme:    scheme,
			PlotsDir:       v.GetString("data.plots_dir"),
			NameJoiner:     v.GetString("data.name_joiner"),
			CacheTTL:       v.GetDuration("data.cache_ttl"),
			Modes:          modes,
		},
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if err := cfg.Data.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// splitList flattens comma separated entries so that env values like "a,b" work.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
