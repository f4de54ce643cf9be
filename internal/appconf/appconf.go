package appconf

import (
	"strings"

	"wageconv.org/explorer/internal/results"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (env Environment) String() string {
	switch env {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the --env flag to an Environment. Unknown values mean development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Config holds all the configuration settings for the Application.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int // requests per second per client, 0 disables limiting
	Log       LogConfig
	Data      results.Config
}

type LogConfig struct {
	Level  string
	Format string
}
