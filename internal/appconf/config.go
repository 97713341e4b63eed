package appconf

import "os"

// Environment identifies the operating environment for the Application.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// Config holds all the configuration settings for our Application.
// We read these in from command-line flags and environment variables when
// the Application starts.
type Config struct {
	Port        int
	Env         Environment
	ApiKeys     []string
	DataDir     string
	RateLimit   int
	OracleToken string
}

// EnvFlagToEnvironment converts the string env flag value to an Environment.
func EnvFlagToEnvironment(envFlag string) Environment {
	switch envFlag {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}

// GetEnv reads an environment variable, falling back to a default when unset.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
