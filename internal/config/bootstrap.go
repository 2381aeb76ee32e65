package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Bootstrap holds the handful of process-level settings read before the
// schema-validated configuration exists: where to find the properties
// file and how the process itself should behave. Values come from the
// environment first, then command-line flags (flags win when set).
type Bootstrap struct {
	// PropertiesFile is the path to the flat properties file. Empty means
	// resolve from environment overrides and defaults only.
	PropertiesFile string `env:"KAFKA_REST_PROPERTIES_FILE"`

	// LogLevel is the zerolog level name (debug, info, warn, error).
	LogLevel string `env:"KAFKA_REST_LOG_LEVEL" envDefault:"info"`

	// PrintConfigDoc makes the process print the configuration reference
	// table and exit without starting the server.
	PrintConfigDoc bool
}

// LoadBootstrap parses bootstrap settings from the environment and from
// args (the command line without the program name).
func LoadBootstrap(args []string) (*Bootstrap, error) {
	b := &Bootstrap{}
	if err := env.Parse(b); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	fs := flag.NewFlagSet("kafka-rest", flag.ContinueOnError)
	fs.StringVar(&b.PropertiesFile, "properties", b.PropertiesFile, "Path to the properties file")
	fs.StringVar(&b.LogLevel, "log-level", b.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&b.PrintConfigDoc, "print-config-doc", false, "Print the configuration reference table and exit")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return b, nil
}
