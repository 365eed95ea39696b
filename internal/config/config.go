// Package config provides configuration for the server using command-line
// flags, environment variables and an optional JSON file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the server.
type Options struct {
	// Address is the server's listening address (ip:port).
	Address string

	// DatabaseDSN is the PostgreSQL connection string.
	DatabaseDSN string

	// JWTSecret signs issued bearer tokens.
	JWTSecret string

	// Config is the path to the config file.
	Config string
}

var options = &Options{}

func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port")
	flag.StringVar(&options.DatabaseDSN, "d", "", "database connection string")
	flag.StringVar(&options.JWTSecret, "s", "", "JWT signing secret")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse reads flags, the optional config file and environment variables, in
// that order of precedence (lowest to highest for env), and returns the
// resulting Options.
func Parse() *Options {
	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		options.Address = addr
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}

	return options
}
