package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Seed sources accepted by Config.SeedSource.
const (
	SeedEmbedded = "embedded"
	SeedNeo4j    = "neo4j"
)

// HTTPConfig holds the HTTP server settings.
type HTTPConfig struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Neo4jConfig holds the connection settings for the Neo4j seed source.
type Neo4jConfig struct {
	URI      string `yaml:"uri" env:"NEO4J_URI" env-default:"neo4j://localhost:7687"`
	User     string `yaml:"user" env:"NEO4J_USER" env-default:"neo4j"`
	Password string `yaml:"password" env:"NEO4J_PASSWORD"`
}

// Config is the application configuration.
type Config struct {
	LogLevel            string      `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	HTTP                HTTPConfig  `yaml:"http"`
	LatencyScale        float64     `yaml:"latency_scale" env:"LATENCY_SCALE" env-default:"1"`
	RecurrenceInstances int         `yaml:"recurrence_instances" env:"RECURRENCE_INSTANCES" env-default:"5"`
	SeedSource          string      `yaml:"seed_source" env:"SEED_SOURCE" env-default:"embedded"`
	Neo4j               Neo4jConfig `yaml:"neo4j"`
}

// Load reads the yaml file at configPath, falling back to the environment
// when the path is empty or the file does not exist.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		err := cleanenv.ReadEnv(&cfg)
		return cfg, err
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			cfg = Config{}
			err := cleanenv.ReadEnv(&cfg)
			return cfg, err
		}
		return cfg, err
	}
	return cfg, nil
}

// MustLoad is Load that exits the process on error.
func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}
	return cfg
}
