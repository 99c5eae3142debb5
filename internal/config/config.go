package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Cache eviction policies selectable from the configuration file
const (
	PolicyLRU     = "lru"
	PolicyUnbound = "unbound"
	PolicyTimed   = "timed"
)

// A Config represents all configuration of service
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Database       DatabaseConfig       `yaml:"database"`
	Kafka          KafkaConfig          `yaml:"kafka"`
	Cache          CacheConfig          `yaml:"cache"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// A ServerConfig contains configurations for HTTP server
type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// A DatabaseConfig contains settings for Postgres
type DatabaseConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	User               string
	Password           string
	Database           string
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConnections int           `yaml:"max_open_connections"`
	MinOpenConnections int           `yaml:"min_open_connections"`
	MinIdleConnections int           `yaml:"min_idle_connections"`
	HealthCheckPeriod  time.Duration `yaml:"health_check_period"`
	Retry              RetryConfig   `yaml:"retry"`
}

// A KafkaConfig contains settings for Kafka
type KafkaConfig struct {
	Topic               string   `yaml:"topic"`
	GroupID             string   `yaml:"group_id"`
	Listeners           string   `yaml:"listeners"`
	AdvertisedListeners []string `yaml:"advertised_listeners"`
}

// A CacheConfig selects the cache variant and its bounds. Capacity applies to
// the lru policy (entry limit) and to the unbound and timed policies as an
// optional pre-allocation hint. Lifespan applies to the timed policy only.
type CacheConfig struct {
	Policy   string        `yaml:"policy"`
	Capacity int           `yaml:"capacity"`
	Lifespan time.Duration `yaml:"lifespan"`
}

// A RetryConfig represents retry configurations
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// A CircuitBreakerConfig represents circuit breaker configurations
type CircuitBreakerConfig struct {
	MaxFailers       int           `yaml:"max_failers"`
	Timeout          time.Duration `yaml:"timeout"`
	HalfOpenMaxCalls int           `yaml:"half_open_max_calls"`
}

// LoadConfig loads data into Config structure from a file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	config.loadEnv()
	return &config, nil
}

// loadEnv loads data into Config structure from the environmental variables
func (c *Config) loadEnv() {
	err := godotenv.Load("deployments/.env")
	if err != nil {
		return
	}
	// Database env variables
	c.Database.User = os.Getenv("POSTGRES_USER")
	c.Database.Password = os.Getenv("POSTGRES_PASSWORD")
	c.Database.Database = os.Getenv("POSTGRES_DB")
}

func (c *Config) GetServerAddress() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Validate checks if the most important fields are properly filled
func (c *Config) Validate() error {
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}
	if c.Database.Host == "" {
		return errors.New("database host is requested")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Cache.Policy {
	case PolicyLRU:
		if c.Cache.Capacity <= 0 {
			return errors.New("cache capacity must be positive for the lru policy")
		}
	case PolicyUnbound:
		if c.Cache.Capacity < 0 {
			return errors.New("cache capacity must not be negative")
		}
	case PolicyTimed:
		if c.Cache.Lifespan <= 0 {
			return errors.New("cache lifespan must be positive for the timed policy")
		}
		if c.Cache.Capacity < 0 {
			return errors.New("cache capacity must not be negative")
		}
	default:
		return fmt.Errorf("unknown cache policy: %q", c.Cache.Policy)
	}

	return nil
}
