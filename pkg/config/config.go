package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/mvg/pkg/mvg"
	"github.com/travigo/mvg/pkg/util"
	"gopkg.in/yaml.v3"
)

const environmentPrefix = "MVG_"

const defaultListen = ":8080"
const defaultCacheTTL = 90 * time.Minute

type RedisConfig struct {
	Address  string `yaml:"address" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	Database int    `yaml:"database" validate:"gte=0"`
}

type Config struct {
	Listen string `yaml:"listen" validate:"required,hostname_port"`

	FIBURL         string `yaml:"fib_url" validate:"omitempty,url"`
	ZDMURL         string `yaml:"zdm_url" validate:"omitempty,url"`
	MaxConcurrency int    `yaml:"max_concurrency" validate:"gte=0"`

	Redis    RedisConfig   `yaml:"redis"`
	CacheTTL time.Duration `yaml:"cache_ttl" validate:"gte=0"`
}

func Default() *Config {
	return &Config{
		Listen:         defaultListen,
		MaxConcurrency: mvg.DefaultMaxConcurrency,
		CacheTTL:       defaultCacheTTL,
	}
}

// Load builds the configuration from the defaults, an optional YAML file and
// finally the MVG_* environment variables. An empty path falls back to MVG_CONFIG.
func Load(path string) (*Config, error) {
	cfg := Default()
	env := util.GetEnvironmentVariables(environmentPrefix)

	if path == "" {
		path = env["MVG_CONFIG"]
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvironment(env); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvironment(env map[string]string) error {
	if env["MVG_LISTEN"] != "" {
		c.Listen = env["MVG_LISTEN"]
	}
	if env["MVG_FIB_URL"] != "" {
		c.FIBURL = env["MVG_FIB_URL"]
	}
	if env["MVG_ZDM_URL"] != "" {
		c.ZDMURL = env["MVG_ZDM_URL"]
	}
	if env["MVG_REDIS_ADDRESS"] != "" {
		c.Redis.Address = env["MVG_REDIS_ADDRESS"]
	}
	if env["MVG_REDIS_PASSWORD"] != "" {
		c.Redis.Password = env["MVG_REDIS_PASSWORD"]
	}

	if env["MVG_MAX_CONCURRENCY"] != "" {
		if n, err := strconv.Atoi(env["MVG_MAX_CONCURRENCY"]); err == nil {
			c.MaxConcurrency = n
		} else {
			return fmt.Errorf("MVG_MAX_CONCURRENCY: %w", err)
		}
	}

	if env["MVG_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["MVG_REDIS_DATABASE"]); err == nil {
			c.Redis.Database = n
		} else {
			return fmt.Errorf("MVG_REDIS_DATABASE: %w", err)
		}
	}

	if env["MVG_CACHE_TTL"] != "" {
		if ttl, err := time.ParseDuration(env["MVG_CACHE_TTL"]); err == nil {
			c.CacheTTL = ttl
		} else {
			return fmt.Errorf("MVG_CACHE_TTL: %w", err)
		}
	}

	return nil
}

func (c *Config) CacheEnabled() bool {
	return c.Redis.Address != "" && c.CacheTTL > 0
}

func (c *Config) NewClient() *mvg.Client {
	client := mvg.NewClient()
	client.FIBURL = c.FIBURL
	client.ZDMURL = c.ZDMURL
	client.MaxConcurrency = c.MaxConcurrency

	return client
}
