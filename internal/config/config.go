package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8000
	defaultEnv        = "development"
	defaultMongoDB    = "project_samarth"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int          `yaml:"port"`
	Env            string       `yaml:"env"` // "development" | "production"
	MongoURL       string       `yaml:"mongo_url"`
	MongoDBName    string       `yaml:"mongo_db_name"`
	RedisURL       string       `yaml:"redis_url"`
	AllowedOrigins []string     `yaml:"allowed_origins"`
	JWTSecret      string       `yaml:"jwt_secret"`
	AdminPassword  string       `yaml:"admin_password"`
	DataGov        DataGovConfig `yaml:"datagov"`
	AI             AIConfig     `yaml:"ai"`
	CacheTTL       CacheTTLDays `yaml:"cache_ttl_days"`
}

// DataGovConfig configures the government open-data portals.
type DataGovConfig struct {
	APIKey     string `yaml:"api_key"`
	UseRealAPI bool   `yaml:"use_real_api"`
}

// AIConfig configures inference providers and per-task model assignments.
type AIConfig struct {
	Providers    []AIProvider       `yaml:"providers"`
	RoutingModel *AIModelAssignment `yaml:"routing_model,omitempty"`
	AnswerModel  *AIModelAssignment `yaml:"answer_model,omitempty"`
}

type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// AIModelAssignment binds a task (routing, answering) to a provider and model.
type AIModelAssignment struct {
	ProviderID string `yaml:"provider_id"`
	Model      string `yaml:"model,omitempty"`
}

// CacheTTLDays is the expiration policy table, in days, keyed by data source.
type CacheTTLDays struct {
	ApedaProduction    int `yaml:"apeda_production"`
	CropProduction     int `yaml:"crop_production"`
	HistoricalRainfall int `yaml:"historical_rainfall"`
	DailyRainfall      int `yaml:"daily_rainfall"`
	Default            int `yaml:"default"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development") || c.Env == ""
}

// Load reads the YAML config file, applies defaults and env overrides.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Config file is optional; env vars can carry everything.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// applyEnvOverrides lets secrets come from the environment instead of the
// YAML file, matching the deployment targets.
func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.MongoURL = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DATA_GOV_API_KEY")); v != "" {
		cfg.DataGov.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")); v != "" {
		cfg.AdminPassword = v
	}
	if v := strings.TrimSpace(os.Getenv("USE_REAL_API")); v != "" {
		cfg.DataGov.UseRealAPI = strings.EqualFold(v, "true")
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.MongoDBName == "" {
		cfg.MongoDBName = defaultMongoDB
	}

	ttl := &cfg.CacheTTL
	if ttl.ApedaProduction == 0 {
		ttl.ApedaProduction = 180
	}
	if ttl.CropProduction == 0 {
		ttl.CropProduction = 365
	}
	if ttl.HistoricalRainfall == 0 {
		ttl.HistoricalRainfall = 365
	}
	if ttl.DailyRainfall == 0 {
		ttl.DailyRainfall = 90
	}
	if ttl.Default == 0 {
		ttl.Default = 90
	}
}
