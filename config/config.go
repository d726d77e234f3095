package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Normalizer NormalizerConfig
	Cache      CacheConfig
	Catalog    CatalogConfig
	RateLimit  RateLimitConfig
	Matching   MatchingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// NormalizerConfig holds text-normalization service configuration
type NormalizerConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// CatalogConfig points at the reference catalog seed file
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP      int `mapstructure:"per_ip"`
	Normalizer int `mapstructure:"normalizer"`
}

// MatchingConfig carries the product-tuned matching constants. The values
// are heuristics with no principled derivation; keeping them here lets them
// be adjusted without touching the engine's control flow.
type MatchingConfig struct {
	NameExactConfidence   float64 `mapstructure:"name_exact_confidence"`
	PartialCodeConfidence float64 `mapstructure:"partial_code_confidence"`
	NameBrandConfidence   float64 `mapstructure:"name_brand_confidence"`
	NameMatchThreshold    float64 `mapstructure:"name_match_threshold"`
	NameOnlyScale         float64 `mapstructure:"name_only_scale"`
	MultiFieldThreshold   float64 `mapstructure:"multi_field_threshold"`
	BrandWeight           float64 `mapstructure:"brand_weight"`
	CategoryWeight        float64 `mapstructure:"category_weight"`
	QuantityWeight        float64 `mapstructure:"quantity_weight"`
	NameWeight            float64 `mapstructure:"name_weight"`
	QuantityTolerance     float64 `mapstructure:"quantity_tolerance"`
	DiscrepancyPenalty    float64 `mapstructure:"discrepancy_penalty"`
	ConfidenceFloor       float64 `mapstructure:"confidence_floor"`
	MinCodeLookupLength   int     `mapstructure:"min_code_lookup_length"`
	EnableDebugLogging    bool    `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shelfsync/")

	// Environment variable settings
	v.SetEnvPrefix("SHELFSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Normalizer defaults
	v.SetDefault("normalizer.base_url", "http://localhost:8090")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Catalog defaults
	v.SetDefault("catalog.path", "catalog.yaml")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.normalizer", 600)

	// Matching defaults: the shipped tuning
	v.SetDefault("matching.name_exact_confidence", 0.85)
	v.SetDefault("matching.partial_code_confidence", 0.75)
	v.SetDefault("matching.name_brand_confidence", 0.85)
	v.SetDefault("matching.name_match_threshold", 0.70)
	v.SetDefault("matching.name_only_scale", 0.85)
	v.SetDefault("matching.multi_field_threshold", 0.85)
	v.SetDefault("matching.brand_weight", 0.30)
	v.SetDefault("matching.category_weight", 0.25)
	v.SetDefault("matching.quantity_weight", 0.20)
	v.SetDefault("matching.name_weight", 0.25)
	v.SetDefault("matching.quantity_tolerance", 0.05)
	v.SetDefault("matching.discrepancy_penalty", 0.1)
	v.SetDefault("matching.confidence_floor", 0.1)
	v.SetDefault("matching.min_code_lookup_length", 8)
	v.SetDefault("matching.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Normalizer.BaseURL == "" {
		return fmt.Errorf("normalizer base URL is required (set SHELFSYNC_NORMALIZER_BASE_URL)")
	}

	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set SHELFSYNC_CATALOG_PATH)")
	}

	m := config.Matching
	for name, value := range map[string]float64{
		"name_exact_confidence":   m.NameExactConfidence,
		"partial_code_confidence": m.PartialCodeConfidence,
		"name_brand_confidence":   m.NameBrandConfidence,
		"name_match_threshold":    m.NameMatchThreshold,
		"name_only_scale":         m.NameOnlyScale,
		"multi_field_threshold":   m.MultiFieldThreshold,
		"quantity_tolerance":      m.QuantityTolerance,
		"discrepancy_penalty":     m.DiscrepancyPenalty,
		"confidence_floor":        m.ConfidenceFloor,
	} {
		if value <= 0 || value > 1 {
			return fmt.Errorf("matching.%s must be in (0,1], got: %v", name, value)
		}
	}

	weightSum := m.BrandWeight + m.CategoryWeight + m.QuantityWeight + m.NameWeight
	if math.Abs(weightSum-1.0) > 1e-9 {
		return fmt.Errorf("matching weights must sum to 1.0, got: %v", weightSum)
	}

	return nil
}
