package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// ProviderConfig describes one upstream vendor API.
type ProviderConfig struct {
	BaseURL   string        `mapstructure:"baseURL"`
	APIKey    string        `mapstructure:"apiKey"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rateLimit"`
	Burst     int           `mapstructure:"burst"`
}

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort       string        `mapstructure:"HTTPPort"`
		Timeout        time.Duration `mapstructure:"HTTPTimeout"`
		StaticDir      string        `mapstructure:"staticDir"`
		AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Cache struct {
		Backend         string        `mapstructure:"backend"` // memory | redis
		TTL             time.Duration `mapstructure:"ttl"`
		CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
		Redis           struct {
			Addr      string `mapstructure:"addr"`
			Password  string `mapstructure:"password"`
			DB        int    `mapstructure:"db"`
			KeyPrefix string `mapstructure:"keyPrefix"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Upstream struct {
		Language string `mapstructure:"language"`
		Google   struct {
			ProviderConfig `mapstructure:",squash"`
			PhotoMaxWidth  int `mapstructure:"photoMaxWidth"`
		} `mapstructure:"google"`
		Tripadvisor ProviderConfig `mapstructure:"tripadvisor"`
		WebSearch   struct {
			ProviderConfig `mapstructure:",squash"`
			EngineID       string `mapstructure:"engineID"`
		} `mapstructure:"webSearch"`
	} `mapstructure:"upstream"`
	AI struct {
		Model       string        `mapstructure:"model"`
		APIKey      string        `mapstructure:"apiKey"`
		ProjectID   string        `mapstructure:"projectID"`
		Location    string        `mapstructure:"location"`
		Credentials string        `mapstructure:"credentials"`
		Temperature float32       `mapstructure:"temperature"`
		Timeout     time.Duration `mapstructure:"timeout"`
	} `mapstructure:"ai"`
	Observability struct {
		ServiceName string `mapstructure:"serviceName"`
		MetricsPort string `mapstructure:"metricsPort"`
	} `mapstructure:"observability"`
}

// legacyEnv maps the variable names the deployment already exports onto config keys.
var legacyEnv = map[string]string{
	"upstream.google.apiKey":      "GOOGLE_PLACES_API_KEY",
	"upstream.tripadvisor.apiKey": "TRIPADVISOR_API_KEY",
	"upstream.webSearch.apiKey":   "GOOGLE_CUSTOM_SEARCH_API_KEY",
	"upstream.webSearch.engineID": "GOOGLE_CUSTOM_SEARCH_ENGINE_ID",
	"ai.model":                    "GEMINI_MODEL",
	"ai.apiKey":                   "GOOGLE_GEMINI_API_KEY",
	"ai.projectID":                "PROJECT_ID",
	"ai.credentials":              "GOOGLE_APPLICATION_CREDENTIALS",
	"server.HTTPPort":             "PORT",
	"cache.redis.addr":            "REDIS_ADDR",
	"observability.metricsPort":   "METRICS_PORT",
}

func InitConfig() (Config, error) {
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	return load(v)
}

// Load reads configuration from raw YAML, applying the same environment overrides as InitConfig.
func Load(raw []byte) (Config, error) {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	var config Config

	v.SetEnvPrefix("TRIPSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "TRIPSTER_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return Config{}, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Cache.TTL <= 0 {
		config.Cache.TTL = time.Hour
	}
	return config, nil
}
