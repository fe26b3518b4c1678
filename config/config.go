package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"reserve-assistant/models/apperr"
)

// Environments
const ENV_PROD = "prod"
const ENV_DEV = "dev"

// HTTP server
const HTTP_ADDR = ":8080"
const HTTP_SHUTDOWN_TIMEOUT_SECONDS = 5

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0
const SESSION_TTL_MINUTES = 60
const SESSION_SWEEP_SCHEDULE = "@every 10m"

// Gourmet directory API
const HOTPEPPER_ENDPOINT_BASE = "https://webservice.recruit.co.jp/hotpepper"
const HOTPEPPER_REQUESTS_PER_SECOND = 10
const HOTPEPPER_TIMEOUT_SECONDS = 10

// Places API
const PLACES_ENDPOINT_BASE = "https://maps.googleapis.com/maps/api/place"
const PLACES_REQUESTS_PER_SECOND = 10
const PLACES_TIMEOUT_SECONDS = 10
const PLACES_LANGUAGE = "ja"

// Model fallback
const MODEL_PROVIDER_GEMINI = "gemini"
const MODEL_PROVIDER_OPENAI = "openai"
const MODEL_PROVIDER_ANTHROPIC = "anthropic"
const GEMINI_MODEL = "gemini-2.0-flash"
const OPENAI_MODEL = "gpt-4o-mini"
const ANTHROPIC_MODEL = "claude-3-5-haiku-latest"
const MODEL_TIMEOUT_SECONDS = 20
const MODEL_REQUESTS_PER_SECOND = 3
const MODEL_BURST = 5

// Search loop
const SEARCH_QUOTA = 20
const SEARCH_PAGE_SIZE = 20
const SEARCH_MAX_LOOPS = 5
const SEARCH_RANDOM_START_MAX = 50

// Worker pools
const DIRECTORY_POOL_SIZE = 5
const VENUE_CHECK_POOL_SIZE = 10
const ENRICHMENT_POOL_SIZE = 10

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const SHOP_SEARCH_RESPONSE_RESOURCE = "shop_search_response.json"
const PLACES_SEARCH_RESPONSE_RESOURCE = "places_search_response.json"

type Config struct {
	Env       string          `toml:"env"`
	Server    ServerConfig    `toml:"server"`
	Log       LogConfig       `toml:"log"`
	HotPepper HotPepperConfig `toml:"hotpepper"`
	Places    PlacesConfig    `toml:"places"`
	Model     ModelConfig     `toml:"model"`
	Search    SearchConfig    `toml:"search"`
	Redis     RedisConfig     `toml:"redis"`
}

type ServerConfig struct {
	Addr                   string `toml:"addr"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type HotPepperConfig struct {
	APIKey            string `toml:"api_key"`
	BaseURL           string `toml:"base_url"`
	RequestsPerSecond int    `toml:"requests_per_second"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	// OnlineBookingOnly keeps only shops that take online reservations.
	OnlineBookingOnly bool `toml:"online_booking_only"`
}

type PlacesConfig struct {
	APIKey            string `toml:"api_key"`
	BaseURL           string `toml:"base_url"`
	Language          string `toml:"language"`
	RequestsPerSecond int    `toml:"requests_per_second"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
}

type ModelConfig struct {
	Provider          string `toml:"provider"`
	GeminiAPIKey      string `toml:"gemini_api_key"`
	GeminiModel       string `toml:"gemini_model"`
	OpenAIAPIKey      string `toml:"openai_api_key"`
	OpenAIModel       string `toml:"openai_model"`
	OpenAIBaseURL     string `toml:"openai_base_url"`
	AnthropicAPIKey   string `toml:"anthropic_api_key"`
	AnthropicModel    string `toml:"anthropic_model"`
	AnthropicBaseURL  string `toml:"anthropic_base_url"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	RequestsPerSecond int    `toml:"requests_per_second"`
	Burst             int    `toml:"burst"`
}

type SearchConfig struct {
	Quota              int  `toml:"quota"`
	PageSize           int  `toml:"page_size"`
	MaxLoops           int  `toml:"max_loops"`
	RandomStart        bool `toml:"random_start"`
	RandomStartMax     int  `toml:"random_start_max"`
	DirectoryPoolSize  int  `toml:"directory_pool_size"`
	VenueCheckPoolSize int  `toml:"venue_check_pool_size"`
	EnrichmentPoolSize int  `toml:"enrichment_pool_size"`
}

type RedisConfig struct {
	Addr              string `toml:"addr"`
	Password          string `toml:"password"`
	DB                int    `toml:"db"`
	SessionTTLMinutes int    `toml:"session_ttl_minutes"`
	// SweepSchedule is the cron spec for purging expired in-memory sessions.
	SweepSchedule string `toml:"sweep_schedule"`
}

// NewDefaultConfig returns the configuration used when nothing overrides it.
func NewDefaultConfig() *Config {
	return &Config{
		Env: ENV_DEV,
		Server: ServerConfig{
			Addr:                   HTTP_ADDR,
			ShutdownTimeoutSeconds: HTTP_SHUTDOWN_TIMEOUT_SECONDS,
		},
		Log: LogConfig{Level: "info"},
		HotPepper: HotPepperConfig{
			BaseURL:           HOTPEPPER_ENDPOINT_BASE,
			RequestsPerSecond: HOTPEPPER_REQUESTS_PER_SECOND,
			TimeoutSeconds:    HOTPEPPER_TIMEOUT_SECONDS,
			OnlineBookingOnly: true,
		},
		Places: PlacesConfig{
			BaseURL:           PLACES_ENDPOINT_BASE,
			Language:          PLACES_LANGUAGE,
			RequestsPerSecond: PLACES_REQUESTS_PER_SECOND,
			TimeoutSeconds:    PLACES_TIMEOUT_SECONDS,
		},
		Model: ModelConfig{
			Provider:          MODEL_PROVIDER_GEMINI,
			GeminiModel:       GEMINI_MODEL,
			OpenAIModel:       OPENAI_MODEL,
			AnthropicModel:    ANTHROPIC_MODEL,
			TimeoutSeconds:    MODEL_TIMEOUT_SECONDS,
			RequestsPerSecond: MODEL_REQUESTS_PER_SECOND,
			Burst:             MODEL_BURST,
		},
		Search: SearchConfig{
			Quota:              SEARCH_QUOTA,
			PageSize:           SEARCH_PAGE_SIZE,
			MaxLoops:           SEARCH_MAX_LOOPS,
			RandomStart:        true,
			RandomStartMax:     SEARCH_RANDOM_START_MAX,
			DirectoryPoolSize:  DIRECTORY_POOL_SIZE,
			VenueCheckPoolSize: VENUE_CHECK_POOL_SIZE,
			EnrichmentPoolSize: ENRICHMENT_POOL_SIZE,
		},
		Redis: RedisConfig{
			Addr:              REDIS_DB_ADDRESS,
			Password:          REDIS_DB_PASSWORD,
			DB:                REDIS_DB,
			SessionTTLMinutes: SESSION_TTL_MINUTES,
			SweepSchedule:     SESSION_SWEEP_SCHEDULE,
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path (if
// any), then environment variables. A .env file in the working directory is
// loaded into the environment first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Env, "APP_ENV")
	set(&c.Server.Addr, "HTTP_ADDR")
	set(&c.Log.Level, "LOG_LEVEL")
	set(&c.HotPepper.APIKey, "HOTPEPPER_API_KEY")
	set(&c.Places.APIKey, "GOOGLE_API_KEY")
	set(&c.Model.Provider, "MODEL_PROVIDER")
	set(&c.Model.GeminiAPIKey, "GEMINI_API_KEY")
	set(&c.Model.OpenAIAPIKey, "OPENAI_API_KEY")
	set(&c.Model.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	set(&c.Redis.Addr, "REDIS_ADDR")
	set(&c.Redis.Password, "REDIS_PASSWORD")
}

// Validate reports ConfigurationMissing when a credential the search cannot
// run without is absent. The model credential is optional.
func (c *Config) Validate() error {
	var missing []string
	if c.HotPepper.APIKey == "" {
		missing = append(missing, "HOTPEPPER_API_KEY")
	}
	if c.Places.APIKey == "" {
		missing = append(missing, "GOOGLE_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", apperr.ErrConfigurationMissing, strings.Join(missing, ", "))
	}
	return nil
}

// ModelAPIKey returns the credential for the configured model provider.
func (c *Config) ModelAPIKey() string {
	switch c.Model.Provider {
	case MODEL_PROVIDER_OPENAI:
		return c.Model.OpenAIAPIKey
	case MODEL_PROVIDER_ANTHROPIC:
		return c.Model.AnthropicAPIKey
	default:
		return c.Model.GeminiAPIKey
	}
}

// ModelEnabled reports whether the model fallback can be offered at all.
func (c *Config) ModelEnabled() bool {
	return c.ModelAPIKey() != ""
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
