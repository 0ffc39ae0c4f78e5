package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Storage  StorageConfig
	S3       S3Config
	Tracing  TracingConfig
	Log      LogConfig
}

type ServerConfig struct {
	Name   string
	Port   string
	Env    string
	AppURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type LLMConfig struct {
	Provider          string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	GeminiAPIKey      string
	Models            []string
	Backoff           time.Duration
	AttemptTimeout    time.Duration
}

type StorageConfig struct {
	Driver      string
	UploadPath  string
	MaxFileSize int64
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PathStyle bool
}

type TracingConfig struct {
	Endpoint string
}

type LogConfig struct {
	Level string
}

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// DefaultModels are the free-tier candidates, tried in this order.
var DefaultModels = []string{
	"mistralai/mistral-7b-instruct:free",
	"meta-llama/llama-3-8b-instruct:free",
	"mistralai/mixtral-8x7b-instruct:free",
}

// DefaultGeminiModels replace DefaultModels when the Gemini provider is selected
// and LLM_MODELS is left at its default.
var DefaultGeminiModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "interview-coach")
	v.SetDefault("PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_URL", "http://localhost:3000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "interview_coach")

	v.SetDefault("LLM_PROVIDER", ProviderOpenRouter)
	v.SetDefault("OPENROUTER_API_KEY", "")
	v.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("LLM_MODELS", strings.Join(DefaultModels, ","))
	v.SetDefault("LLM_BACKOFF", "1200ms")
	v.SetDefault("LLM_ATTEMPT_TIMEOUT", "30s")

	v.SetDefault("STORAGE_DRIVER", StorageLocal)
	v.SetDefault("UPLOAD_PATH", "./uploads")
	v.SetDefault("MAX_FILE_SIZE", 10485760)

	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_PATH_STYLE", false)

	v.SetDefault("OTEL_ENDPOINT", "")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads an optional .env file, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	provider := strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER")))
	models := splitList(v.GetString("LLM_MODELS"))
	if provider == ProviderGemini && v.GetString("LLM_MODELS") == strings.Join(DefaultModels, ",") {
		models = append([]string(nil), DefaultGeminiModels...)
	}

	return &Config{
		Server: ServerConfig{
			Name:   v.GetString("SERVICE_NAME"),
			Port:   v.GetString("PORT"),
			Env:    v.GetString("ENV"),
			AppURL: v.GetString("APP_URL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		LLM: LLMConfig{
			Provider:          provider,
			OpenRouterAPIKey:  v.GetString("OPENROUTER_API_KEY"),
			OpenRouterBaseURL: v.GetString("OPENROUTER_BASE_URL"),
			GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
			Models:            models,
			Backoff:           durationOr(v.GetString("LLM_BACKOFF"), 1200*time.Millisecond),
			AttemptTimeout:    durationOr(v.GetString("LLM_ATTEMPT_TIMEOUT"), 30*time.Second),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
			UploadPath:  v.GetString("UPLOAD_PATH"),
			MaxFileSize: v.GetInt64("MAX_FILE_SIZE"),
		},
		S3: S3Config{
			Endpoint:  v.GetString("S3_ENDPOINT"),
			Region:    v.GetString("S3_REGION"),
			Bucket:    v.GetString("S3_BUCKET"),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
			PathStyle: v.GetBool("S3_PATH_STYLE"),
		},
		Tracing: TracingConfig{
			Endpoint: v.GetString("OTEL_ENDPOINT"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}

// Validate reports configuration that would make the service unusable.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenRouter:
		if c.LLM.OpenRouterAPIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required for provider %q", c.LLM.Provider)
		}
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if len(c.LLM.Models) == 0 {
		return fmt.Errorf("LLM_MODELS must list at least one model")
	}

	switch c.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for storage driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(raw)); err == nil && d >= 0 {
		return d
	}
	return fallback
}
