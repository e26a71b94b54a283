package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is built once at startup
// and passed explicitly into each component; nothing re-reads the
// environment after that.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	OCR     OCRConfig
	LLM     LLMConfig
	Locator LocatorConfig

	// MaxUploadBytes bounds both remote fetches and inline payloads.
	MaxUploadBytes int64
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr         string
	AllowOrigins []string
}

// StoreConfig holds the results database configuration
type StoreConfig struct {
	Path string
}

// OCRConfig holds text-extraction configuration
type OCRConfig struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Languages string // tesseract language codes, e.g. "vie+eng"
	DPI       int    // rasterization DPI for scanned PDFs
}

// LLMConfig holds model-strategy configuration. A non-empty OpenAIKey or
// GeminiKey selects the model-backed strategy at construction time.
type LLMConfig struct {
	OpenAIKey      string
	OpenAIBaseURL  string
	OpenAIModel    string
	Temperature    float32
	Timeout        time.Duration
	PromptCharCap  int // completion-API prompt cap
	GeminiKey      string
	GeminiModel    string
	GeminiCharCap  int // multimodal prompt cap
	MinTextForText int // below this many stripped chars, send raw bytes
}

// LocatorConfig holds the Apps Script document-locator bridge configuration
type LocatorConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is honored when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Addr:         getEnv("HTTP_ADDR", ":8080"),
			AllowOrigins: splitCSV(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
		Store: StoreConfig{
			Path: getEnv("DB_PATH", "./resumes.db"),
		},
		OCR: OCRConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:  getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract: getEnv("TESSERACT_BIN", "tesseract"),
			Languages: getEnv("OCR_LANGS", "vie+eng"),
			DPI:       getEnvAsInt("OCR_DPI", 300),
		},
		LLM: LLMConfig{
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature:    getEnvAsFloat32("OPENAI_TEMPERATURE", 0.1),
			Timeout:        getEnvAsDuration("LLM_TIMEOUT", 15*time.Second),
			PromptCharCap:  getEnvAsInt("LLM_PROMPT_CHAR_CAP", 60000),
			GeminiKey:      getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL_NAME", "gemini-2.5-pro"),
			GeminiCharCap:  getEnvAsInt("GEMINI_MAX_CHARS", 12000),
			MinTextForText: getEnvAsInt("LLM_MIN_TEXT_CHARS", 100),
		},
		Locator: LocatorConfig{
			URL:     getEnv("GS_URL", ""),
			Token:   getEnv("GS_TOKEN", ""),
			Timeout: getEnvAsDuration("GS_TIMEOUT", 60*time.Second),
		},
		MaxUploadBytes: getEnvAsInt64("MAX_BYTES", 20_000_000),
	}
}

// HasLLMCredential reports whether a model-backed strategy can run.
func (c *Config) HasLLMCredential() bool {
	return c.LLM.OpenAIKey != "" || c.LLM.GeminiKey != ""
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Store.Path == "" {
		return NewAppError("CONFIG_ERROR", "DB_PATH is required", ErrInvalidInput)
	}
	if c.MaxUploadBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_BYTES must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
