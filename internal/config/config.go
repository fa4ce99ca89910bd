package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultModelName    = "google/gemma-3-1b-it"
	DefaultMaxNewTokens = 40
)

type Config struct {
	Server ServerConfig
	Model  ModelConfig
	Log    LogConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Host    string
	Port    int
	GinMode string
}

// ModelConfig - 사전학습 모델 런타임 설정
type ModelConfig struct {
	Name           string
	Backend        string
	APIKey         string
	TGIURL         string
	MaxNewTokens   int
	RequestTimeout time.Duration
	LoadTimeout    time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	// GIN_MODE=debug 일 때 개발용 로거 사용
	Development bool
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Host:    getenv("SERVER_HOST", "0.0.0.0"),
			Port:    getenvInt("SERVER_PORT", 8123),
			GinMode: getenv("GIN_MODE", "release"),
		},
		Model: ModelConfig{
			Name:           getenv("LLM_MODEL_NAME", DefaultModelName),
			Backend:        strings.ToLower(getenv("LLM_BACKEND", "genai")),
			APIKey:         os.Getenv("AI_API_KEY"),
			TGIURL:         strings.TrimRight(getenv("TGI_URL", "http://localhost:8080"), "/"),
			MaxNewTokens:   getenvInt("LLM_MAX_NEW_TOKENS", DefaultMaxNewTokens),
			RequestTimeout: getenvDuration("LLM_REQUEST_TIMEOUT", 120*time.Second),
			LoadTimeout:    getenvDuration("LLM_LOAD_TIMEOUT", 60*time.Second),
		},
		Log: LogConfig{
			Level:       getenv("LOG_LEVEL", "info"),
			Format:      getenv("LOG_FORMAT", "json"),
			Development: getenv("GIN_MODE", "release") == "debug",
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
			AllowCredentials: getenvBool("CORS_ALLOW_CREDENTIALS", false),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// 양수가 아니거나 파싱 실패 시 fallback 사용
func getenvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getenvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
