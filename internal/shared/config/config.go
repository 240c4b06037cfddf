package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	Version         string
	CORSAllowOrigin []string
	Debug           bool

	// Rendering.
	ChromePath    string
	RenderTimeout time.Duration
	FontsDir      string

	// Request shaping.
	MaxRequestBytes    int64
	RateLimitPerMinute int

	// Validator limits.
	MaxWorkExperiences   int
	MaxEducations        int
	MaxProjects          int
	MaxSkillCategories   int
	MaxDescriptionLength int
	MaxSummaryLength     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience. Real
	// environment variables win over both files, .env.local over .env.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		Version:         getEnv("SERVICE_VERSION", "1.0.0"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Debug:           getEnvBool("LOG_DEBUG", false),

		ChromePath:    getEnv("CHROME_PATH", ""),
		RenderTimeout: time.Duration(getEnvInt("RENDER_TIMEOUT_MS", 30000)) * time.Millisecond,
		FontsDir:      getEnv("FONTS_DIR", "./static/fonts"),

		MaxRequestBytes:    int64(getEnvInt("MAX_REQUEST_BYTES", 10<<20)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		MaxWorkExperiences:   getEnvInt("MAX_WORK_EXPERIENCES", 10),
		MaxEducations:        getEnvInt("MAX_EDUCATIONS", 5),
		MaxProjects:          getEnvInt("MAX_PROJECTS", 10),
		MaxSkillCategories:   getEnvInt("MAX_SKILL_CATEGORIES", 10),
		MaxDescriptionLength: getEnvInt("MAX_DESCRIPTION_LENGTH", 1000),
		MaxSummaryLength:     getEnvInt("MAX_SUMMARY_LENGTH", 500),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
