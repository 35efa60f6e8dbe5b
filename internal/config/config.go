package config

import (
	"log"
	"os"
	"strconv"

	"slotfinder-backend/internal/validation"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	CORSOrigins string
	LogLevel    string

	// Empty DSN (or DEMO_MODE=true) switches the server to the in-memory
	// demo store.
	DatabaseDSN   string
	DemoMode      bool
	DemoStatePath string

	// Admin auth for mutating routes. Off by default so demo mode works
	// out of the box.
	AuthRequired bool
	JWTSecret    string

	// Optional Redis-backed rate limiting; disabled when RedisAddr is empty.
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RateLimitPerMinute int

	// Per-axis location bounds.
	BoxMin, BoxMax   int
	RowMin, RowMax   int
	SlotMin, SlotMax int

	// Default visible grid dimensions reported to clients.
	GridBoxes       int
	GridRowsPerBox  int
	GridSlotsPerRow int
}

func Load() *Config {
	// .env is a convenience for local development; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseDSN:   getEnv("DATABASE_DSN", ""),
		DemoMode:      getEnvBool("DEMO_MODE", false),
		DemoStatePath: getEnv("DEMO_STATE_PATH", ""),

		AuthRequired: getEnvBool("AUTH_REQUIRED", false),
		JWTSecret:    getEnv("JWT_SECRET", ""),

		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		BoxMin:  getEnvInt("BOX_MIN", validation.BoxMin),
		BoxMax:  getEnvInt("BOX_MAX", validation.BoxMax),
		RowMin:  getEnvInt("ROW_MIN", validation.RowMin),
		RowMax:  getEnvInt("ROW_MAX", validation.RowMax),
		SlotMin: getEnvInt("SLOT_MIN", validation.SlotMin),
		SlotMax: getEnvInt("SLOT_MAX", validation.SlotMax),

		GridBoxes:       getEnvInt("GRID_BOXES", validation.DefaultBoxes),
		GridRowsPerBox:  getEnvInt("GRID_ROWS_PER_BOX", validation.DefaultRowsPerBox),
		GridSlotsPerRow: getEnvInt("GRID_SLOTS_PER_ROW", validation.DefaultSlotsPerRow),
	}

	if cfg.DatabaseDSN == "" {
		cfg.DemoMode = true
	}
	if cfg.DemoMode {
		log.Println("[WARN] No DATABASE_DSN configured, running in demo mode with the in-memory store.")
	}
	if cfg.AuthRequired && len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] AUTH_REQUIRED is set but JWT_SECRET is missing or shorter than 32 characters.")
	}

	return cfg
}

// Limits builds the location validation bounds from the configured axes.
func (c *Config) Limits() validation.Limits {
	return validation.Limits{
		BoxMin: c.BoxMin, BoxMax: c.BoxMax,
		RowMin: c.RowMin, RowMax: c.RowMax,
		SlotMin: c.SlotMin, SlotMax: c.SlotMax,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
