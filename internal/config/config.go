package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"slotwatch-worker-go/internal/occupancy"
)

type Config struct {
	// Application
	Version     string
	Environment string
	WorkerID    string
	Port        int
	GRPCPort    int
	LogLevel    string

	// Logdy (lightweight web log viewer)
	LogdyEnabled bool
	LogdyHost    string
	LogdyPort    int

	// NATS (detections in, occupancy results out)
	// Default: nats://localhost:4222 (works with Docker Compose setup)
	// Docker: Use nats://nats:4222 if running worker in Docker
	NatsEnabled        bool
	NatsURL            string
	NatsConnectTimeout time.Duration
	NatsReconnectWait  time.Duration
	NatsMaxReconnects  int
	DetectionsSubject  string
	DetectionsQueue    string
	ResultsSubject     string

	// Zones
	ZonesFile   string
	ClassesFile string
	// ZoneUnit applies only to legacy zone files that do not declare a unit
	ZoneUnit string

	// Overlay
	DrawDetections        bool
	StatusColorCorrect    string
	StatusColorIncorrect  string
	StatusColorEmpty      string
	TextColor             string
	BackgroundColor       string
	ClassColorBrightness  int
	ClassColorMaxAttempts int

	// Occupancy history (SQLite)
	HistoryEnabled bool
	HistoryDBPath  string
	HistoryLimit   int

	// Swagger Configuration
	SwaggerHost string

	// Graceful Shutdown
	ShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found or error loading .env file, using environment variables and defaults")
	} else {
		log.Info().Msg("Loaded configuration from .env file")
	}

	return &Config{
		// Application
		Version:     getEnv("VERSION", "1.0.0"),
		Environment: getEnv("ENVIRONMENT", "development"),
		WorkerID:    getEnv("WORKER_ID", "worker-1"),
		Port:        getEnvInt("PORT", 8000),
		GRPCPort:    getEnvInt("GRPC_PORT", 50061),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Logdy
		LogdyEnabled: getEnvBool("LOGDY_ENABLED", false),
		LogdyHost:    getEnv("LOGDY_HOST", "localhost"),
		LogdyPort:    getEnvInt("LOGDY_PORT", 8080),

		// NATS
		NatsEnabled:        getEnvBool("NATS_ENABLED", true),
		NatsURL:            getNatsURL(),
		NatsConnectTimeout: getEnvDuration("NATS_CONNECT_TIMEOUT", 10*time.Second),
		NatsReconnectWait:  getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		NatsMaxReconnects:  getEnvInt("NATS_MAX_RECONNECTS", -1), // -1 = unlimited
		DetectionsSubject:  getEnv("DETECTIONS_SUBJECT", "detections"),
		DetectionsQueue:    getEnv("DETECTIONS_QUEUE", "slotwatch-workers"),
		ResultsSubject:     getEnv("RESULTS_SUBJECT", "occupancy.results"),

		// Zones
		ZonesFile:   getEnv("ZONES_FILE", "zones.json"),
		ClassesFile: getEnv("CLASSES_FILE", "data.yaml"),
		ZoneUnit:    getEnv("ZONE_UNIT", ""),

		// Overlay (BGR order of the reference deployment: incorrect blue, empty red)
		DrawDetections:        getEnvBool("DRAW_DETECTIONS", false),
		StatusColorCorrect:    getEnv("STATUS_COLOR_CORRECT", "#00FF00"),
		StatusColorIncorrect:  getEnv("STATUS_COLOR_INCORRECT", "#0000FF"),
		StatusColorEmpty:      getEnv("STATUS_COLOR_EMPTY", "#FF0000"),
		TextColor:             getEnv("TEXT_COLOR", "#000000"),
		BackgroundColor:       getEnv("BACKGROUND_COLOR", "#FFFFFF"),
		ClassColorBrightness:  getEnvInt("CLASS_COLOR_BRIGHTNESS", occupancy.DefaultBrightnessThreshold),
		ClassColorMaxAttempts: getEnvInt("CLASS_COLOR_ATTEMPTS", occupancy.DefaultColorAttempts),

		// History
		HistoryEnabled: getEnvBool("HISTORY_ENABLED", true),
		HistoryDBPath:  getEnv("HISTORY_DB_PATH", "slotwatch.db"),
		HistoryLimit:   getEnvInt("HISTORY_LIMIT", 100),

		// Swagger
		SwaggerHost: getEnv("SWAGGER_HOST", "localhost:8000"),

		// Graceful Shutdown
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// Palette parses the overlay colors.
func (c *Config) Palette() (occupancy.Palette, error) {
	var p occupancy.Palette
	fields := []struct {
		name  string
		value string
		dst   *color.RGBA
	}{
		{"STATUS_COLOR_CORRECT", c.StatusColorCorrect, &p.Correct},
		{"STATUS_COLOR_INCORRECT", c.StatusColorIncorrect, &p.Incorrect},
		{"STATUS_COLOR_EMPTY", c.StatusColorEmpty, &p.Empty},
		{"TEXT_COLOR", c.TextColor, &p.Text},
		{"BACKGROUND_COLOR", c.BackgroundColor, &p.Background},
	}
	for _, f := range fields {
		parsed, err := ParseHexColor(f.value)
		if err != nil {
			return p, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = parsed
	}
	return p, nil
}

// ColorTableOptions returns the class color settings with the palette reserved.
func (c *Config) ColorTableOptions(p occupancy.Palette) occupancy.ColorTableOptions {
	return occupancy.ColorTableOptions{
		Reserved:            p.Reserved(),
		BrightnessThreshold: c.ClassColorBrightness,
		MaxAttempts:         c.ClassColorMaxAttempts,
	}
}

// ParseHexColor converts a color string like "#RRGGBB" to color.RGBA
func ParseHexColor(s string) (color.RGBA, error) {
	var c color.RGBA
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return c, fmt.Errorf("invalid color length: %s", s)
	}
	r, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return c, err
	}
	g, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return c, err
	}
	b, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return c, err
	}
	c = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
	return c, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Helper functions for Docker environment detection
func isRunningInDocker() bool {
	if os.Getenv("DOCKER_CONTAINER") == "true" {
		return true
	}

	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return false
}

// getNatsURL returns the appropriate NATS URL based on environment
func getNatsURL() string {
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		return envURL
	}

	// If running in Docker, use service name; otherwise use localhost
	if isRunningInDocker() {
		return "nats://nats:4222"
	}

	return "nats://localhost:4222"
}
