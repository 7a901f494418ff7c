// config.go
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	GinDebugMode bool
	AllowOrigins []string

	RabbitURL         string // vacío desactiva la mensajería
	IncidentsExchange string
	IncidentsQueue    string
	EventsExchange    string

	TimeZone string

	Log LogConfig
}

type LogConfig struct {
	Level      string
	IncludeSrc bool
	ToFile     bool
	Filename   string
	MaxSize    int // megabytes
	MaxAge     int // días
	MaxBackups int
	Compress   bool
}

// Load lee el .env si existe y después las variables de entorno.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("Sin archivo .env, se usan solo variables de entorno")
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		GinDebugMode: getEnvBool("GIN_DEBUG_MODE", false),
		AllowOrigins: splitList(getEnv("ALLOW_ORIGINS", "http://localhost:5173")),

		RabbitURL:         getEnv("RABBIT_URL", ""),
		IncidentsExchange: getEnv("INCIDENTS_EXCHANGE", "guest_incidents"),
		IncidentsQueue:    getEnv("INCIDENTS_QUEUE", "opportunity_reports_incidents"),
		EventsExchange:    getEnv("EVENTS_EXCHANGE", "opportunity_reports"),

		TimeZone: getEnv("TIMEZONE", "UTC"),

		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			IncludeSrc: getEnvBool("LOG_INCLUDE_SRC", false),
			ToFile:     getEnvBool("LOG_TO_FILE", false),
			Filename:   getEnv("LOG_FILENAME", "opportunity-reports.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 50),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
