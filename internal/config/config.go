package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	JWTSecret string
	LogMode   string

	// Detection tuning. Defaults mirror the reference behavior; override per env.
	TemporalWindow      time.Duration
	SpatialRadiusMeters float64
	MinConfidence       float64

	FullSweepInterval        time.Duration
	IncrementalSweepInterval time.Duration
	IncrementalWindow        time.Duration
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          mustGetenv("DATABASE_URL"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
		LogMode:              getenv("LOG_MODE", "dev"),

		TemporalWindow:      getenvDuration("TEMPORAL_WINDOW", 4*time.Hour),
		SpatialRadiusMeters: getenvFloat("SPATIAL_RADIUS_METERS", 100),
		MinConfidence:       getenvFloat("MIN_CONFIDENCE", 0.3),

		FullSweepInterval:        getenvDuration("FULL_SWEEP_INTERVAL", 24*time.Hour),
		IncrementalSweepInterval: getenvDuration("INCREMENTAL_SWEEP_INTERVAL", time.Hour),
		IncrementalWindow:        getenvDuration("INCREMENTAL_WINDOW", 24*time.Hour),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.JWTSecret = mustGetenv("JWT_SECRET")
	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getenvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
