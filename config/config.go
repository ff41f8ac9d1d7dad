package config

import (
	"os"
	"strconv"
	"time"

	"github.com/qs-lzh/train-ticket/internal/util"
)

type Config struct {
	DatabaseDSN string
	Addr        string
	CacheURL    string
	MQURL       string

	SessionSecret   string
	SessionLifetime time.Duration
	CookieSecure    bool

	UploadDir      string
	MaxUploadBytes int64
}

func LoadConfig() (*Config, error) {
	if err := util.LoadEnv(); err != nil {
		return nil, err
	}
	return &Config{
		DatabaseDSN:     os.Getenv("DATABASE_DSN"),
		Addr:            getEnv("ADDR", ":5000"),
		CacheURL:        os.Getenv("CACHE_URL"),
		MQURL:           os.Getenv("RABBIT_MQ_URL"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionLifetime: time.Duration(getEnvInt("SESSION_LIFETIME_SECONDS", 3600)) * time.Second,
		CookieSecure:    getEnv("COOKIE_SECURE", "false") == "true",
		UploadDir:       getEnv("UPLOAD_DIR", "static/uploads"),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", 2*1024*1024)),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
