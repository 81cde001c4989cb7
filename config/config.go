package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var loadOnce sync.Once

// Config returns the value of an environment variable, loading .env on first use.
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Debug().Msg(".env not found, using system environment")
		}
	})
	return os.Getenv(key)
}

func Get(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}

func Int(key string, fallback int) int {
	v, err := strconv.Atoi(Config(key))
	if err != nil {
		return fallback
	}
	return v
}

// Duration parses values like "15m" or "24h".
func Duration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(Config(key))
	if err != nil {
		return fallback
	}
	return v
}
