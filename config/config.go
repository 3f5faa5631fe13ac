package config

import (
	"errors"
	"os"
	"strings"
)

// Config carries everything the service reads from the environment.
type Config struct {
	Port            string
	DatabaseDriver  string
	DatabaseURL     string
	AllowedOrigins  []string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string
}

// Load reads configuration from the environment. The database URL is
// mandatory; everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseDriver:  getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AllowedOrigins:  splitOrigins(getEnv("ALLOW_ORIGIN", "*")),
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubject:    getEnv("VAPID_SUBJECT", "mailto:admin@example.com"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

// VAPIDConfigured reports whether both VAPID keys are present. The notify
// endpoint refuses to send without them.
func (c Config) VAPIDConfigured() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			origins = append(origins, s)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
