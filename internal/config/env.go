package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr           string
	GinMode           string
	RemoteAPIBaseURL  string
	RemoteTimeout     time.Duration
	MirrorDSN         string
	CacheDir          string
	UploadDir         string
	JWTSecret         string
	ServiceFee        float64
	PrioritySurcharge float64
}

func LoadEnv() Env {
	env := Env{
		AppAddr:           getString("APP_ADDR", ":8080"),
		GinMode:           getString("GIN_MODE", ""),
		RemoteAPIBaseURL:  getString("REMOTE_API_BASE_URL", ""),
		RemoteTimeout:     getDuration("REMOTE_API_TIMEOUT", 5*time.Second),
		MirrorDSN:         getString("MIRROR_DSN", ""),
		CacheDir:          getString("CACHE_DIR", "data"),
		UploadDir:         getString("UPLOAD_DIR", "uploads"),
		JWTSecret:         getString("JWT_SECRET", "super-secret-key-change-me"),
		ServiceFee:        getFloat("SERVICE_FEE", 2.99),
		PrioritySurcharge: getFloat("PRIORITY_SURCHARGE", 0.20),
	}
	return env
}

func getString(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
