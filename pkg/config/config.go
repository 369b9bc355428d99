package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	GCSBucket               string
	GCSCredentialsPath      string
	LeaderboardWindowHours  int
	LeaderboardTopK         int
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		GCSBucket:               getEnv("GCS_BUCKET", ""),
		GCSCredentialsPath:      getEnv("GCS_CREDENTIALS_PATH", ""),
		LeaderboardWindowHours:  getEnvInt("LEADERBOARD_WINDOW_HOURS", 24),
		LeaderboardTopK:         getEnvInt("LEADERBOARD_TOP_K", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
