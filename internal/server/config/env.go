package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables, loading an
// optional dotenv file first (path from ENV_FILE, default ".env"). A missing
// dotenv file is not an error.
func parseEnv(config *Config) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	setString(&config.EndpointAddrHTTP, "JOURNAL_ADDR")
	setString(&config.Environment, "JOURNAL_ENV")
	setString(&config.DataDir, "JOURNAL_DATA_DIR")
	setString(&config.UsersFile, "JOURNAL_USERS_FILE")
	setString(&config.SecretKey, "JOURNAL_SECRET_KEY")
	setString(&config.KeyGranularity, "JOURNAL_KEY_GRANULARITY")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("JOURNAL_TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}

	if v, ok := os.LookupEnv("JOURNAL_CORS_ORIGINS"); ok {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.CORSAllowedOrigins = origins
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
