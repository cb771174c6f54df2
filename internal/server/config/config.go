// Package config handles configuration for the journal server, applying
// defaults, an optional .env file and environment variables, an optional JSON
// overlay, and finally command-line flags.
package config

import "time"

// Storage backend names. The backend is inferred from which settings are
// populated; see Backend().
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Entry key granularity values.
const (
	KeyGranularityDay    = "day"
	KeyGranularitySecond = "second"
)

// Config holds runtime settings for the journal server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - Environment: "development" or "production"; drives cookie policy.
//   - DataDir: root directory for the file backend (one subdirectory per user).
//   - UsersFile: path of the JSON credential file for the file backend.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - TokenValidityDuration: session token lifetime.
//   - KeyGranularity: entry record key resolution, "day" or "second".
//   - DatabaseDSN: PostgreSQL DSN; when set the postgres backend is used.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     object storage settings; when S3Bucket is set (and no DSN) the S3
//     backend is used.
//   - CORSAllowedOrigins: origins allowed to call the API from a browser.
type Config struct {
	EndpointAddrHTTP      string
	Environment           string
	DataDir               string
	UsersFile             string
	SecretKey             string
	TokenValidityDuration time.Duration
	KeyGranularity        string
	DatabaseDSN           string
	S3RootUser            string
	S3RootPassword        string
	S3Bucket              string
	S3Region              string
	S3BaseEndpoint        string
	CORSAllowedOrigins    []string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.Environment = "development"
	c.DataDir = "./data"
	c.UsersFile = "./data/users.json"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.KeyGranularity = KeyGranularitySecond
	c.DatabaseDSN = ""
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.CORSAllowedOrigins = []string{"http://localhost:5173"}
}

// Backend reports which storage backend the configuration selects.
func (c *Config) Backend() string {
	if c.DatabaseDSN != "" {
		return BackendPostgres
	}
	if c.S3Bucket != "" {
		return BackendS3
	}
	return BackendFile
}

// LoadConfig builds a Config by applying defaults, then overlaying values from
// the environment (.env aware), an optional JSON file and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
