package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mkravets/falljournal/internal/flagx"
	"github.com/mkravets/falljournal/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing both
// string values such as "24h" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	Environment           string         `json:"environment"`
	DataDir               string         `json:"data_dir"`
	UsersFile             string         `json:"users_file"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	KeyGranularity        string         `json:"key_granularity"`
	DatabaseDSN           string         `json:"database_dsn"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	CORSAllowedOrigins    []string       `json:"cors_allowed_origins"`
}

// parseJson loads configuration values from the JSON file given via the
// -c or -config command-line flags. If neither flag is set, no file is loaded.
// If the file cannot be read or contains invalid JSON, the function panics:
// a misconfigured server should not start.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.Environment = c.Environment
	config.DataDir = c.DataDir
	config.UsersFile = c.UsersFile
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.KeyGranularity = c.KeyGranularity
	config.DatabaseDSN = c.DatabaseDSN
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}
