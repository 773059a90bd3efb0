package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/upcheck/internal/flagx"
	"github.com/dmitrijs2005/upcheck/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "1h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its set fields are copied into
// the runtime Config struct which uses time.Duration.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	HTTPSAddr       string         `json:"https_addr"`
	TLSCertFile     string         `json:"tls_cert_file"`
	TLSKeyFile      string         `json:"tls_key_file"`
	StoreBackend    string         `json:"store_backend"`
	DataDir         string         `json:"data_dir"`
	DatabaseDSN     string         `json:"database_dsn"`
	HashingSecret   string         `json:"hashing_secret"`
	TokenValidity   timex.Duration `json:"token_validity"`
	MaxChecks       int            `json:"max_checks"`
	RateLimitRPS    float64        `json:"rate_limit_rps"`
	AccessLogPath   string         `json:"access_log_path"`
	ArchiveInterval timex.Duration `json:"archive_interval"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. Unset fields in the
// file leave the current values untouched. If the file cannot be read or
// contains invalid JSON, the function panics.
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

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.HTTPSAddr, c.HTTPSAddr)
	setString(&config.TLSCertFile, c.TLSCertFile)
	setString(&config.TLSKeyFile, c.TLSKeyFile)
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.DataDir, c.DataDir)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.HashingSecret, c.HashingSecret)
	if c.TokenValidity.Duration != 0 {
		config.TokenValidity = time.Duration(c.TokenValidity.Duration)
	}
	if c.MaxChecks != 0 {
		config.MaxChecks = c.MaxChecks
	}
	if c.RateLimitRPS != 0 {
		config.RateLimitRPS = c.RateLimitRPS
	}
	setString(&config.AccessLogPath, c.AccessLogPath)
	if c.ArchiveInterval.Duration != 0 {
		config.ArchiveInterval = time.Duration(c.ArchiveInterval.Duration)
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
