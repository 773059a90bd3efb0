package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays configuration values from environment variables. Unset
// or malformed variables leave the current values untouched.
//
// Recognized variables:
//
//	HTTP_ADDR, HTTPS_ADDR, TLS_CERT_FILE, TLS_KEY_FILE,
//	STORE_BACKEND, DATA_DIR, DATABASE_DSN, HASHING_SECRET,
//	TOKEN_VALIDITY (duration, e.g. "1h"), MAX_CHECKS, RATE_LIMIT_RPS,
//	ACCESS_LOG_PATH, ARCHIVE_INTERVAL (duration),
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config) {
	setString(&config.HTTPAddr, os.Getenv("HTTP_ADDR"))
	setString(&config.HTTPSAddr, os.Getenv("HTTPS_ADDR"))
	setString(&config.TLSCertFile, os.Getenv("TLS_CERT_FILE"))
	setString(&config.TLSKeyFile, os.Getenv("TLS_KEY_FILE"))
	setString(&config.StoreBackend, os.Getenv("STORE_BACKEND"))
	setString(&config.DataDir, os.Getenv("DATA_DIR"))
	setString(&config.DatabaseDSN, os.Getenv("DATABASE_DSN"))
	setString(&config.HashingSecret, os.Getenv("HASHING_SECRET"))
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidity = d
		}
	}
	if v := os.Getenv("MAX_CHECKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.MaxChecks = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.RateLimitRPS = f
		}
	}
	setString(&config.AccessLogPath, os.Getenv("ACCESS_LOG_PATH"))
	if v := os.Getenv("ARCHIVE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.ArchiveInterval = d
		}
	}
	setString(&config.S3RootUser, os.Getenv("S3_ROOT_USER"))
	setString(&config.S3RootPassword, os.Getenv("S3_ROOT_PASSWORD"))
	setString(&config.S3Bucket, os.Getenv("S3_BUCKET"))
	setString(&config.S3Region, os.Getenv("S3_REGION"))
	setString(&config.S3BaseEndpoint, os.Getenv("S3_BASE_ENDPOINT"))
}
