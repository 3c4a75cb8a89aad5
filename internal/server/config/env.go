package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is an intermediate DTO for environment variables. Token
// lifetimes keep the original minute/day granularity of the deployment
// environment and are converted to time.Duration afterwards.
type envConfig struct {
	EndpointAddrHTTP          string   `env:"ADDRESS"`
	DatabaseDSN               string   `env:"DATABASE_DSN"`
	SecretKey                 string   `env:"SECRET_KEY"`
	AccessTokenExpireMinutes  int      `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	RefreshTokenExpireDays    int      `env:"REFRESH_TOKEN_EXPIRE_DAYS"`
	UploadDir                 string   `env:"UPLOAD_DIR"`
	MaxFileSize               int64    `env:"MAX_FILE_SIZE"`
	CORSOrigins               []string `env:"CORS_ORIGINS" envSeparator:","`
	S3RootUser                string   `env:"S3_ROOT_USER"`
	S3RootPassword            string   `env:"S3_ROOT_PASSWORD"`
	S3Bucket                  string   `env:"S3_BUCKET"`
	S3Region                  string   `env:"S3_REGION"`
	S3BaseEndpoint            string   `env:"S3_BASE_ENDPOINT"`
}

// parseEnv overlays values from the environment onto config. Unset
// variables leave the current values untouched.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenExpireMinutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenExpireMinutes) * time.Minute
	}
	if c.RefreshTokenExpireDays > 0 {
		config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenExpireDays) * 24 * time.Hour
	}
	if c.UploadDir != "" {
		config.UploadDir = c.UploadDir
	}
	if c.MaxFileSize > 0 {
		config.MaxFileSize = c.MaxFileSize
	}
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
