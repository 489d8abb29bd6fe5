package objectstore

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the S3 compatible endpoint used for block inputs and proofs.
// Google Cloud Storage is reached through its interoperability endpoint.
type Config struct {
	// Endpoint is the host[:port] of the storage service, without scheme
	Endpoint string `mapstructure:"Endpoint"`
	// AccessKey is the HMAC access key. When empty the credentials are read
	// from the AWS_* / MINIO_* environment, or the access is anonymous
	AccessKey string `mapstructure:"AccessKey"`
	// SecretKey is the HMAC secret
	SecretKey string `mapstructure:"SecretKey"`
	// Region of the buckets
	Region string `mapstructure:"Region"`
	// UseSSL enables https
	UseSSL bool `mapstructure:"UseSSL"`
}

// Validate checks the configuration is usable
func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint is required")
	}
	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("endpoint must not include scheme: %q", c.Endpoint)
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return errors.New("access key and secret key must be set together")
	}
	return nil
}
