package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrObjectNotFound is returned when the bucket or the object doesn't exist
var ErrObjectNotFound = errors.New("object not found")

// Client downloads and uploads whole objects.
type Client struct {
	store  *minio.Client
	logger *log.Logger
}

// New returns a Client for cfg. No request is made until the first call.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid object store config: %w", err)
	}
	store, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     newCredentials(cfg),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	})
	if err != nil {
		return nil, err
	}
	return &Client{
		store:  store,
		logger: log.WithFields("module", "objectstore"),
	}, nil
}

// Download returns the full content of bucket/path
func (c *Client) Download(ctx context.Context, bucket, path string) ([]byte, error) {
	obj, err := c.store.GetObject(ctx, bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapNotFound(err, bucket, path)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, wrapNotFound(err, bucket, path)
	}
	c.logger.Debugf("downloaded %d bytes from %s/%s", len(data), bucket, path)
	return data, nil
}

// Upload stores data at bucket/path, replacing any previous object
func (c *Client) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	_, err := c.store.PutObject(ctx, bucket, path, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("error uploading %s/%s: %w", bucket, path, err)
	}
	c.logger.Debugf("uploaded %d bytes to %s/%s", len(data), bucket, path)
	return nil
}

func wrapNotFound(err error, bucket, path string) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %s/%s: %w", ErrObjectNotFound, bucket, path, err)
	default:
		return fmt.Errorf("error downloading %s/%s: %w", bucket, path, err)
	}
}

func newCredentials(cfg Config) *credentials.Credentials {
	if cfg.AccessKey != "" {
		return credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	}
	return credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.EnvMinio{},
	})
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
