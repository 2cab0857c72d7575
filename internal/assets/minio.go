package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/UnknownOlympus/hestia/internal/config"
)

// ObjectStore is the part of object storage used by the fetcher.
type ObjectStore interface {
	// GetObject streams an object. Errors may surface on the first Read.
	GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

type minioStore struct {
	client *minio.Client
}

func (m minioStore) GetObject(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error) {
	return m.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
}

func (m minioStore) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return m.client.BucketExists(ctx, bucketName)
}

// ClientFactory builds an ObjectStore for the given settings.
type ClientFactory func(cfg config.StorageConfig) (ObjectStore, error)

// NewMinioClient creates an S3 client for cfg. The session token is only
// sent when temporary credentials are in use.
func NewMinioClient(cfg config.StorageConfig) (ObjectStore, error) {
	endpoint, secure, err := normaliseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid storage endpoint: %w", err)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return minioStore{client: client}, nil
}

// normaliseEndpoint accepts "host:port" or a URL with http/https scheme.
// Without a scheme the connection is secure, as AWS S3 expects.
func normaliseEndpoint(raw string) (string, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, errors.New("empty endpoint")
	}

	if !strings.Contains(raw, "://") {
		return raw, true, nil
	}

	endpointURL, err := url.Parse(raw)
	if err != nil {
		return "", false, err
	}
	if endpointURL.Host == "" {
		return "", false, errors.New("endpoint has no host")
	}
	if endpointURL.Path != "" && endpointURL.Path != "/" {
		return "", false, errors.New("endpoint must not contain a path")
	}

	switch endpointURL.Scheme {
	case "https":
		return endpointURL.Host, true, nil
	case "http":
		return endpointURL.Host, false, nil
	default:
		return "", false, fmt.Errorf("unsupported endpoint scheme %q", endpointURL.Scheme)
	}
}
