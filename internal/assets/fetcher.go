// Package assets resolves the decorative background image shown on every page.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
)

// FallbackImage is served whenever the configured object cannot be downloaded.
const FallbackImage = "default.jpg"

const (
	cacheDirPerm  = 0o755
	cacheFilePerm = 0o644
	tempPattern   = ".bg-*"
)

// ErrNotConfigured is returned by Check when object storage settings are incomplete.
var ErrNotConfigured = errors.New("object storage is not configured")

// Fetcher resolves the page background from object storage.
type Fetcher struct {
	log       *slog.Logger
	cfg       config.StorageConfig
	metrics   *metrics.Metrics
	newClient ClientFactory
}

// Option customises a Fetcher.
type Option func(*Fetcher)

// WithClientFactory replaces the minio client constructor.
func WithClientFactory(factory ClientFactory) Option {
	return func(f *Fetcher) {
		f.newClient = factory
	}
}

// NewFetcher builds a Fetcher for cfg that talks to S3 through minio unless an Option says otherwise.
func NewFetcher(log *slog.Logger, cfg config.StorageConfig, metrics *metrics.Metrics, opts ...Option) *Fetcher {
	fetcher := &Fetcher{
		log:       log.With(slog.String("division", "background")),
		cfg:       cfg,
		metrics:   metrics,
		newClient: NewMinioClient,
	}
	for _, opt := range opts {
		opt(fetcher)
	}

	return fetcher
}

// Resolve downloads the background object into the cache directory and returns
// the filename to reference from the page. It never fails: any problem yields FallbackImage.
// Nothing is cached between calls, so every page render downloads the object again.
func (f *Fetcher) Resolve(ctx context.Context) string {
	const opn = "Fetcher.Resolve"
	log := f.log.With(slog.String("op", opn))

	log.DebugContext(ctx, "Resolving background image",
		slog.String("bucket", f.cfg.Bucket),
		slog.String("key", f.cfg.Key),
		slog.String("region", f.cfg.Region),
		sl.Present("access_key_id", f.cfg.AccessKeyID),
		sl.Present("secret_access_key", f.cfg.SecretAccessKey),
		sl.Present("session_token", f.cfg.SessionToken),
	)

	if !f.cfg.Configured() {
		log.DebugContext(ctx, "Object storage settings are incomplete, skipping download")
		f.metrics.BackgroundFetches.WithLabelValues("unconfigured").Inc()
		return FallbackImage
	}

	if err := f.download(ctx); err != nil {
		log.ErrorContext(ctx, "Failed to download background image", sl.ErrType(err), sl.Err(err))
		f.metrics.BackgroundFetches.WithLabelValues("fallback").Inc()
		return FallbackImage
	}

	log.DebugContext(ctx, "Background image downloaded", slog.String("key", f.cfg.Key))
	f.metrics.BackgroundFetches.WithLabelValues("downloaded").Inc()

	return f.cfg.Key
}

// download streams the object into a temporary file beside the target and renames
// it into place, so concurrent renders never observe or produce a partial file.
func (f *Fetcher) download(ctx context.Context) error {
	localPath, err := safeJoin(f.cfg.CacheDir, f.cfg.Key)
	if err != nil {
		return err
	}

	targetDir := filepath.Dir(localPath)
	if err = os.MkdirAll(targetDir, cacheDirPerm); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	client, err := f.newClient(f.cfg)
	if err != nil {
		return err
	}

	obj, err := client.GetObject(ctx, f.cfg.Bucket, f.cfg.Key)
	if err != nil {
		return fmt.Errorf("failed to get s3://%s/%s: %w", f.cfg.Bucket, f.cfg.Key, err)
	}
	defer func() { _ = obj.Close() }()

	tmp, err := os.CreateTemp(targetDir, tempPattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = io.Copy(tmp, obj); err != nil {
		return fmt.Errorf("failed to download s3://%s/%s: %w", f.cfg.Bucket, f.cfg.Key, err)
	}
	if err = tmp.Chmod(cacheFilePerm); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmpPath, localPath); err != nil {
		return fmt.Errorf("failed to move background into place: %w", err)
	}
	renamed = true

	return nil
}

// Check reports whether the configured bucket is reachable.
func (f *Fetcher) Check(ctx context.Context) error {
	if !f.cfg.Configured() {
		return ErrNotConfigured
	}

	client, err := f.newClient(f.cfg)
	if err != nil {
		return err
	}

	exists, err := client.BucketExists(ctx, f.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket does not exist: %s", f.cfg.Bucket)
	}

	return nil
}

// safeJoin resolves key relative to dir and rejects keys that escape it.
func safeJoin(dir, key string) (string, error) {
	absBase, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid cache directory: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(dir, key))
	if err != nil {
		return "", fmt.Errorf("invalid object key: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("object key %q escapes the cache directory", key)
	}

	return absPath, nil
}
