// Package storage wraps the S3-compatible object store behind the small
// surface the site needs: text object upload/download, deletion, public
// URLs for the public buckets, and presigned URLs for the private one.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/antonbelau/folio/internal/config"
)

// ErrNotConfigured is returned by operations that require storage
// credentials when none are present.
var ErrNotConfigured = errors.New("object storage is not configured")

// Client wraps a MinIO client together with the bucket layout.
type Client struct {
	minio *minio.Client
	cfg   config.Storage
}

// New builds the storage client. Returns a client with a nil connection when
// no credentials are configured: read paths then degrade and mutating paths
// fail with ErrNotConfigured, so the app still boots in a local setup
// without an object store.
func New(cfg config.Storage) (*Client, error) {
	if !hasCredentials(cfg) {
		log.Printf("Object storage credentials missing, storage operations disabled")
		return &Client{cfg: cfg}, nil
	}

	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL
	// The endpoint may carry a scheme; minio wants a bare host.
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			useSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Client{minio: cli, cfg: cfg}, nil
}

func hasCredentials(cfg config.Storage) bool {
	return cfg.Endpoint != "" && cfg.AccessKeyID != "" && cfg.SecretAccessKey != ""
}

// Configured reports whether the client can talk to an object store.
func (c *Client) Configured() bool {
	return c.minio != nil
}

// ContentBucket returns the bucket holding public MDX bodies.
func (c *Client) ContentBucket() string { return c.cfg.ContentBucket }

// ImagesBucket returns the bucket holding public images.
func (c *Client) ImagesBucket() string { return c.cfg.ImagesBucket }

// ResumesBucket returns the private bucket holding resume files.
func (c *Client) ResumesBucket() string { return c.cfg.ResumesBucket }

// EnsureBuckets creates the configured buckets when they do not exist yet.
func (c *Client) EnsureBuckets(ctx context.Context) error {
	if c.minio == nil {
		return ErrNotConfigured
	}

	for _, bucket := range []string{c.cfg.ImagesBucket, c.cfg.ContentBucket, c.cfg.ResumesBucket} {
		if bucket == "" {
			continue
		}
		exists, err := c.minio.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := c.minio.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: c.cfg.Region}); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			log.Printf("Created storage bucket %s", bucket)
		}
	}
	return nil
}

// UploadText stores a text object under key in the given bucket.
func (c *Client) UploadText(ctx context.Context, bucket, key, content string) error {
	if c.minio == nil {
		return ErrNotConfigured
	}

	reader := strings.NewReader(content)
	_, err := c.minio.PutObject(ctx, bucket, key, reader, int64(reader.Len()), minio.PutObjectOptions{
		ContentType: contentTypeFor(key),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// DownloadText fetches an object and returns its body as a string.
func (c *Client) DownloadText(ctx context.Context, bucket, key string) (string, error) {
	if c.minio == nil {
		return "", ErrNotConfigured
	}

	obj, err := c.minio.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s/%s: %w", bucket, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("failed to read %s/%s: %w", bucket, key, err)
	}
	return string(data), nil
}

// RemoveObject deletes an object. Removing a missing object is not an error.
func (c *Client) RemoveObject(ctx context.Context, bucket, key string) error {
	if c.minio == nil {
		return ErrNotConfigured
	}

	if err := c.minio.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PresignedGet issues a time-limited download URL for an object in a
// private bucket.
func (c *Client) PresignedGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if c.minio == nil {
		return "", ErrNotConfigured
	}

	u, err := c.minio.PresignedGetObject(ctx, bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign %s/%s: %w", bucket, key, err)
	}
	return u.String(), nil
}

// PublicURL derives the public URL for an object in a public bucket.
// Does not require credentials: it is pure string assembly over the
// configured public base.
func (c *Client) PublicURL(bucket, key string) string {
	base := strings.TrimRight(c.cfg.PublicBaseURL, "/")
	if base == "" {
		return ""
	}
	return base + "/" + bucket + "/" + key
}

// ListKeys returns every object key in a bucket under the given prefix.
func (c *Client) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	if c.minio == nil {
		return nil, ErrNotConfigured
	}

	var keys []string
	for obj := range c.minio.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", bucket, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// HealthCheck verifies the connection by listing buckets.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.minio == nil {
		return ErrNotConfigured
	}
	_, err := c.minio.ListBuckets(ctx)
	return err
}

func contentTypeFor(key string) string {
	switch {
	case strings.HasSuffix(key, ".mdx"), strings.HasSuffix(key, ".md"):
		return "text/markdown"
	case strings.HasSuffix(key, ".json"):
		return "application/json"
	case strings.HasSuffix(key, ".pdf"):
		return "application/pdf"
	default:
		return "text/plain"
	}
}
