// Package s3 stores listing photos in an S3-compatible bucket through the
// MinIO client and hands back direct public URLs.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"dreamstay/internal/app/policies"
)

// Client wraps a MinIO/S3 client behind the photo store port.
type Client struct {
	bucket         string
	publicBaseURL  string
	client         *minio.Client
	logger         *slog.Logger
	bucketInitOnce sync.Once
	bucketInitErr  error
}

// NewClient configures the store using the provided endpoint and credentials.
func NewClient(endpoint string, useSSL bool, accessKey, secretKey, bucket, publicBaseURL string, logger *slog.Logger) (*Client, error) {
	cleanEndpoint := strings.TrimSpace(endpoint)
	if cleanEndpoint == "" {
		return nil, errors.New("s3: endpoint is required")
	}
	if bucket = strings.TrimSpace(bucket); bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}

	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(accessKey), strings.TrimSpace(secretKey), ""),
		Secure: useSSL,
	}
	minioClient, err := minio.New(parseEndpoint(cleanEndpoint), opts)
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}

	base := strings.TrimSpace(publicBaseURL)
	if base == "" {
		base = cleanEndpoint
	}

	return &Client{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
		client:        minioClient,
		logger:        logger,
	}, nil
}

// Upload stores a listing photo under a per-property prefix and returns its
// URL. The object key carries a random component so re-uploading a file with
// the same name never overwrites an earlier photo.
func (c *Client) Upload(ctx context.Context, propertyID int64, filename string, content io.Reader, size int64, contentType string) (string, error) {
	if content == nil {
		return "", errors.New("s3: content is required")
	}
	if err := c.ensureBucket(ctx); err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("properties/%d/%s%s", propertyID, uuid.NewString(), path.Ext(filename))

	_, err := c.client.PutObject(ctx, c.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("s3: put object: %w", err)
	}

	publicURL := c.objectURL(key)
	if c.logger != nil {
		c.logger.Info("photo uploaded", "bucket", c.bucket, "key", key, "url", publicURL)
	}
	return publicURL, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	c.bucketInitOnce.Do(func() {
		exists, err := c.client.BucketExists(ctx, c.bucket)
		if err != nil {
			c.bucketInitErr = fmt.Errorf("s3: check bucket: %w", err)
			return
		}
		if exists {
			return
		}
		if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			c.bucketInitErr = fmt.Errorf("s3: create bucket: %w", err)
			return
		}
		if err := c.allowPublicRead(ctx); err != nil {
			c.bucketInitErr = err
		}
	})
	return c.bucketInitErr
}

func (c *Client) allowPublicRead(ctx context.Context) error {
	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, c.bucket)
	if err := c.client.SetBucketPolicy(ctx, c.bucket, policy); err != nil {
		return fmt.Errorf("s3: set bucket policy: %w", err)
	}
	return nil
}

func (c *Client) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, c.bucket, strings.TrimLeft(key, "/"))
}

func parseEndpoint(endpoint string) string {
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return endpoint
}

var _ policies.PhotoStore = (*Client)(nil)
