// Package objstore fetches extract objects from a MinIO (S3-compatible)
// bucket.
package objstore

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds the connection settings for the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Client is a read-only object fetcher. It implements ingest.ObjectFetcher.
type Client struct {
	mc *minio.Client
}

// New builds a client for the given endpoint. No connection is made until
// the first fetch.
func New(cfg Config) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object store client: %w", err)
	}
	return &Client{mc: mc}, nil
}

// Fetch retrieves one named object as a byte stream. The caller closes the
// returned reader. A missing or unreadable object is reported here, not at
// first read: GetObject is lazy, so Stat forces the error out.
func (c *Client) Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := c.mc.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("stat object: %w", err)
	}
	return obj, nil
}
