package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"docvault-api/config"
	"docvault-api/internal/application/ports"
)

// Client stores document images in a MinIO (or any S3 compatible) bucket.
type Client struct {
	logger *zap.Logger
	client *minio.Client
	bucket string
	region string
}

func New(logger *zap.Logger, cfg config.Storage) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &Client{
		logger: logger,
		client: client,
		bucket: cfg.BucketDocuments,
		region: cfg.Region,
	}, nil
}

// EnsureBucket creates the documents bucket when it is missing.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", c.bucket, err)
	}
	if exists {
		return nil
	}
	if err = c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: c.region}); err != nil {
		return fmt.Errorf("make bucket %s: %w", c.bucket, err)
	}

	c.logger.Info("bucket created", zap.String("bucket", c.bucket))

	return nil
}

func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := c.client.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("minio put object key=%s: %w", key, err)
	}
	return nil
}

// Get stats the object first so a missing key is reported before any body is read.
func (c *Client) Get(ctx context.Context, key string) (*ports.Object, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, c.mapErr("get", key, err)
	}

	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, c.mapErr("stat", key, err)
	}

	return &ports.Object{
		Body:        obj,
		ContentType: info.ContentType,
		Size:        info.Size,
	}, nil
}

// Delete succeeds for keys that do not exist.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return c.mapErr("remove", key, err)
	}
	return nil
}

func (c *Client) mapErr(op, key string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("minio %s object key=%s: %w", op, key, ports.ErrObjectNotFound)
	}
	return fmt.Errorf("minio %s object key=%s: %w", op, key, err)
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || (resp.StatusCode == http.StatusNotFound && resp.Code != "NoSuchBucket")
}

var _ ports.ObjectStore = (*Client)(nil)
