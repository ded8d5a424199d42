package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
)

// FolderPath joins path segments into an object key prefix with a trailing slash.
func FolderPath(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, "/") + "/"
}

// FolderExists reports whether any object lives under the prefix. A folder marker
// object counts.
func FolderExists(ctx context.Context, c Client, bucket, prefix string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range c.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, MaxKeys: 1}) {
		if obj.Err != nil {
			return false, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, obj.Err)
		}
		return true, nil
	}
	return false, nil
}

// CreateFolder writes an empty marker object so the prefix shows up as a folder.
func CreateFolder(ctx context.Context, c Client, bucket, prefix string) error {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	_, err := c.PutObject(ctx, bucket, prefix, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to create folder %s/%s: %w", bucket, prefix, err)
	}
	return nil
}

// ObjectExists reports whether an object is present.
func ObjectExists(ctx context.Context, c Client, bucket, name string) (bool, error) {
	_, err := c.StatObject(ctx, bucket, name, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s/%s: %w", bucket, name, err)
}
