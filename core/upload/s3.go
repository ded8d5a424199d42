package upload

import (
	"context"
	"errors"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"kb-admin/core/storage"

	"github.com/minio/minio-go/v7"
)

// S3Target stores files as objects of an S3-compatible bucket.
type S3Target struct {
	client storage.Client
	bucket string
}

// NewS3Target creates a target writing into bucket.
func NewS3Target(client storage.Client, bucket string) *S3Target {
	return &S3Target{client: client, bucket: bucket}
}

func (t *S3Target) Name() string {
	return TargetS3
}

// ObjectName returns the key a local file is stored under.
func (t *S3Target) ObjectName(destPath, localPath string) string {
	return path.Join(strings.Trim(destPath, "/"), filepath.Base(localPath))
}

func (t *S3Target) Upload(ctx context.Context, destPath, localPath string) error {
	name := t.ObjectName(destPath, localPath)
	opts := minio.PutObjectOptions{ContentType: mime.TypeByExtension(filepath.Ext(localPath))}
	if _, err := t.client.FPutObject(ctx, t.bucket, name, localPath, opts); err != nil {
		return &UploadError{Target: TargetS3, Path: t.bucket + "/" + name, Err: err}
	}

	// The transfer counts once the object can be stat'ed.
	found, err := storage.ObjectExists(ctx, t.client, t.bucket, name)
	if err == nil && !found {
		err = errors.New("object not found after upload")
	}
	if err != nil {
		return &UploadError{Target: TargetS3, Path: t.bucket + "/" + name, Err: err}
	}
	return nil
}
