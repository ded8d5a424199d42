// Package storage provides an abstraction layer for S3-compatible object storage.
//
// It wraps the MinIO Go client behind the Client interface so uploads and the
// storage integrity check can be unit tested against core/storage/mocks. Both AWS S3
// and self-hosted MinIO endpoints work.
//
// Uploaded documents live under "<base_path>/<table>/<id><ext>". Object storage has
// no directories, so a folder is represented by an empty marker object whose key
// ends in a slash (see CreateFolder).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	info, err := client.FPutObject(ctx, cfg.Storage.Bucket, "kb/reports/12.pdf", "/tmp/upload", minio.PutObjectOptions{})
package storage
