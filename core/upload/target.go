package upload

import (
	"context"
	"fmt"

	"kb-admin/core/storage"
)

// Target copies a local file into a folder of remote storage. The remote file keeps
// the local file's base name. A nil error means the target confirmed the transfer.
type Target interface {
	Name() string
	Upload(ctx context.Context, destPath, localPath string) error
}

// Targets names.
const (
	TargetS3    = "s3"
	TargetNAS   = "nas"
	TargetLocal = "local"
)

// NewTarget builds the target selected by cfg.Target.
func NewTarget(cfg Config, nas NASConfig, client storage.Client, bucket string) (Target, error) {
	switch cfg.Target {
	case TargetS3:
		if client == nil {
			return nil, fmt.Errorf("upload target s3 needs a storage client")
		}
		return NewS3Target(client, bucket), nil
	case TargetNAS:
		if nas.Host == "" {
			return nil, fmt.Errorf("upload target nas needs nas.host")
		}
		return NewNASTarget(nas), nil
	case TargetLocal:
		return NewLocalTarget(), nil
	default:
		return nil, fmt.Errorf("unknown upload target %q", cfg.Target)
	}
}
