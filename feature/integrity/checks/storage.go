package checks

import (
	"context"
	"fmt"

	"kb-admin/core/storage"

	"go.uber.org/zap"
)

// CheckStorage returns the folders that do not exist in the bucket. When the bucket
// itself is missing every folder is returned along with storage.ErrBucketMissing.
func CheckStorage(ctx context.Context, client storage.Client, bucket string, folders []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return folders, fmt.Errorf("%w: %s", storage.ErrBucketMissing, bucket)
	}

	missing := []string{}
	for _, folder := range folders {
		found, err := storage.FolderExists(ctx, client, bucket, folder)
		if err != nil {
			return nil, err
		}
		if !found {
			missing = append(missing, folder)
		}
	}
	return missing, nil
}

// FixStorage creates the missing folders.
func FixStorage(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		if err := storage.CreateFolder(ctx, client, bucket, folder); err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
