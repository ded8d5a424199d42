package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalTarget copies files into a directory on the local disk.
type LocalTarget struct{}

// NewLocalTarget creates a local target. The destination path is a directory.
func NewLocalTarget() *LocalTarget {
	return &LocalTarget{}
}

func (t *LocalTarget) Name() string {
	return TargetLocal
}

func (t *LocalTarget) Upload(ctx context.Context, destPath, localPath string) error {
	dest := filepath.Join(destPath, filepath.Base(localPath))
	if err := copyFile(dest, localPath); err != nil {
		return &UploadError{Target: TargetLocal, Path: dest, Err: err}
	}
	return nil
}

func copyFile(dest, src string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
