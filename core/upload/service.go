package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"kb-admin/core/logger"
	"kb-admin/core/schema"

	"go.uber.org/zap"
)

var (
	// ErrExtension is returned for files whose extension is not allowed.
	ErrExtension = errors.New("file type not allowed")
	// ErrTooLarge is returned for files above the configured size cap.
	ErrTooLarge = errors.New("file too large")
)

// Stamper writes the upload timestamp of a record.
type Stamper interface {
	Update(ctx context.Context, table, id string, row, guard map[string]any) (map[string]any, error)
}

// Invalidator drops cached reads of a table.
type Invalidator interface {
	Invalidate(table string) uint64
}

// Result describes a completed upload.
type Result struct {
	Table        string    `json:"table"`
	ID           string    `json:"id"`
	Destination  string    `json:"destination"`
	FileName     string    `json:"file_name"`
	UploadedTime time.Time `json:"uploaded_time"`
}

// Uploader copies a document to the upload target and stamps the owning record.
type Uploader struct {
	cfg     Config
	target  Target
	stamper Stamper
	cache   Invalidator
	loc     *time.Location
	logger  *zap.Logger
	now     func() time.Time
}

// NewUploader creates an uploader. Stamps are rendered in loc.
func NewUploader(cfg Config, target Target, stamper Stamper, cache Invalidator, loc *time.Location, logger *zap.Logger) *Uploader {
	if loc == nil {
		loc = time.UTC
	}
	return &Uploader{
		cfg:     cfg,
		target:  target,
		stamper: stamper,
		cache:   cache,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// Destination returns the remote folder documents of a table go to.
func (u *Uploader) Destination(table string) string {
	return path.Join(u.cfg.BasePath, table)
}

// CheckExtension validates the file name against the allowed extensions and returns
// the lowercased extension with its dot.
func (u *Uploader) CheckExtension(fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" || !slices.Contains(u.cfg.AllowedExtensions, strings.TrimPrefix(ext, ".")) {
		return "", fmt.Errorf("%w: %q, expected one of %v", ErrExtension, fileName, u.cfg.AllowedExtensions)
	}
	return ext, nil
}

// Upload stores the document read from r as "<id><ext>" in the table's folder and,
// once the target confirms, stamps the record's uploaded_time. When the transfer
// fails an *UploadError is returned and the record is left untouched.
func (u *Uploader) Upload(ctx context.Context, s *schema.Schema, id, fileName string, r io.Reader) (*Result, error) {
	log := logger.ForTable(u.logger, s.Table).With(zap.String("id", id))

	if !s.HasField(schema.FieldUploadedTime) {
		return nil, fmt.Errorf("table %s has no %s column", s.Table, schema.FieldUploadedTime)
	}
	if id == "" {
		return nil, &schema.ValidationError{Table: s.Table, Field: schema.FieldID, Reason: "a record must be selected"}
	}
	ext, err := u.CheckExtension(fileName)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "kb-upload-")
	if err != nil {
		return nil, fmt.Errorf("create temp folder: %w", err)
	}
	defer os.RemoveAll(dir)

	name := id + ext
	tmp := filepath.Join(dir, name)
	if err := u.spool(tmp, r); err != nil {
		return nil, err
	}

	dest := u.Destination(s.Table)
	if err := u.target.Upload(ctx, dest, tmp); err != nil {
		log.Error("File upload failed", zap.String("target", u.target.Name()), zap.Error(err))
		var uerr *UploadError
		if !errors.As(err, &uerr) {
			err = &UploadError{Target: u.target.Name(), Path: dest, Err: err}
		}
		return nil, err
	}

	stamp := u.now().In(u.loc)
	row := map[string]any{schema.FieldUploadedTime: stamp.Format(time.RFC3339)}
	if _, err := u.stamper.Update(ctx, s.Table, id, row, nil); err != nil {
		log.Error("Uploaded file but failed to stamp record", zap.Error(err))
		return nil, fmt.Errorf("file uploaded to %s but record was not updated: %w", dest, err)
	}
	u.cache.Invalidate(s.Table)

	log.Info("File uploaded", zap.String("target", u.target.Name()), zap.String("destination", dest), zap.String("file", name))
	return &Result{
		Table:        s.Table,
		ID:           id,
		Destination:  dest,
		FileName:     name,
		UploadedTime: stamp,
	}, nil
}

func (u *Uploader) spool(dest string, r io.Reader) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer f.Close()

	src := r
	if u.cfg.MaxBytes > 0 {
		src = io.LimitReader(r, u.cfg.MaxBytes+1)
	}
	n, err := io.Copy(f, src)
	if err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if u.cfg.MaxBytes > 0 && n > u.cfg.MaxBytes {
		return fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, u.cfg.MaxBytes)
	}
	return f.Close()
}
