package upload

import (
	"errors"
	"fmt"
)

// ErrRejected is returned by a target that answered but did not accept the file.
var ErrRejected = errors.New("upload rejected by target")

// UploadError reports a failed file transfer. The owning record is not stamped.
type UploadError struct {
	Target string
	Path   string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload to %s %s failed: %v", e.Target, e.Path, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
