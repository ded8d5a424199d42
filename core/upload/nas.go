package upload

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Synology error codes meaning the session id is no longer usable.
var nasSessionErrors = map[int]bool{
	106: true, // session timeout
	107: true, // session interrupted by duplicate login
	119: true, // sid not found
}

// synoResponse is the envelope every DiskStation Web API call answers with.
type synoResponse struct {
	Success bool `json:"success"`
	Data    struct {
		SID string `json:"sid"`
	} `json:"data"`
	Error *struct {
		Code int `json:"code"`
	} `json:"error,omitempty"`
}

func (r *synoResponse) code() int {
	if r.Error == nil {
		return 0
	}
	return r.Error.Code
}

// NASTarget uploads files to a Synology DiskStation through the FileStation API.
// The session id is obtained on first use and renewed when the DiskStation drops it.
type NASTarget struct {
	cfg     NASConfig
	baseURL string

	mu  sync.Mutex
	sid string
}

// NewNASTarget creates a DiskStation target.
func NewNASTarget(cfg NASConfig) *NASTarget {
	scheme := "http"
	if cfg.Secure {
		scheme = "https"
	}
	return &NASTarget{
		cfg:     cfg,
		baseURL: fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port),
	}
}

func (t *NASTarget) Name() string {
	return TargetNAS
}

func (t *NASTarget) Upload(ctx context.Context, destPath, localPath string) error {
	err := t.upload(ctx, destPath, localPath)
	if err != nil {
		return &UploadError{Target: TargetNAS, Path: destPath, Err: err}
	}
	return nil
}

func (t *NASTarget) upload(ctx context.Context, destPath, localPath string) error {
	for attempt := 0; ; attempt++ {
		sid, err := t.session(ctx)
		if err != nil {
			return err
		}

		resp, err := t.send(ctx, sid, destPath, localPath)
		if err != nil {
			return err
		}
		if resp.Success {
			return nil
		}
		if nasSessionErrors[resp.code()] && attempt == 0 {
			t.dropSession(sid)
			continue
		}
		return fmt.Errorf("%w: error code %d", ErrRejected, resp.code())
	}
}

func (t *NASTarget) send(ctx context.Context, sid, destPath, localPath string) (*synoResponse, error) {
	q := url.Values{
		"api":     {"SYNO.FileStation.Upload"},
		"version": {"2"},
		"method":  {"upload"},
		"_sid":    {sid},
	}
	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	// DiskStation expects the file part after every other field
	args.Set("path", destPath)
	args.Set("create_parents", "true")
	args.Set("overwrite", "true")

	a := fiber.Post(t.baseURL + "/webapi/entry.cgi?" + q.Encode())
	a.SendFile(localPath, "file")
	a.MultipartForm(args)

	var resp synoResponse
	if err := t.do(ctx, a, &resp); err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	return &resp, nil
}

// session returns the current session id, logging in when there is none.
func (t *NASTarget) session(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sid != "" {
		return t.sid, nil
	}

	q := url.Values{
		"api":     {"SYNO.API.Auth"},
		"version": {"6"},
		"method":  {"login"},
		"account": {t.cfg.Username},
		"passwd":  {t.cfg.Password},
		"session": {"FileStation"},
		"format":  {"sid"},
	}
	a := fiber.Get(t.baseURL + "/webapi/auth.cgi?" + q.Encode())

	var resp synoResponse
	if err := t.do(ctx, a, &resp); err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if !resp.Success || resp.Data.SID == "" {
		return "", fmt.Errorf("login failed: error code %d", resp.code())
	}
	t.sid = resp.Data.SID
	return t.sid, nil
}

func (t *NASTarget) dropSession(sid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sid == sid {
		t.sid = ""
	}
}

// do sends the request and decodes the JSON envelope. The context deadline, when
// earlier than the configured timeout, bounds the request.
func (t *NASTarget) do(ctx context.Context, a *fiber.Agent, out *synoResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.Parse(); err != nil {
		return err
	}
	if !t.cfg.CertVerify {
		a.InsecureSkipVerify()
	}

	timeout := time.Duration(t.cfg.TimeoutSeconds) * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); timeout <= 0 || left < timeout {
			timeout = left
		}
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}

	code, body, errs := a.Struct(out)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", code, body)
	}
	return nil
}
