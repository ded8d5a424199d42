package records

import (
	"context"
	"errors"
	"fmt"
	"io"

	"kb-admin/core/query"
	"kb-admin/core/reconcile"
	"kb-admin/core/schema"
	"kb-admin/core/upload"
	"kb-admin/core/utils"

	"go.uber.org/zap"
)

// ErrUploadDisabled is returned when no upload target is configured.
var ErrUploadDisabled = errors.New("uploads are not configured")

// TableInfo summarises one managed table.
type TableInfo struct {
	Table       string `json:"table"`
	DefaultSort string `json:"default_sort"`
	LabelField  string `json:"label_field"`
	Uploads     bool   `json:"uploads"`
}

// Choice is one entry of a record picker.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ReconcileRequest carries one save of an edited page.
type ReconcileRequest struct {
	// Cursor is the page the edit was made on. It is re-fetched after the save.
	Cursor query.Cursor `json:"cursor"`
	// Prior is the snapshot the client received.
	Prior []schema.Record `json:"prior"`
	// Edited is the page as the user left it.
	Edited []schema.Record `json:"edited"`
	// DryRun returns the plan without applying it.
	DryRun bool `json:"dry_run"`
}

// Service exposes the managed tables.
type Service struct {
	registry *Registry
	pages    *query.Layer
	engine   *reconcile.Engine
	uploader *upload.Uploader
	logger   *zap.Logger
}

// NewService creates a records service. uploader may be nil, in which case uploads
// fail with ErrUploadDisabled.
func NewService(registry *Registry, pages *query.Layer, engine *reconcile.Engine, uploader *upload.Uploader, logger *zap.Logger) *Service {
	return &Service{
		registry: registry,
		pages:    pages,
		engine:   engine,
		uploader: uploader,
		logger:   logger,
	}
}

// Registry returns the table registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Tables lists the managed tables.
func (s *Service) Tables() []TableInfo {
	out := make([]TableInfo, 0, len(s.registry.order))
	for _, sc := range s.registry.Schemas() {
		out = append(out, TableInfo{
			Table:       sc.Table,
			DefaultSort: sc.DefaultSort,
			LabelField:  sc.LabelField,
			Uploads:     s.uploader != nil && sc.HasField(schema.FieldUploadedTime),
		})
	}
	return out
}

// Schema returns the schema of a table.
func (s *Service) Schema(table string) (*schema.Schema, error) {
	return s.registry.Lookup(table)
}

// Page fetches one page of a table. A read failure is reported on the page and
// returned as a *query.FetchError; an invalid cursor returns a nil page.
func (s *Service) Page(ctx context.Context, table string, cur query.Cursor) (*query.Page, error) {
	sc, err := s.registry.Lookup(table)
	if err != nil {
		return nil, err
	}
	cur = cur.WithDefaults()
	if err := cur.Validate(sc); err != nil {
		return nil, err
	}
	return s.pages.Fetch(ctx, sc, cur)
}

// Choices returns "<id> - <label>" entries for the records of one page.
func (s *Service) Choices(ctx context.Context, table string, cur query.Cursor) ([]Choice, error) {
	page, err := s.Page(ctx, table, cur)
	if err != nil {
		return nil, err
	}
	sc, _ := s.registry.Lookup(table)
	out := make([]Choice, 0, len(page.Records))
	for _, rec := range page.Records {
		label := rec.ID
		if sc.LabelField != "" {
			label = fmt.Sprintf("%s - %s", rec.ID, utils.ToString(rec.Get(sc.LabelField)))
		}
		out = append(out, Choice{ID: rec.ID, Label: label})
	}
	return out, nil
}

// Reconcile applies an edited page. The returned error is a lookup or cursor
// problem, or the refresh failure after an applied pass; in the latter case the
// result is still returned.
func (s *Service) Reconcile(ctx context.Context, table string, req ReconcileRequest) (*reconcile.ReconcileResult, error) {
	sc, err := s.registry.Lookup(table)
	if err != nil {
		return nil, err
	}
	cur := req.Cursor.WithDefaults()
	if err := cur.Validate(sc); err != nil {
		return nil, err
	}

	prior, err := s.pinPrior(ctx, sc, cur, req.Prior)
	if err != nil {
		return nil, err
	}

	engine := s.engine
	if req.DryRun {
		opts := engine.Options()
		opts.DryRun = true
		engine = engine.WithOptions(opts)
	}
	return engine.Reconcile(ctx, sc, cur, prior, req.Edited)
}

// pinPrior keeps the snapshot rows the page under cur actually holds. A row the
// client claims to have seen but the page does not hold can be neither deleted nor
// updated by the save; edits to it come back as rejected rows.
func (s *Service) pinPrior(ctx context.Context, sc *schema.Schema, cur query.Cursor, prior []schema.Record) ([]schema.Record, error) {
	page, err := s.pages.Fetch(ctx, sc, cur)
	if err != nil {
		return nil, err
	}
	held := schema.IDs(page.Records)

	kept := make([]schema.Record, 0, len(prior))
	var dropped []string
	for _, rec := range prior {
		if _, ok := held[rec.ID]; ok {
			kept = append(kept, rec)
			continue
		}
		dropped = append(dropped, rec.ID)
	}
	if len(dropped) > 0 {
		s.logger.Warn("Snapshot rows not on the page were ignored",
			zap.String("table", sc.Table),
			zap.Int("page", cur.Page),
			zap.Strings("ids", dropped),
		)
	}
	return kept, nil
}

// Upload stores a document for a record and stamps its upload time.
func (s *Service) Upload(ctx context.Context, table, id, fileName string, r io.Reader) (*upload.Result, error) {
	sc, err := s.registry.Lookup(table)
	if err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, ErrUploadDisabled
	}
	canonical, ok := utils.CanonicalID(id)
	if !ok {
		return nil, &schema.ValidationError{Table: table, Field: schema.FieldID, Reason: fmt.Sprintf("invalid id %q", id)}
	}
	return s.uploader.Upload(ctx, sc, canonical, fileName, r)
}
