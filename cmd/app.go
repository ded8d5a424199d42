package cmd

import (
	"fmt"
	"time"

	"kb-admin/core/config"
	"kb-admin/core/database"
	"kb-admin/core/logger"
	"kb-admin/core/query"
	"kb-admin/core/reconcile"
	"kb-admin/core/storage"
	"kb-admin/core/upload"
	"kb-admin/feature/records"
	"kb-admin/feature/records/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the collaborators every command builds from configuration.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	loc     *time.Location
	db      *gorm.DB
	store   *database.TableStore
	storage storage.Client
	records *records.Service
}

// bootstrap loads configuration, connects to the database and wires the records
// service. Storage and upload failures only disable uploads.
func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loc, err := cfg.Server.Location()
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logg = logg.With(zap.String("driver", cfg.Database.Driver))

	a := &app{cfg: cfg, log: logg, loc: loc, db: db, store: database.NewTableStore(db, models.All()...)}

	if cfg.Storage.Endpoint != "" {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Storage client unavailable", zap.Error(err))
		} else {
			a.storage = client
		}
	}

	registry, err := records.NewRegistry(models.All()...)
	if err != nil {
		return nil, err
	}

	layer := query.NewLayer(a.store, cfg.Query, logg)
	engine := reconcile.NewEngine(a.store, layer, cfg.Reconcile.Options(), logg)

	var uploader *upload.Uploader
	target, err := upload.NewTarget(cfg.Upload, cfg.NAS, a.storage, cfg.Storage.Bucket)
	if err != nil {
		logg.Warn("Uploads disabled", zap.Error(err))
	} else {
		uploader = upload.NewUploader(cfg.Upload, target, a.store, layer, loc, logg)
	}

	a.records = records.NewService(registry, layer, engine, uploader, logg)
	return a, nil
}

func (a *app) close() {
	_ = a.log.Sync()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
