package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"kb-admin/core/auth"
	"kb-admin/core/loader"
	"kb-admin/core/logger"
	authmw "kb-admin/core/middleware/auth"
	"kb-admin/core/middleware/rayid"
	"kb-admin/feature/agent"
	"kb-admin/feature/integrity"
	"kb-admin/feature/records"
	"kb-admin/feature/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "kb-admin/docs/swagger"
)

// @title Knowledge Base Admin API
// @version 1.0
// @description Admin console API for the knowledge-base metadata tables.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the admin API server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := bootstrap()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.close()
		logg := a.log
		cfg := a.cfg
		zap.ReplaceGlobals(logg)

		// Multipart bodies carry whole documents.
		bodyLimit := 4 * 1024 * 1024
		if limit := int(cfg.Upload.MaxBytes) + 1024*1024; limit > bodyLimit {
			bodyLimit = limit
		}
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             bodyLimit,
		})

		gate := auth.NewGate(cfg.Auth)

		mgr := loader.NewManager()
		mgr.Register(session.NewFeature(gate, logg))
		mgr.Register(records.NewFeature(a.records))
		mgr.Register(integrity.NewFeature(integrity.NewService(
			a.storage, cfg.Storage.Bucket, cfg.Upload.BasePath, a.db, a.records.Registry().Schemas(), logg,
		)))
		mgr.Register(agent.NewFeature(cfg.Agent, logg))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(logger.Middleware(logg))

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(authmw.New(session.GateConfig(gate, cfg.Server.ApiKey, logg)))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
