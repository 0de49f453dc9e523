package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"modpack-updater/core/config"
	"modpack-updater/core/database"
	"modpack-updater/core/loader"
	"modpack-updater/core/logger"
	"modpack-updater/core/manifest"
	"modpack-updater/core/middleware/auth"
	"modpack-updater/core/middleware/rayid"
	"modpack-updater/core/storage"

	"modpack-updater/feature/compare"
	"modpack-updater/feature/servers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "modpack-updater/docs/swagger"
)

// @title Modpack Updater API
// @version 1.0
// @description API for comparing modpack manifests and planning server updates.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the modpack updater server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// The server registry is optional, comparisons work without it.
		var db *gorm.DB
		if cfg.Database.Enabled {
			if conn, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional database connection failed", zap.Error(err))
			} else {
				db = conn
				logg.Info("Connected to server registry", zap.String("driver", cfg.Database.Driver))
			}
		}

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		store := manifest.NewStore(client, cfg.Storage.Bucket, cfg.Compare.Options(nil).InvalidRecords, logg)
		manifests := manifest.NewCache(store, cfg.Manifest.CacheTTL())

		registry := servers.NewFeature(db, cfg.Database.AutoMigrate, logg)
		var finder compare.ServerFinder
		if registry.IsEnabled() {
			finder = registry.Repository()
		}
		comparisons, err := compare.NewFeature(manifests, finder, cfg.Compare.Options(logg), logg)
		if err != nil {
			logg.Fatal("Invalid compare configuration", zap.Error(err))
		}

		mgr := loader.NewManager(logg)
		mgr.Register(comparisons)
		mgr.Register(registry)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Documentation stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("API key is empty, authentication is disabled")
		}

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			logg.Warn("Graceful shutdown failed", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
