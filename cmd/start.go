package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware/auth"
	"catalog-sync/core/middleware/rayid"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var startMigrate bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog-sync server and scheduler",
	Long: `Starts the HTTP server, registers all enabled features and runs the reconciliation
scheduler. In worker mode (SCHEDULE_WORKER=true) one run is also triggered shortly after startup.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 1. Wire configuration, database, lock, archive and engine
		a, err := bootstrap(ctx, startMigrate)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.Close()
		logg := a.logger

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 3. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(a.service, logg))
		mgr.Register(integrity.NewFeature(a.db, a.storage, a.cfg.Storage.Bucket, a.cfg.Catalog.ReportPrefix, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 2.5 Health (Public)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/health"}}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Scheduler
		var wg sync.WaitGroup
		scheduler := catalog.NewScheduler(a.service, a.cfg.Schedule, logg)
		wg.Add(1)
		go func() {
			defer wg.Done()
			scheduler.Start(ctx)
		}()

		// 6. Start Server
		go func() {
			addr := a.cfg.Server.Host + ":" + a.cfg.Server.Port
			logg.Info("Starting server", zap.String("addr", addr))
			if err := app.Listen(addr); err != nil {
				logg.Error("Server failed", zap.Error(err))
				stop()
			}
		}()

		// 7. Graceful Shutdown
		<-ctx.Done()
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		wg.Wait()
	},
}

func init() {
	startCmd.Flags().BoolVar(&startMigrate, "migrate", false, "Migrate the catalog schema before starting")
	RootCmd.AddCommand(startCmd)
}
