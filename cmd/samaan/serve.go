package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terraincognita07/samaan/internal/api"
	"github.com/terraincognita07/samaan/internal/config"
	"github.com/terraincognita07/samaan/internal/db"
	"github.com/terraincognita07/samaan/internal/logger"
	"github.com/terraincognita07/samaan/internal/quotes"
	"github.com/terraincognita07/samaan/internal/scheduler"
	"github.com/terraincognita07/samaan/internal/services"
)

const (
	csrfCookieName  = "samaan_csrf"
	csrfHeaderName  = "X-Csrf-Token"
	shutdownTimeout = 10 * time.Second
)

type serveCmd struct {
	envFile *string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP API and the digest scheduler" }
func (*serveCmd) Usage() string {
	return `serve

  Starts the HTTP API on PORT. Configuration comes from the environment,
  optionally seeded by -env.
`
}

func (*serveCmd) SetFlags(*flag.FlagSet) {}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load(*c.envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return subcommands.ExitFailure
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := serve(ctx, cfg, log); err != nil {
		log.Error("server exited", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	time.Local = cfg.Server.Location

	database, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	handler, err := api.NewHandler(database, cfg.Server.SecretKey, cfg.Server.Location, api.HandlerOptions{
		CookieSecure: cfg.Server.CookieSecure,
		Quotes:       quotes.NewClient(cfg.Quotes),
		Logger:       logger.Named(log, "api"),
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(handler, cfg.Server.CookieSecure)

	repositories := db.NewRepositories(database)
	digests := services.NewDigestService(services.NewCalorieService(repositories.Calories, repositories.Goals))
	digestScheduler := scheduler.New(cfg.Digest.CronSchedule, cfg.Server.Location, digests, logger.Named(log, "scheduler"))
	if err := digestScheduler.Start(); err != nil {
		return err
	}
	defer digestScheduler.Stop()

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Warn("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("samaan listening",
		zap.String("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("tz", cfg.Server.Location.String()),
	)
	return app.Listen(":" + cfg.Server.Port)
}

func newApp(handler *api.Handler, cookieSecure bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Samaan",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

// csrfMiddlewareConfig uses the double-submit pattern: clients echo the
// readable samaan_csrf cookie in the X-Csrf-Token header.
func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:" + csrfHeaderName,
		CookieName:     csrfCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid csrf token"})
		},
	}
}
