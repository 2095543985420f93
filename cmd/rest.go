package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/photoframe/photoframe/core/config"
	"github.com/photoframe/photoframe/ui/rest"
	"github.com/photoframe/photoframe/ui/rest/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the frame API over http and run the monitor in process",
	RunE:  restServer,
}

func init() {
	rootCmd.AddCommand(restCmd)
}

func restServer(cmd *cobra.Command, _ []string) error {
	cfg := config.Global
	if err := cfg.ValidateREST(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := newComponents(cfg)
	defer deps.Close()

	accessSvc, err := deps.accessService(ctx)
	if err != nil {
		return err
	}
	imageSvc, err := deps.imageService(ctx)
	if err != nil {
		return err
	}

	// The in-process ticker replaces the EventBridge rule. The monitor
	// disables it after alerting and operators re-enable it over the API.
	ticker, err := deps.scheduleTrigger(ctx)
	if err != nil {
		return err
	}
	livenessSvc, err := deps.livenessService(ctx, ticker)
	if err != nil {
		return err
	}
	ticker.Start(ctx, func(ctx context.Context) { livenessSvc.Check(ctx) })

	app := fiber.New(fiber.Config{
		AppName:               "photoframe",
		DisableStartupMessage: true,
		ServerHeader:          "Hidden",
		ReadTimeout:           30 * time.Second,
	})

	app.Use(requestid.New())
	app.Use(middleware.Recovery())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))
	if cfg.App.Debug {
		app.Use(logger.New())
	}

	account := make(map[string]string)
	for _, pair := range cfg.App.BasicAuth {
		ba := strings.SplitN(pair, ":", 2)
		account[ba[0]] = ba[1]
	}
	operatorAuth := basicauth.New(basicauth.Config{Users: account})

	api := app.Group(cfg.App.BasePath + "/api")
	var checks []rest.Dependency
	if deps.valkey != nil {
		checks = append(checks, rest.Dependency{Name: "valkey", Ping: deps.valkey.Ping})
	}
	rest.InitRestHealth(api, cfg.App.Version, checks...)
	rest.InitRestImage(api, imageSvc, middleware.TokenGate(accessSvc, cfg.Access.Header))
	rest.InitRestMonitor(api, livenessSvc, operatorAuth)

	api.All("/*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "API Endpoint not found",
			"path":  c.Path(),
		})
	})

	go func() {
		<-ctx.Done()
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
	}()

	logrus.Infof("[REST] Listening on :%s", cfg.App.Port)
	return app.Listen(":" + cfg.App.Port)
}
