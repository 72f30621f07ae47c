package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sunfield-crm/sunfield/app/repository"
	"github.com/sunfield-crm/sunfield/internal/pkg/cache"
	"github.com/sunfield-crm/sunfield/internal/pkg/database"
	"github.com/sunfield-crm/sunfield/internal/pkg/env"
	"github.com/sunfield-crm/sunfield/internal/pkg/jobqueue"
	"github.com/sunfield-crm/sunfield/internal/pkg/router"
)

func main() {
	app := NewApplication()

	// drain the job queue before the process exits so in-flight Aurora
	// reconciliations are not lost
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		jobqueue.GetManager().Stop()
		_ = app.Shutdown()
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	jobqueue.GetManager().Start()

	app := fiber.New(fiber.Config{
		AppName:   "sunfield",
		BodyLimit: 1 << 20, // webhook payloads are small JSON bodies
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ROUTER
	router.InstallRouter(app)

	return app
}
