package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/jomedical/clinicverify/app/repository"
	"github.com/jomedical/clinicverify/internal/pkg/cache"
	"github.com/jomedical/clinicverify/internal/pkg/counter"
	"github.com/jomedical/clinicverify/internal/pkg/database"
	"github.com/jomedical/clinicverify/internal/pkg/env"
	"github.com/jomedical/clinicverify/internal/pkg/expiry"
	"github.com/jomedical/clinicverify/internal/pkg/router"
)

func main() {
	app := NewApplication()

	stop := make(chan struct{})
	startBackgroundWorkers(stop)

	// Flush pending counters on shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		close(stop)
		if err := counter.FlushAll(); err != nil {
			log.Printf("final counter flush failed: %v", err)
		}
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

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 20 * 1024 * 1024,
	})
	// ignore and cache favicon
	app.Use(favicon.New(favicon.Config{
		File:         "./public/assets/icons/favicon.ico",
		URL:          "/favicon.ico",
		CacheControl: "public, max-age=604800",
	}))

	app.Use(recover.New(), logger.New())

	// fiber metrics behind basic auth
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	app.Static("/", "./public/assets", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}

// startBackgroundWorkers launches the expiry sweeper and the periodic
// verification counter flush.
func startBackgroundWorkers(stop <-chan struct{}) {
	expiry.StartSweeper(repository.GetGlobalRepositories().Clinic, stop)

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := counter.FlushAll(); err != nil {
					log.Printf("counter flush failed: %v", err)
				}
			case <-stop:
				return
			}
		}
	}()
}
