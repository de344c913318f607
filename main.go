package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"hrms_backend/internals/configs"
	database "hrms_backend/internals/databases"
	"hrms_backend/internals/features/hrms/scheduler"
	"hrms_backend/internals/features/hrms/store"
	helper "hrms_backend/internals/helpers"
	middlewares "hrms_backend/internals/middlewares"
	routes "hrms_backend/internals/route"
	"hrms_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	loc := configs.Location()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.FromFiberError,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	middlewares.SetupMiddlewares(app)

	st, err := openStore()
	if err != nil {
		log.Fatalf("[MAIN] storage init failed: %v", err)
	}

	seeds.RunAllSeeds(context.Background(), st, configs.SeedEmployeesFile)

	// scheduler setelah storage siap
	summary, err := scheduler.StartAttendanceSummaryScheduler(st, configs.AttendanceSummaryCron, loc)
	if err != nil {
		log.Printf("[MAIN] attendance summary scheduler disabled: %v", err)
	}

	routes.SetupRoutes(app, st, loc)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("[MAIN] listening on :%s (storage=%s, tz=%s)", configs.Port, configs.StorageDriver, loc)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("[MAIN] server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if summary != nil {
		<-summary.Stop().Done()
	}
	database.Close()
}

func openStore() (store.Store, error) {
	if configs.StorageDriver == configs.StorageDriverMemory {
		log.Println("[MAIN] using in-memory storage; data is lost on restart")
		return store.NewMemoryStore(), nil
	}

	if err := database.ConnectDB(); err != nil {
		return nil, err
	}
	database.TunePool()
	database.WarmUpQueries()
	return store.NewGormStore(database.DB)
}
