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
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"absensiku_backend/internals/configs"
	database "absensiku_backend/internals/databases"
	"absensiku_backend/internals/features/attendance/model"
	"absensiku_backend/internals/features/attendance/repository"
	"absensiku_backend/internals/features/attendance/service"
	helper "absensiku_backend/internals/helpers"
	applogger "absensiku_backend/internals/logger"
	middlewares "absensiku_backend/internals/middlewares"
	routes "absensiku_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	applogger.Init()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromFiberError(c, err)
		},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                 // 304 caching

	// 🔎 Request-ID + timing + batas waktu per request (termasuk akses store)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 Store sesuai konfigurasi
	var repo repository.AttendanceRepository
	switch configs.StoreDriver {
	case configs.StorePostgres:
		database.ConnectDB()
		database.TunePool()
		database.Migrate(&model.AttendanceRecordModel{})
		repo = repository.NewGormRepository(database.DB)
	default:
		sheetRepo, err := repository.NewSheetRepository(configs.SheetPath, configs.SheetName)
		if err != nil {
			log.Fatalf("❌ Gagal menyiapkan workbook absensi: %v", err)
		}
		repo = sheetRepo
	}

	fence := service.Geofence{
		Lat:      configs.OfficeLat,
		Lon:      configs.OfficeLon,
		RadiusM:  configs.RadiusMeters,
		Enforced: configs.GeofenceEnforced,
	}
	svc := service.NewAttendanceService(repo, fence, configs.SessionScope, configs.Timezone)

	// ✅ Routes
	routes.SetupRoutes(app, svc, repo)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if configs.StoreDriver == configs.StorePostgres {
		if sqlDB, err := database.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
