package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"absensiku_backend/internals/configs"
	"absensiku_backend/internals/features/attendance/repository"
)

func BaseRoutes(app *fiber.App, repo repository.AttendanceRepository) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Absensiku API ready 🚀")
	})

	app.Get("/panic-test", func(c *fiber.Ctx) error {
		panic("Simulasi panic error!") // testing panic handler
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		storeStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := repo.Ping(c.UserContext()); err != nil {
			storeStatus = "Store connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		uptime := time.Since(startTime).Seconds()

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"store":          storeStatus,
			"store_driver":   configs.StoreDriver,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(uptime),
		})
	})
}
