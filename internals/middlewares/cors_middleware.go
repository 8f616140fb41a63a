// middlewares/cors.go

package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"absensiku_backend/internals/configs"
)

// CorsMiddleware membuat middleware CORS.
// Form absensi dipanggil dari halaman statis, jadi origin dibuka
// lewat env CORS_ORIGINS (default: semua origin).
func CorsMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: configs.GetEnv("CORS_ORIGINS", "*"),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}
