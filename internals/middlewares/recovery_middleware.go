package middlewares

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"absensiku_backend/internals/configs"
)

// RecoveryMiddleware mengubah panic menjadi response 500 lewat error
// handler aplikasi, jadi endpoint absensi tidak pernah menjatuhkan server.
// Stack trace bisa dimatikan di produksi via RECOVER_STACKTRACE=false.
func RecoveryMiddleware() fiber.Handler {
	withStack, err := strconv.ParseBool(configs.GetEnv("RECOVER_STACKTRACE", "true"))
	if err != nil {
		withStack = true
	}
	return recover.New(recover.Config{
		EnableStackTrace: withStack,
	})
}
