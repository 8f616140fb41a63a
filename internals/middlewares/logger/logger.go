package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"absensiku_backend/internals/configs"
)

// LoggerMiddleware mencatat semua request absensi. Zona waktu log
// mengikuti TIMEZONE yang sama dengan pencatatan jam masuk/keluar,
// supaya jam di access log cocok dengan isi workbook/tabel.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   configs.GetEnv("TIMEZONE", "Asia/Jakarta"),
		Format:     "[${time}] ${ip} - ${method} ${path} - ${status} - ${latency}\n",
	})
}
