// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	attendanceRoute "absensiku_backend/internals/features/attendance/route"
	"absensiku_backend/internals/features/attendance/repository"
	"absensiku_backend/internals/features/attendance/service"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, svc *service.AttendanceService, repo repository.AttendanceRepository) {
	startTime = time.Now()

	BaseRoutes(app, repo)

	log.Println("[INFO] Setting up AttendanceRoutes...")
	attendanceRoute.AttendanceRoutes(app, svc)
}
