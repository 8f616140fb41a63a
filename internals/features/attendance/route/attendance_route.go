package route

import (
	"github.com/gofiber/fiber/v2"

	"absensiku_backend/internals/features/attendance/controller"
	"absensiku_backend/internals/features/attendance/service"
	"absensiku_backend/internals/middlewares"
)

func AttendanceRoutes(app *fiber.App, svc *service.AttendanceService) {
	ctrl := controller.NewAttendanceController(svc)
	limit := middlewares.AttendanceRateLimiter()

	app.Post("/attendance", limit, ctrl.SubmitAttendance)

	// Alias gaya lama: endpoint terpisah per mode.
	app.Post("/checkin", limit, ctrl.CheckIn)
	app.Post("/checkout", limit, ctrl.CheckOut)
}
