package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/dto"
	"absensiku_backend/internals/features/attendance/service"
	helper "absensiku_backend/internals/helpers"
	"absensiku_backend/internals/logger"
)

type AttendanceController struct {
	Service  *service.AttendanceService
	validate *validator.Validate
}

func NewAttendanceController(svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{Service: svc, validate: validator.New()}
}

/* ===================== SUBMIT ===================== */
// POST /attendance
func (ctrl *AttendanceController) SubmitAttendance(c *fiber.Ctx) error {
	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidPayload)
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	return ctrl.process(c, req)
}

// POST /checkin (alias, mode tersirat dari path)
func (ctrl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	return ctrl.alias(c, service.ModeIn)
}

// POST /checkout (alias)
func (ctrl *AttendanceController) CheckOut(c *fiber.Ctx) error {
	return ctrl.alias(c, service.ModeOut)
}

func (ctrl *AttendanceController) alias(c *fiber.Ctx, mode string) error {
	var req dto.AttendanceAliasRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.MsgInvalidPayload)
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	return ctrl.process(c, dto.AttendanceRequest{
		Name: req.Name,
		Mode: mode,
		Lat:  req.Lat,
		Lon:  req.Lon,
	})
}

func (ctrl *AttendanceController) process(c *fiber.Ctx, req dto.AttendanceRequest) error {
	// `required` lolos untuk string spasi; nama harus berisi setelah trim.
	if strings.TrimSpace(req.Name) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nama wajib diisi")
	}

	res, err := ctrl.Service.Submit(c.UserContext(), req.Name, req.Mode, req.Lat, req.Lon)
	if err != nil {
		// Detail kegagalan store cukup di log server, jangan bocor ke klien.
		logger.Error("gagal memproses absensi", "name", req.Name, "mode", req.Mode, "error", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.MsgStoreFailure)
	}

	var data any
	if res.Record != nil {
		data = dto.FromAttendanceRecordModel(*res.Record)
	}
	return helper.JsonOutcome(c, res.Accepted(), string(res.Outcome), res.Message, data)
}
