// file: internals/features/attendance/dto/attendance_dto.go
package dto

import (
	"github.com/google/uuid"

	m "absensiku_backend/internals/features/attendance/model"
	"absensiku_backend/internals/helpers/dbtime"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// POST /attendance
type AttendanceRequest struct {
	// Wajib: nama karyawan (dicocokkan case-insensitive)
	Name string `json:"name" validate:"required"`

	// Wajib ada; nilai selain "in"/"out" dijawab dengan outcome
	// unknown_mode, bukan error validasi
	Mode string `json:"mode" validate:"required"`

	// Opsional: lokasi saat absen
	Lat *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
}

// POST /checkin dan POST /checkout (mode tersirat dari path)
type AttendanceAliasRequest struct {
	Name string   `json:"name" validate:"required"`
	Lat  *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon  *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type AttendanceRecordResponse struct {
	AttendanceRecordID        uuid.UUID   `json:"attendance_record_id"`
	AttendanceRecordName      string      `json:"attendance_record_name"`
	AttendanceRecordDate      string      `json:"attendance_record_date"`
	AttendanceRecordInTime    dbtime.Tod  `json:"attendance_record_in_time"`
	AttendanceRecordOutTime   *dbtime.Tod `json:"attendance_record_out_time,omitempty"`
	AttendanceRecordWorkHours *float64    `json:"attendance_record_work_hours,omitempty"`
	AttendanceRecordLatIn     *float64    `json:"attendance_record_lat_in,omitempty"`
	AttendanceRecordLonIn     *float64    `json:"attendance_record_lon_in,omitempty"`
}

func FromAttendanceRecordModel(mm m.AttendanceRecordModel) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		AttendanceRecordID:        mm.AttendanceRecordID,
		AttendanceRecordName:      mm.AttendanceRecordName,
		AttendanceRecordDate:      mm.AttendanceRecordDate,
		AttendanceRecordInTime:    mm.AttendanceRecordInTime,
		AttendanceRecordOutTime:   mm.AttendanceRecordOutTime,
		AttendanceRecordWorkHours: mm.AttendanceRecordWorkHours,
		AttendanceRecordLatIn:     mm.AttendanceRecordLatIn,
		AttendanceRecordLonIn:     mm.AttendanceRecordLonIn,
	}
}
