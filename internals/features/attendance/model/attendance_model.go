package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/helpers/dbtime"
)

// AttendanceRecordModel: satu baris = satu sesi kehadiran.
// Record terbuka = jam keluar masih kosong; record tertutup tidak
// boleh diubah lagi.
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordName string `gorm:"not null;index;column:attendance_record_name" json:"attendance_record_name"`
	AttendanceRecordDate string `gorm:"type:date;not null;column:attendance_record_date" json:"attendance_record_date"` // YYYY-MM-DD

	AttendanceRecordInTime  dbtime.Tod  `gorm:"type:time;not null;column:attendance_record_in_time" json:"attendance_record_in_time"`
	AttendanceRecordOutTime *dbtime.Tod `gorm:"type:time;column:attendance_record_out_time" json:"attendance_record_out_time,omitempty"`

	// Total jam kerja (desimal, dua angka di belakang koma), dihitung
	// sekali saat absen keluar.
	AttendanceRecordWorkHours *float64 `gorm:"column:attendance_record_work_hours" json:"attendance_record_work_hours,omitempty"`

	AttendanceRecordLatIn *float64 `gorm:"column:attendance_record_lat_in" json:"attendance_record_lat_in,omitempty"`
	AttendanceRecordLonIn *float64 `gorm:"column:attendance_record_lon_in" json:"attendance_record_lon_in,omitempty"`

	AttendanceRecordCreatedAt time.Time  `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt *time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at,omitempty"`

	// Posisi baris pada workbook (1-based). Hanya diisi store sheet.
	AttendanceRecordSheetRow int `gorm:"-" json:"-"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

// IsOpen: sesi masih berjalan (belum absen keluar).
func (m *AttendanceRecordModel) IsOpen() bool { return m.AttendanceRecordOutTime == nil }

// NameKey menormalkan nama untuk pencocokan: trim + lowercase.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
