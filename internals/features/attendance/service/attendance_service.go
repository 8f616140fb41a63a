package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"absensiku_backend/internals/configs"
	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/model"
	"absensiku_backend/internals/features/attendance/repository"
	"absensiku_backend/internals/helpers/dbtime"
)

const (
	ModeIn  = "in"
	ModeOut = "out"
)

// Outcome: kode hasil absensi. Pesan untuk user dipetakan dari kode ini
// di lapisan presentasi (constants), bukan di sini.
type Outcome string

const (
	OutcomeCheckedIn        Outcome = "checked_in"
	OutcomeCheckedOut       Outcome = "checked_out"
	OutcomeOutOfRange       Outcome = "out_of_range"
	OutcomeAlreadyCheckedIn Outcome = "already_checked_in"
	OutcomeNotCheckedIn     Outcome = "not_checked_in"
	OutcomeUnknownMode      Outcome = "unknown_mode"
)

type Result struct {
	Outcome Outcome
	Message string
	Record  *model.AttendanceRecordModel
}

func (r Result) Accepted() bool {
	return r.Outcome == OutcomeCheckedIn || r.Outcome == OutcomeCheckedOut
}

// AttendanceService: mesin status absen masuk/keluar.
type AttendanceService struct {
	Repo  repository.AttendanceRepository
	Fence Geofence
	Scope string // configs.ScopePerDay / ScopeGlobal

	// Now bisa dioverride di test.
	Now func() time.Time
}

func NewAttendanceService(repo repository.AttendanceRepository, fence Geofence, scope string, loc *time.Location) *AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceService{
		Repo:  repo,
		Fence: fence,
		Scope: scope,
		Now:   func() time.Time { return time.Now().In(loc) },
	}
}

// Submit memproses satu permintaan absensi. Error hanya untuk kegagalan
// store; semua hasil bisnis (termasuk penolakan) keluar sebagai Result.
func (s *AttendanceService) Submit(ctx context.Context, name, mode string, lat, lon *float64) (Result, error) {
	switch strings.TrimSpace(mode) {
	case ModeIn:
		return s.checkIn(ctx, name, lat, lon)
	case ModeOut:
		return s.checkOut(ctx, name, lat, lon)
	default:
		return Result{Outcome: OutcomeUnknownMode, Message: constants.MsgUnknownMode}, nil
	}
}

func (s *AttendanceService) checkIn(ctx context.Context, name string, lat, lon *float64) (Result, error) {
	if !s.Fence.Allows(lat, lon) {
		return Result{Outcome: OutcomeOutOfRange, Message: constants.MsgOutOfRange}, nil
	}

	now := s.Now()
	rec := &model.AttendanceRecordModel{
		AttendanceRecordName:   strings.TrimSpace(name),
		AttendanceRecordDate:   now.Format("2006-01-02"),
		AttendanceRecordInTime: dbtime.From(now),
		AttendanceRecordLatIn:  lat,
		AttendanceRecordLonIn:  lon,
	}

	created, err := s.Repo.AppendIfNoOpen(ctx, rec, s.Scope)
	if err != nil {
		return Result{}, err
	}
	if !created {
		return Result{Outcome: OutcomeAlreadyCheckedIn, Message: constants.MsgAlreadyCheckedIn}, nil
	}
	return Result{Outcome: OutcomeCheckedIn, Message: constants.MsgCheckInSuccess, Record: rec}, nil
}

func (s *AttendanceService) checkOut(ctx context.Context, name string, lat, lon *float64) (Result, error) {
	if !s.Fence.Allows(lat, lon) {
		return Result{Outcome: OutcomeOutOfRange, Message: constants.MsgOutOfRange}, nil
	}

	now := s.Now()
	records, err := s.Repo.ListByName(ctx, name)
	if err != nil {
		return Result{}, err
	}

	open := s.latestOpen(records, now.Format("2006-01-02"))
	if open == nil {
		return Result{Outcome: OutcomeNotCheckedIn, Message: constants.MsgNotCheckedIn}, nil
	}

	out := dbtime.From(now)
	hours := workHours(open.AttendanceRecordInTime, out)
	open.AttendanceRecordOutTime = &out
	open.AttendanceRecordWorkHours = &hours

	closed, err := s.Repo.Close(ctx, open)
	if err != nil {
		return Result{}, err
	}
	if !closed {
		// Kalah balapan dengan checkout lain: record sudah tertutup.
		return Result{Outcome: OutcomeNotCheckedIn, Message: constants.MsgNotCheckedIn}, nil
	}

	msg := constants.CheckOutMessage(strconv.FormatFloat(hours, 'f', 2, 64))
	return Result{Outcome: OutcomeCheckedOut, Message: msg, Record: open}, nil
}

// latestOpen memilih record terbuka paling baru (scan dari baris terakhir,
// seperti kebiasaan sheet yang tumbuh ke bawah). Scope per-day hanya
// menerima record tanggal hari ini.
func (s *AttendanceService) latestOpen(records []model.AttendanceRecordModel, today string) *model.AttendanceRecordModel {
	for i := len(records) - 1; i >= 0; i-- {
		if !records[i].IsOpen() {
			continue
		}
		if s.Scope == configs.ScopePerDay && records[i].AttendanceRecordDate != today {
			continue
		}
		return &records[i]
	}
	return nil
}

// workHours: selisih menit dibagi 60, dua desimal. Checkout lewat tengah
// malam (scope global) dihitung maju 24 jam supaya tidak negatif.
func workHours(in, out dbtime.Tod) float64 {
	minutes := out.MinutesOfDay() - in.MinutesOfDay()
	if minutes < 0 {
		minutes += 24 * 60
	}
	return math.Round(float64(minutes)/60*100) / 100
}
