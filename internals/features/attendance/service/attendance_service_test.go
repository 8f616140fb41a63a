package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absensiku_backend/internals/configs"
	"absensiku_backend/internals/features/attendance/model"
	"absensiku_backend/internals/helpers/dbtime"
)

func timeOfDay(s string) (dbtime.Tod, error) { return dbtime.Parse(s) }

// memoryRepo: fake in-memory dengan semantik conditional append yang sama
// dengan store sungguhan.
type memoryRepo struct {
	records []model.AttendanceRecordModel
	failAll bool
}

func (m *memoryRepo) ListByName(_ context.Context, name string) ([]model.AttendanceRecordModel, error) {
	if m.failAll {
		return nil, errors.New("store down")
	}
	key := model.NameKey(name)
	var out []model.AttendanceRecordModel
	for i, rec := range m.records {
		if model.NameKey(rec.AttendanceRecordName) == key {
			rec.AttendanceRecordSheetRow = i + 2
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryRepo) AppendIfNoOpen(_ context.Context, rec *model.AttendanceRecordModel, scope string) (bool, error) {
	if m.failAll {
		return false, errors.New("store down")
	}
	key := model.NameKey(rec.AttendanceRecordName)
	for _, existing := range m.records {
		if model.NameKey(existing.AttendanceRecordName) != key || !existing.IsOpen() {
			continue
		}
		if scope == configs.ScopePerDay && existing.AttendanceRecordDate != rec.AttendanceRecordDate {
			continue
		}
		return false, nil
	}
	m.records = append(m.records, *rec)
	rec.AttendanceRecordSheetRow = len(m.records) + 1
	return true, nil
}

func (m *memoryRepo) Close(_ context.Context, rec *model.AttendanceRecordModel) (bool, error) {
	if m.failAll {
		return false, errors.New("store down")
	}
	idx := rec.AttendanceRecordSheetRow - 2
	if idx < 0 || idx >= len(m.records) {
		return false, errors.New("baris tidak ditemukan")
	}
	if !m.records[idx].IsOpen() {
		return false, nil
	}
	m.records[idx].AttendanceRecordOutTime = rec.AttendanceRecordOutTime
	m.records[idx].AttendanceRecordWorkHours = rec.AttendanceRecordWorkHours
	return true, nil
}

func (m *memoryRepo) Ping(context.Context) error { return nil }

func (m *memoryRepo) countFor(name string) int {
	n := 0
	for _, rec := range m.records {
		if model.NameKey(rec.AttendanceRecordName) == model.NameKey(name) {
			n++
		}
	}
	return n
}

func newTestService(repo *memoryRepo, scope string) *AttendanceService {
	svc := NewAttendanceService(repo, Geofence{Lat: -6.2, Lon: 106.8, RadiusM: 50, Enforced: true}, scope, time.UTC)
	svc.Now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func atOffice() (*float64, *float64) {
	lat, lon := -6.2, 106.8
	return &lat, &lon
}

func TestCheckIn_CreatesOpenRecord(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopePerDay)
	lat, lon := atOffice()

	res, err := svc.Submit(context.Background(), "Alya", "in", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedIn, res.Outcome)
	assert.True(t, res.Accepted())
	require.NotNil(t, res.Record)
	assert.Equal(t, "Alya", res.Record.AttendanceRecordName)
	assert.Equal(t, "2025-03-10", res.Record.AttendanceRecordDate)
	assert.Equal(t, "09:00:00", res.Record.AttendanceRecordInTime.String())
	assert.Nil(t, res.Record.AttendanceRecordOutTime)
	assert.Equal(t, 1, repo.countFor("Alya"))
}

func TestCheckIn_DuplicateRejected(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopePerDay)
	lat, lon := atOffice()

	_, err := svc.Submit(context.Background(), "Alya", "in", lat, lon)
	require.NoError(t, err)

	res, err := svc.Submit(context.Background(), "Alya", "in", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyCheckedIn, res.Outcome)
	assert.False(t, res.Accepted())
	assert.Equal(t, 1, repo.countFor("Alya"), "penolakan tidak boleh menambah baris")
}

func TestCheckOut_WithoutCheckInRejected(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopePerDay)
	lat, lon := atOffice()

	res, err := svc.Submit(context.Background(), "Alya", "out", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotCheckedIn, res.Outcome)
}

func TestCheckOut_ComputesWorkHours(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopePerDay)
	lat, lon := atOffice()

	_, err := svc.Submit(context.Background(), "Alya", "in", lat, lon)
	require.NoError(t, err)

	// 09:00:00 → 17:30:00 harus 8.50 jam
	svc.Now = func() time.Time {
		return time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)
	}
	res, err := svc.Submit(context.Background(), "Alya", "out", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedOut, res.Outcome)
	require.NotNil(t, res.Record.AttendanceRecordWorkHours)
	assert.Equal(t, 8.5, *res.Record.AttendanceRecordWorkHours)
	assert.Contains(t, res.Message, "8.50")
	assert.Equal(t, "17:30:00", res.Record.AttendanceRecordOutTime.String())
}

func TestCheckOut_SecondAttemptRejectedAndUnchanged(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopePerDay)
	lat, lon := atOffice()

	_, err := svc.Submit(context.Background(), "Alya", "in", lat, lon)
	require.NoError(t, err)

	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC) }
	_, err = svc.Submit(context.Background(), "Alya", "out", lat, lon)
	require.NoError(t, err)

	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC) }
	res, err := svc.Submit(context.Background(), "Alya", "out", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotCheckedIn, res.Outcome)

	// record pertama tidak berubah
	assert.Equal(t, "17:30:00", repo.records[0].AttendanceRecordOutTime.String())
	assert.Equal(t, 8.5, *repo.records[0].AttendanceRecordWorkHours)
}

func TestCheckIn_WithoutLocationAccepted(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopePerDay)

	// lokasi opsional: tanpa koordinat tetap diterima walau geofence aktif
	res, err := svc.Submit(context.Background(), "Alya", "in", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedIn, res.Outcome)
	require.NotNil(t, res.Record)
	assert.Nil(t, res.Record.AttendanceRecordLatIn)
	assert.Equal(t, 1, repo.countFor("Alya"))

	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }
	res, err = svc.Submit(context.Background(), "Alya", "out", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedOut, res.Outcome)
}

func TestCheckIn_OutOfRangeNoMutation(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopePerDay)

	// ~1000 m dari titik acuan, radius 50 m
	lat, lon := -6.191, 106.8
	res, err := svc.Submit(context.Background(), "Alya", "in", &lat, &lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeOutOfRange, res.Outcome)
	assert.Equal(t, 0, repo.countFor("Alya"))
}

func TestSubmit_UnknownModeBenign(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopePerDay)
	lat, lon := atOffice()

	res, err := svc.Submit(context.Background(), "Alya", "masuk", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnknownMode, res.Outcome)
	assert.Equal(t, 0, repo.countFor("Alya"))
}

func TestMatching_CaseInsensitiveTrimmed(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopePerDay)
	lat, lon := atOffice()

	_, err := svc.Submit(context.Background(), "Alya", "in", lat, lon)
	require.NoError(t, err)

	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC) }
	res, err := svc.Submit(context.Background(), "  aLYA  ", "out", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedOut, res.Outcome)
}

func TestScopePerDay_YesterdayOpenDoesNotBlockOrClose(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopePerDay)
	lat, lon := atOffice()

	// record terbuka kemarin (mis. lupa absen keluar)
	svc.Now = func() time.Time { return time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC) }
	_, err := svc.Submit(context.Background(), "Alya", "in", lat, lon)
	require.NoError(t, err)

	// hari baru: checkout tidak menemukan sesi hari ini
	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }
	res, err := svc.Submit(context.Background(), "Alya", "out", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotCheckedIn, res.Outcome)

	// tapi check-in baru diperbolehkan
	res, err = svc.Submit(context.Background(), "Alya", "in", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedIn, res.Outcome)
	assert.Equal(t, 2, repo.countFor("Alya"))
}

func TestScopeGlobal_OpenRecordBlocksNewDayAndClosesOvernight(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopeGlobal)
	lat, lon := atOffice()

	// masuk 22:00 kemarin
	svc.Now = func() time.Time { return time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC) }
	_, err := svc.Submit(context.Background(), "Alya", "in", lat, lon)
	require.NoError(t, err)

	// hari baru: check-in masih terblokir selama sesi terbuka
	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC) }
	res, err := svc.Submit(context.Background(), "Alya", "in", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyCheckedIn, res.Outcome)

	// checkout menutup sesi kemarin, durasi lewat tengah malam = 8 jam
	res, err = svc.Submit(context.Background(), "Alya", "out", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedOut, res.Outcome)
	assert.Equal(t, 8.0, *res.Record.AttendanceRecordWorkHours)
}

func TestCheckOut_PicksMostRecentOpen(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, configs.ScopeGlobal)
	lat, lon := atOffice()

	// dua record terbuka untuk nama sama (data legacy); langsung isi repo
	in1, _ := timeOfDay("08:00:00")
	in2, _ := timeOfDay("10:00:00")
	repo.records = append(repo.records,
		model.AttendanceRecordModel{AttendanceRecordName: "Alya", AttendanceRecordDate: "2025-03-10", AttendanceRecordInTime: in1},
		model.AttendanceRecordModel{AttendanceRecordName: "Alya", AttendanceRecordDate: "2025-03-10", AttendanceRecordInTime: in2},
	)

	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	res, err := svc.Submit(context.Background(), "Alya", "out", lat, lon)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedOut, res.Outcome)
	// yang ditutup adalah record paling baru (baris terakhir)
	assert.True(t, repo.records[0].IsOpen())
	assert.False(t, repo.records[1].IsOpen())
	assert.Equal(t, 2.0, *repo.records[1].AttendanceRecordWorkHours)
}

func TestSubmit_StoreFailureSurfacesError(t *testing.T) {
	repo := &memoryRepo{failAll: true}
	svc := newTestService(repo, configs.ScopePerDay)
	lat, lon := atOffice()

	_, err := svc.Submit(context.Background(), "Alya", "in", lat, lon)
	assert.Error(t, err)
	_, err = svc.Submit(context.Background(), "Alya", "out", lat, lon)
	assert.Error(t, err)
}
