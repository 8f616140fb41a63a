package repository

import (
	"context"

	"absensiku_backend/internals/features/attendance/model"
)

// AttendanceRepository: kontrak store absensi (sheet / postgres).
//
// Absen masuk dimodelkan sebagai conditional append: store sendiri yang
// memutuskan "tidak ada record terbuka" saat commit, bukan caller, supaya
// dua request bersamaan untuk nama yang sama tidak dobel absen.
type AttendanceRepository interface {
	// ListByName mengembalikan seluruh record milik satu nama
	// (pencocokan trim + case-insensitive), urut baris lama dulu.
	ListByName(ctx context.Context, name string) ([]model.AttendanceRecordModel, error)

	// AppendIfNoOpen menambah record baru hanya jika tidak ada record
	// terbuka untuk nama tersebut. scope per-day membatasi pengecekan ke
	// rec.AttendanceRecordDate. Mengembalikan false (tanpa mutasi) jika
	// masih ada record terbuka.
	AppendIfNoOpen(ctx context.Context, rec *model.AttendanceRecordModel, scope string) (bool, error)

	// Close menutup record terbuka: menulis out_time + work_hours dari rec.
	// Mengembalikan false jika record sudah tertutup; record tertutup
	// tidak pernah diubah.
	Close(ctx context.Context, rec *model.AttendanceRecordModel) (bool, error)

	// Ping untuk health check.
	Ping(ctx context.Context) error
}
