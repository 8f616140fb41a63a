package repository

import (
	"context"

	"gorm.io/gorm"

	"absensiku_backend/internals/configs"
	"absensiku_backend/internals/features/attendance/model"
)

// GormRepository menyimpan absensi di PostgreSQL.
type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) ListByName(ctx context.Context, name string) ([]model.AttendanceRecordModel, error) {
	var out []model.AttendanceRecordModel
	err := r.DB.WithContext(ctx).
		Where("LOWER(TRIM(attendance_record_name)) = ?", model.NameKey(name)).
		Order("attendance_record_created_at ASC").
		Find(&out).Error
	return out, err
}

// AppendIfNoOpen: cek + insert dalam satu transaksi dengan advisory lock
// per nama, sehingga dua request bersamaan tidak bisa sama-sama lolos cek
// "belum ada record terbuka".
func (r *GormRepository) AppendIfNoOpen(ctx context.Context, rec *model.AttendanceRecordModel, scope string) (bool, error) {
	key := model.NameKey(rec.AttendanceRecordName)
	created := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}

		var n int64
		q := tx.Model(&model.AttendanceRecordModel{}).
			Where("LOWER(TRIM(attendance_record_name)) = ?", key).
			Where("attendance_record_out_time IS NULL")
		if scope == configs.ScopePerDay {
			q = q.Where("attendance_record_date = ?", rec.AttendanceRecordDate)
		}
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil // masih ada record terbuka, tanpa mutasi
		}

		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// Close: update bersyarat, hanya baris yang masih terbuka yang kena.
// RowsAffected == 0 berarti record sudah tertutup (atau hilang), jadi
// dobel absen keluar tidak pernah menimpa out_time/work_hours pertama.
func (r *GormRepository) Close(ctx context.Context, rec *model.AttendanceRecordModel) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_id = ?", rec.AttendanceRecordID).
		Where("attendance_record_out_time IS NULL").
		Updates(map[string]any{
			"attendance_record_out_time":   rec.AttendanceRecordOutTime,
			"attendance_record_work_hours": rec.AttendanceRecordWorkHours,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
