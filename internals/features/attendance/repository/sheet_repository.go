package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"absensiku_backend/internals/configs"
	"absensiku_backend/internals/features/attendance/model"
	"absensiku_backend/internals/helpers/dbtime"
	"absensiku_backend/internals/logger"
)

// Kolom workbook: A Nama, B Tanggal, C Jam Masuk, D Jam Keluar,
// E Total Jam, F Lat, G Lon. Baris 1 = header.
var sheetHeader = []any{"Nama", "Tanggal", "Jam Masuk", "Jam Keluar", "Total Jam", "Lat", "Lon"}

// SheetRepository menyimpan absensi di workbook .xlsx lokal.
// Workbook dibuka ulang setiap operasi (sumber kebenaran di file, tanpa
// cache). Mutex memberi mutual exclusion per proses; kalau workbook
// dipakai lebih dari satu proses, race antar proses tidak tertangani.
type SheetRepository struct {
	path  string
	sheet string
	mu    sync.Mutex
}

func NewSheetRepository(path, sheet string) (*SheetRepository, error) {
	r := &SheetRepository{path: path, sheet: sheet}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := r.createWorkbook(); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SheetRepository) createWorkbook() error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f := excelize.NewFile()
	defer f.Close()
	if r.sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", r.sheet); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(r.sheet, "A1", &sheetHeader); err != nil {
		return err
	}
	return f.SaveAs(r.path)
}

func (r *SheetRepository) ListByName(ctx context.Context, name string) ([]model.AttendanceRecordModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return r.scanRows(f, model.NameKey(name))
}

func (r *SheetRepository) AppendIfNoOpen(ctx context.Context, rec *model.AttendanceRecordModel, scope string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	records, err := r.scanRows(f, model.NameKey(rec.AttendanceRecordName))
	if err != nil {
		return false, err
	}
	for i := range records {
		if !records[i].IsOpen() {
			continue
		}
		if scope == configs.ScopePerDay && records[i].AttendanceRecordDate != rec.AttendanceRecordDate {
			continue
		}
		return false, nil
	}

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return false, err
	}
	next := len(rows) + 1

	var lat, lon any
	if rec.AttendanceRecordLatIn != nil {
		lat = *rec.AttendanceRecordLatIn
	}
	if rec.AttendanceRecordLonIn != nil {
		lon = *rec.AttendanceRecordLonIn
	}
	row := []any{
		rec.AttendanceRecordName,
		rec.AttendanceRecordDate,
		rec.AttendanceRecordInTime.String(),
		"", // Jam Keluar
		"", // Total Jam
		lat,
		lon,
	}
	if err := f.SetSheetRow(r.sheet, fmt.Sprintf("A%d", next), &row); err != nil {
		return false, err
	}
	if err := f.Save(); err != nil {
		return false, err
	}
	rec.AttendanceRecordSheetRow = next
	return true, nil
}

func (r *SheetRepository) Close(ctx context.Context, rec *model.AttendanceRecordModel) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if rec.AttendanceRecordSheetRow < 2 || rec.AttendanceRecordOutTime == nil {
		return false, fmt.Errorf("sheet: record tidak lengkap untuk ditutup (baris %d)", rec.AttendanceRecordSheetRow)
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// Record tertutup tidak boleh ditulis ulang.
	existing, err := f.GetCellValue(r.sheet, fmt.Sprintf("D%d", rec.AttendanceRecordSheetRow))
	if err != nil {
		return false, err
	}
	if existing != "" {
		return false, nil
	}

	if err := f.SetCellValue(r.sheet, fmt.Sprintf("D%d", rec.AttendanceRecordSheetRow), rec.AttendanceRecordOutTime.String()); err != nil {
		return false, err
	}
	if rec.AttendanceRecordWorkHours != nil {
		if err := f.SetCellValue(r.sheet, fmt.Sprintf("E%d", rec.AttendanceRecordSheetRow), *rec.AttendanceRecordWorkHours); err != nil {
			return false, err
		}
	}
	if err := f.Save(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *SheetRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := os.Stat(r.path)
	return err
}

// scanRows membaca semua baris data dan menyaring berdasarkan name key.
// Baris yang tidak bisa diparse dilewati (workbook bisa saja diedit tangan).
func (r *SheetRepository) scanRows(f *excelize.File, key string) ([]model.AttendanceRecordModel, error) {
	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, err
	}

	var out []model.AttendanceRecordModel
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		if model.NameKey(cell(row, 0)) != key {
			continue
		}
		in, err := dbtime.Parse(cell(row, 2))
		if err != nil {
			logger.Warn("baris sheet dilewati, jam masuk tidak valid", "row", i+1, "value", cell(row, 2))
			continue
		}
		rec := model.AttendanceRecordModel{
			AttendanceRecordName:     cell(row, 0),
			AttendanceRecordDate:     cell(row, 1),
			AttendanceRecordInTime:   in,
			AttendanceRecordSheetRow: i + 1,
		}
		if s := cell(row, 3); s != "" {
			outT, err := dbtime.Parse(s)
			if err == nil {
				rec.AttendanceRecordOutTime = &outT
			}
		}
		if s := cell(row, 4); s != "" {
			if h, err := strconv.ParseFloat(s, 64); err == nil {
				rec.AttendanceRecordWorkHours = &h
			}
		}
		if v := parseFloatCell(row, 5); v != nil {
			rec.AttendanceRecordLatIn = v
		}
		if v := parseFloatCell(row, 6); v != nil {
			rec.AttendanceRecordLonIn = v
		}
		out = append(out, rec)
	}
	return out, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseFloatCell(row []string, idx int) *float64 {
	s := cell(row, idx)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
