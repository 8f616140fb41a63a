package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Scope menentukan cakupan "sudah absen masuk":
// per hari kalender atau global (selama belum absen keluar).
const (
	ScopePerDay = "per-day"
	ScopeGlobal = "global"
)

// Store driver yang didukung.
const (
	StoreSheet    = "sheet"
	StorePostgres = "postgres"
)

var (
	OfficeLat        float64
	OfficeLon        float64
	RadiusMeters     float64
	GeofenceEnforced bool
	SessionScope     string
	StoreDriver      string
	SheetPath        string
	SheetName        string
	Timezone         *time.Location
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	RadiusMeters = getEnvFloat("RADIUS", 50)
	GeofenceEnforced = getEnvBool("GEOFENCE_ENFORCED", true)

	SessionScope = GetEnv("SESSION_SCOPE", ScopePerDay)
	if SessionScope != ScopePerDay && SessionScope != ScopeGlobal {
		log.Fatalf("❌ SESSION_SCOPE tidak dikenal: %q (pakai %q atau %q)", SessionScope, ScopePerDay, ScopeGlobal)
	}

	StoreDriver = GetEnv("STORE_DRIVER", StoreSheet)
	if StoreDriver != StoreSheet && StoreDriver != StorePostgres {
		log.Fatalf("❌ STORE_DRIVER tidak dikenal: %q (pakai %q atau %q)", StoreDriver, StoreSheet, StorePostgres)
	}

	SheetPath = GetEnv("SHEET_PATH", "data/absensi.xlsx")
	SheetName = GetEnv("SHEET_NAME", "Sheet1")

	tz := GetEnv("TIMEZONE", "Asia/Jakarta")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatalf("❌ TIMEZONE tidak valid: %q: %v", tz, err)
	}
	Timezone = loc

	// Titik acuan wajib ada selama geofence aktif (fail fast).
	if GeofenceEnforced {
		OfficeLat = mustEnvFloat("OFFICE_LAT")
		OfficeLon = mustEnvFloat("OFFICE_LON")
		log.Printf("✅ Geofence aktif: titik acuan (%.6f, %.6f) radius %.0f m", OfficeLat, OfficeLon, RadiusMeters)
	} else {
		OfficeLat = getEnvFloat("OFFICE_LAT", 0)
		OfficeLon = getEnvFloat("OFFICE_LON", 0)
		log.Println("⚠️ Geofence dinonaktifkan, lokasi hanya dicatat")
	}

	if StoreDriver == StorePostgres {
		for _, k := range []string{"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"} {
			if os.Getenv(k) == "" {
				log.Fatalf("❌ %s belum diset (wajib untuk STORE_DRIVER=postgres)!", k)
			}
		}
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("❌ %s harus berupa angka, dapat %q", key, raw)
	}
	return v
}

func mustEnvFloat(key string) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		log.Fatalf("❌ %s belum diset!", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("❌ %s harus berupa angka, dapat %q", key, raw)
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("❌ %s harus true/false, dapat %q", key, raw)
	}
	return v
}
