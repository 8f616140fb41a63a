package service

import "math"

// Radius bumi dalam meter (haversine, aproksimasi bola).
const earthRadiusMeters = 6371000

// DistanceMeters menghitung jarak great-circle dua koordinat (haversine).
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// Geofence: kebijakan radius di sekitar titik acuan kantor.
type Geofence struct {
	Lat      float64
	Lon      float64
	RadiusM  float64
	Enforced bool
}

// Allows: false hanya jika geofence aktif, koordinat lengkap, dan posisi
// di luar radius. Cek jarak berlaku kalau lokasi memang dikirim; request
// tanpa koordinat diterima apa adanya.
func (g Geofence) Allows(lat, lon *float64) bool {
	if !g.Enforced || lat == nil || lon == nil {
		return true
	}
	return DistanceMeters(*lat, *lon, g.Lat, g.Lon) <= g.RadiusM
}
