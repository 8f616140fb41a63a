package constants

import "fmt"

// Katalog pesan untuk hasil absensi. Logika bisnis hanya memakai kode
// outcome; teks di sini murni lapisan presentasi.
const (
	MsgCheckInSuccess   = "✅ Berhasil absen masuk. Selamat bekerja!"
	MsgCheckOutSuccess  = "✅ Berhasil absen keluar. Total kerja %s jam."
	MsgOutOfRange       = "❌ Anda berada di luar jangkauan lokasi yang diizinkan."
	MsgAlreadyCheckedIn = "⚠️ Anda sudah absen masuk dan belum absen keluar."
	MsgNotCheckedIn     = "⚠️ Anda belum absen masuk."
	MsgUnknownMode      = "⚠️ Mode tidak dikenal. Gunakan 'in' atau 'out'."
	MsgStoreFailure     = "❌ Gagal memproses absensi. Silakan coba lagi."
	MsgInvalidPayload   = "Payload tidak valid"
)

// CheckOutMessage menghasilkan pesan sukses absen keluar dengan total jam
// kerja dua desimal, mis. "8.50 jam".
func CheckOutMessage(hours string) string {
	return fmt.Sprintf(MsgCheckOutSuccess, hours)
}
