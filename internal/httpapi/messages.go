package httpapi

// User-facing messages. The frontend shows them verbatim.
const (
	msgMethodNotAllowed = "Metode tidak diizinkan."
	msgInternal         = "Terjadi kesalahan pada server."

	msgMissingCredentials = "Username dan password harus diisi."
	msgPasswordTooLong    = "Password maksimal 72 byte."
	msgUsernameTaken      = "Username sudah terdaftar."
	msgRegistered         = "Registrasi berhasil!"
	msgRegisterFailed     = "Server error saat registrasi."
	msgInvalidCredentials = "Username atau password salah."
	msgLoggedIn           = "Login berhasil!"
	msgLoginFailed        = "Server error saat login."

	msgNoToken     = "Tidak diotorisasi, tidak ada token."
	msgTokenFailed = "Tidak diotorisasi, token gagal."
	msgProtected   = "Anda berhasil mengakses rute yang dilindungi, user ID: "

	msgOMDbConnected      = "Koneksi OMDb API berhasil!"
	msgOMDbConnectFailed  = "Gagal terhubung ke OMDb API."
	msgSearchTermRequired = "Parameter pencarian (s) diperlukan."
	msgSearchFailed       = "Gagal mengambil data film dari OMDb API."
	msgDetailsRequired    = "Parameter judul (t) atau ID (i) diperlukan."
	msgDetailsFailed      = "Gagal mengambil detail film dari OMDb API."
	msgDefaultsFailed     = "Gagal memuat film default."
)
