package i18n

// indonesian maps English message keys to their Indonesian text.
var indonesian = map[string]string{
	// Chrome
	"Dropout Early Warning":         "Peringatan Dini Dropout",
	"Student Profile":               "Profil Siswa",
	"Result":                        "Hasil",
	"Information":                   "Informasi",
	"Please fill in the following:": "Silakan isi data berikut:",
	"Analyse Risk":                  "Analisis Risiko",
	"Navigate":                      "Navigasi",
	"Change":                        "Ubah",
	"Type a number":                 "Ketik angka",
	"Confirm":                       "Simpan",
	"Cancel":                        "Batal",
	"Submit":                        "Kirim",
	"Help":                          "Bantuan",
	"Back":                          "Kembali",
	"Quit":                          "Keluar",
	"Retry":                         "Coba lagi",
	"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d": "Terminal terlalu kecil!\n\nPerbesar setidaknya\nmenjadi %d x %d\n\nSaat ini: %d x %d",

	// Sections
	"Student":                                "Siswa",
	"Parents' Education":                     "Pendidikan Orang Tua",
	"Academics":                              "Akademik",
	"Social & Health Indicators (Scale 1-5)": "Indikator Sosial & Kesehatan (Skala 1-5)",
	"Other Questions":                        "Pertanyaan Lainnya",

	// Waiting state
	"Waiting for model file...":                                    "Menunggu file model...",
	"Model artifact not found at %s":                               "File model tidak ditemukan di %s",
	"Model artifact at %s could not be loaded":                     "File model di %s tidak dapat dimuat",
	"The form opens as soon as a valid model file appears.":        "Formulir akan terbuka begitu file model yang valid tersedia.",
	"Press R to check again.":                                      "Tekan R untuk memeriksa lagi.",
	"Run `siaga demo-model` to install the demo model.":            "Jalankan `siaga demo-model` untuk memasang model demo.",
	"Model file changed on disk. Restart to load the new version.": "File model berubah di disk. Mulai ulang untuk memuat versi baru.",

	// Results
	"Fill in the student profile on the left to start the analysis.":                   "Silakan lengkapi data profil siswa di panel sebelah kiri untuk memulai analisis.",
	"WARNING: AT RISK OF DROPOUT":                                                      "PERINGATAN: BERISIKO DROPOUT",
	"Based on the submitted profile, this student resembles students who dropped out.": "Berdasarkan profil yang diinput, siswa ini memiliki kemiripan pola dengan siswa yang putus sekolah.",
	"STATUS: SAFE": "STATUS: AMAN",
	"The student's profile shows positive signs of continuing their studies.": "Profil siswa menunjukkan indikasi positif untuk melanjutkan studi.",
	"Risk probability: %s": "Probabilitas Risiko: %s",
	"Suggested Actions":    "Saran Tindakan",
	"Schedule a counselling session right away to understand the student's situation.": "Segera lakukan pemanggilan konseling untuk mendalami masalah siswa.",
	"Keep monitoring attendance and grades as usual.":                                  "Tetap pantau kehadiran dan nilai seperti biasa.",
	"Generating tailored suggestions...":                                               "Menyusun saran khusus...",
	"%s was clamped to %d":                                                             "%s disesuaikan menjadi %d",

	// Info panel and help
	"This system flags early dropout risk based on:":          "Sistem ini mendeteksi risiko dini berdasarkan:",
	"Academic: failed classes, study time.":                   "Akademik: Kegagalan kelas, waktu belajar.",
	"Social: family relationship, going out.":                 "Sosial: Hubungan keluarga, pergaulan.",
	"Health: alcohol consumption, physical condition.":        "Kesehatan: Konsumsi alkohol, kondisi fisik.",
	"Model: %s (%d features, threshold %s)":                   "Model: %s (%d fitur, ambang %s)",
	"Keys":                                                    "Tombol",
	"Move between questions":                                  "Pindah antar pertanyaan",
	"Change the answer":                                       "Ubah jawaban",
	"Type a number or pick an option by its code":             "Ketik angka atau pilih opsi dengan kodenya",
	"Confirm, or analyse on the button":                       "Simpan, atau analisis pada tombol",
	"Reset the form":                                          "Kosongkan formulir",
	"Tailored suggestions are generated by a language model.": "Saran khusus disusun oleh model bahasa.",
}
