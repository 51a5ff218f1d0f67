package features

// text is a catalog string in both UI languages.
type text struct {
	en string
	id string
}

type optionText struct {
	value int
	label text
}

// entry is one hand-maintained catalog row.
type entry struct {
	name      string
	kind      Kind
	section   Section
	min, max  int
	def       int
	label     text
	help      text
	options   []optionText
	direction Direction
}

var educationOptions = []optionText{
	{0, text{"None", "Tidak Sekolah"}},
	{1, text{"Primary school", "SD"}},
	{2, text{"Lower secondary", "SMP"}},
	{3, text{"Upper secondary", "SMA"}},
	{4, text{"Higher education", "Kuliah"}},
}

var yesNoOptions = []optionText{
	{0, text{"No", "Tidak"}},
	{1, text{"Yes", "Ya"}},
}

// seedEntries is the known-feature catalog. Binary codes follow the
// training encoding: 1 is the "yes" reading of the column name.
var seedEntries = []entry{
	{
		name: "Age", kind: KindBoundedInt, section: SectionStudent,
		min: 15, max: 22, def: 17,
		label: text{"Student age", "Umur Siswa"},
		help:  text{"Allowed ages: 15 to 22 years", "Batasan umur: 15 sampai 22 tahun"},
	},
	{
		name: "Mother_Education", kind: KindCategorical, section: SectionParents,
		def:     0,
		label:   text{"Mother's highest education", "Pendidikan Terakhir Ibu"},
		options: educationOptions,
	},
	{
		name: "Father_Education", kind: KindCategorical, section: SectionParents,
		def:     0,
		label:   text{"Father's highest education", "Pendidikan Terakhir Ayah"},
		options: educationOptions,
	},
	{
		name: "Travel_Time", kind: KindCategorical, section: SectionAcademics,
		def:   2,
		label: text{"How long does the trip to class take?", "Berapa lama waktu yang ditempuh untuk sampai ke kelas?"},
		options: []optionText{
			{1, text{"< 15 minutes", "< 15 Menit"}},
			{2, text{"15 - 30 minutes", "15 - 30 Menit"}},
			{3, text{"30 - 60 minutes", "30 - 60 Menit"}},
			{4, text{"> 1 hour", "> 1 Jam"}},
		},
	},
	{
		name: "Study_Time", kind: KindBoundedInt, section: SectionAcademics,
		min: 1, max: 4, def: 2,
		label: text{"Hours spent studying (scale 1-4)", "Berapa jam waktu yang dihabiskan untuk belajar? (Skala 1-4)"},
		help:  text{"4 means 4 hours or more; enter 4 if it is more than 4.", "Jika lebih dari 4 jam, masukkan 4."},
	},
	{
		name: "Number_of_Failures", kind: KindBoundedInt, section: SectionAcademics,
		min: 0, max: 4, def: 0,
		label: text{"How many classes has the student failed?", "Berapa kali gagal kelas?"},
		help:  text{"4 means 4 or more; enter 4 if it is more than 4.", "Jika lebih dari 4 kali, masukkan 4."},
	},
	{
		name: "Address_U", kind: KindBinary, section: SectionStudent,
		def:   1,
		label: text{"Does the student live in an urban area?", "Apakah siswa tinggal di perkotaan?"},
		options: []optionText{
			{1, text{"Yes (urban)", "Ya (Kota)"}},
			{0, text{"No (rural)", "Tidak (Desa)"}},
		},
	},
	{
		name: "Family_Relationship", kind: KindScale, section: SectionScales,
		def: 3, direction: DirectionHigherIsBetter,
		label: text{"Quality of family relationships", "Kualitas Hubungan Keluarga"},
	},
	{
		name: "Free_Time", kind: KindScale, section: SectionScales,
		def:   3,
		label: text{"Free time after school", "Waktu Luang sepulang sekolah"},
	},
	{
		name: "Going_Out", kind: KindScale, section: SectionScales,
		def:   3,
		label: text{"Going out with friends", "Frekuensi Keluar Main/Nongkrong"},
	},
	{
		name: "Health_Status", kind: KindScale, section: SectionScales,
		def: 3, direction: DirectionHigherIsBetter,
		label: text{"Health status", "Status Kesehatan"},
	},
	{
		name: "Weekday_Alcohol_Consumption", kind: KindScale, section: SectionScales,
		def:   3,
		label: text{"Alcohol consumption (weekdays)", "Konsumsi Alkohol (Hari Kerja)"},
	},
	{
		name: "Weekend_Alcohol_Consumption", kind: KindScale, section: SectionScales,
		def:   3,
		label: text{"Alcohol consumption (weekend)", "Konsumsi Alkohol (Akhir Pekan)"},
	},
	{
		name: "Wants_Higher_Education_yes", kind: KindBinary, section: SectionOther,
		label:   text{"Wants to go on to higher education?", "Ingin Lanjut Kuliah?"},
		options: yesNoOptions,
	},
	{
		name: "Extra_Curricular_Activities_yes", kind: KindBinary, section: SectionOther,
		label:   text{"Takes part in extracurricular activities?", "Mengikuti Ekstrakurikuler?"},
		options: yesNoOptions,
	},
	{
		name: "Internet_Access_yes", kind: KindBinary, section: SectionOther,
		label:   text{"Has internet access?", "Memiliki Akses Internet?"},
		options: yesNoOptions,
	},
	{
		name: "In_Relationship_yes", kind: KindBinary, section: SectionOther,
		label:   text{"In a romantic relationship?", "Memiliki Pacar?"},
		options: yesNoOptions,
	},
}

// scaleHelp is the 1-5 help text per direction.
var scaleHelp = map[Direction]text{
	DirectionUnspecified:    {"1 = very low, 5 = very high", "1 = Sangat Rendah, 5 = Sangat Tinggi"},
	DirectionHigherIsBetter: {"1 = very poor, 5 = very good", "1 = Sangat Buruk, 5 = Sangat Baik"},
	DirectionHigherIsWorse:  {"1 = very good, 5 = very poor", "1 = Sangat Baik, 5 = Sangat Buruk"},
}
