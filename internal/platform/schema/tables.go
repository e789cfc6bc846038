package schema

import "sync"

// Table names.
const (
	TableDoctor       = "doctor"
	TableClinic       = "clinic"
	TablePatient      = "patient"
	TablePrescription = "prescription"
	TableDose         = "prescription_dose"
)

// Enum domains shared by the DDL and the entity validators.
var (
	PaymentModes  = []string{"cash", "online"}
	MedicineTypes = []string{"capsule", "syrup"}
	TimesOfDay    = []string{"morning", "afternoon", "evening"}
	MealTimes     = []string{"before", "after"}
)

// PatientAddressMaxLen bounds patient.address.
const PatientAddressMaxLen = 500

var (
	medtrackOnce sync.Once
	medtrack     *Registry
)

// MedTrack returns the process-wide registry. The first call builds it; the
// declarations are static, so a build failure is a programming error and
// panics.
func MedTrack() *Registry {
	medtrackOnce.Do(func() {
		r, err := NewRegistry(medtrackTables()...)
		if err != nil {
			panic(err)
		}
		medtrack = r
	})
	return medtrack
}

func cascadeTo(column, table string) ForeignKey {
	return ForeignKey{Column: column, RefTable: table, RefColumn: "id", OnDelete: Cascade, OnUpdate: Cascade}
}

func medtrackTables() []Table {
	return []Table{
		{
			Name: TableDoctor,
			Columns: []Column{
				{Name: "email", Type: "TEXT", NotNull: true, Unique: true},
				{Name: "fullname", Type: "TEXT", NotNull: true},
				{Name: "degree", Type: "TEXT"},
				{Name: "phone_no", Type: "TEXT"},
				{Name: "password_hash", Type: "TEXT", NotNull: true},
			},
		},
		{
			Name: TableClinic,
			Columns: []Column{
				{Name: "name", Type: "TEXT", NotNull: true},
				{Name: "landline_no", Type: "TEXT"},
				{Name: "doctor_name", Type: "TEXT", NotNull: true},
				{Name: "address", Type: "TEXT"},
				{Name: "price_per_day", Type: "TEXT"},
				{Name: "doctor_id", Type: "BIGINT", NotNull: true},
			},
			ForeignKeys: []ForeignKey{cascadeTo("doctor_id", TableDoctor)},
			Indexes:     []string{"doctor_id"},
		},
		{
			Name: TablePatient,
			Columns: []Column{
				{Name: "name", Type: "TEXT", NotNull: true},
				{Name: "gender", Type: "TEXT", NotNull: true},
				{Name: "contact", Type: "TEXT", NotNull: true},
				{Name: "dob", Type: "DATE", NotNull: true},
				{Name: "age", Type: "INTEGER"},
				{Name: "address", Type: "TEXT", MaxLen: PatientAddressMaxLen},
				{Name: "height", Type: "NUMERIC"},
				{Name: "weight", Type: "NUMERIC"},
				{Name: "photo", Type: "TEXT"},
				{Name: "doctor_id", Type: "BIGINT", NotNull: true},
				{Name: "clinic_id", Type: "BIGINT", NotNull: true},
			},
			ForeignKeys: []ForeignKey{
				cascadeTo("doctor_id", TableDoctor),
				cascadeTo("clinic_id", TableClinic),
			},
			Indexes: []string{"doctor_id", "clinic_id"},
		},
		{
			Name: TablePrescription,
			Columns: []Column{
				{Name: "patient_id", Type: "BIGINT", NotNull: true},
				{Name: "date", Type: "DATE", NotNull: true},
				{Name: "dieases", Type: "TEXT", NotNull: true},
				{Name: "symptoms", Type: "TEXT", NotNull: true},
				{Name: "payment_mode", Type: "TEXT", NotNull: true, Enum: PaymentModes},
				{Name: "payment_amount", Type: "NUMERIC(10,2)"},
				{Name: "paid_amount", Type: "NUMERIC(10,2)"},
			},
			ForeignKeys: []ForeignKey{cascadeTo("patient_id", TablePatient)},
			Indexes:     []string{"patient_id"},
		},
		{
			Name: TableDose,
			Columns: []Column{
				{Name: "pres_id", Type: "BIGINT", NotNull: true},
				{Name: "days", Type: "INTEGER", NotNull: true},
				{Name: "medicine_type", Type: "TEXT", NotNull: true, Default: "'capsule'", Enum: MedicineTypes},
				{Name: "medicine_name", Type: "TEXT", NotNull: true},
				{Name: "time_of_day", Type: "TEXT", NotNull: true, Enum: TimesOfDay},
				{Name: "meal_time", Type: "TEXT", NotNull: true, Enum: MealTimes},
				{Name: "quantity", Type: "INTEGER", NotNull: true, Default: "1"},
			},
			ForeignKeys: []ForeignKey{cascadeTo("pres_id", TablePrescription)},
			Indexes:     []string{"pres_id"},
		},
	}
}
