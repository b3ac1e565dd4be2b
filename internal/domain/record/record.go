package record

// Fields is the data shared by Prescription and History. JSON names match
// the wire format consumed by the front-end.
type Fields struct {
	PrescriptionDate Date   `json:"prescriptionDate" gorm:"column:prescription_date;type:date;not null;index"`
	PatientName      string `json:"patientName" gorm:"column:patient_name;type:varchar(255);not null"`
	PatientAge       *int   `json:"patientAge" gorm:"column:patient_age;not null"`
	PatientGender    string `json:"patientGender" gorm:"column:patient_gender;type:varchar(30);not null"`
	Diagnosis        string `json:"diagnosis" gorm:"column:diagnosis;type:text"`
	Medicines        string `json:"medicines" gorm:"column:medicines;type:text"`
	NextVisitDate    *Date  `json:"nextVisitDate,omitempty" gorm:"column:next_visit_date;type:date"`
}

// RecordFields is promoted to both entity types so generic code can reach
// the shared field set.
func (f *Fields) RecordFields() *Fields {
	return f
}

// Prescription is the live record. Its id is assigned by the store on
// insert and never changes afterwards.
type Prescription struct {
	ID int `json:"id" gorm:"primaryKey;autoIncrement"`
	Fields
}

func (Prescription) TableName() string {
	return "prescription_info"
}

func (p *Prescription) GetID() int   { return p.ID }
func (p *Prescription) SetID(id int) { p.ID = id }

// History is the archived variant. Unlike Prescription, its id is supplied
// by the caller and persisted as-is.
type History struct {
	ID int `json:"id" gorm:"primaryKey"`
	Fields
}

func (History) TableName() string {
	return "prescription_history"
}

func (h *History) GetID() int   { return h.ID }
func (h *History) SetID(id int) { h.ID = id }

// DayWiseCount is a computed (date, count) pair produced by the count-by-date
// aggregation. It is never persisted.
type DayWiseCount struct {
	Date  Date  `json:"date" gorm:"column:date"`
	Count int64 `json:"count" gorm:"column:count"`
}

// Entity constrains a pointer to one of the record types. It is how a single
// generic store serves both identifier-assignment strategies: services for
// auto-id entities zero the id before insert, services for caller-id
// entities persist it untouched.
type Entity[T any] interface {
	*T
	GetID() int
	SetID(id int)
	RecordFields() *Fields
}
