package models

// DefaultConsultationFee is charged when no fee is configured.
const DefaultConsultationFee = 200

// Consultation records a doctor's examination during a visit
type Consultation struct {
	BaseModel
	PatientID string `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID  string `gorm:"size:36;index;not null" json:"doctorId"`

	Diagnosis      string  `gorm:"type:text" json:"diagnosis,omitempty"`
	Notes          string  `gorm:"type:text" json:"notes,omitempty"`
	ChiefComplaint string  `gorm:"type:text" json:"chiefComplaint,omitempty"`
	PhysicalExam   string  `gorm:"type:text" json:"physicalExam,omitempty"`
	SystemicExam   string  `gorm:"type:text" json:"systemicExam,omitempty"`
	Fee            float64 `gorm:"default:200;not null" json:"fee"`

	// Relations
	Patient       Patient        `gorm:"foreignKey:PatientID" json:"-"`
	Doctor        User           `gorm:"foreignKey:DoctorID" json:"-"`
	TestRequests  []TestRequest  `gorm:"foreignKey:ConsultationID;constraint:OnDelete:CASCADE" json:"testRequests,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:ConsultationID;constraint:OnDelete:CASCADE" json:"prescriptions,omitempty"`
}
