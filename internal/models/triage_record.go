package models

import "math"

// TriageRecord holds the vitals a nurse captures before consultation
type TriageRecord struct {
	BaseModel
	PatientID string `gorm:"size:36;index;not null" json:"patientId"`
	NurseID   string `gorm:"size:36;index;not null" json:"nurseId"`

	Temperature     float64 `gorm:"not null" json:"temperature"`
	Weight          float64 `gorm:"not null" json:"weight"`
	Height          float64 `gorm:"not null" json:"height"` // centimetres
	BloodPressure   string  `gorm:"size:15;not null" json:"bloodPressure"`
	PulseRate       *int    `json:"pulseRate,omitempty"`
	SpO2            *int    `json:"spo2,omitempty"`
	RespirationRate *int    `json:"respirationRate,omitempty"`
	Notes           string  `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Nurse   User    `gorm:"foreignKey:NurseID" json:"-"`
}

// BMI derives body mass index from weight (kg) and height (cm), one decimal.
func (t *TriageRecord) BMI() float64 {
	heightM := t.Height / 100
	if heightM == 0 {
		return 0
	}
	return math.Round(t.Weight/(heightM*heightM)*10) / 10
}
