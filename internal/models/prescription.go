package models

// PrescriptionStatus represents whether the pharmacy has dispensed yet
type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "pending"
	PrescriptionDispensed PrescriptionStatus = "dispensed"
)

// Prescription ties a consultation to a medicine. Dispensing moves units out
// of the medicine's stock; the mirror arithmetic lives in the handler so it
// always runs inside the same transaction as the prescription write.
type Prescription struct {
	BaseModel
	ConsultationID string  `gorm:"size:36;index;not null" json:"consultationId"`
	PharmacistID   *string `gorm:"size:36;index" json:"pharmacistId,omitempty"`
	MedicineID     string  `gorm:"size:36;not null" json:"medicineId"`

	Dosage         string             `gorm:"size:50;not null" json:"dosage"`
	Instructions   string             `gorm:"type:text" json:"instructions,omitempty"`
	Status         PrescriptionStatus `gorm:"size:20;default:'pending';not null" json:"status"`
	DispensedUnits int                `gorm:"default:0" json:"dispensedUnits"`

	// Relations
	Consultation Consultation `gorm:"foreignKey:ConsultationID" json:"-"`
	Pharmacist   *User        `gorm:"foreignKey:PharmacistID" json:"-"`
	Medicine     Medicine     `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

// Price is what the dispensed units cost at the medicine's selling price.
// Medicine must be preloaded.
func (p *Prescription) Price() float64 {
	return float64(p.DispensedUnits) * p.Medicine.SellingPrice
}
