package models

// VisitStage represents where a visit sits in the clinical flow
type VisitStage string

const (
	StageReception           VisitStage = "reception"
	StageWaitingTriage       VisitStage = "waiting_triage"
	StageWaitingConsultation VisitStage = "waiting_consultation"
	StageWaitingLab          VisitStage = "waiting_lab"
	StageWaitingImaging      VisitStage = "waiting_imaging"
	StageWaitingPharmacy     VisitStage = "waiting_pharmacy"
	StageComplete            VisitStage = "complete"
)

// VisitStages lists the ordered clinical stages.
var VisitStages = []VisitStage{
	StageReception,
	StageWaitingTriage,
	StageWaitingConsultation,
	StageWaitingLab,
	StageWaitingImaging,
	StageWaitingPharmacy,
	StageComplete,
}

// ValidVisitStage reports whether s is a known visit stage.
func ValidVisitStage(s VisitStage) bool {
	for _, stage := range VisitStages {
		if s == stage {
			return true
		}
	}
	return false
}

// Visit represents one patient visit moving through the clinic
type Visit struct {
	BaseModel
	PatientID      string     `gorm:"size:36;index;not null" json:"patientId"`
	TriageID       *string    `gorm:"size:36" json:"triageId,omitempty"`
	ConsultationID *string    `gorm:"size:36" json:"consultationId,omitempty"`
	Stage          VisitStage `gorm:"size:30;default:'reception';not null" json:"stage"`

	// Relations
	Patient            Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Triage             *TriageRecord `gorm:"foreignKey:TriageID" json:"triage,omitempty"`
	Consultation       *Consultation `gorm:"foreignKey:ConsultationID" json:"consultation,omitempty"`
	DirectTestRequests []TestRequest `gorm:"foreignKey:VisitID;constraint:OnDelete:CASCADE" json:"directTestRequests,omitempty"`
	Payments           []Payment     `gorm:"foreignKey:VisitID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// TotalCharges sums the consultation fee, every test request attached to the
// visit (directly or via the consultation) and every dispensed prescription.
// Associations must be preloaded before calling.
func (v *Visit) TotalCharges() float64 {
	var total float64

	for _, tr := range v.DirectTestRequests {
		total += tr.Amount()
	}

	if v.Consultation != nil {
		total += v.Consultation.Fee
		for _, tr := range v.Consultation.TestRequests {
			total += tr.Amount()
		}
		for _, p := range v.Consultation.Prescriptions {
			total += p.Price()
		}
	}

	return total
}

// TotalPayments sums every payment recorded against the visit.
func (v *Visit) TotalPayments() float64 {
	var total float64
	for _, p := range v.Payments {
		total += p.Amount
	}
	return total
}

// Balance is the amount still owed on the visit.
func (v *Visit) Balance() float64 {
	return v.TotalCharges() - v.TotalPayments()
}
