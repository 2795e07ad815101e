package models

// OTCStage tracks a walk-in sale from the counter to completion
type OTCStage string

const (
	OTCStageReception       OTCStage = "reception"
	OTCStageWaitingPharmacy OTCStage = "waiting_pharmacy"
	OTCStageComplete        OTCStage = "complete"
)

// OTCStages lists the walk-in sale stages.
var OTCStages = []OTCStage{OTCStageReception, OTCStageWaitingPharmacy, OTCStageComplete}

// ValidOTCStage reports whether s is a known OTC stage.
func ValidOTCStage(s OTCStage) bool {
	for _, stage := range OTCStages {
		if s == stage {
			return true
		}
	}
	return false
}

// OTCSale is a walk-in pharmacy transaction for someone without a visit
type OTCSale struct {
	BaseModel
	PatientName string   `gorm:"size:100;not null" json:"patientName"`
	Stage       OTCStage `gorm:"size:20;default:'waiting_pharmacy';not null" json:"stage"`

	// Relations
	Sales    []PharmacySale `gorm:"foreignKey:OTCSaleID;constraint:OnDelete:CASCADE" json:"sales,omitempty"`
	Payments []Payment      `gorm:"foreignKey:OTCSaleID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// TotalCharges sums the line totals. Sales and their medicines must be preloaded.
func (s *OTCSale) TotalCharges() float64 {
	var total float64
	for _, sale := range s.Sales {
		total += sale.TotalPrice()
	}
	return total
}

// TotalPayments sums every payment recorded against the sale.
func (s *OTCSale) TotalPayments() float64 {
	var total float64
	for _, p := range s.Payments {
		total += p.Amount
	}
	return total
}

// Balance is the amount still owed on the sale.
func (s *OTCSale) Balance() float64 {
	return s.TotalCharges() - s.TotalPayments()
}

// PharmacySale is one medicine line on an OTC sale
type PharmacySale struct {
	BaseModel
	OTCSaleID    string `gorm:"size:36;index;not null;column:otc_sale_id" json:"otcSaleId"`
	PharmacistID string `gorm:"size:36;index;not null" json:"pharmacistId"`
	MedicineID   string `gorm:"size:36;not null" json:"medicineId"`

	DispensedUnits int `gorm:"default:1;not null" json:"dispensedUnits"`

	// Relations
	OTCSale    OTCSale  `gorm:"foreignKey:OTCSaleID" json:"-"`
	Pharmacist User     `gorm:"foreignKey:PharmacistID" json:"-"`
	Medicine   Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

// TotalPrice is units times the medicine's selling price. Medicine must be
// preloaded.
func (s *PharmacySale) TotalPrice() float64 {
	return float64(s.DispensedUnits) * s.Medicine.SellingPrice
}
