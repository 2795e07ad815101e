package models

import "errors"

// PaymentMethod enum
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentMpesa PaymentMethod = "mpesa"
)

// ErrPaymentTarget is returned when a payment does not reference exactly one
// of a visit or an OTC sale.
var ErrPaymentTarget = errors.New("payment must reference exactly one of a visit or an OTC sale")

// Payment records money received against a visit or a walk-in OTC sale
type Payment struct {
	BaseModel
	VisitID   *string `gorm:"size:36;index" json:"visitId,omitempty"`
	OTCSaleID *string `gorm:"size:36;index;column:otc_sale_id" json:"otcSaleId,omitempty"`

	Amount        float64       `gorm:"not null" json:"amount"`
	ServiceType   string        `gorm:"size:100;not null" json:"serviceType"`
	PaymentMethod PaymentMethod `gorm:"size:20;not null" json:"paymentMethod"`
	MpesaReceipt  string        `gorm:"size:100" json:"mpesaReceipt,omitempty"`

	ReceptionistID string `gorm:"size:36;not null" json:"receptionistId"`

	// Relations
	Visit        *Visit   `gorm:"foreignKey:VisitID" json:"-"`
	OTCSale      *OTCSale `gorm:"foreignKey:OTCSaleID" json:"-"`
	Receptionist User     `gorm:"foreignKey:ReceptionistID" json:"-"`
}

// ValidateTarget enforces that exactly one of VisitID / OTCSaleID is set.
func (p *Payment) ValidateTarget() error {
	hasVisit := p.VisitID != nil && *p.VisitID != ""
	hasSale := p.OTCSaleID != nil && *p.OTCSaleID != ""
	if hasVisit == hasSale {
		return ErrPaymentTarget
	}
	return nil
}
