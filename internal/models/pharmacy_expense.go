package models

import "math"

// PharmacyExpense records a stock purchase for a medicine
type PharmacyExpense struct {
	BaseModel
	MedicineID    string  `gorm:"size:36;index;not null" json:"medicineId"`
	QuantityAdded int     `gorm:"not null" json:"quantityAdded"`
	Discount      float64 `gorm:"default:0" json:"discount"`
	TotalCost     float64 `gorm:"not null" json:"totalCost"`

	// Relations
	Medicine Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
}

// ExpenseTotal computes the restock cost: quantity at buying price with a flat
// discount, never negative, rounded to two decimals.
func ExpenseTotal(buyingPrice float64, quantity int, discount float64) float64 {
	total := buyingPrice*float64(quantity) - discount
	if total < 0 {
		total = 0
	}
	return math.Round(total*100) / 100
}
