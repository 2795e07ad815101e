package models

// TestCategory splits the price list between the lab and imaging departments
type TestCategory string

const (
	CategoryLab     TestCategory = "lab"
	CategoryImaging TestCategory = "imaging"
)

// TestType is a price-list entry for a lab or imaging test
type TestType struct {
	BaseModel
	Name     string       `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Price    float64      `gorm:"not null" json:"price"`
	Category TestCategory `gorm:"size:10;not null" json:"category"`
}
