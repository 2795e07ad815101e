package models

// TestStatus represents the lifecycle of a test request
type TestStatus string

const (
	TestStatusPending   TestStatus = "pending"
	TestStatusCompleted TestStatus = "completed"
)

// TestRequest orders a lab or imaging test. It attaches either to a
// consultation or directly to a visit (walk-in tests), never both.
type TestRequest struct {
	BaseModel
	ConsultationID *string `gorm:"size:36;index" json:"consultationId,omitempty"`
	VisitID        *string `gorm:"size:36;index" json:"visitId,omitempty"`
	TechnicianID   *string `gorm:"size:36;index" json:"technicianId,omitempty"`
	TestTypeID     string  `gorm:"size:36;not null" json:"testTypeId"`

	Results string     `gorm:"type:text" json:"results,omitempty"`
	Notes   string     `gorm:"type:text" json:"notes,omitempty"`
	Status  TestStatus `gorm:"size:20;default:'pending';not null" json:"status"`

	// Relations
	Consultation *Consultation `gorm:"foreignKey:ConsultationID" json:"-"`
	Visit        *Visit        `gorm:"foreignKey:VisitID" json:"-"`
	Technician   *User         `gorm:"foreignKey:TechnicianID" json:"-"`
	TestType     TestType      `gorm:"foreignKey:TestTypeID" json:"testType,omitempty"`
}

// Amount is the charge for this request, taken from the test type price list.
// TestType must be preloaded.
func (tr *TestRequest) Amount() float64 {
	return tr.TestType.Price
}

// TechnicianRoleFor maps a test category to the technician role allowed to
// run it.
func TechnicianRoleFor(category TestCategory) Role {
	if category == CategoryImaging {
		return RoleImagingTech
	}
	return RoleLabTech
}
