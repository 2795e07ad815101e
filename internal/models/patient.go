package models

import (
	"time"
)

// Gender enum
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Patient represents a registered patient
type Patient struct {
	BaseModel
	FirstName   string    `gorm:"size:50;not null" json:"firstName"`
	LastName    string    `gorm:"size:50;not null" json:"lastName"`
	Gender      Gender    `gorm:"size:10;not null" json:"gender"`
	DateOfBirth time.Time `gorm:"not null" json:"dateOfBirth"`
	NationalID  string    `gorm:"size:20" json:"nationalId,omitempty"`
	PhoneNumber string    `gorm:"size:20" json:"phoneNumber,omitempty"`
	Email       string    `gorm:"size:255" json:"email,omitempty"`

	// Relations
	Visits        []Visit        `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"visits,omitempty"`
	TriageRecords []TriageRecord `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Consultations []Consultation `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// Age computes the patient's age in full years as of now.
func (p *Patient) Age() int {
	return p.AgeAt(time.Now())
}

// AgeAt computes the patient's age in full years at the given date.
func (p *Patient) AgeAt(at time.Time) int {
	age := at.Year() - p.DateOfBirth.Year()
	birthdayThisYear := time.Date(at.Year(), p.DateOfBirth.Month(), p.DateOfBirth.Day(), 0, 0, 0, 0, at.Location())
	if at.Before(birthdayThisYear) {
		age--
	}
	return age
}
