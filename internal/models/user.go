package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum for clinic staff
type Role string

const (
	RoleReceptionist Role = "receptionist"
	RoleNurse        Role = "nurse"
	RoleDoctor       Role = "doctor"
	RoleLabTech      Role = "lab_tech"
	RoleImagingTech  Role = "imaging_tech"
	RolePharmacist   Role = "pharmacist"
	RoleAdmin        Role = "admin"
)

// Roles lists every valid staff role.
var Roles = []Role{
	RoleReceptionist,
	RoleNurse,
	RoleDoctor,
	RoleLabTech,
	RoleImagingTech,
	RolePharmacist,
	RoleAdmin,
}

// ValidRole reports whether r is a known staff role.
func ValidRole(r Role) bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents a clinic staff member
type User struct {
	BaseModel
	FirstName   string `gorm:"size:50;not null" json:"firstName"`
	LastName    string `gorm:"size:50;not null" json:"lastName"`
	Email       string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	NationalID  string `gorm:"size:20" json:"nationalId,omitempty"`
	PhoneNumber string `gorm:"size:20" json:"phoneNumber,omitempty"`
	Password    string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role        Role   `gorm:"size:20;not null" json:"role"`

	// Relations (not always preloaded). Deleting a user removes the
	// records they authored.
	TriageRecords []TriageRecord `gorm:"foreignKey:NurseID;constraint:OnDelete:CASCADE" json:"-"`
	Consultations []Consultation `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
	TestRequests  []TestRequest  `gorm:"foreignKey:TechnicianID;constraint:OnDelete:CASCADE" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:PharmacistID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	NationalID  string    `json:"nationalId,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		NationalID:  u.NationalID,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
