package handlers

import (
	"time"

	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PatientHandler handles patient registration and lookup.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// PatientResponse is a patient with the derived age attached.
type PatientResponse struct {
	models.Patient
	Age int `json:"age"`
}

func patientResponse(p models.Patient) PatientResponse {
	return PatientResponse{Patient: p, Age: p.Age()}
}

// validateDateOfBirth checks the clinic's DOB rules: strictly in the past
// and not before 1900. Returns an error message, or "" when valid.
// Compared by calendar date, so a birth date of today is rejected.
func validateDateOfBirth(dob time.Time) string {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !dob.Before(today) {
		return "Date of birth must be in the past"
	}
	if dob.Before(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)) {
		return "Date of birth is too far in the past"
	}
	return ""
}

// CreatePatientRequest represents the request body for registering a patient.
type CreatePatientRequest struct {
	FirstName   string `json:"firstName" binding:"required,max=50"`
	LastName    string `json:"lastName" binding:"required,max=50"`
	Gender      string `json:"gender" binding:"required,oneof=male female"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"` // YYYY-MM-DD
	NationalID  string `json:"nationalId" binding:"omitempty,nationalid"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,kephone"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// CreatePatient handles registering a new patient.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		utils.BadRequest(c, "Invalid date format for dateOfBirth. Use YYYY-MM-DD.")
		return
	}
	if msg := validateDateOfBirth(dob); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	patient := models.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      models.Gender(req.Gender),
		DateOfBirth: dob,
		NationalID:  req.NationalID,
		Email:       req.Email,
	}

	if req.PhoneNumber != "" {
		phone, err := utils.NormalizePhone(req.PhoneNumber)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		patient.PhoneNumber = phone
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	utils.Created(c, "Patient successfully created", patientResponse(patient))
}

// GetPatients handles fetching all patients.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Preload("Visits").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	responses := make([]PatientResponse, len(patients))
	for i, p := range patients {
		responses[i] = patientResponse(p)
	}

	utils.Success(c, "Patients fetched successfully", responses)
}

// GetPatientByID handles fetching a patient with their full clinical record.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patientID := c.Param("id")

	var patient models.Patient
	err := h.DB.
		Preload("Visits").
		Preload("Visits.Triage").
		Preload("Visits.Consultation").
		Preload("Visits.Consultation.TestRequests.TestType").
		Preload("Visits.Consultation.Prescriptions.Medicine").
		First(&patient, "id = ?", patientID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Patient fetched successfully", patientResponse(patient))
}

// UpdatePatientRequest represents the request body for updating a patient.
type UpdatePatientRequest struct {
	FirstName   string `json:"firstName" binding:"omitempty,max=50"`
	LastName    string `json:"lastName" binding:"omitempty,max=50"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female"`
	DateOfBirth string `json:"dateOfBirth" binding:"omitempty"`
	NationalID  string `json:"nationalId" binding:"omitempty,nationalid"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,kephone"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// UpdatePatient handles partially updating a patient by ID.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID := c.Param("id")

	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	if req.FirstName != "" {
		patient.FirstName = req.FirstName
	}
	if req.LastName != "" {
		patient.LastName = req.LastName
	}
	if req.Gender != "" {
		patient.Gender = models.Gender(req.Gender)
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			utils.BadRequest(c, "Invalid date format for dateOfBirth. Use YYYY-MM-DD.")
			return
		}
		if msg := validateDateOfBirth(dob); msg != "" {
			utils.BadRequest(c, msg)
			return
		}
		patient.DateOfBirth = dob
	}
	if req.NationalID != "" {
		patient.NationalID = req.NationalID
	}
	if req.PhoneNumber != "" {
		phone, err := utils.NormalizePhone(req.PhoneNumber)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		patient.PhoneNumber = phone
	}
	if req.Email != "" {
		patient.Email = req.Email
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient successfully updated", patientResponse(patient))
}

// DeletePatient handles deleting a patient and their clinical record.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	patientID := c.Param("id")

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Select(clause.Associations).Delete(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient deleted successfully", nil)
}
