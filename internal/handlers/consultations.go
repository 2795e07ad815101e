package handlers

import (
	"clinic-management-server/internal/config"
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConsultationHandler handles doctor consultations.
type ConsultationHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewConsultationHandler creates a new ConsultationHandler.
func NewConsultationHandler(db *gorm.DB, cfg *config.Config) *ConsultationHandler {
	return &ConsultationHandler{DB: db, Cfg: cfg}
}

// CreateConsultationRequest represents the request body for a consultation.
type CreateConsultationRequest struct {
	PatientID      string   `json:"patientId" binding:"required"`
	DoctorID       string   `json:"doctorId" binding:"required"`
	VisitID        string   `json:"visitId" binding:"required"`
	Diagnosis      string   `json:"diagnosis"`
	Notes          string   `json:"notes"`
	ChiefComplaint string   `json:"chiefComplaint"`
	PhysicalExam   string   `json:"physicalExam"`
	SystemicExam   string   `json:"systemicExam"`
	Fee            *float64 `json:"fee" binding:"omitempty,gt=0"`
}

// CreateConsultation records a consultation and links it to its visit in one
// transaction. The fee defaults from configuration.
func (h *ConsultationHandler) CreateConsultation(c *gin.Context) {
	var req CreateConsultationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.User
	if err := h.DB.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		utils.BadRequest(c, "Doctor does not exist")
		return
	}
	if doctor.Role != models.RoleDoctor {
		utils.BadRequest(c, "User must have the role 'doctor'")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	var visit models.Visit
	if err := h.DB.First(&visit, "id = ?", req.VisitID).Error; err != nil {
		utils.NotFound(c, "Visit not found")
		return
	}

	fee := h.Cfg.ConsultationFee
	if req.Fee != nil {
		fee = *req.Fee
	}

	consultation := models.Consultation{
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		Diagnosis:      req.Diagnosis,
		Notes:          req.Notes,
		ChiefComplaint: req.ChiefComplaint,
		PhysicalExam:   req.PhysicalExam,
		SystemicExam:   req.SystemicExam,
		Fee:            fee,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&consultation).Error; err != nil {
			return err
		}
		visit.ConsultationID = &consultation.ID
		return tx.Save(&visit).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create consultation: "+err.Error())
		return
	}

	utils.Created(c, "Consultation created successfully", consultation)
}

// GetConsultations handles fetching all consultations.
func (h *ConsultationHandler) GetConsultations(c *gin.Context) {
	var consultations []models.Consultation
	err := h.DB.
		Preload("TestRequests.TestType").
		Preload("Prescriptions.Medicine").
		Find(&consultations).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch consultations: "+err.Error())
		return
	}

	utils.Success(c, "Consultations fetched successfully", consultations)
}

// GetConsultationByID handles fetching a consultation by ID.
func (h *ConsultationHandler) GetConsultationByID(c *gin.Context) {
	consultationID := c.Param("id")

	var consultation models.Consultation
	err := h.DB.
		Preload("TestRequests.TestType").
		Preload("Prescriptions.Medicine").
		First(&consultation, "id = ?", consultationID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Consultation fetched successfully", consultation)
}

// UpdateConsultationRequest represents the request body for amending a
// consultation.
type UpdateConsultationRequest struct {
	Diagnosis      *string  `json:"diagnosis"`
	Notes          *string  `json:"notes"`
	ChiefComplaint *string  `json:"chiefComplaint"`
	PhysicalExam   *string  `json:"physicalExam"`
	SystemicExam   *string  `json:"systemicExam"`
	Fee            *float64 `json:"fee" binding:"omitempty,gt=0"`
}

// UpdateConsultation handles amending a consultation by ID.
func (h *ConsultationHandler) UpdateConsultation(c *gin.Context) {
	consultationID := c.Param("id")

	var req UpdateConsultationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var consultation models.Consultation
	if err := h.DB.First(&consultation, "id = ?", consultationID).Error; err != nil {
		utils.NotFound(c, "Consultation not found")
		return
	}

	if req.Diagnosis != nil {
		consultation.Diagnosis = *req.Diagnosis
	}
	if req.Notes != nil {
		consultation.Notes = *req.Notes
	}
	if req.ChiefComplaint != nil {
		consultation.ChiefComplaint = *req.ChiefComplaint
	}
	if req.PhysicalExam != nil {
		consultation.PhysicalExam = *req.PhysicalExam
	}
	if req.SystemicExam != nil {
		consultation.SystemicExam = *req.SystemicExam
	}
	if req.Fee != nil {
		consultation.Fee = *req.Fee
	}

	if err := h.DB.Save(&consultation).Error; err != nil {
		utils.InternalServerError(c, "Failed to update consultation: "+err.Error())
		return
	}

	utils.Success(c, "Consultation updated successfully", consultation)
}

// DeleteConsultation handles deleting a consultation and everything it owns.
func (h *ConsultationHandler) DeleteConsultation(c *gin.Context) {
	consultationID := c.Param("id")

	var consultation models.Consultation
	if err := h.DB.First(&consultation, "id = ?", consultationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// Unlink the visit that references this consultation.
		if err := tx.Model(&models.Visit{}).
			Where("consultation_id = ?", consultation.ID).
			Update("consultation_id", nil).Error; err != nil {
			return err
		}
		return tx.Select(clause.Associations).Delete(&consultation).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete consultation: "+err.Error())
		return
	}

	utils.Success(c, "Consultation deleted successfully", nil)
}
