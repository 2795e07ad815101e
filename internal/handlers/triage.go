package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TriageHandler handles triage vitals capture.
type TriageHandler struct {
	DB *gorm.DB
}

// NewTriageHandler creates a new TriageHandler.
func NewTriageHandler(db *gorm.DB) *TriageHandler {
	return &TriageHandler{DB: db}
}

// TriageResponse is a triage record with the derived BMI attached.
type TriageResponse struct {
	models.TriageRecord
	BMI float64 `json:"bmi"`
}

func triageResponse(t models.TriageRecord) TriageResponse {
	return TriageResponse{TriageRecord: t, BMI: t.BMI()}
}

// CreateTriageRequest represents the request body for recording vitals.
type CreateTriageRequest struct {
	PatientID       string  `json:"patientId" binding:"required"`
	NurseID         string  `json:"nurseId" binding:"required"`
	VisitID         string  `json:"visitId" binding:"required"`
	Temperature     float64 `json:"temperature" binding:"required,min=20"`
	Weight          float64 `json:"weight" binding:"required,gt=0"`
	Height          float64 `json:"height" binding:"required,gt=0"`
	BloodPressure   string  `json:"bloodPressure" binding:"required,bloodpressure"`
	PulseRate       *int    `json:"pulseRate" binding:"omitempty,min=0"`
	SpO2            *int    `json:"spo2" binding:"omitempty,min=0"`
	RespirationRate *int    `json:"respirationRate" binding:"omitempty,min=0"`
	Notes           string  `json:"notes"`
}

// CreateTriage records vitals, links the record to its visit and moves the
// visit on to waiting_consultation, all in one transaction.
func (h *TriageHandler) CreateTriage(c *gin.Context) {
	var req CreateTriageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var nurse models.User
	if err := h.DB.First(&nurse, "id = ?", req.NurseID).Error; err != nil {
		utils.BadRequest(c, "Nurse ID does not exist")
		return
	}
	if nurse.Role != models.RoleNurse {
		utils.BadRequest(c, "User must have the role 'nurse'")
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

	triage := models.TriageRecord{
		PatientID:       req.PatientID,
		NurseID:         req.NurseID,
		Temperature:     req.Temperature,
		Weight:          req.Weight,
		Height:          req.Height,
		BloodPressure:   req.BloodPressure,
		PulseRate:       req.PulseRate,
		SpO2:            req.SpO2,
		RespirationRate: req.RespirationRate,
		Notes:           req.Notes,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&triage).Error; err != nil {
			return err
		}
		visit.TriageID = &triage.ID
		visit.Stage = models.StageWaitingConsultation
		return tx.Save(&visit).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create triage record: "+err.Error())
		return
	}

	utils.Created(c, "Triage record created", triageResponse(triage))
}

// GetTriageRecords handles fetching all triage records.
func (h *TriageHandler) GetTriageRecords(c *gin.Context) {
	var records []models.TriageRecord
	if err := h.DB.Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch triage records: "+err.Error())
		return
	}

	responses := make([]TriageResponse, len(records))
	for i, t := range records {
		responses[i] = triageResponse(t)
	}

	utils.Success(c, "Triage records fetched successfully", responses)
}

// GetTriageByID handles fetching a triage record by ID.
func (h *TriageHandler) GetTriageByID(c *gin.Context) {
	triageID := c.Param("id")

	var triage models.TriageRecord
	if err := h.DB.First(&triage, "id = ?", triageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Triage record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Triage record fetched successfully", triageResponse(triage))
}

// UpdateTriageRequest represents the request body for correcting vitals.
type UpdateTriageRequest struct {
	Temperature     *float64 `json:"temperature" binding:"omitempty,min=20"`
	Weight          *float64 `json:"weight" binding:"omitempty,gt=0"`
	Height          *float64 `json:"height" binding:"omitempty,gt=0"`
	BloodPressure   string   `json:"bloodPressure" binding:"omitempty,bloodpressure"`
	PulseRate       *int     `json:"pulseRate" binding:"omitempty,min=0"`
	SpO2            *int     `json:"spo2" binding:"omitempty,min=0"`
	RespirationRate *int     `json:"respirationRate" binding:"omitempty,min=0"`
	Notes           *string  `json:"notes"`
}

// UpdateTriage handles correcting a triage record by ID.
func (h *TriageHandler) UpdateTriage(c *gin.Context) {
	triageID := c.Param("id")

	var req UpdateTriageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var triage models.TriageRecord
	if err := h.DB.First(&triage, "id = ?", triageID).Error; err != nil {
		utils.NotFound(c, "Triage record not found")
		return
	}

	if req.Temperature != nil {
		triage.Temperature = *req.Temperature
	}
	if req.Weight != nil {
		triage.Weight = *req.Weight
	}
	if req.Height != nil {
		triage.Height = *req.Height
	}
	if req.BloodPressure != "" {
		triage.BloodPressure = req.BloodPressure
	}
	if req.PulseRate != nil {
		triage.PulseRate = req.PulseRate
	}
	if req.SpO2 != nil {
		triage.SpO2 = req.SpO2
	}
	if req.RespirationRate != nil {
		triage.RespirationRate = req.RespirationRate
	}
	if req.Notes != nil {
		triage.Notes = *req.Notes
	}

	if err := h.DB.Save(&triage).Error; err != nil {
		utils.InternalServerError(c, "Failed to update triage record: "+err.Error())
		return
	}

	utils.Success(c, "Triage record updated successfully", triageResponse(triage))
}

// DeleteTriage handles deleting a triage record by ID.
func (h *TriageHandler) DeleteTriage(c *gin.Context) {
	triageID := c.Param("id")

	var triage models.TriageRecord
	if err := h.DB.First(&triage, "id = ?", triageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Triage record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// Unlink the visit that references this record before deleting.
		if err := tx.Model(&models.Visit{}).
			Where("triage_id = ?", triage.ID).
			Update("triage_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&triage).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete triage record: "+err.Error())
		return
	}

	utils.Success(c, "Triage record deleted successfully", nil)
}
