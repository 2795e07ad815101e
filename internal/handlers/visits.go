package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VisitHandler handles visit tracking through the clinical stages.
type VisitHandler struct {
	DB *gorm.DB
}

// NewVisitHandler creates a new VisitHandler.
func NewVisitHandler(db *gorm.DB) *VisitHandler {
	return &VisitHandler{DB: db}
}

// VisitResponse is a visit with the derived billing totals attached.
type VisitResponse struct {
	models.Visit
	TotalCharges  float64 `json:"totalCharges"`
	TotalPayments float64 `json:"totalPayments"`
	Balance       float64 `json:"balance"`
}

func visitResponse(v models.Visit) VisitResponse {
	return VisitResponse{
		Visit:         v,
		TotalCharges:  v.TotalCharges(),
		TotalPayments: v.TotalPayments(),
		Balance:       v.Balance(),
	}
}

// preloaded returns a query with every association the billing roll-up needs.
func (h *VisitHandler) preloaded() *gorm.DB {
	return h.DB.
		Preload("Patient").
		Preload("Triage").
		Preload("Consultation").
		Preload("Consultation.TestRequests.TestType").
		Preload("Consultation.Prescriptions.Medicine").
		Preload("DirectTestRequests.TestType").
		Preload("Payments")
}

// CreateVisitRequest represents the request body for opening a visit.
type CreateVisitRequest struct {
	PatientID string `json:"patientId" binding:"required"`
	Stage     string `json:"stage" binding:"omitempty"`
}

// CreateVisit opens a new visit for a patient, at reception by default.
func (h *VisitHandler) CreateVisit(c *gin.Context) {
	var req CreateVisitRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	stage := models.StageReception
	if req.Stage != "" {
		stage = models.VisitStage(req.Stage)
		if !models.ValidVisitStage(stage) {
			utils.BadRequest(c, "Invalid visit stage: "+req.Stage)
			return
		}
	}

	visit := models.Visit{
		PatientID: req.PatientID,
		Stage:     stage,
	}

	if err := h.DB.Create(&visit).Error; err != nil {
		utils.InternalServerError(c, "Failed to create visit: "+err.Error())
		return
	}

	utils.Created(c, "Visit created successfully", visitResponse(visit))
}

// GetVisits handles fetching all visits with their billing totals.
func (h *VisitHandler) GetVisits(c *gin.Context) {
	var visits []models.Visit
	if err := h.preloaded().Find(&visits).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch visits: "+err.Error())
		return
	}

	responses := make([]VisitResponse, len(visits))
	for i, v := range visits {
		responses[i] = visitResponse(v)
	}

	utils.Success(c, "Visits fetched successfully", responses)
}

// GetVisitByID handles fetching a single visit with its billing totals.
func (h *VisitHandler) GetVisitByID(c *gin.Context) {
	visitID := c.Param("id")

	var visit models.Visit
	if err := h.preloaded().First(&visit, "id = ?", visitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Visit not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Visit fetched successfully", visitResponse(visit))
}

// UpdateVisitRequest represents the request body for updating a visit.
type UpdateVisitRequest struct {
	Stage string `json:"stage" binding:"omitempty"`
}

// UpdateVisit handles moving a visit between clinical stages.
func (h *VisitHandler) UpdateVisit(c *gin.Context) {
	visitID := c.Param("id")

	var req UpdateVisitRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var visit models.Visit
	if err := h.DB.First(&visit, "id = ?", visitID).Error; err != nil {
		utils.NotFound(c, "Visit not found")
		return
	}

	if req.Stage != "" {
		stage := models.VisitStage(req.Stage)
		if !models.ValidVisitStage(stage) {
			utils.BadRequest(c, "Invalid visit stage: "+req.Stage)
			return
		}
		visit.Stage = stage
	}

	if err := h.DB.Save(&visit).Error; err != nil {
		utils.InternalServerError(c, "Failed to update visit: "+err.Error())
		return
	}

	var updated models.Visit
	if err := h.preloaded().First(&updated, "id = ?", visit.ID).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	utils.Success(c, "Visit updated successfully", visitResponse(updated))
}

// DeleteVisit handles deleting a visit and everything hanging off it.
func (h *VisitHandler) DeleteVisit(c *gin.Context) {
	visitID := c.Param("id")

	var visit models.Visit
	if err := h.DB.First(&visit, "id = ?", visitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Visit not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Select(clause.Associations).Delete(&visit).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete visit: "+err.Error())
		return
	}

	utils.Success(c, "Visit deleted successfully", nil)
}
