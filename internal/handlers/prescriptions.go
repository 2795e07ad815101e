package handlers

import (
	"strconv"

	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PrescriptionHandler handles prescriptions and the stock arithmetic that
// mirrors dispensing.
type PrescriptionHandler struct {
	DB *gorm.DB
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(db *gorm.DB) *PrescriptionHandler {
	return &PrescriptionHandler{DB: db}
}

// PrescriptionResponse is a prescription with the derived price attached.
type PrescriptionResponse struct {
	models.Prescription
	Price float64 `json:"price"`
}

func prescriptionResponse(p models.Prescription) PrescriptionResponse {
	return PrescriptionResponse{Prescription: p, Price: p.Price()}
}

// checkPharmacist verifies the pharmacist exists and holds the role.
func (h *PrescriptionHandler) checkPharmacist(pharmacistID string) string {
	var pharmacist models.User
	if err := h.DB.First(&pharmacist, "id = ?", pharmacistID).Error; err != nil {
		return "Pharmacist ID does not exist"
	}
	if pharmacist.Role != models.RolePharmacist {
		return "User must have the role 'pharmacist'"
	}
	return ""
}

// CreatePrescriptionRequest represents the request body for a prescription.
type CreatePrescriptionRequest struct {
	ConsultationID string  `json:"consultationId" binding:"required"`
	MedicineID     string  `json:"medicineId" binding:"required"`
	Dosage         string  `json:"dosage" binding:"required,max=50"`
	PharmacistID   *string `json:"pharmacistId"`
	Instructions   string  `json:"instructions"`
	Status         string  `json:"status" binding:"omitempty,oneof=pending dispensed"`
	DispensedUnits int     `json:"dispensedUnits" binding:"omitempty,min=0"`
}

// CreatePrescription writes a prescription; any units dispensed immediately
// come out of the medicine's stock in the same transaction.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var consultation models.Consultation
	if err := h.DB.First(&consultation, "id = ?", req.ConsultationID).Error; err != nil {
		utils.NotFound(c, "Consultation not found")
		return
	}

	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", req.MedicineID).Error; err != nil {
		utils.NotFound(c, "Medicine not found")
		return
	}

	if req.PharmacistID != nil && *req.PharmacistID != "" {
		if msg := h.checkPharmacist(*req.PharmacistID); msg != "" {
			utils.BadRequest(c, msg)
			return
		}
	}

	if req.DispensedUnits > medicine.Stock {
		utils.BadRequest(c, "Insufficient stock: only "+strconv.Itoa(medicine.Stock)+" units available")
		return
	}

	status := models.PrescriptionPending
	if req.Status != "" {
		status = models.PrescriptionStatus(req.Status)
	}

	prescription := models.Prescription{
		ConsultationID: req.ConsultationID,
		PharmacistID:   req.PharmacistID,
		MedicineID:     req.MedicineID,
		Dosage:         req.Dosage,
		Instructions:   req.Instructions,
		Status:         status,
		DispensedUnits: req.DispensedUnits,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prescription).Error; err != nil {
			return err
		}
		if req.DispensedUnits > 0 {
			medicine.Stock -= req.DispensedUnits
			medicine.SoldUnits += req.DispensedUnits
			return tx.Save(&medicine).Error
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create prescription: "+err.Error())
		return
	}

	prescription.Medicine = medicine
	utils.Created(c, "Prescription created successfully", prescriptionResponse(prescription))
}

// GetPrescriptions handles fetching all prescriptions.
func (h *PrescriptionHandler) GetPrescriptions(c *gin.Context) {
	var prescriptions []models.Prescription
	if err := h.DB.Preload("Medicine").Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	responses := make([]PrescriptionResponse, len(prescriptions))
	for i, p := range prescriptions {
		responses[i] = prescriptionResponse(p)
	}

	utils.Success(c, "Prescriptions fetched successfully", responses)
}

// GetPrescriptionByID handles fetching a prescription by ID.
func (h *PrescriptionHandler) GetPrescriptionByID(c *gin.Context) {
	prescriptionID := c.Param("id")

	var prescription models.Prescription
	if err := h.DB.Preload("Medicine").First(&prescription, "id = ?", prescriptionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Prescription fetched successfully", prescriptionResponse(prescription))
}

// UpdatePrescriptionRequest represents the request body for dispensing or
// amending a prescription.
type UpdatePrescriptionRequest struct {
	PharmacistID   *string `json:"pharmacistId"`
	Dosage         string  `json:"dosage" binding:"omitempty,max=50"`
	Instructions   *string `json:"instructions"`
	Status         string  `json:"status" binding:"omitempty,oneof=pending dispensed"`
	DispensedUnits *int    `json:"dispensedUnits" binding:"omitempty,min=0"`
}

// UpdatePrescription adjusts the prescription; when the dispensed units
// change, stock and sold counters move by the delta in the same transaction.
func (h *PrescriptionHandler) UpdatePrescription(c *gin.Context) {
	prescriptionID := c.Param("id")

	var req UpdatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var prescription models.Prescription
	if err := h.DB.Preload("Medicine").First(&prescription, "id = ?", prescriptionID).Error; err != nil {
		utils.NotFound(c, "Prescription not found")
		return
	}

	if req.PharmacistID != nil && *req.PharmacistID != "" {
		if msg := h.checkPharmacist(*req.PharmacistID); msg != "" {
			utils.BadRequest(c, msg)
			return
		}
		prescription.PharmacistID = req.PharmacistID
	}
	if req.Dosage != "" {
		prescription.Dosage = req.Dosage
	}
	if req.Instructions != nil {
		prescription.Instructions = *req.Instructions
	}
	if req.Status != "" {
		prescription.Status = models.PrescriptionStatus(req.Status)
	}

	medicine := prescription.Medicine
	oldDispensed := prescription.DispensedUnits
	diff := 0
	if req.DispensedUnits != nil {
		diff = *req.DispensedUnits - oldDispensed
		if diff > medicine.Stock {
			utils.BadRequest(c, "Insufficient stock: only "+strconv.Itoa(medicine.Stock)+" units available")
			return
		}
		prescription.DispensedUnits = *req.DispensedUnits
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&prescription).Error; err != nil {
			return err
		}
		if diff != 0 {
			medicine.Stock -= diff
			medicine.SoldUnits += diff
			return tx.Save(&medicine).Error
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update prescription: "+err.Error())
		return
	}

	prescription.Medicine = medicine
	utils.Success(c, "Prescription updated successfully", prescriptionResponse(prescription))
}

// DeletePrescription removes a prescription and puts any dispensed units
// back into stock.
func (h *PrescriptionHandler) DeletePrescription(c *gin.Context) {
	prescriptionID := c.Param("id")

	var prescription models.Prescription
	if err := h.DB.Preload("Medicine").First(&prescription, "id = ?", prescriptionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if prescription.DispensedUnits > 0 {
			medicine := prescription.Medicine
			medicine.Stock += prescription.DispensedUnits
			medicine.SoldUnits -= prescription.DispensedUnits
			if err := tx.Save(&medicine).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&prescription).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete prescription: "+err.Error())
		return
	}

	utils.Success(c, "Prescription deleted successfully", nil)
}
