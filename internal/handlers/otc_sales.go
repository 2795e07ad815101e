package handlers

import (
	"strconv"

	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OTCSaleHandler handles walk-in pharmacy sales.
type OTCSaleHandler struct {
	DB *gorm.DB
}

// NewOTCSaleHandler creates a new OTCSaleHandler.
func NewOTCSaleHandler(db *gorm.DB) *OTCSaleHandler {
	return &OTCSaleHandler{DB: db}
}

// OTCSaleResponse is an OTC sale with the derived billing totals attached.
type OTCSaleResponse struct {
	models.OTCSale
	TotalCharges  float64 `json:"totalCharges"`
	TotalPayments float64 `json:"totalPayments"`
	Balance       float64 `json:"balance"`
}

func otcSaleResponse(s models.OTCSale) OTCSaleResponse {
	return OTCSaleResponse{
		OTCSale:       s,
		TotalCharges:  s.TotalCharges(),
		TotalPayments: s.TotalPayments(),
		Balance:       s.Balance(),
	}
}

// preloaded returns a query with the associations the totals need.
func (h *OTCSaleHandler) preloaded() *gorm.DB {
	return h.DB.
		Preload("Sales.Medicine").
		Preload("Payments")
}

// CreateOTCSaleRequest represents the request body for opening a walk-in sale.
type CreateOTCSaleRequest struct {
	PatientName string `json:"patientName" binding:"required,max=100"`
	Stage       string `json:"stage" binding:"omitempty"`
}

// CreateOTCSale opens a walk-in sale for someone without a visit.
func (h *OTCSaleHandler) CreateOTCSale(c *gin.Context) {
	var req CreateOTCSaleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	stage := models.OTCStageWaitingPharmacy
	if req.Stage != "" {
		stage = models.OTCStage(req.Stage)
		if !models.ValidOTCStage(stage) {
			utils.BadRequest(c, "Invalid OTC stage: "+req.Stage)
			return
		}
	}

	sale := models.OTCSale{
		PatientName: req.PatientName,
		Stage:       stage,
	}

	if err := h.DB.Create(&sale).Error; err != nil {
		utils.InternalServerError(c, "Failed to create OTC sale: "+err.Error())
		return
	}

	utils.Created(c, "OTC sale created successfully", otcSaleResponse(sale))
}

// GetOTCSales handles fetching all walk-in sales with their totals.
func (h *OTCSaleHandler) GetOTCSales(c *gin.Context) {
	var sales []models.OTCSale
	if err := h.preloaded().Find(&sales).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch OTC sales: "+err.Error())
		return
	}

	responses := make([]OTCSaleResponse, len(sales))
	for i, s := range sales {
		responses[i] = otcSaleResponse(s)
	}

	utils.Success(c, "OTC sales fetched successfully", responses)
}

// GetOTCSaleByID handles fetching a walk-in sale with its totals.
func (h *OTCSaleHandler) GetOTCSaleByID(c *gin.Context) {
	saleID := c.Param("id")

	var sale models.OTCSale
	if err := h.preloaded().First(&sale, "id = ?", saleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "OTC sale not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "OTC sale fetched successfully", otcSaleResponse(sale))
}

// UpdateOTCSaleRequest represents the request body for moving a sale between
// stages.
type UpdateOTCSaleRequest struct {
	PatientName string `json:"patientName" binding:"omitempty,max=100"`
	Stage       string `json:"stage" binding:"omitempty"`
}

// UpdateOTCSale handles updating a walk-in sale by ID.
func (h *OTCSaleHandler) UpdateOTCSale(c *gin.Context) {
	saleID := c.Param("id")

	var req UpdateOTCSaleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var sale models.OTCSale
	if err := h.DB.First(&sale, "id = ?", saleID).Error; err != nil {
		utils.NotFound(c, "OTC sale not found")
		return
	}

	if req.PatientName != "" {
		sale.PatientName = req.PatientName
	}
	if req.Stage != "" {
		stage := models.OTCStage(req.Stage)
		if !models.ValidOTCStage(stage) {
			utils.BadRequest(c, "Invalid OTC stage: "+req.Stage)
			return
		}
		sale.Stage = stage
	}

	if err := h.DB.Save(&sale).Error; err != nil {
		utils.InternalServerError(c, "Failed to update OTC sale: "+err.Error())
		return
	}

	var updated models.OTCSale
	if err := h.preloaded().First(&updated, "id = ?", sale.ID).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	utils.Success(c, "OTC sale updated successfully", otcSaleResponse(updated))
}

// DeleteOTCSale removes a walk-in sale, returning every dispensed line to
// stock first.
func (h *OTCSaleHandler) DeleteOTCSale(c *gin.Context) {
	saleID := c.Param("id")

	var sale models.OTCSale
	if err := h.preloaded().First(&sale, "id = ?", saleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "OTC sale not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// Atomic increments: several lines may point at the same medicine,
		// so restoring through a preloaded copy would lose updates.
		for _, line := range sale.Sales {
			err := tx.Model(&models.Medicine{}).
				Where("id = ?", line.MedicineID).
				Updates(map[string]interface{}{
					"stock":      gorm.Expr("stock + ?", line.DispensedUnits),
					"sold_units": gorm.Expr("sold_units - ?", line.DispensedUnits),
				}).Error
			if err != nil {
				return err
			}
		}
		return tx.Select(clause.Associations).Delete(&sale).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete OTC sale: "+err.Error())
		return
	}

	utils.Success(c, "OTC sale deleted successfully", nil)
}

// PharmacySaleResponse is a sale line with the derived line total.
type PharmacySaleResponse struct {
	models.PharmacySale
	TotalPrice float64 `json:"totalPrice"`
}

func pharmacySaleResponse(s models.PharmacySale) PharmacySaleResponse {
	return PharmacySaleResponse{PharmacySale: s, TotalPrice: s.TotalPrice()}
}

// CreatePharmacySaleRequest represents the request body for a sale line.
type CreatePharmacySaleRequest struct {
	PharmacistID   string `json:"pharmacistId" binding:"required"`
	MedicineID     string `json:"medicineId" binding:"required"`
	DispensedUnits int    `json:"dispensedUnits" binding:"required,min=1"`
}

// CreatePharmacySale adds a medicine line to a walk-in sale and moves the
// units out of stock in the same transaction.
func (h *OTCSaleHandler) CreatePharmacySale(c *gin.Context) {
	saleID := c.Param("id")

	var req CreatePharmacySaleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var sale models.OTCSale
	if err := h.DB.First(&sale, "id = ?", saleID).Error; err != nil {
		utils.NotFound(c, "OTC sale not found")
		return
	}

	var pharmacist models.User
	if err := h.DB.First(&pharmacist, "id = ?", req.PharmacistID).Error; err != nil {
		utils.BadRequest(c, "Pharmacist ID does not exist")
		return
	}
	if pharmacist.Role != models.RolePharmacist {
		utils.BadRequest(c, "User must have the role 'pharmacist'")
		return
	}

	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", req.MedicineID).Error; err != nil {
		utils.NotFound(c, "Medicine not found")
		return
	}

	if req.DispensedUnits > medicine.Stock {
		utils.BadRequest(c, "Insufficient stock: only "+strconv.Itoa(medicine.Stock)+" units available")
		return
	}

	line := models.PharmacySale{
		OTCSaleID:      sale.ID,
		PharmacistID:   req.PharmacistID,
		MedicineID:     req.MedicineID,
		DispensedUnits: req.DispensedUnits,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&line).Error; err != nil {
			return err
		}
		medicine.Stock -= req.DispensedUnits
		medicine.SoldUnits += req.DispensedUnits
		return tx.Save(&medicine).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create sale line: "+err.Error())
		return
	}

	line.Medicine = medicine
	utils.Created(c, "Sale line created successfully", pharmacySaleResponse(line))
}

// DeletePharmacySale removes a sale line and puts its units back into stock.
func (h *OTCSaleHandler) DeletePharmacySale(c *gin.Context) {
	saleID := c.Param("id")
	lineID := c.Param("saleId")

	var line models.PharmacySale
	err := h.DB.Preload("Medicine").
		First(&line, "id = ? AND otc_sale_id = ?", lineID, saleID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Sale line not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		medicine := line.Medicine
		medicine.Stock += line.DispensedUnits
		medicine.SoldUnits -= line.DispensedUnits
		if err := tx.Save(&medicine).Error; err != nil {
			return err
		}
		return tx.Delete(&line).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete sale line: "+err.Error())
		return
	}

	utils.Success(c, "Sale line deleted successfully", nil)
}
