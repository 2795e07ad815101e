package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MedicineHandler handles the pharmacy formulary and inventory.
type MedicineHandler struct {
	DB *gorm.DB
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(db *gorm.DB) *MedicineHandler {
	return &MedicineHandler{DB: db}
}

// CreateMedicineRequest represents the request body for adding a medicine.
type CreateMedicineRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Stock        *int    `json:"stock" binding:"omitempty,min=0"`
	SoldUnits    *int    `json:"soldUnits" binding:"omitempty,min=0"`
	BuyingPrice  float64 `json:"buyingPrice" binding:"required,gt=0"`
	SellingPrice float64 `json:"sellingPrice" binding:"required,gt=0"`
	Unit         string  `json:"unit" binding:"required,max=50"`
}

// CreateMedicine handles adding a medicine to the formulary.
func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var req CreateMedicineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.Medicine
	if err := h.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.Conflict(c, "Medicine with this name already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	medicine := models.Medicine{
		Name:         req.Name,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Unit:         req.Unit,
	}
	if req.Stock != nil {
		medicine.Stock = *req.Stock
	}
	if req.SoldUnits != nil {
		medicine.SoldUnits = *req.SoldUnits
	}

	if err := h.DB.Create(&medicine).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medicine: "+err.Error())
		return
	}

	utils.Created(c, "Medicine created successfully", medicine)
}

// GetMedicines handles fetching the formulary.
func (h *MedicineHandler) GetMedicines(c *gin.Context) {
	var medicines []models.Medicine
	if err := h.DB.Find(&medicines).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medicines: "+err.Error())
		return
	}

	utils.Success(c, "Medicines fetched successfully", medicines)
}

// GetMedicineByID handles fetching a medicine by ID.
func (h *MedicineHandler) GetMedicineByID(c *gin.Context) {
	medicineID := c.Param("id")

	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", medicineID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medicine not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Medicine fetched successfully", medicine)
}

// UpdateMedicineRequest represents the request body for a formulary update.
type UpdateMedicineRequest struct {
	Name         string   `json:"name" binding:"omitempty,max=100"`
	Stock        *int     `json:"stock" binding:"omitempty,min=0"`
	SoldUnits    *int     `json:"soldUnits" binding:"omitempty,min=0"`
	BuyingPrice  *float64 `json:"buyingPrice" binding:"omitempty,gt=0"`
	SellingPrice *float64 `json:"sellingPrice" binding:"omitempty,gt=0"`
	Unit         string   `json:"unit" binding:"omitempty,max=50"`
}

// UpdateMedicine handles updating a medicine by ID.
func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	medicineID := c.Param("id")

	var req UpdateMedicineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", medicineID).Error; err != nil {
		utils.NotFound(c, "Medicine not found")
		return
	}

	if req.Name != "" && req.Name != medicine.Name {
		var existing models.Medicine
		if err := h.DB.Where("name = ? AND id != ?", req.Name, medicine.ID).First(&existing).Error; err == nil {
			utils.Conflict(c, "Another medicine with this name already exists")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
		medicine.Name = req.Name
	}
	if req.Stock != nil {
		medicine.Stock = *req.Stock
	}
	if req.SoldUnits != nil {
		medicine.SoldUnits = *req.SoldUnits
	}
	if req.BuyingPrice != nil {
		medicine.BuyingPrice = *req.BuyingPrice
	}
	if req.SellingPrice != nil {
		medicine.SellingPrice = *req.SellingPrice
	}
	if req.Unit != "" {
		medicine.Unit = req.Unit
	}

	if err := h.DB.Save(&medicine).Error; err != nil {
		utils.InternalServerError(c, "Failed to update medicine: "+err.Error())
		return
	}

	utils.Success(c, "Medicine updated successfully", medicine)
}

// DeleteMedicine handles removing a medicine from the formulary.
func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	medicineID := c.Param("id")

	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", medicineID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medicine not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&medicine).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete medicine: "+err.Error())
		return
	}

	utils.Success(c, "Medicine deleted successfully", nil)
}
