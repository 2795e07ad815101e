package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PharmacyExpenseHandler handles stock purchases and their cost tracking.
type PharmacyExpenseHandler struct {
	DB *gorm.DB
}

// NewPharmacyExpenseHandler creates a new PharmacyExpenseHandler.
func NewPharmacyExpenseHandler(db *gorm.DB) *PharmacyExpenseHandler {
	return &PharmacyExpenseHandler{DB: db}
}

// CreatePharmacyExpenseRequest represents the request body for a restock.
type CreatePharmacyExpenseRequest struct {
	MedicineID    string  `json:"medicineId" binding:"required"`
	QuantityAdded int     `json:"quantityAdded" binding:"required,gt=0"`
	Discount      float64 `json:"discount" binding:"omitempty,min=0"`
}

// CreatePharmacyExpense records a restock: the medicine's stock grows by the
// quantity and the cost is derived from the buying price less any discount.
func (h *PharmacyExpenseHandler) CreatePharmacyExpense(c *gin.Context) {
	var req CreatePharmacyExpenseRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var medicine models.Medicine
	if err := h.DB.First(&medicine, "id = ?", req.MedicineID).Error; err != nil {
		utils.NotFound(c, "Medicine not found")
		return
	}

	expense := models.PharmacyExpense{
		MedicineID:    req.MedicineID,
		QuantityAdded: req.QuantityAdded,
		Discount:      req.Discount,
		TotalCost:     models.ExpenseTotal(medicine.BuyingPrice, req.QuantityAdded, req.Discount),
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		medicine.Stock += req.QuantityAdded
		return tx.Save(&medicine).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to record expense: "+err.Error())
		return
	}

	expense.Medicine = medicine
	utils.Created(c, "Pharmacy expense recorded successfully", expense)
}

// GetPharmacyExpenses handles fetching all restock records.
func (h *PharmacyExpenseHandler) GetPharmacyExpenses(c *gin.Context) {
	var expenses []models.PharmacyExpense
	if err := h.DB.Preload("Medicine").Find(&expenses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch expenses: "+err.Error())
		return
	}

	utils.Success(c, "Pharmacy expenses fetched successfully", expenses)
}

// GetPharmacyExpenseByID handles fetching a restock record by ID.
func (h *PharmacyExpenseHandler) GetPharmacyExpenseByID(c *gin.Context) {
	expenseID := c.Param("id")

	var expense models.PharmacyExpense
	if err := h.DB.Preload("Medicine").First(&expense, "id = ?", expenseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Pharmacy expense not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Pharmacy expense fetched successfully", expense)
}

// DeletePharmacyExpense voids a restock, taking the added quantity back out
// of stock. Fails if the stock has already been dispensed below that level.
func (h *PharmacyExpenseHandler) DeletePharmacyExpense(c *gin.Context) {
	expenseID := c.Param("id")

	var expense models.PharmacyExpense
	if err := h.DB.Preload("Medicine").First(&expense, "id = ?", expenseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Pharmacy expense not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if expense.Medicine.Stock < expense.QuantityAdded {
		utils.BadRequest(c, "Cannot void expense: stock has already been dispensed")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		medicine := expense.Medicine
		medicine.Stock -= expense.QuantityAdded
		if err := tx.Save(&medicine).Error; err != nil {
			return err
		}
		return tx.Delete(&expense).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete expense: "+err.Error())
		return
	}

	utils.Success(c, "Pharmacy expense deleted successfully", nil)
}
