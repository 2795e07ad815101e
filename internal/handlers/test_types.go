package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TestTypeHandler handles the lab/imaging price list.
type TestTypeHandler struct {
	DB *gorm.DB
}

// NewTestTypeHandler creates a new TestTypeHandler.
func NewTestTypeHandler(db *gorm.DB) *TestTypeHandler {
	return &TestTypeHandler{DB: db}
}

// CreateTestTypeRequest represents the request body for a price-list entry.
type CreateTestTypeRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Category string  `json:"category" binding:"required,oneof=lab imaging"`
}

// CreateTestType handles adding a test to the price list.
func (h *TestTypeHandler) CreateTestType(c *gin.Context) {
	var req CreateTestTypeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.TestType
	if err := h.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.Conflict(c, "Test type with this name already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	testType := models.TestType{
		Name:     req.Name,
		Price:    req.Price,
		Category: models.TestCategory(req.Category),
	}

	if err := h.DB.Create(&testType).Error; err != nil {
		utils.InternalServerError(c, "Failed to create test type: "+err.Error())
		return
	}

	utils.Created(c, "Test type created successfully", testType)
}

// GetTestTypes handles fetching the full price list.
func (h *TestTypeHandler) GetTestTypes(c *gin.Context) {
	var testTypes []models.TestType
	if err := h.DB.Find(&testTypes).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch test types: "+err.Error())
		return
	}

	utils.Success(c, "Test types fetched successfully", testTypes)
}

// GetTestTypeByID handles fetching a price-list entry by ID.
func (h *TestTypeHandler) GetTestTypeByID(c *gin.Context) {
	testTypeID := c.Param("id")

	var testType models.TestType
	if err := h.DB.First(&testType, "id = ?", testTypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Test type not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Test type fetched successfully", testType)
}

// UpdateTestTypeRequest represents the request body for a price-list update.
type UpdateTestTypeRequest struct {
	Name     string   `json:"name" binding:"omitempty,max=100"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0"`
	Category string   `json:"category" binding:"omitempty,oneof=lab imaging"`
}

// UpdateTestType handles updating a price-list entry by ID.
func (h *TestTypeHandler) UpdateTestType(c *gin.Context) {
	testTypeID := c.Param("id")

	var req UpdateTestTypeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var testType models.TestType
	if err := h.DB.First(&testType, "id = ?", testTypeID).Error; err != nil {
		utils.NotFound(c, "Test type not found")
		return
	}

	if req.Name != "" && req.Name != testType.Name {
		var existing models.TestType
		if err := h.DB.Where("name = ? AND id != ?", req.Name, testType.ID).First(&existing).Error; err == nil {
			utils.Conflict(c, "Another test type with this name already exists")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
		testType.Name = req.Name
	}
	if req.Price != nil {
		testType.Price = *req.Price
	}
	if req.Category != "" {
		testType.Category = models.TestCategory(req.Category)
	}

	if err := h.DB.Save(&testType).Error; err != nil {
		utils.InternalServerError(c, "Failed to update test type: "+err.Error())
		return
	}

	utils.Success(c, "Test type updated successfully", testType)
}

// DeleteTestType handles removing a price-list entry by ID.
func (h *TestTypeHandler) DeleteTestType(c *gin.Context) {
	testTypeID := c.Param("id")

	var testType models.TestType
	if err := h.DB.First(&testType, "id = ?", testTypeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Test type not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&testType).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete test type: "+err.Error())
		return
	}

	utils.Success(c, "Test type deleted successfully", nil)
}
