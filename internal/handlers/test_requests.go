package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TestRequestHandler handles lab and imaging test orders.
type TestRequestHandler struct {
	DB *gorm.DB
}

// NewTestRequestHandler creates a new TestRequestHandler.
func NewTestRequestHandler(db *gorm.DB) *TestRequestHandler {
	return &TestRequestHandler{DB: db}
}

// TestRequestResponse is a test request with the price-list derivations.
type TestRequestResponse struct {
	models.TestRequest
	Amount   float64             `json:"amount"`
	Category models.TestCategory `json:"category"`
}

func testRequestResponse(tr models.TestRequest) TestRequestResponse {
	return TestRequestResponse{
		TestRequest: tr,
		Amount:      tr.Amount(),
		Category:    tr.TestType.Category,
	}
}

// checkTechnician verifies the technician exists and that their role matches
// the test category (lab -> lab_tech, imaging -> imaging_tech).
func (h *TestRequestHandler) checkTechnician(technicianID string, category models.TestCategory) string {
	var technician models.User
	if err := h.DB.First(&technician, "id = ?", technicianID).Error; err != nil {
		return "Technician does not exist"
	}
	if technician.Role != models.TechnicianRoleFor(category) {
		if category == models.CategoryImaging {
			return "Imaging tests must be assigned to an imaging technician"
		}
		return "Lab tests must be assigned to a lab technician"
	}
	return ""
}

// CreateTestRequestRequest represents the request body for ordering a test.
type CreateTestRequestRequest struct {
	TestTypeID     string  `json:"testTypeId" binding:"required"`
	ConsultationID *string `json:"consultationId"`
	VisitID        *string `json:"visitId"`
	TechnicianID   *string `json:"technicianId"`
	Results        string  `json:"results"`
	Notes          string  `json:"notes"`
	Status         string  `json:"status" binding:"omitempty,oneof=pending completed"`
}

// CreateTestRequest orders a test against a consultation or directly against
// a visit (walk-in tests). Exactly one parent must be given.
func (h *TestRequestHandler) CreateTestRequest(c *gin.Context) {
	var req CreateTestRequestRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	hasConsultation := req.ConsultationID != nil && *req.ConsultationID != ""
	hasVisit := req.VisitID != nil && *req.VisitID != ""
	if hasConsultation == hasVisit {
		utils.BadRequest(c, "Exactly one of consultationId or visitId must be provided")
		return
	}

	var testType models.TestType
	if err := h.DB.First(&testType, "id = ?", req.TestTypeID).Error; err != nil {
		utils.BadRequest(c, "Invalid testTypeId")
		return
	}

	if hasConsultation {
		var consultation models.Consultation
		if err := h.DB.First(&consultation, "id = ?", *req.ConsultationID).Error; err != nil {
			utils.NotFound(c, "Consultation not found")
			return
		}
	} else {
		var visit models.Visit
		if err := h.DB.First(&visit, "id = ?", *req.VisitID).Error; err != nil {
			utils.NotFound(c, "Visit not found")
			return
		}
	}

	if req.TechnicianID != nil && *req.TechnicianID != "" {
		if msg := h.checkTechnician(*req.TechnicianID, testType.Category); msg != "" {
			utils.BadRequest(c, msg)
			return
		}
	}

	status := models.TestStatusPending
	if req.Status != "" {
		status = models.TestStatus(req.Status)
	}

	testRequest := models.TestRequest{
		TestTypeID:   req.TestTypeID,
		TechnicianID: req.TechnicianID,
		Results:      req.Results,
		Notes:        req.Notes,
		Status:       status,
	}
	if hasConsultation {
		testRequest.ConsultationID = req.ConsultationID
	} else {
		testRequest.VisitID = req.VisitID
	}

	if err := h.DB.Create(&testRequest).Error; err != nil {
		utils.InternalServerError(c, "Failed to create test request: "+err.Error())
		return
	}

	testRequest.TestType = testType
	utils.Created(c, "Test request created successfully", testRequestResponse(testRequest))
}

// GetTestRequests handles fetching all test requests.
func (h *TestRequestHandler) GetTestRequests(c *gin.Context) {
	var testRequests []models.TestRequest
	if err := h.DB.Preload("TestType").Find(&testRequests).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch test requests: "+err.Error())
		return
	}

	responses := make([]TestRequestResponse, len(testRequests))
	for i, tr := range testRequests {
		responses[i] = testRequestResponse(tr)
	}

	utils.Success(c, "Test requests fetched successfully", responses)
}

// GetTestRequestByID handles fetching a test request by ID.
func (h *TestRequestHandler) GetTestRequestByID(c *gin.Context) {
	testRequestID := c.Param("id")

	var testRequest models.TestRequest
	if err := h.DB.Preload("TestType").First(&testRequest, "id = ?", testRequestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Test request not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Test request fetched successfully", testRequestResponse(testRequest))
}

// UpdateTestRequestRequest represents the request body for updating a test
// request (usually the technician filling in results).
type UpdateTestRequestRequest struct {
	TestTypeID   string  `json:"testTypeId"`
	TechnicianID *string `json:"technicianId"`
	Results      *string `json:"results"`
	Notes        *string `json:"notes"`
	Status       string  `json:"status" binding:"omitempty,oneof=pending completed"`
}

// UpdateTestRequest handles updating a test request by ID.
func (h *TestRequestHandler) UpdateTestRequest(c *gin.Context) {
	testRequestID := c.Param("id")

	var req UpdateTestRequestRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var testRequest models.TestRequest
	if err := h.DB.Preload("TestType").First(&testRequest, "id = ?", testRequestID).Error; err != nil {
		utils.NotFound(c, "Test request not found")
		return
	}

	if req.TestTypeID != "" {
		var testType models.TestType
		if err := h.DB.First(&testType, "id = ?", req.TestTypeID).Error; err != nil {
			utils.BadRequest(c, "Invalid testTypeId")
			return
		}
		testRequest.TestTypeID = req.TestTypeID
		testRequest.TestType = testType
	}

	if req.TechnicianID != nil && *req.TechnicianID != "" {
		if msg := h.checkTechnician(*req.TechnicianID, testRequest.TestType.Category); msg != "" {
			utils.BadRequest(c, msg)
			return
		}
		testRequest.TechnicianID = req.TechnicianID
	}

	if req.Results != nil {
		testRequest.Results = *req.Results
	}
	if req.Notes != nil {
		testRequest.Notes = *req.Notes
	}
	if req.Status != "" {
		testRequest.Status = models.TestStatus(req.Status)
	}

	if err := h.DB.Save(&testRequest).Error; err != nil {
		utils.InternalServerError(c, "Failed to update test request: "+err.Error())
		return
	}

	utils.Success(c, "Test request updated successfully", testRequestResponse(testRequest))
}

// DeleteTestRequest handles deleting a test request by ID.
func (h *TestRequestHandler) DeleteTestRequest(c *gin.Context) {
	testRequestID := c.Param("id")

	var testRequest models.TestRequest
	if err := h.DB.First(&testRequest, "id = ?", testRequestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Test request not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&testRequest).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete test request: "+err.Error())
		return
	}

	utils.Success(c, "Test request deleted successfully", nil)
}
