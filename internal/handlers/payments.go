package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentHandler handles payments against visits and OTC sales.
type PaymentHandler struct {
	DB *gorm.DB
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db}
}

// checkReceptionist verifies the receptionist exists and holds the role.
func (h *PaymentHandler) checkReceptionist(receptionistID string) string {
	var receptionist models.User
	if err := h.DB.First(&receptionist, "id = ?", receptionistID).Error; err != nil {
		return "Receptionist not found"
	}
	if receptionist.Role != models.RoleReceptionist {
		return "User must have the role 'receptionist'"
	}
	return ""
}

// CreatePaymentRequest represents the request body for recording a payment.
type CreatePaymentRequest struct {
	VisitID        *string `json:"visitId"`
	OTCSaleID      *string `json:"otcSaleId"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	ServiceType    string  `json:"serviceType" binding:"required,max=100"`
	PaymentMethod  string  `json:"paymentMethod" binding:"required,oneof=cash mpesa"`
	MpesaReceipt   string  `json:"mpesaReceipt" binding:"omitempty,max=100"`
	ReceptionistID string  `json:"receptionistId" binding:"required"`
}

// CreatePayment records a payment against exactly one of a visit or an OTC
// sale.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	payment := models.Payment{
		VisitID:        req.VisitID,
		OTCSaleID:      req.OTCSaleID,
		Amount:         req.Amount,
		ServiceType:    req.ServiceType,
		PaymentMethod:  models.PaymentMethod(req.PaymentMethod),
		MpesaReceipt:   req.MpesaReceipt,
		ReceptionistID: req.ReceptionistID,
	}

	if err := payment.ValidateTarget(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if msg := h.checkReceptionist(req.ReceptionistID); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	if payment.VisitID != nil && *payment.VisitID != "" {
		var visit models.Visit
		if err := h.DB.First(&visit, "id = ?", *payment.VisitID).Error; err != nil {
			utils.NotFound(c, "Visit not found")
			return
		}
	} else {
		var sale models.OTCSale
		if err := h.DB.First(&sale, "id = ?", *payment.OTCSaleID).Error; err != nil {
			utils.NotFound(c, "OTC sale not found")
			return
		}
	}

	if err := h.DB.Create(&payment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create payment: "+err.Error())
		return
	}

	utils.Created(c, "Payment recorded successfully", payment)
}

// GetPayments handles fetching all payments.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	var payments []models.Payment
	if err := h.DB.Find(&payments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch payments: "+err.Error())
		return
	}

	utils.Success(c, "Payments fetched successfully", payments)
}

// GetPaymentByID handles fetching a payment by ID.
func (h *PaymentHandler) GetPaymentByID(c *gin.Context) {
	paymentID := c.Param("id")

	var payment models.Payment
	if err := h.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Payment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Payment fetched successfully", payment)
}

// UpdatePaymentRequest represents the request body for correcting a payment.
type UpdatePaymentRequest struct {
	Amount        *float64 `json:"amount" binding:"omitempty,gt=0"`
	ServiceType   string   `json:"serviceType" binding:"omitempty,max=100"`
	PaymentMethod string   `json:"paymentMethod" binding:"omitempty,oneof=cash mpesa"`
	MpesaReceipt  *string  `json:"mpesaReceipt"`
}

// UpdatePayment handles correcting a payment by ID. The payment target
// (visit or OTC sale) is immutable once recorded.
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	paymentID := c.Param("id")

	var req UpdatePaymentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var payment models.Payment
	if err := h.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}

	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.ServiceType != "" {
		payment.ServiceType = req.ServiceType
	}
	if req.PaymentMethod != "" {
		payment.PaymentMethod = models.PaymentMethod(req.PaymentMethod)
	}
	if req.MpesaReceipt != nil {
		payment.MpesaReceipt = *req.MpesaReceipt
	}

	if err := h.DB.Save(&payment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update payment: "+err.Error())
		return
	}

	utils.Success(c, "Payment updated successfully", payment)
}

// DeletePayment handles voiding a payment by ID.
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	paymentID := c.Param("id")

	var payment models.Payment
	if err := h.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Payment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&payment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete payment: "+err.Error())
		return
	}

	utils.Success(c, "Payment deleted successfully", nil)
}
