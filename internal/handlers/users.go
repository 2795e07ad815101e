package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserHandler handles staff management requests (admin operations).
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateUserRequest represents the request body for registering a staff member.
type CreateUserRequest struct {
	FirstName   string `json:"firstName" binding:"required,max=50"`
	LastName    string `json:"lastName" binding:"required,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"required,oneof=receptionist nurse doctor lab_tech imaging_tech pharmacist admin"`
	NationalID  string `json:"nationalId" binding:"omitempty,nationalid"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,kephone"`
}

// CreateUser handles registering a new staff member.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		NationalID: req.NationalID,
		Role:       models.Role(req.Role),
	}

	if req.PhoneNumber != "" {
		phone, err := utils.NormalizePhone(req.PhoneNumber)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		user.PhoneNumber = phone
	}

	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	utils.Created(c, "User successfully registered", user.Sanitize())
}

// GetUsers handles fetching all staff members.
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitizedUsers := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitizedUsers[i] = u.Sanitize()
	}

	utils.Success(c, "Users fetched successfully", sanitizedUsers)
}

// GetUserByID handles fetching a single staff member by ID.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// UpdateUserRequest represents the request body for updating a staff member.
type UpdateUserRequest struct {
	FirstName   string `json:"firstName" binding:"omitempty,max=50"`
	LastName    string `json:"lastName" binding:"omitempty,max=50"`
	Email       string `json:"email" binding:"omitempty,email"`
	Role        string `json:"role" binding:"omitempty,oneof=receptionist nurse doctor lab_tech imaging_tech pharmacist admin"`
	NationalID  string `json:"nationalId" binding:"omitempty,nationalid"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,kephone"`
}

// UpdateUser handles partially updating a staff member by ID.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var req UpdateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" && req.Email != user.Email {
		// Check if new email is already taken
		var existingUser models.User
		if err := h.DB.Where("email = ? AND id != ?", req.Email, user.ID).First(&existingUser).Error; err == nil {
			utils.BadRequest(c, "New email is already in use")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = models.Role(req.Role)
	}
	if req.NationalID != "" {
		user.NationalID = req.NationalID
	}
	if req.PhoneNumber != "" {
		phone, err := utils.NormalizePhone(req.PhoneNumber)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		user.PhoneNumber = phone
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}

	utils.Success(c, "User successfully updated", user.Sanitize())
}

// DeleteUser handles deleting a staff member by ID. Records authored by the
// user (triage, consultations, test requests, prescriptions) go with them.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Select(clause.Associations).Delete(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}

	utils.Success(c, "User deleted successfully", nil)
}
