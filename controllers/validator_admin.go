package controllers

import (
	"net/http"
	"time"

	"github.com/wyndale/Green-Roots-sub001/config"
	"github.com/wyndale/Green-Roots-sub001/models"
	"github.com/wyndale/Green-Roots-sub001/utils"

	"github.com/gin-gonic/gin"
)

// GetValidators lists validator accounts with their barangay assignment (admin only)
func GetValidators(c *gin.Context) {
	var validators []models.User
	query := config.DB.Preload("Barangay").
		Where("role_id = ? AND delete_at IS NULL", models.RoleValidator)

	if barangayID := c.Query("barangay_id"); barangayID != "" {
		query = query.Where("barangay_id = ?", barangayID)
	}

	if err := query.Order("last_name, first_name").Find(&validators).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch validators"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"validators": validators,
		"total":      len(validators),
	})
}

// CreateValidator creates a validator account bound to one barangay (admin only)
func CreateValidator(c *gin.Context) {
	type ValidatorRequest struct {
		FirstName  string `json:"first_name" binding:"required"`
		LastName   string `json:"last_name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=8"`
		BarangayID int    `json:"barangay_id" binding:"required"`
	}

	var req ValidatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	var barangay models.Barangay
	if err := config.DB.Where("barangay_id = ? AND is_active = 1 AND delete_at IS NULL", req.BarangayID).
		First(&barangay).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Barangay not found or inactive"})
		return
	}

	var existing int64
	config.DB.Model(&models.User{}).
		Where("email = ? AND delete_at IS NULL", req.Email).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already in use"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create validator"})
		return
	}

	now := time.Now()
	barangayID := req.BarangayID
	validator := models.User{
		FirstName:  utils.SanitizeInput(req.FirstName),
		LastName:   utils.SanitizeInput(req.LastName),
		Email:      req.Email,
		Password:   hashed,
		RoleID:     models.RoleValidator,
		BarangayID: &barangayID,
		IsActive:   true,
		CreateAt:   &now,
	}

	if err := config.DB.Create(&validator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create validator"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Validator created successfully",
		"validator": validator,
	})
}

// UpdateValidator reassigns or deactivates a validator (admin only)
func UpdateValidator(c *gin.Context) {
	id := c.Param("id")

	var validator models.User
	if err := config.DB.Where("user_id = ? AND role_id = ? AND delete_at IS NULL", id, models.RoleValidator).
		First(&validator).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Validator not found"})
		return
	}

	type ValidatorUpdateRequest struct {
		BarangayID *int  `json:"barangay_id"`
		IsActive   *bool `json:"is_active"`
	}

	var req ValidatorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BarangayID != nil {
		var barangay models.Barangay
		if err := config.DB.Where("barangay_id = ? AND is_active = 1 AND delete_at IS NULL", *req.BarangayID).
			First(&barangay).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Barangay not found or inactive"})
			return
		}
		validator.BarangayID = req.BarangayID
	}
	if req.IsActive != nil {
		validator.IsActive = *req.IsActive
	}

	now := time.Now()
	validator.UpdateAt = &now

	if err := config.DB.Save(&validator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update validator"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Validator updated successfully",
		"validator": validator,
	})
}
