package controllers

import (
	"net/http"
	"time"

	"github.com/wyndale/Green-Roots-sub001/config"
	"github.com/wyndale/Green-Roots-sub001/models"
	"github.com/wyndale/Green-Roots-sub001/utils"

	"github.com/gin-gonic/gin"
)

// GetBarangays returns active barangays for dropdowns and listings
func GetBarangays(c *gin.Context) {
	var barangays []models.Barangay
	query := config.DB.Where("is_active = 1 AND delete_at IS NULL")

	if region := c.Query("region"); region != "" {
		query = query.Where("region = ?", region)
	}
	if province := c.Query("province"); province != "" {
		query = query.Where("province = ?", province)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	if err := query.Order("name").Find(&barangays).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch barangays"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barangays": barangays,
		"total":     len(barangays),
	})
}

// GetBarangaysAdmin returns all barangays including inactive ones (admin only)
func GetBarangaysAdmin(c *gin.Context) {
	var barangays []models.Barangay
	if err := config.DB.Where("delete_at IS NULL").Order("province, city, name").Find(&barangays).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch barangays"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barangays": barangays,
		"total":     len(barangays),
	})
}

// CreateBarangay creates a new barangay (admin only)
func CreateBarangay(c *gin.Context) {
	type BarangayRequest struct {
		Name     string `json:"name" binding:"required"`
		City     string `json:"city" binding:"required"`
		Province string `json:"province" binding:"required"`
		Region   string `json:"region" binding:"required"`
	}

	var req BarangayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	barangay := models.Barangay{
		Name:     utils.SanitizeInput(req.Name),
		City:     utils.SanitizeInput(req.City),
		Province: utils.SanitizeInput(req.Province),
		Region:   utils.SanitizeInput(req.Region),
		IsActive: true,
		CreateAt: time.Now(),
	}

	if err := config.DB.Create(&barangay).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create barangay"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Barangay created successfully",
		"barangay": barangay,
	})
}

// UpdateBarangay updates barangay details (admin only)
func UpdateBarangay(c *gin.Context) {
	id := c.Param("id")

	var barangay models.Barangay
	if err := config.DB.Where("barangay_id = ? AND delete_at IS NULL", id).First(&barangay).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barangay not found"})
		return
	}

	type BarangayUpdateRequest struct {
		Name     *string `json:"name"`
		City     *string `json:"city"`
		Province *string `json:"province"`
		Region   *string `json:"region"`
		IsActive *bool   `json:"is_active"`
	}

	var req BarangayUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		barangay.Name = utils.SanitizeInput(*req.Name)
	}
	if req.City != nil {
		barangay.City = utils.SanitizeInput(*req.City)
	}
	if req.Province != nil {
		barangay.Province = utils.SanitizeInput(*req.Province)
	}
	if req.Region != nil {
		barangay.Region = utils.SanitizeInput(*req.Region)
	}
	if req.IsActive != nil {
		barangay.IsActive = *req.IsActive
	}

	now := time.Now()
	barangay.UpdateAt = &now

	if err := config.DB.Save(&barangay).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update barangay"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Barangay updated successfully",
		"barangay": barangay,
	})
}

// DeleteBarangay soft-deletes a barangay (admin only)
func DeleteBarangay(c *gin.Context) {
	id := c.Param("id")

	var barangay models.Barangay
	if err := config.DB.Where("barangay_id = ? AND delete_at IS NULL", id).First(&barangay).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barangay not found"})
		return
	}

	// Barangays with assigned validators keep their scoping; block the delete.
	var validators int64
	config.DB.Model(&models.User{}).
		Where("barangay_id = ? AND role_id = ? AND delete_at IS NULL", barangay.BarangayID, models.RoleValidator).
		Count(&validators)
	if validators > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Barangay still has assigned validators"})
		return
	}

	now := time.Now()
	barangay.DeleteAt = &now
	barangay.UpdateAt = &now

	if err := config.DB.Save(&barangay).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete barangay"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Barangay deleted successfully"})
}
