package controllers

import (
	"net/http"
	"time"

	"github.com/wyndale/Green-Roots-sub001/config"
	"github.com/wyndale/Green-Roots-sub001/models"
	"github.com/wyndale/Green-Roots-sub001/utils"

	"github.com/gin-gonic/gin"
)

// GetPlantingSites returns active planting sites, optionally scoped to a barangay
func GetPlantingSites(c *gin.Context) {
	var sites []models.PlantingSite
	query := config.DB.Preload("Barangay").Where("is_active = 1 AND delete_at IS NULL")

	if barangayID := c.Query("barangay_id"); barangayID != "" {
		query = query.Where("barangay_id = ?", barangayID)
	}

	if err := query.Order("name").Find(&sites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch planting sites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sites": sites,
		"total": len(sites),
	})
}

// CreatePlantingSite creates a planting site (admin only)
func CreatePlantingSite(c *gin.Context) {
	type SiteRequest struct {
		BarangayID int      `json:"barangay_id" binding:"required"`
		Name       string   `json:"name" binding:"required"`
		Latitude   *float64 `json:"latitude"`
		Longitude  *float64 `json:"longitude"`
		Capacity   *int     `json:"capacity"`
	}

	var req SiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var barangay models.Barangay
	if err := config.DB.Where("barangay_id = ? AND is_active = 1 AND delete_at IS NULL", req.BarangayID).
		First(&barangay).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Barangay not found or inactive"})
		return
	}

	site := models.PlantingSite{
		BarangayID: req.BarangayID,
		Name:       utils.SanitizeInput(req.Name),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Capacity:   req.Capacity,
		IsActive:   true,
		CreateAt:   time.Now(),
	}

	if err := config.DB.Create(&site).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create planting site"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Planting site created successfully",
		"site":    site,
	})
}

// UpdatePlantingSite updates a planting site (admin only)
func UpdatePlantingSite(c *gin.Context) {
	id := c.Param("id")

	var site models.PlantingSite
	if err := config.DB.Where("site_id = ? AND delete_at IS NULL", id).First(&site).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Planting site not found"})
		return
	}

	type SiteUpdateRequest struct {
		Name      *string  `json:"name"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Capacity  *int     `json:"capacity"`
		IsActive  *bool    `json:"is_active"`
	}

	var req SiteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		site.Name = utils.SanitizeInput(*req.Name)
	}
	if req.Latitude != nil {
		site.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		site.Longitude = req.Longitude
	}
	if req.Capacity != nil {
		site.Capacity = req.Capacity
	}
	if req.IsActive != nil {
		site.IsActive = *req.IsActive
	}

	now := time.Now()
	site.UpdateAt = &now

	if err := config.DB.Save(&site).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update planting site"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Planting site updated successfully",
		"site":    site,
	})
}

// DeletePlantingSite soft-deletes a planting site (admin only)
func DeletePlantingSite(c *gin.Context) {
	id := c.Param("id")

	var site models.PlantingSite
	if err := config.DB.Where("site_id = ? AND delete_at IS NULL", id).First(&site).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Planting site not found"})
		return
	}

	now := time.Now()
	site.DeleteAt = &now
	site.UpdateAt = &now

	if err := config.DB.Save(&site).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete planting site"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Planting site deleted successfully"})
}
