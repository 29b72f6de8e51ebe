package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wyndale/Green-Roots-sub001/config"
	"github.com/wyndale/Green-Roots-sub001/models"
	"github.com/wyndale/Green-Roots-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateSubmission records tree-planting evidence from a citizen. The photo
// must already be in the asset store; only its reference is kept here.
func CreateSubmission(c *gin.Context) {
	type SubmissionRequest struct {
		BarangayID   int      `json:"barangay_id" binding:"required"`
		SiteID       *int     `json:"site_id"`
		TreesPlanted int      `json:"trees_planted" binding:"required,gte=1"`
		EvidenceRef  string   `json:"evidence_ref" binding:"required"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
		Notes        string   `json:"notes"`
	}

	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	if (req.Latitude == nil) != (req.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude and longitude must be provided together"})
		return
	}
	if req.Latitude != nil && !utils.ValidateCoordinates(*req.Latitude, *req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	var barangay models.Barangay
	if err := config.DB.Where("barangay_id = ? AND is_active = 1 AND delete_at IS NULL", req.BarangayID).
		First(&barangay).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Barangay not found or inactive"})
		return
	}

	if req.SiteID != nil {
		var site models.PlantingSite
		if err := config.DB.Where("site_id = ? AND barangay_id = ? AND delete_at IS NULL", *req.SiteID, req.BarangayID).
			First(&site).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Planting site does not belong to the barangay"})
			return
		}
	}

	submission := models.Submission{
		SubmissionNumber: generateSubmissionNumber(),
		SubmitterID:      userID.(int),
		BarangayID:       req.BarangayID,
		SiteID:           req.SiteID,
		TreesPlanted:     req.TreesPlanted,
		EvidenceRef:      req.EvidenceRef,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Status:           models.StatusPending,
		SubmittedAt:      time.Now(),
	}
	if notes := utils.SanitizeInput(req.Notes); notes != "" {
		submission.Notes = &notes
	}

	if err := config.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Submission created successfully",
		"submission": submission,
	})
}

// GetMySubmissions returns the caller's submissions with status filter and pagination
func GetMySubmissions(c *gin.Context) {
	userID, _ := c.Get("userID")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := config.DB.Model(&models.Submission{}).
		Where("submitter_id = ? AND delete_at IS NULL", userID)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	var submissions []models.Submission
	if err := query.Preload("Barangay").Preload("Site").
		Order("submitted_at DESC").Offset(offset).Limit(limit).
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"pagination": gin.H{
			"current_page": page,
			"per_page":     limit,
			"total":        total,
			"total_pages":  totalPages,
			"has_next":     page < int(totalPages),
			"has_prev":     page > 1,
		},
	})
}

// GetSubmission returns a single submission. Citizens see only their own,
// validators see their barangay's, admins see everything.
func GetSubmission(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var submission models.Submission
	if err := config.DB.Preload("Submitter").Preload("Barangay").Preload("Site").Preload("Decider").
		Where("submission_id = ? AND delete_at IS NULL", id).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	switch roleID.(int) {
	case models.RoleAdmin:
		// full access
	case models.RoleValidator:
		barangayID, exists := c.Get("barangayID")
		if !exists || submission.BarangayID != barangayID.(int) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Submission belongs to another barangay"})
			return
		}
	default:
		if submission.SubmitterID != userID.(int) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"submission": submission,
	})
}

// generateSubmissionNumber returns a human-readable reference like
// GRS-20250829-4F2A91C3. The random suffix avoids the day-counter race a
// COUNT-based sequence would have.
func generateSubmissionNumber() string {
	dateStr := time.Now().Format("20060102")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "GRS-" + dateStr + "-" + suffix
}
