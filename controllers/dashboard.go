package controllers

import (
	"net/http"

	"github.com/wyndale/Green-Roots-sub001/config"
	"github.com/wyndale/Green-Roots-sub001/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns program-wide totals for the admin dashboard
func GetDashboardStats(c *gin.Context) {
	type statusCount struct {
		Status string `gorm:"column:status" json:"status"`
		Count  int64  `gorm:"column:count" json:"count"`
	}

	var byStatus []statusCount
	if err := config.DB.Model(&models.Submission{}).
		Select("status, COUNT(*) AS count").
		Where("delete_at IS NULL").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	var treesPlanted int64
	if err := config.DB.Model(&models.Submission{}).
		Select("COALESCE(SUM(trees_planted), 0)").
		Where("status = ? AND delete_at IS NULL", models.StatusApproved).
		Row().Scan(&treesPlanted); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	var pointsAwarded int64
	if err := config.DB.Model(&models.Submission{}).
		Select("COALESCE(SUM(eco_points), 0)").
		Where("status = ? AND delete_at IS NULL", models.StatusApproved).
		Row().Scan(&pointsAwarded); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}

	var flagged int64
	config.DB.Model(&models.Submission{}).
		Where("flagged = 1 AND delete_at IS NULL").
		Count(&flagged)

	var barangays int64
	config.DB.Model(&models.Barangay{}).
		Where("is_active = 1 AND delete_at IS NULL").
		Count(&barangays)

	var validators int64
	config.DB.Model(&models.User{}).
		Where("role_id = ? AND is_active = 1 AND delete_at IS NULL", models.RoleValidator).
		Count(&validators)

	c.JSON(http.StatusOK, gin.H{
		"submissions_by_status": byStatus,
		"trees_planted":         treesPlanted,
		"points_awarded":        pointsAwarded,
		"flagged_submissions":   flagged,
		"active_barangays":      barangays,
		"active_validators":     validators,
	})
}

// GetBarangayBreakdown returns per-barangay submission counts for the admin dashboard
func GetBarangayBreakdown(c *gin.Context) {
	type barangayRow struct {
		BarangayID   int    `gorm:"column:barangay_id" json:"barangay_id"`
		BarangayName string `gorm:"column:barangay_name" json:"barangay_name"`
		Pending      int64  `gorm:"column:pending" json:"pending"`
		Approved     int64  `gorm:"column:approved" json:"approved"`
		Rejected     int64  `gorm:"column:rejected" json:"rejected"`
		TreesPlanted int64  `gorm:"column:trees_planted" json:"trees_planted"`
	}

	var rows []barangayRow
	err := config.DB.Model(&models.Submission{}).
		Select("submissions.barangay_id AS barangay_id, barangays.name AS barangay_name, "+
			"SUM(CASE WHEN submissions.status = 'pending' THEN 1 ELSE 0 END) AS pending, "+
			"SUM(CASE WHEN submissions.status = 'approved' THEN 1 ELSE 0 END) AS approved, "+
			"SUM(CASE WHEN submissions.status = 'rejected' THEN 1 ELSE 0 END) AS rejected, "+
			"COALESCE(SUM(CASE WHEN submissions.status = 'approved' THEN submissions.trees_planted ELSE 0 END), 0) AS trees_planted").
		Joins("JOIN barangays ON barangays.barangay_id = submissions.barangay_id").
		Where("submissions.delete_at IS NULL").
		Group("submissions.barangay_id, barangays.name").
		Order("barangay_name").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch barangay breakdown"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barangays": rows,
		"total":     len(rows),
	})
}
