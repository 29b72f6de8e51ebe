package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/wyndale/Green-Roots-sub001/config"
	"github.com/wyndale/Green-Roots-sub001/models"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists the caller's notifications, newest first
func GetNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")

	unreadOnly := strings.TrimSpace(c.Query("unreadOnly"))
	limit := 20
	offset := 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}

	q := config.DB.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly == "1" || strings.EqualFold(unreadOnly, "true") {
		q = q.Where("is_read = 0")
	}

	var items []models.Notification
	if err := q.Order("create_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetNotificationCounter returns the caller's unread count
func GetNotificationCounter(c *gin.Context) {
	userID, _ := c.Get("userID")

	var n int64
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = 0", userID).
		Count(&n).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// MarkNotificationRead marks one of the caller's notifications as read
func MarkNotificationRead(c *gin.Context) {
	userID, _ := c.Get("userID")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := config.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MarkAllNotificationsRead marks every unread notification of the caller as read
func MarkAllNotificationsRead(c *gin.Context) {
	userID, _ := c.Get("userID")

	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = 0", userID).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
