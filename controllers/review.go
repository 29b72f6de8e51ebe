package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/wyndale/Green-Roots-sub001/config"
	"github.com/wyndale/Green-Roots-sub001/models"
	"github.com/wyndale/Green-Roots-sub001/services"
	"github.com/wyndale/Green-Roots-sub001/utils"

	"github.com/gin-gonic/gin"
)

// validatorFromContext builds the acting validator from the auth middleware
// context. Validators without a barangay assignment cannot review anything.
func validatorFromContext(c *gin.Context) (services.Validator, bool) {
	userID, _ := c.Get("userID")
	barangayID, exists := c.Get("barangayID")
	if !exists {
		c.JSON(http.StatusForbidden, gin.H{"error": "Validator has no barangay assignment"})
		return services.Validator{}, false
	}
	return services.Validator{ID: userID.(int), BarangayID: barangayID.(int)}, true
}

// GetReviewQueue returns the pending submissions for the validator's barangay
func GetReviewQueue(c *gin.Context) {
	validator, ok := validatorFromContext(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := utils.SanitizeInput(c.Query("search"))

	store := services.NewSubmissionStore(config.DB)
	result, err := store.ListByBarangayAndStatus(validator.BarangayID, []string{models.StatusPending}, search, page, limit)
	if err != nil {
		status, message := reviewErrorResponse(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	respondSubmissionPage(c, result, page, limit)
}

// GetReviewHistory returns submissions already decided in the validator's barangay
func GetReviewHistory(c *gin.Context) {
	validator, ok := validatorFromContext(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := utils.SanitizeInput(c.Query("search"))

	statuses := []string{models.StatusApproved, models.StatusRejected}
	switch strings.TrimSpace(c.Query("status")) {
	case models.StatusApproved:
		statuses = []string{models.StatusApproved}
	case models.StatusRejected:
		statuses = []string{models.StatusRejected}
	}

	store := services.NewSubmissionStore(config.DB)
	result, err := store.ListByBarangayAndStatus(validator.BarangayID, statuses, search, page, limit)
	if err != nil {
		status, message := reviewErrorResponse(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	respondSubmissionPage(c, result, page, limit)
}

// ApproveSubmission approves a pending submission and awards eco points
func ApproveSubmission(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	validator, ok := validatorFromContext(c)
	if !ok {
		return
	}

	svc := services.NewReviewService(services.NewSubmissionStore(config.DB))
	submission, err := svc.Approve(submissionID, validator)
	if err != nil {
		status, message := reviewErrorResponse(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	services.NotifyDecision(config.DB, submission)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission approved",
		"submission": submission,
	})
}

// RejectSubmission rejects a pending submission with a reason
func RejectSubmission(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	validator, ok := validatorFromContext(c)
	if !ok {
		return
	}

	svc := services.NewReviewService(services.NewSubmissionStore(config.DB))
	submission, err := svc.Reject(submissionID, validator, req.Reason)
	if err != nil {
		status, message := reviewErrorResponse(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	services.NotifyDecision(config.DB, submission)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission rejected",
		"submission": submission,
	})
}

// FlagSubmission toggles the manual review flag. Flagging is independent of
// the pending/approved/rejected status and never transitions it.
func FlagSubmission(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req struct {
		Flagged *bool `json:"flagged" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	validator, ok := validatorFromContext(c)
	if !ok {
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if submission.BarangayID != validator.BarangayID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Submission belongs to another barangay"})
		return
	}

	if err := config.DB.Model(&models.Submission{}).
		Where("submission_id = ?", submissionID).
		Update("flagged", *req.Flagged).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update flag"})
		return
	}

	submission.Flagged = *req.Flagged
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

func respondSubmissionPage(c *gin.Context, result *services.SubmissionPage, page, limit int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	totalPages := (result.Total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"submissions": result.Submissions,
		"pagination": gin.H{
			"current_page": page,
			"per_page":     limit,
			"total":        result.Total,
			"total_pages":  totalPages,
			"has_next":     page < int(totalPages),
			"has_prev":     page > 1,
		},
	})
}

// reviewErrorResponse maps workflow outcomes to HTTP statuses and
// human-readable messages.
func reviewErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "Submission not found"
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, "Submission belongs to another barangay"
	case errors.Is(err, services.ErrAlreadyDecided):
		return http.StatusConflict, "Submission has already been reviewed"
	case errors.Is(err, services.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Submission store is temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Failed to process decision"
	}
}
