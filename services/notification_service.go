package services

import (
	"fmt"
	"log"
	"time"

	"github.com/wyndale/Green-Roots-sub001/config"
	"github.com/wyndale/Green-Roots-sub001/models"

	"gorm.io/gorm"
)

// NotifyDecision records an in-app notification for the submitter after a
// review decision and sends a best-effort email. Notification failures are
// logged, never bubbled up: the decision itself already committed.
func NotifyDecision(db *gorm.DB, submission *models.Submission) {
	var title, message, kind string
	switch submission.Status {
	case models.StatusApproved:
		points := 0
		if submission.EcoPoints != nil {
			points = *submission.EcoPoints
		}
		title = "Submission approved"
		message = fmt.Sprintf("Your submission %s was approved. %d eco points have been added to your account.",
			submission.SubmissionNumber, points)
		kind = "success"
	case models.StatusRejected:
		reason := ""
		if submission.RejectionReason != nil {
			reason = *submission.RejectionReason
		}
		title = "Submission rejected"
		message = fmt.Sprintf("Your submission %s was rejected. Reason: %s", submission.SubmissionNumber, reason)
		kind = "warning"
	default:
		return
	}

	submissionID := uint(submission.SubmissionID)
	notification := models.Notification{
		UserID:              uint(submission.SubmitterID),
		Title:               title,
		Message:             message,
		Type:                kind,
		RelatedSubmissionID: &submissionID,
		CreateAt:            time.Now(),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create decision notification for submission %d: %v", submission.SubmissionID, err)
	}

	var submitter models.User
	if err := db.Where("user_id = ? AND delete_at IS NULL", submission.SubmitterID).First(&submitter).Error; err != nil {
		log.Printf("Warning: failed to load submitter %d for decision email: %v", submission.SubmitterID, err)
		return
	}

	html := fmt.Sprintf("<p>Hello %s,</p><p>%s</p><p>- Green Roots</p>", submitter.FullName(), message)
	if err := config.SendMail([]string{submitter.Email}, title, html); err != nil {
		log.Printf("Warning: failed to send decision email for submission %d: %v", submission.SubmissionID, err)
	}
}

// NotifyRedemption records an in-app notification after a successful
// redemption and sends a best-effort email. Same contract as NotifyDecision:
// the redemption already committed, failures here are only logged.
func NotifyRedemption(db *gorm.DB, redemption *models.RewardRedemption) {
	var reward models.Reward
	if err := db.Where("reward_id = ?", redemption.RewardID).First(&reward).Error; err != nil {
		log.Printf("Warning: failed to load reward %d for redemption notification: %v", redemption.RewardID, err)
		return
	}

	title := "Reward redeemed"
	message := fmt.Sprintf("You redeemed %s for %d eco points.", reward.Name, redemption.SpentPoints)

	notification := models.Notification{
		UserID:   uint(redemption.UserID),
		Title:    title,
		Message:  message,
		Type:     "info",
		CreateAt: time.Now(),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create redemption notification for user %d: %v", redemption.UserID, err)
	}

	var citizen models.User
	if err := db.Where("user_id = ? AND delete_at IS NULL", redemption.UserID).First(&citizen).Error; err != nil {
		log.Printf("Warning: failed to load user %d for redemption email: %v", redemption.UserID, err)
		return
	}

	html := fmt.Sprintf("<p>Hello %s,</p><p>%s</p><p>- Green Roots</p>", citizen.FullName(), message)
	if err := config.SendMail([]string{citizen.Email}, title, html); err != nil {
		log.Printf("Warning: failed to send redemption email for user %d: %v", redemption.UserID, err)
	}
}
