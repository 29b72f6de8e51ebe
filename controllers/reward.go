package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/wyndale/Green-Roots-sub001/config"
	"github.com/wyndale/Green-Roots-sub001/models"
	"github.com/wyndale/Green-Roots-sub001/services"
	"github.com/wyndale/Green-Roots-sub001/utils"

	"github.com/gin-gonic/gin"
)

// GetRewards returns the active reward catalog
func GetRewards(c *gin.Context) {
	var rewards []models.Reward
	if err := config.DB.Where("is_active = 1 AND delete_at IS NULL").
		Order("points_cost").Find(&rewards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rewards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rewards": rewards,
		"total":   len(rewards),
	})
}

// GetRewardsAdmin returns all rewards including inactive ones (admin only)
func GetRewardsAdmin(c *gin.Context) {
	var rewards []models.Reward
	if err := config.DB.Where("delete_at IS NULL").Order("points_cost").Find(&rewards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rewards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rewards": rewards,
		"total":   len(rewards),
	})
}

// CreateReward adds a reward to the catalog (admin only)
func CreateReward(c *gin.Context) {
	type RewardRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		PointsCost  int    `json:"points_cost" binding:"required,gt=0"`
		Stock       int    `json:"stock" binding:"gte=0"`
	}

	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reward := models.Reward{
		Name:       utils.SanitizeInput(req.Name),
		PointsCost: req.PointsCost,
		Stock:      req.Stock,
		IsActive:   true,
		CreateAt:   time.Now(),
	}
	if description := utils.SanitizeInput(req.Description); description != "" {
		reward.Description = &description
	}

	if err := config.DB.Create(&reward).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reward"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reward created successfully",
		"reward":  reward,
	})
}

// UpdateReward updates a catalog entry (admin only)
func UpdateReward(c *gin.Context) {
	id := c.Param("id")

	var reward models.Reward
	if err := config.DB.Where("reward_id = ? AND delete_at IS NULL", id).First(&reward).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}

	type RewardUpdateRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		PointsCost  *int    `json:"points_cost"`
		Stock       *int    `json:"stock"`
		IsActive    *bool   `json:"is_active"`
	}

	var req RewardUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		reward.Name = utils.SanitizeInput(*req.Name)
	}
	if req.Description != nil {
		description := utils.SanitizeInput(*req.Description)
		reward.Description = &description
	}
	if req.PointsCost != nil {
		if *req.PointsCost <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Points cost must be positive"})
			return
		}
		reward.PointsCost = *req.PointsCost
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
		reward.Stock = *req.Stock
	}
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}

	now := time.Now()
	reward.UpdateAt = &now

	if err := config.DB.Save(&reward).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reward updated successfully",
		"reward":  reward,
	})
}

// DeleteReward soft-deletes a catalog entry (admin only). Past redemptions
// keep their copied spent_points, so history is unaffected.
func DeleteReward(c *gin.Context) {
	id := c.Param("id")

	var reward models.Reward
	if err := config.DB.Where("reward_id = ? AND delete_at IS NULL", id).First(&reward).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		return
	}

	now := time.Now()
	reward.IsActive = false
	reward.DeleteAt = &now
	reward.UpdateAt = &now

	if err := config.DB.Save(&reward).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted successfully"})
}

// RedeemReward spends the citizen's eco points on a reward
func RedeemReward(c *gin.Context) {
	rewardID, err := strconv.Atoi(c.Param("id"))
	if err != nil || rewardID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reward ID"})
		return
	}

	userID, _ := c.Get("userID")

	svc := services.NewRedemptionService(config.DB)
	redemption, err := svc.Redeem(userID.(int), rewardID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
		case errors.Is(err, services.ErrOutOfStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Reward is out of stock"})
		case errors.Is(err, services.ErrInsufficientPoints):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough eco points for this reward"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem reward"})
		}
		return
	}

	services.NotifyRedemption(config.DB, redemption)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Reward redeemed successfully",
		"redemption": redemption,
	})
}

// GetMyPoints returns the caller's eco point balance
func GetMyPoints(c *gin.Context) {
	userID, _ := c.Get("userID")

	svc := services.NewPointsService(config.DB)
	earned, spent, available, err := svc.BalanceForUser(userID.(int))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute point balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"earned":    earned,
		"spent":     spent,
		"available": available,
	})
}

// GetLeaderboard ranks barangays by awarded eco points
func GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	svc := services.NewPointsService(config.DB)
	rows, err := svc.Leaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": rows,
		"total":       len(rows),
	})
}
