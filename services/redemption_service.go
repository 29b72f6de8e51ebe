package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/wyndale/Green-Roots-sub001/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RedemptionService spends eco points on catalog rewards. The stock decrement
// is a conditional update and the balance is re-derived under a per-user row
// lock inside the same transaction, so neither stock nor points can go
// negative under concurrent redemptions.
type RedemptionService struct {
	db *gorm.DB
}

func NewRedemptionService(db *gorm.DB) *RedemptionService {
	return &RedemptionService{db: db}
}

// Redeem exchanges one unit of the reward for the citizen's points.
func (s *RedemptionService) Redeem(userID, rewardID int) (*models.RewardRedemption, error) {
	var redemption *models.RewardRedemption

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the user row first. The balance sums below read from the
		// transaction snapshot, so concurrent redemptions by the same user
		// must queue here or two of them could each pass the balance check.
		var citizen models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("user_id").
			Where("user_id = ? AND delete_at IS NULL", userID).
			First(&citizen).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		var reward models.Reward
		if err := tx.Where("reward_id = ? AND is_active = 1 AND delete_at IS NULL", rewardID).
			First(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		// Conditional decrement, mirrors the submission decision write: only
		// one of two racing redemptions can take the last unit.
		res := tx.Model(&models.Reward{}).
			Where("reward_id = ? AND stock > 0", rewardID).
			Update("stock", gorm.Expr("stock - 1"))
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrOutOfStock
		}

		row := models.RewardRedemption{
			RewardID:    rewardID,
			UserID:      userID,
			SpentPoints: reward.PointsCost,
			RedeemedAt:  time.Now(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		// Re-derive the balance with this redemption included; a negative
		// result rolls the whole transaction back.
		var earned, spent int64
		if err := tx.Model(&models.Submission{}).
			Select("COALESCE(SUM(eco_points), 0)").
			Where("submitter_id = ? AND status = ? AND delete_at IS NULL", userID, models.StatusApproved).
			Row().Scan(&earned); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if err := tx.Model(&models.RewardRedemption{}).
			Select("COALESCE(SUM(spent_points), 0)").
			Where("user_id = ?", userID).
			Row().Scan(&spent); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if earned-spent < 0 {
			return ErrInsufficientPoints
		}

		redemption = &row
		return nil
	})
	if err != nil {
		return nil, err
	}

	return redemption, nil
}
