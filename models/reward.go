package models

import "time"

// Reward is a catalog item citizens can redeem with eco points.
type Reward struct {
	RewardID    int        `gorm:"primaryKey;column:reward_id" json:"reward_id"`
	Name        string     `gorm:"column:name" json:"name"`
	Description *string    `gorm:"column:description" json:"description,omitempty"`
	PointsCost  int        `gorm:"column:points_cost" json:"points_cost"`
	Stock       int        `gorm:"column:stock" json:"stock"`
	IsActive    bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// RewardRedemption records a citizen spending points on a reward.
// SpentPoints is copied from the reward at redemption time so later price
// changes do not rewrite history.
type RewardRedemption struct {
	RedemptionID int       `gorm:"primaryKey;column:redemption_id" json:"redemption_id"`
	RewardID     int       `gorm:"column:reward_id" json:"reward_id"`
	UserID       int       `gorm:"column:user_id" json:"user_id"`
	SpentPoints  int       `gorm:"column:spent_points" json:"spent_points"`
	RedeemedAt   time.Time `gorm:"column:redeemed_at" json:"redeemed_at"`

	Reward *Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides
func (Reward) TableName() string {
	return "rewards"
}

func (RewardRedemption) TableName() string {
	return "reward_redemptions"
}
