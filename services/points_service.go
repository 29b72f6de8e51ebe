package services

import (
	"fmt"

	"github.com/wyndale/Green-Roots-sub001/models"

	"gorm.io/gorm"
)

// PointsService answers eco point balance questions. Points are never stored
// as a running counter; the balance is always derived from approved
// submissions minus redemptions, so a lost update cannot corrupt it.
type PointsService struct {
	db *gorm.DB
}

func NewPointsService(db *gorm.DB) *PointsService {
	return &PointsService{db: db}
}

// BarangayPoints is one leaderboard row.
type BarangayPoints struct {
	BarangayID   int    `gorm:"column:barangay_id" json:"barangay_id"`
	BarangayName string `gorm:"column:barangay_name" json:"barangay_name"`
	TreesPlanted int64  `gorm:"column:trees_planted" json:"trees_planted"`
	EcoPoints    int64  `gorm:"column:eco_points" json:"eco_points"`
}

// BalanceForUser returns earned, spent and available points for a citizen.
func (s *PointsService) BalanceForUser(userID int) (earned, spent, available int64, err error) {
	row := s.db.Model(&models.Submission{}).
		Select("COALESCE(SUM(eco_points), 0)").
		Where("submitter_id = ? AND status = ? AND delete_at IS NULL", userID, models.StatusApproved).
		Row()
	if scanErr := row.Scan(&earned); scanErr != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, scanErr)
	}

	row = s.db.Model(&models.RewardRedemption{}).
		Select("COALESCE(SUM(spent_points), 0)").
		Where("user_id = ?", userID).
		Row()
	if scanErr := row.Scan(&spent); scanErr != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, scanErr)
	}

	return earned, spent, earned - spent, nil
}

// Leaderboard ranks barangays by awarded eco points.
func (s *PointsService) Leaderboard(limit int) ([]BarangayPoints, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var rows []BarangayPoints
	err := s.db.Model(&models.Submission{}).
		Select("submissions.barangay_id AS barangay_id, barangays.name AS barangay_name, "+
			"COALESCE(SUM(submissions.trees_planted), 0) AS trees_planted, "+
			"COALESCE(SUM(submissions.eco_points), 0) AS eco_points").
		Joins("JOIN barangays ON barangays.barangay_id = submissions.barangay_id").
		Where("submissions.status = ? AND submissions.delete_at IS NULL", models.StatusApproved).
		Group("submissions.barangay_id, barangays.name").
		Order("eco_points DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return rows, nil
}
