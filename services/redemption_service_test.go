package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
)

var (
	userLockPattern       = regexp.MustCompile("SELECT .user_id. FROM .users. WHERE user_id = \\? AND delete_at IS NULL.*FOR UPDATE")
	rewardSelectPattern   = regexp.MustCompile("SELECT \\* FROM .rewards. WHERE reward_id = \\? AND is_active = 1 AND delete_at IS NULL")
	stockDecrementPattern = regexp.MustCompile("UPDATE .rewards. SET .stock.=stock - 1 WHERE reward_id = \\? AND stock > 0")
	redemptionInsert      = regexp.MustCompile("INSERT INTO .reward_redemptions.")
	earnedSumPattern      = regexp.MustCompile("SELECT COALESCE\\(SUM\\(eco_points\\), 0\\) FROM .submissions.")
	spentSumPattern       = regexp.MustCompile("SELECT COALESCE\\(SUM\\(spent_points\\), 0\\) FROM .reward_redemptions.")
)

func userLockRow(userID int64) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: userLockPattern,
		columns: []string{"user_id"},
		rows:    [][]driver.Value{{userID}},
	}
}

func rewardRow(id, cost, stock int64) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: rewardSelectPattern,
		columns: []string{"reward_id", "name", "points_cost", "stock", "is_active"},
		rows:    [][]driver.Value{{id, "Seedling kit", cost, stock, int64(1)}},
	}
}

func TestRedeemSpendsPointsAndDecrementsStock(t *testing.T) {
	steps := []*queryStep{
		userLockRow(12),
		rewardRow(3, 200, 5),
		{
			kind:    kindExec,
			pattern: stockDecrementPattern,
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: redemptionInsert,
			result:  scriptedResult{lastInsertID: 77, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: earnedSumPattern,
			columns: []string{"sum"},
			rows:    [][]driver.Value{{int64(660)}},
		},
		{
			kind:    kindQuery,
			pattern: spentSumPattern,
			columns: []string{"sum"},
			rows:    [][]driver.Value{{int64(200)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRedemptionService(db)
	redemption, err := svc.Redeem(12, 3)
	if err != nil {
		t.Fatalf("Redeem returned error: %v", err)
	}

	if redemption.RedemptionID != 77 {
		t.Fatalf("expected redemption id 77, got %d", redemption.RedemptionID)
	}
	if redemption.SpentPoints != 200 {
		t.Fatalf("expected 200 spent points, got %d", redemption.SpentPoints)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// The balance sums read from the transaction snapshot, so the user row must be
// locked before any of them run; otherwise two concurrent redemptions by the
// same user could each see a sufficient balance and both commit.
func TestRedeemLocksUserRowBeforeBalanceCheck(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?s)SELECT .user_id. FROM .users..*FOR UPDATE"),
			columns: []string{"user_id"},
			rows:    [][]driver.Value{{int64(12)}},
		},
		rewardRow(3, 200, 5),
		{
			kind:    kindExec,
			pattern: stockDecrementPattern,
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: redemptionInsert,
			result:  scriptedResult{lastInsertID: 79, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: earnedSumPattern,
			columns: []string{"sum"},
			rows:    [][]driver.Value{{int64(660)}},
		},
		{
			kind:    kindQuery,
			pattern: spentSumPattern,
			columns: []string{"sum"},
			rows:    [][]driver.Value{{int64(400)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRedemptionService(db)
	if _, err := svc.Redeem(12, 3); err != nil {
		t.Fatalf("Redeem returned error: %v", err)
	}

	// The scripted steps are ordered: completing them proves the locking
	// select ran first.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRedeemUnknownUser(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: userLockPattern,
			columns: []string{"user_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRedemptionService(db)
	_, err := svc.Redeem(999, 3)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRedeemOutOfStock(t *testing.T) {
	steps := []*queryStep{
		userLockRow(12),
		rewardRow(3, 200, 0),
		{
			kind:    kindExec,
			pattern: stockDecrementPattern,
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRedemptionService(db)
	_, err := svc.Redeem(12, 3)
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRedeemRollsBackOnOverdraw(t *testing.T) {
	steps := []*queryStep{
		userLockRow(12),
		rewardRow(3, 200, 5),
		{
			kind:    kindExec,
			pattern: stockDecrementPattern,
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: redemptionInsert,
			result:  scriptedResult{lastInsertID: 78, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: earnedSumPattern,
			columns: []string{"sum"},
			rows:    [][]driver.Value{{int64(132)}},
		},
		{
			kind:    kindQuery,
			pattern: spentSumPattern,
			columns: []string{"sum"},
			rows:    [][]driver.Value{{int64(200)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRedemptionService(db)
	_, err := svc.Redeem(12, 3)
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRedeemUnknownReward(t *testing.T) {
	steps := []*queryStep{
		userLockRow(12),
		{
			kind:    kindQuery,
			pattern: rewardSelectPattern,
			columns: []string{"reward_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewRedemptionService(db)
	_, err := svc.Redeem(12, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
