package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
)

func TestBalanceForUserDerivesFromSubmissionsAndRedemptions(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT COALESCE\\(SUM\\(eco_points\\), 0\\) FROM .submissions. WHERE submitter_id = \\? AND status = \\?"),
			columns: []string{"sum"},
			rows:    [][]driver.Value{{int64(990)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT COALESCE\\(SUM\\(spent_points\\), 0\\) FROM .reward_redemptions. WHERE user_id = \\?"),
			columns: []string{"sum"},
			rows:    [][]driver.Value{{int64(250)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewPointsService(db)
	earned, spent, available, err := svc.BalanceForUser(12)
	if err != nil {
		t.Fatalf("BalanceForUser returned error: %v", err)
	}

	if earned != 990 || spent != 250 || available != 740 {
		t.Fatalf("unexpected balance: earned=%d spent=%d available=%d", earned, spent, available)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLeaderboardRanksBarangays(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("(?s)SELECT submissions\\.barangay_id.*JOIN barangays.*GROUP BY.*ORDER BY eco_points DESC"),
			columns: []string{"barangay_id", "barangay_name", "trees_planted", "eco_points"},
			rows: [][]driver.Value{
				{int64(7), "San Isidro", int64(120), int64(7920)},
				{int64(3), "Malinta", int64(45), int64(2970)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewPointsService(db)
	rows, err := svc.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].BarangayName != "San Isidro" || rows[0].EcoPoints != 7920 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
