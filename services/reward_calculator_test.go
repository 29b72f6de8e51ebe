package services

import (
	"errors"
	"testing"
)

func TestComputePoints(t *testing.T) {
	cases := []struct {
		trees int
		want  int
	}{
		{trees: 1, want: 66},
		{trees: 3, want: 198},
		{trees: 5, want: 330},
		{trees: 7, want: 462},
		{trees: 10, want: 660},
		{trees: 100, want: 6600},
	}

	for _, tc := range cases {
		got, err := ComputePoints(tc.trees)
		if err != nil {
			t.Fatalf("ComputePoints(%d) returned error: %v", tc.trees, err)
		}
		if got != tc.want {
			t.Fatalf("ComputePoints(%d) = %d, want %d", tc.trees, got, tc.want)
		}
	}
}

func TestComputePointsRejectsNonPositiveCounts(t *testing.T) {
	for _, trees := range []int{0, -1, -50} {
		_, err := ComputePoints(trees)
		if err == nil {
			t.Fatalf("ComputePoints(%d) expected error, got nil", trees)
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("ComputePoints(%d) expected ErrInvalidArgument, got %v", trees, err)
		}
	}
}
