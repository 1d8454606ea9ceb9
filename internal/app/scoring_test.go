package app

import "testing"

func TestPointsForLevel(t *testing.T) {
	cases := map[int]int{
		1:  50,
		5:  500,
		10: 160000,
		13: 125000,
		15: 1000000,
	}
	for level, want := range cases {
		if got := PointsForLevel(level); got != want {
			t.Fatalf("level %d: expected %d points, got %d", level, want, got)
		}
	}
}

func TestPointsForLevelPanicsOutOfRange(t *testing.T) {
	for _, level := range []int{0, -1, 16} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for level %d", level)
				}
			}()
			PointsForLevel(level)
		}()
	}
}

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		want   int
	}{
		{0, 0},
		{999_999, 0},
		{1_000_000, 1},
		{2_500_000, 2},
	}
	for _, tc := range cases {
		if got := LevelForPoints(tc.points); got != tc.want {
			t.Fatalf("points %d: expected level %d, got %d", tc.points, tc.want, got)
		}
	}
}

func TestPointsToReachLevel(t *testing.T) {
	if got := PointsToReachLevel(0); got != 1_000_000 {
		t.Fatalf("expected 1000000, got %d", got)
	}
	if got := PointsToReachLevel(3); got != 4_000_000 {
		t.Fatalf("expected 4000000, got %d", got)
	}
}

func TestLevelProgress(t *testing.T) {
	if got := LevelProgress(0); got != 0 {
		t.Fatalf("expected 0%%, got %v", got)
	}
	if got := LevelProgress(250_000); got != 25 {
		t.Fatalf("expected 25%%, got %v", got)
	}
	if got := LevelProgress(1_750_000); got != 75 {
		t.Fatalf("expected 75%% within the second level, got %v", got)
	}
}
