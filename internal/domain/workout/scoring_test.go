package workout

import (
	"testing"
	"time"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name     string
		score    string
		format   string
		want     float64
		wantType ScoreType
		wantErr  bool
	}{
		{"amrap plus", "5+23", FormatAMRAP, 5023, ScoreTypeRoundsReps, false},
		{"amrap words", "8 rounds + 15", FormatAMRAP, 8015, ScoreTypeRoundsReps, false},
		{"amrap plus word", "7 plus 2", FormatAMRAP, 7002, ScoreTypeRoundsReps, false},
		{"amrap rounds only", "10", FormatAMRAP, 10000, ScoreTypeRoundsReps, false},
		{"for time", "6:45", FormatForTime, 405, ScoreTypeTime, false},
		{"rounds for time", " 12:04 ", FormatRoundsForTime, 724, ScoreTypeTime, false},
		{"hours not supported", "1:02:03", FormatForTime, 0, "", true},
		{"garbage", "fast", FormatForTime, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScore(tt.score, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Value != tt.want || got.Type != tt.wantType {
				t.Errorf("ParseScore(%q) = %+v, want %v %s", tt.score, got, tt.want, tt.wantType)
			}
		})
	}
}

func TestParseBenchmark(t *testing.T) {
	if got := ParseBenchmark("8+15", FormatAMRAP); got != 8015 {
		t.Errorf("amrap benchmark = %v", got)
	}
	if got := ParseBenchmark("6:45", FormatForTime); got != 405 {
		t.Errorf("time benchmark = %v", got)
	}
	if got := ParseBenchmark("150", "For Load"); got != 150 {
		t.Errorf("numeric benchmark = %v", got)
	}
	if got := ParseBenchmark("", FormatForTime); got != 0 {
		t.Errorf("empty benchmark = %v", got)
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name          string
		score         float64
		median        float64
		excellent     float64
		lowerIsBetter bool
		want          int
	}{
		{"at median", 100, 100, 128, false, 50},
		{"at excellent", 128, 100, 128, false, 90},
		{"far above clamps", 1000, 100, 128, false, 99},
		{"far below clamps", 0, 100, 128, false, 1},
		{"faster time is better", 300, 405, 300, true, 90},
		{"slower time is worse", 510, 405, 300, true, 10},
		{"no spread", 42, 100, 100, false, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.score, tt.median, tt.excellent, tt.lowerIsBetter)
			if got != tt.want {
				t.Errorf("Percentile() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPerformanceTier(t *testing.T) {
	tests := []struct {
		p    int
		want string
	}{
		{99, TierElite},
		{90, TierElite},
		{89, TierAdvanced},
		{75, TierAdvanced},
		{60, TierGood},
		{40, TierAverage},
		{25, TierBelowAverage},
		{24, TierNeedsImprovement},
		{1, TierNeedsImprovement},
	}
	for _, tt := range tests {
		if got := PerformanceTier(tt.p); got != tt.want {
			t.Errorf("PerformanceTier(%d) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestStats(t *testing.T) {
	now := time.Now()
	workouts := []*BTNWorkout{
		{ID: 1, CompletedAt: &now},
		{ID: 2},
		{ID: 3},
	}
	got := Stats(workouts)
	want := BTNStats{Total: 3, Completed: 1, Incomplete: 2, CompletionRate: 33}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}

	if got := Stats(nil); got != (BTNStats{}) {
		t.Errorf("Stats(nil) = %+v", got)
	}
}
