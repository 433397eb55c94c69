package workout

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ScoreType describes how a parsed score compares
type ScoreType string

const (
	ScoreTypeTime       ScoreType = "time"
	ScoreTypeRoundsReps ScoreType = "rounds_reps"
)

// Score is a parsed, comparable workout score
type Score struct {
	Value float64
	Type  ScoreType
}

var (
	roundsPlusReps = regexp.MustCompile(`(\d+)\s*(?:rounds?\s*)?(?:\+|plus)\s*(\d+)`)
	firstNumber    = regexp.MustCompile(`(\d+)`)
	benchmarkAMRAP = regexp.MustCompile(`(\d+)\+(\d+)`)
)

// ParseScore turns a user-entered score into a comparable value. AMRAP
// scores "R+r" become R*1000+r; "MM:SS" times become seconds.
func ParseScore(score, format string) (Score, error) {
	clean := strings.ToLower(strings.TrimSpace(score))

	if format == FormatAMRAP {
		if m := roundsPlusReps.FindStringSubmatch(clean); m != nil {
			rounds, _ := strconv.Atoi(m[1])
			reps, _ := strconv.Atoi(m[2])
			return Score{Value: float64(rounds*1000 + reps), Type: ScoreTypeRoundsReps}, nil
		}
		if m := firstNumber.FindStringSubmatch(clean); m != nil {
			rounds, _ := strconv.Atoi(m[1])
			return Score{Value: float64(rounds * 1000), Type: ScoreTypeRoundsReps}, nil
		}
	}

	if secs, ok := parseClock(clean); ok {
		return Score{Value: secs, Type: ScoreTypeTime}, nil
	}

	return Score{}, fmt.Errorf("unable to parse workout score: %s", score)
}

// ParseBenchmark parses a stored median or excellent score. Unparseable
// input is 0.
func ParseBenchmark(benchmark, format string) float64 {
	clean := strings.TrimSpace(benchmark)
	if clean == "" {
		return 0
	}

	if format == FormatAMRAP {
		if m := benchmarkAMRAP.FindStringSubmatch(clean); m != nil {
			rounds, _ := strconv.Atoi(m[1])
			reps, _ := strconv.Atoi(m[2])
			return float64(rounds*1000 + reps)
		}
	}

	if secs, ok := parseClock(clean); ok {
		return secs
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseClock(s string) (float64, bool) {
	if !strings.Contains(s, ":") {
		return 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	sec, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return float64(min*60 + sec), true
}

// IsLowerBetter reports whether a format is scored by time
func IsLowerBetter(format string) bool {
	return format == FormatForTime || format == FormatRoundsForTime
}

// Percentile places a score on a normal distribution fitted to the median
// (p50) and excellent (p90) benchmarks. The result is clamped to 1..99.
func Percentile(score, median, excellent float64, lowerIsBetter bool) int {
	stdDev := math.Abs(excellent-median) / 1.28
	if stdDev == 0 {
		return 50
	}

	z := (score - median) / stdDev
	if lowerIsBetter {
		z = -z
	}

	p := int(math.Round(normalCDF(z) * 100))
	if p < 1 {
		return 1
	}
	if p > 99 {
		return 99
	}
	return p
}

// normalCDF is the Abramowitz-Stegun approximation of the standard normal CDF
func normalCDF(z float64) float64 {
	t := 1.0 / (1.0 + 0.2316419*math.Abs(z))
	d := 0.3989423 * math.Exp(-z*z/2.0)
	prob := d * t * (0.3193815 + t*(-0.3565638+t*(1.7814779+t*(-1.8212560+t*1.3302744))))
	if z > 0 {
		prob = 1.0 - prob
	}
	return prob
}

// Performance tiers
const (
	TierElite            = "Elite"
	TierAdvanced         = "Advanced"
	TierGood             = "Good"
	TierAverage          = "Average"
	TierBelowAverage     = "Below Average"
	TierNeedsImprovement = "Needs Improvement"
)

// PerformanceTier labels a percentile
func PerformanceTier(percentile int) string {
	switch {
	case percentile >= 90:
		return TierElite
	case percentile >= 75:
		return TierAdvanced
	case percentile >= 60:
		return TierGood
	case percentile >= 40:
		return TierAverage
	case percentile >= 25:
		return TierBelowAverage
	default:
		return TierNeedsImprovement
	}
}

// Stats computes listing stats. CompletionRate is a rounded percentage.
func Stats(workouts []*BTNWorkout) BTNStats {
	var s BTNStats
	s.Total = len(workouts)
	for _, w := range workouts {
		if w.IsCompleted() {
			s.Completed++
		}
	}
	s.Incomplete = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
