package scoring

import (
	"math"
	"time"
)

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxPerformance    = 5
	passingRecall     = 3
)

// Schedule is the next state of a spaced-repetition record.
type Schedule struct {
	EaseFactor     float64   `json:"easeFactor"`
	Interval       int       `json:"interval"`
	NextReviewDate time.Time `json:"nextReviewDate"`
}

// NextReview applies one SM-2 step. performance is clamped to 0..5; today is the
// review day and only its calendar date is used.
func NextReview(easeFactor float64, interval int, performance int, today time.Time) Schedule {
	q := float64(5 - min(max(performance, 0), MaxPerformance))
	ease := max(MinEaseFactor, easeFactor+(0.1-q*(0.08+q*0.02)))

	var next int
	switch {
	case performance < passingRecall:
		next = 1
	case interval <= 0:
		next = 1
	case interval == 1:
		next = 6
	default:
		next = int(math.Round(float64(interval) * ease))
	}

	y, m, d := today.Date()
	return Schedule{
		EaseFactor:     ease,
		Interval:       next,
		NextReviewDate: time.Date(y, m, d+next, 0, 0, 0, 0, today.Location()),
	}
}
