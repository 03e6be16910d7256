package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var reviewDay = time.Date(2026, time.March, 30, 17, 45, 0, 0, time.UTC)

func TestNextReview_ResetOnFailedRecall(t *testing.T) {
	got := NextReview(2.5, 10, 1, reviewDay)
	assert.Equal(t, 1, got.Interval)
	assert.InDelta(t, 1.96, got.EaseFactor, 1e-9)
	assert.Equal(t, time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), got.NextReviewDate)
}

func TestNextReview_IntervalProgression(t *testing.T) {
	tests := []struct {
		name        string
		ease        float64
		interval    int
		performance int
		wantEase    float64
		wantDays    int
	}{
		{"first review", 2.5, 0, 4, 2.5, 1},
		{"second review", 2.5, 1, 4, 2.5, 6},
		{"grows by ease", 2.5, 6, 5, 2.6, 16},
		{"hesitant recall lowers ease", 2.5, 6, 3, 2.36, 14},
		{"ease floor", 1.3, 10, 3, 1.3, 13},
		{"performance above range is clamped", 2.5, 6, 9, 2.6, 16},
		{"performance below range is clamped", 2.5, 6, -4, 1.7, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NextReview(tc.ease, tc.interval, tc.performance, reviewDay)
			assert.InDelta(t, tc.wantEase, got.EaseFactor, 1e-9)
			assert.Equal(t, tc.wantDays, got.Interval)
			assert.Equal(t, reviewDay.AddDate(0, 0, tc.wantDays).Truncate(24*time.Hour), got.NextReviewDate)
		})
	}
}

func TestNextReview_EaseNeverBelowFloor(t *testing.T) {
	ease := DefaultEaseFactor
	for i := 0; i < 20; i++ {
		ease = NextReview(ease, 1, 0, reviewDay).EaseFactor
		assert.GreaterOrEqual(t, ease, MinEaseFactor)
	}
	assert.Equal(t, MinEaseFactor, ease)
}

func TestPerformanceRating(t *testing.T) {
	assert.Equal(t, 0, PerformanceRating(0))
	assert.Equal(t, 2, PerformanceRating(40))
	assert.Equal(t, 3, PerformanceRating(50))
	assert.Equal(t, 3, PerformanceRating(60))
	assert.Equal(t, 4, PerformanceRating(80))
	assert.Equal(t, 5, PerformanceRating(100))
	assert.Equal(t, 5, PerformanceRating(140))
}
