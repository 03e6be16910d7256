package service

import (
	"context"
	"exammaster_backend/internal/model"
	"exammaster_backend/internal/scoring"
	"exammaster_backend/internal/util"
	"strings"
	"time"
)

type ReviewService struct {
	Reviews  ReviewStore
	DueLimit int
	Now      func() time.Time
}

func NewReviewService(reviews ReviewStore, dueLimit int) *ReviewService {
	return &ReviewService{
		Reviews:  reviews,
		DueLimit: dueLimit,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordReview applies one SM-2 step to the user's record for topic, creating
// the record on first review.
func (s *ReviewService) RecordReview(ctx context.Context, userID uint, topic string, performance int) (*model.ReviewRecord, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, util.ErrInvalidTopic
	}
	performance = min(max(performance, 0), scoring.MaxPerformance)

	rec, err := s.Reviews.Find(ctx, userID, topic)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &model.ReviewRecord{
			UserID:     userID,
			Topic:      topic,
			EaseFactor: scoring.DefaultEaseFactor,
		}
	}

	now := s.Now()
	next := scoring.NextReview(rec.EaseFactor, rec.IntervalDays, performance, now)

	rec.EaseFactor = next.EaseFactor
	rec.IntervalDays = next.Interval
	rec.NextReviewDate = next.NextReviewDate
	rec.LastPerformance = performance
	rec.LastReviewedAt = now
	if performance < 3 {
		rec.Repetitions = 0
	} else {
		rec.Repetitions++
	}

	if err := s.Reviews.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RecordTopicResults feeds the topic accuracy of a scored test into the
// schedule. Topics without attempted questions are skipped.
func (s *ReviewService) RecordTopicResults(ctx context.Context, userID uint, topics []scoring.TopicStat) error {
	for _, t := range topics {
		if t.Attempted == 0 {
			continue
		}
		if _, err := s.RecordReview(ctx, userID, t.Topic, scoring.PerformanceRating(t.Accuracy)); err != nil {
			return err
		}
	}
	return nil
}

// ListDue returns the user's records whose review date has arrived.
func (s *ReviewService) ListDue(ctx context.Context, userID uint) ([]model.ReviewRecord, error) {
	now := s.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.Reviews.ListDue(ctx, userID, today, s.DueLimit)
}
