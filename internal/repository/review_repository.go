package repository

import (
	"context"
	"errors"
	"exammaster_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// Find returns the record of the user for the topic, or nil when the topic has
// never been reviewed.
func (r *ReviewRepository) Find(ctx context.Context, userID uint, topic string) (*model.ReviewRecord, error) {
	var rec model.ReviewRecord
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND topic = ?", userID, topic).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert writes the record keyed by (user_id, topic).
func (r *ReviewRepository) Upsert(ctx context.Context, rec *model.ReviewRecord) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "topic"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ease_factor",
			"interval_days",
			"repetitions",
			"last_performance",
			"last_reviewed_at",
			"next_review_date",
			"updated_at",
		}),
	}).Create(rec).Error
}

// ListDue returns records whose next review date is not after until, earliest first.
func (r *ReviewRepository) ListDue(ctx context.Context, userID uint, until time.Time, limit int) ([]model.ReviewRecord, error) {
	var records []model.ReviewRecord
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND next_review_date <= ?", userID, until).
		Order("next_review_date ASC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
