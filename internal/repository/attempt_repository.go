package repository

import (
	"context"
	"errors"
	"exammaster_backend/internal/model"
	"exammaster_backend/internal/scoring"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create inserts a new in-progress attempt. A concurrent start for the same user
// and test fails on the active_key unique index with gorm.ErrDuplicatedKey.
func (r *AttemptRepository) Create(ctx context.Context, a *model.TestAttempt) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*model.TestAttempt, error) {
	var a model.TestAttempt
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindActive returns the in-progress attempt of the user for the test, or nil.
func (r *AttemptRepository) FindActive(ctx context.Context, userID uint, testID string) (*model.TestAttempt, error) {
	var a model.TestAttempt
	err := r.DB.WithContext(ctx).
		Where("active_key = ?", model.ActiveKeyFor(userID, testID)).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) CountCompleted(ctx context.Context, userID uint, testID string) (int, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.TestAttempt{}).
		Where("user_id = ? AND test_id = ? AND status = ?", userID, testID, scoring.AttemptCompleted).
		Count(&count).Error
	return int(count), err
}

// Complete writes the scored result of an in-progress attempt and releases its
// active key. It reports false when the attempt was already completed, in which
// case nothing is written.
func (r *AttemptRepository) Complete(ctx context.Context, a *model.TestAttempt) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&model.TestAttempt{}).
		Where("id = ? AND status = ?", a.ID, scoring.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":          string(scoring.AttemptCompleted),
			"active_key":      nil,
			"completed_at":    a.CompletedAt,
			"answers":         a.Answers,
			"report":          a.Report,
			"score":           a.Score,
			"total_marks":     a.TotalMarks,
			"correct_answers": a.CorrectAnswers,
			"wrong_answers":   a.WrongAnswers,
			"partial_correct": a.PartialCorrect,
			"unattempted":     a.Unattempted,
			"time_taken":      a.TimeTaken,
			"timed_out":       a.TimedOut,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AttemptRepository) ListByUserAndTest(ctx context.Context, userID uint, testID string) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Order("attempt_number ASC").
		Find(&attempts).Error
	return attempts, err
}
