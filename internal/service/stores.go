package service

import (
	"context"
	"exammaster_backend/internal/model"
	"time"
)

// The stores below are satisfied by the gorm repositories; services depend on
// these interfaces so tests can run against in-memory fakes.

type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	Update(ctx context.Context, q *model.Question) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Question, error)
}

type TestStore interface {
	Create(ctx context.Context, t *model.Test) error
	FindByID(ctx context.Context, id string) (*model.Test, error)
	SetPublished(ctx context.Context, id string, published bool) error
	ListPublished(ctx context.Context, page, limit int) ([]model.Test, int64, error)
}

type AttemptStore interface {
	Create(ctx context.Context, a *model.TestAttempt) error
	FindByID(ctx context.Context, id string) (*model.TestAttempt, error)
	FindActive(ctx context.Context, userID uint, testID string) (*model.TestAttempt, error)
	CountCompleted(ctx context.Context, userID uint, testID string) (int, error)
	Complete(ctx context.Context, a *model.TestAttempt) (bool, error)
	ListByUserAndTest(ctx context.Context, userID uint, testID string) ([]model.TestAttempt, error)
}

type ReviewStore interface {
	Find(ctx context.Context, userID uint, topic string) (*model.ReviewRecord, error)
	Upsert(ctx context.Context, rec *model.ReviewRecord) error
	ListDue(ctx context.Context, userID uint, until time.Time, limit int) ([]model.ReviewRecord, error)
}

// ReportArchiver keeps a copy of every scored report outside the database.
type ReportArchiver interface {
	Save(ctx context.Context, attemptID string, report []byte) error
}
