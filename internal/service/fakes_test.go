package service

import (
	"context"
	"exammaster_backend/internal/model"
	"exammaster_backend/internal/scoring"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

type fakeQuestions struct {
	mu    sync.Mutex
	rows  map[string]model.Question
	calls int
}

func newFakeQuestions(qs ...model.Question) *fakeQuestions {
	f := &fakeQuestions{rows: map[string]model.Question{}}
	for _, q := range qs {
		f.rows[q.ID] = q
	}
	return f
}

func (f *fakeQuestions) Create(ctx context.Context, q *model.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[q.ID] = *q
	return nil
}

func (f *fakeQuestions) Update(ctx context.Context, q *model.Question) error {
	return f.Create(ctx, q)
}

func (f *fakeQuestions) FindByID(ctx context.Context, id string) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (f *fakeQuestions) FindByIDs(ctx context.Context, ids []string) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var out []model.Question
	for _, id := range ids {
		if q, ok := f.rows[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeTests struct {
	mu   sync.Mutex
	rows map[string]model.Test
}

func newFakeTests(ts ...model.Test) *fakeTests {
	f := &fakeTests{rows: map[string]model.Test{}}
	for _, t := range ts {
		f.rows[t.ID] = t
	}
	return f
}

func (f *fakeTests) Create(ctx context.Context, t *model.Test) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[t.ID] = *t
	return nil
}

func (f *fakeTests) FindByID(ctx context.Context, id string) (*model.Test, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (f *fakeTests) SetPublished(ctx context.Context, id string, published bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.IsPublished = published
	f.rows[id] = t
	return nil
}

func (f *fakeTests) ListPublished(ctx context.Context, page, limit int) ([]model.Test, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Test
	for _, t := range f.rows {
		if t.IsPublished {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// fakeAttempts mirrors the repository: a unique active key and a conditional
// completion.
type fakeAttempts struct {
	mu   sync.Mutex
	rows map[string]model.TestAttempt
	seq  int
}

func newFakeAttempts() *fakeAttempts {
	return &fakeAttempts{rows: map[string]model.TestAttempt{}}
}

func (f *fakeAttempts) Create(ctx context.Context, a *model.TestAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ActiveKey != nil {
		for _, row := range f.rows {
			if row.ActiveKey != nil && *row.ActiveKey == *a.ActiveKey {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	f.seq++
	a.ID = fmt.Sprintf("attempt-%d", f.seq)
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeAttempts) FindByID(ctx context.Context, id string) (*model.TestAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (f *fakeAttempts) FindActive(ctx context.Context, userID uint, testID string) (*model.TestAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := model.ActiveKeyFor(userID, testID)
	for _, a := range f.rows {
		if a.ActiveKey != nil && *a.ActiveKey == key {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAttempts) CountCompleted(ctx context.Context, userID uint, testID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.rows {
		if a.UserID == userID && a.TestID == testID && a.Status == string(scoring.AttemptCompleted) {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttempts) Complete(ctx context.Context, a *model.TestAttempt) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[a.ID]
	if !ok || row.Status != string(scoring.AttemptInProgress) {
		return false, nil
	}
	done := *a
	done.Status = string(scoring.AttemptCompleted)
	done.ActiveKey = nil
	f.rows[a.ID] = done
	return true, nil
}

func (f *fakeAttempts) ListByUserAndTest(ctx context.Context, userID uint, testID string) ([]model.TestAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.TestAttempt
	for _, a := range f.rows {
		if a.UserID == userID && a.TestID == testID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttemptNumber < out[j].AttemptNumber })
	return out, nil
}

type fakeReviews struct {
	mu   sync.Mutex
	rows map[string]model.ReviewRecord
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{rows: map[string]model.ReviewRecord{}}
}

func reviewKey(userID uint, topic string) string {
	return fmt.Sprintf("%d/%s", userID, topic)
}

func (f *fakeReviews) Find(ctx context.Context, userID uint, topic string) (*model.ReviewRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.rows[reviewKey(userID, topic)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeReviews) Upsert(ctx context.Context, rec *model.ReviewRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[reviewKey(rec.UserID, rec.Topic)] = *rec
	return nil
}

func (f *fakeReviews) ListDue(ctx context.Context, userID uint, until time.Time, limit int) ([]model.ReviewRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ReviewRecord
	for _, rec := range f.rows {
		if rec.UserID == userID && !rec.NextReviewDate.After(until) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextReviewDate.Before(out[j].NextReviewDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCache struct {
	mu          sync.Mutex
	rows        map[string]model.Question
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{rows: map[string]model.Question{}}
}

func (c *fakeCache) GetMany(ctx context.Context, ids []string) (map[string]model.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]model.Question{}
	for _, id := range ids {
		if q, ok := c.rows[id]; ok {
			out[id] = q
		}
	}
	return out, nil
}

func (c *fakeCache) SetMany(ctx context.Context, questions []model.Question) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, q := range questions {
		c.rows[q.ID] = q
	}
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.rows, id)
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}

type fakeArchive struct {
	mu      sync.Mutex
	reports map[string][]byte
	err     error
}

func (a *fakeArchive) Save(ctx context.Context, attemptID string, report []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	if a.reports == nil {
		a.reports = map[string][]byte{}
	}
	a.reports[attemptID] = report
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func choiceQuestion(id, correct, topic string, marks, negative float64) model.Question {
	return model.Question{
		UUIDBase:      model.UUIDBase{ID: id},
		QuestionType:  string(scoring.SingleChoice),
		Content:       "Pick one",
		CorrectOption: correct,
		Marks:         marks,
		NegativeMarks: negative,
		Topic:         topic,
	}
}
