package service

import (
	"context"
	"encoding/json"
	"errors"
	"exammaster_backend/internal/model"
	"exammaster_backend/internal/scoring"
	"exammaster_backend/internal/util"
	"exammaster_backend/pkg/logger"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CatalogService struct {
	Questions QuestionStore
	Tests     TestStore
	Catalog   *QuestionCatalog
	Cache     QuestionCache
}

func NewCatalogService(questions QuestionStore, tests TestStore, catalog *QuestionCatalog, cache QuestionCache) *CatalogService {
	return &CatalogService{Questions: questions, Tests: tests, Catalog: catalog, Cache: cache}
}

type QuestionReq struct {
	QuestionType   string          `json:"questionType" binding:"required"`
	Content        string          `json:"content" binding:"required"`
	Options        json.RawMessage `json:"options"`
	CorrectOption  string          `json:"correctOption"`
	CorrectOptions []string        `json:"correctOptions"`
	IntegerAnswer  *int64          `json:"integerAnswer"`
	RangeMin       *float64        `json:"rangeMin"`
	RangeMax       *float64        `json:"rangeMax"`
	Marks          float64         `json:"marks"`
	NegativeMarks  float64         `json:"negativeMarks"`
	PartialMarking bool            `json:"partialMarking"`
	Topic          string          `json:"topic"`
	Explanation    string          `json:"explanation"`
}

func (r QuestionReq) apply(q *model.Question) {
	q.QuestionType = strings.ToUpper(strings.TrimSpace(r.QuestionType))
	q.Content = r.Content
	q.Options = nil
	if len(r.Options) > 0 {
		q.Options = []byte(r.Options)
	}
	q.CorrectOption = r.CorrectOption
	q.CorrectOptions = nil
	if len(r.CorrectOptions) > 0 {
		q.CorrectOptions = model.EncodeIDs(r.CorrectOptions)
	}
	q.IntegerAnswer = r.IntegerAnswer
	q.RangeMin = r.RangeMin
	q.RangeMax = r.RangeMax
	q.Marks = r.Marks
	q.NegativeMarks = r.NegativeMarks
	q.PartialMarking = r.PartialMarking
	q.Topic = strings.TrimSpace(r.Topic)
	q.Explanation = r.Explanation
}

func (s *CatalogService) CreateQuestion(ctx context.Context, req QuestionReq) (*model.Question, error) {
	q := &model.Question{UUIDBase: model.UUIDBase{ID: model.GenerateUUID()}}
	req.apply(q)
	if _, err := q.ToScoring(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidQuestion, err)
	}
	if err := s.Questions.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// UpdateQuestion replaces the question's content and key. Completed attempts
// keep the report they were scored with.
func (s *CatalogService) UpdateQuestion(ctx context.Context, id string, req QuestionReq) (*model.Question, error) {
	q, err := s.Questions.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	req.apply(q)
	if _, err := q.ToScoring(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidQuestion, err)
	}
	if err := s.Questions.Update(ctx, q); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, q.ID); err != nil {
			logger.Log.Warn("Question cache invalidation failed", zap.String("questionId", q.ID), zap.Error(err))
		}
	}
	return q, nil
}

type SectionReq struct {
	Name        string   `json:"name" binding:"required"`
	QuestionIDs []string `json:"questionIds" binding:"required"`
	MaxMarks    float64  `json:"maxMarks"`
}

type TestReq struct {
	Title          string       `json:"title" binding:"required"`
	Description    string       `json:"description"`
	Duration       int          `json:"duration"`
	AllowReattempt bool         `json:"allowReattempt"`
	MaxAttempts    int          `json:"maxAttempts"`
	QuestionIDs    []string     `json:"questionIds" binding:"required"`
	Sections       []SectionReq `json:"sections"`
	IsPublished    bool         `json:"isPublished"`
}

// CreateTest stores a test after checking it can be scored as defined.
func (s *CatalogService) CreateTest(ctx context.Context, req TestReq) (*model.Test, error) {
	if req.MaxAttempts == 0 {
		req.MaxAttempts = 1
	}

	test := &model.Test{
		UUIDBase:       model.UUIDBase{ID: model.GenerateUUID()},
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Duration:       req.Duration,
		AllowReattempt: req.AllowReattempt,
		MaxAttempts:    req.MaxAttempts,
		IsPublished:    req.IsPublished,
		QuestionIDs:    model.EncodeIDs(req.QuestionIDs),
	}
	for i, sec := range req.Sections {
		test.Sections = append(test.Sections, model.TestSection{
			TestID:      test.ID,
			Name:        strings.TrimSpace(sec.Name),
			Position:    i,
			QuestionIDs: model.EncodeIDs(sec.QuestionIDs),
			MaxMarks:    sec.MaxMarks,
		})
	}

	questions, err := s.Catalog.GetQuestionsByIDs(ctx, req.QuestionIDs)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) || errors.Is(err, util.ErrInvalidQuestion) {
			return nil, fmt.Errorf("%w: %v", util.ErrInvalidTest, err)
		}
		return nil, err
	}
	st, err := test.ToScoring(questions)
	if err != nil {
		return nil, err
	}
	if err := scoring.ValidateTest(st); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidTest, err)
	}

	if err := s.Tests.Create(ctx, test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *CatalogService) SetPublished(ctx context.Context, id string, published bool) error {
	err := s.Tests.SetPublished(ctx, id, published)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrTestNotFound
	}
	return err
}

func (s *CatalogService) ListPublished(ctx context.Context, page, limit int) ([]model.TestView, int64, error) {
	tests, total, err := s.Tests.ListPublished(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]model.TestView, 0, len(tests))
	for i := range tests {
		view, err := testView(&tests[i], nil)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// GetTestView returns a published test with its questions, without answer keys.
func (s *CatalogService) GetTestView(ctx context.Context, id string) (*model.TestView, error) {
	test, err := s.Tests.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	if !test.IsPublished {
		return nil, util.ErrTestNotPublished
	}

	ids, err := test.QuestionIDList()
	if err != nil {
		return nil, err
	}
	rows, err := s.Catalog.GetRows(ctx, ids)
	if err != nil {
		return nil, err
	}
	view, err := testView(test, rows)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func testView(t *model.Test, questions []model.Question) (model.TestView, error) {
	view := model.TestView{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Duration:       t.Duration,
		AllowReattempt: t.AllowReattempt,
		MaxAttempts:    t.MaxAttempts,
	}
	for i := range t.Sections {
		sec := &t.Sections[i]
		ids, err := sec.QuestionIDList()
		if err != nil {
			return model.TestView{}, fmt.Errorf("test %s: %w", t.ID, err)
		}
		view.Sections = append(view.Sections, model.SectionView{
			Name:        sec.Name,
			QuestionIDs: ids,
			MaxMarks:    sec.MaxMarks,
		})
	}
	for i := range questions {
		view.Questions = append(view.Questions, questions[i].StudentView())
	}
	return view, nil
}
