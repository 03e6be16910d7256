package service

import (
	"context"
	"encoding/json"
	"exammaster_backend/internal/model"
	"exammaster_backend/internal/scoring"
	"exammaster_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture() (*CatalogService, *fakeQuestions, *fakeCache) {
	questions := newFakeQuestions(
		choiceQuestion("q1", "A", "algebra", 4, 1),
		choiceQuestion("q2", "B", "algebra", 4, 1),
	)
	cache := newFakeCache()
	catalog := NewQuestionCatalog(questions, cache)
	return NewCatalogService(questions, newFakeTests(), catalog, cache), questions, cache
}

func TestCatalogService_CreateQuestion(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	q, err := svc.CreateQuestion(ctx, QuestionReq{
		QuestionType:   "multi_select",
		Content:        "Pick all primes",
		Options:        json.RawMessage(`["2","3","4","5"]`),
		CorrectOptions: []string{"a", "b", "d"},
		Marks:          4,
		NegativeMarks:  2,
		PartialMarking: true,
		Topic:          "numbers",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, string(scoring.MultiSelect), q.QuestionType)

	sq, err := q.ToScoring()
	require.NoError(t, err)
	assert.Equal(t, scoring.MultiKey{Options: []string{"A", "B", "D"}}, sq.Key)
}

func TestCatalogService_CreateQuestionRejectsMismatchedKey(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	tests := map[string]QuestionReq{
		"unknown type":        {QuestionType: "ESSAY", Content: "x", Marks: 1},
		"choice without key":  {QuestionType: "SINGLE_CHOICE", Content: "x", Marks: 1},
		"integer without key": {QuestionType: "INTEGER", Content: "x", Marks: 1},
		"inverted range":      {QuestionType: "NUMERIC_RANGE", Content: "x", Marks: 1, RangeMin: ptr(5.0), RangeMax: ptr(1.0)},
		"negative marks":      {QuestionType: "TRUE_FALSE", Content: "x", CorrectOption: "TRUE", Marks: -1},
		"marks omitted":       {QuestionType: "TRUE_FALSE", Content: "x", CorrectOption: "TRUE"},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateQuestion(ctx, req)
			assert.ErrorIs(t, err, util.ErrInvalidQuestion)
		})
	}
}

func TestCatalogService_UpdateQuestionInvalidatesCache(t *testing.T) {
	svc, _, cache := newCatalogFixture()
	ctx := context.Background()

	// warm the cache
	_, err := svc.Catalog.GetQuestionsByIDs(ctx, []string{"q1"})
	require.NoError(t, err)
	assert.Contains(t, cache.rows, "q1")

	_, err = svc.UpdateQuestion(ctx, "q1", QuestionReq{
		QuestionType:  "SINGLE_CHOICE",
		Content:       "Pick one",
		CorrectOption: "C",
		Marks:         4,
	})
	require.NoError(t, err)
	assert.NotContains(t, cache.rows, "q1")
	assert.Equal(t, []string{"q1"}, cache.invalidated)

	qs, err := svc.Catalog.GetQuestionsByIDs(ctx, []string{"q1"})
	require.NoError(t, err)
	assert.Equal(t, scoring.ChoiceKey{Option: "C"}, qs[0].Key)

	_, err = svc.UpdateQuestion(ctx, "missing", QuestionReq{QuestionType: "SINGLE_CHOICE", CorrectOption: "A"})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestCatalogService_CreateTest(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	test, err := svc.CreateTest(ctx, TestReq{
		Title:       "Mock",
		Duration:    60,
		QuestionIDs: []string{"q1", "q2"},
		Sections:    []SectionReq{{Name: "Part A", QuestionIDs: []string{"q1"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, test.MaxAttempts)
	assert.False(t, test.IsPublished)

	_, err = svc.GetTestView(ctx, test.ID)
	assert.ErrorIs(t, err, util.ErrTestNotPublished)

	require.NoError(t, svc.SetPublished(ctx, test.ID, true))

	view, err := svc.GetTestView(ctx, test.ID)
	require.NoError(t, err)
	require.Len(t, view.Questions, 2)
	assert.Equal(t, "q1", view.Questions[0].ID)
	require.Len(t, view.Sections, 1)
	assert.Equal(t, []string{"q1"}, view.Sections[0].QuestionIDs)

	// answer keys never reach the learner view
	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "correctOption")

	list, total, err := svc.ListPublished(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, svc.SetPublished(ctx, "missing", true), util.ErrTestNotFound)
}

func TestCatalogService_CreateTestRejectsInvalidDefinitions(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	tests := map[string]TestReq{
		"no questions":       {Title: "x", QuestionIDs: []string{}},
		"unknown question":   {Title: "x", QuestionIDs: []string{"q1", "q9"}},
		"duplicate question": {Title: "x", QuestionIDs: []string{"q1", "q1"}},
		"negative attempts":  {Title: "x", QuestionIDs: []string{"q1"}, MaxAttempts: -1},
		"foreign section":    {Title: "x", QuestionIDs: []string{"q1"}, Sections: []SectionReq{{Name: "A", QuestionIDs: []string{"q2"}}}},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateTest(ctx, req)
			assert.ErrorIs(t, err, util.ErrInvalidTest)
		})
	}
}

func TestCatalogService_CorruptSectionIDsAreReported(t *testing.T) {
	questions := newFakeQuestions(choiceQuestion("q1", "A", "algebra", 4, 1))
	tests := newFakeTests(model.Test{
		UUIDBase:    model.UUIDBase{ID: "t1"},
		Title:       "Broken",
		MaxAttempts: 1,
		IsPublished: true,
		QuestionIDs: model.EncodeIDs([]string{"q1"}),
		Sections: []model.TestSection{
			{TestID: "t1", Name: "Part A", QuestionIDs: []byte(`{"q1"`)},
		},
	})
	svc := NewCatalogService(questions, tests, NewQuestionCatalog(questions, nil), nil)
	ctx := context.Background()

	_, err := svc.GetTestView(ctx, "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `section "Part A"`)

	_, _, err = svc.ListPublished(ctx, 1, 20)
	assert.Error(t, err)
}
