package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceQuestion(t *testing.T, id, option string, marks, negative float64) Question {
	t.Helper()
	k, err := NewChoiceKey(option)
	require.NoError(t, err)
	return Question{ID: id, Type: SingleChoice, Key: k, Marks: marks, NegativeMarks: negative}
}

func multiQuestion(t *testing.T, id string, options []string, marks, negative float64, partial bool) Question {
	t.Helper()
	k, err := NewMultiKey(options)
	require.NoError(t, err)
	return Question{ID: id, Type: MultiSelect, Key: k, Marks: marks, NegativeMarks: negative, PartialMarking: partial}
}

func TestGrade_SingleChoiceScenario(t *testing.T) {
	q := choiceQuestion(t, "q1", "B", 1, 0.25)

	got := Grade(q, NewTextAnswer("B"))
	assert.True(t, got.IsCorrect)
	assert.Equal(t, 1.0, got.Score)
	assert.Equal(t, FeedbackCorrect, got.Feedback)

	got = Grade(q, NewTextAnswer("A"))
	assert.False(t, got.IsCorrect)
	assert.Equal(t, -0.25, got.Score)
	assert.Equal(t, "Incorrect. Correct answer: B", got.Feedback)

	got = Grade(q, Answer{})
	assert.False(t, got.IsCorrect)
	assert.False(t, got.Attempted)
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, FeedbackNotAttempted, got.Feedback)
}

func TestGrade_ChoiceNormalization(t *testing.T) {
	q := choiceQuestion(t, "q1", "b", 2, 0.5)

	tests := []struct {
		name    string
		answer  Answer
		correct bool
		score   float64
	}{
		{"lower case", NewTextAnswer("b"), true, 2},
		{"padded", NewTextAnswer("  B "), true, 2},
		{"single element list", NewListAnswer("B"), true, 2},
		{"two element list", NewListAnswer("A", "B"), false, -0.5},
		{"number", NewNumberAnswer(2), false, -0.5},
		{"object", RawAnswer([]byte(`{"selected":"B"}`)), false, -0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(q, tc.answer)
			assert.Equal(t, tc.correct, got.IsCorrect)
			assert.Equal(t, tc.score, got.Score)
			assert.True(t, got.Attempted)
		})
	}
}

func TestGrade_TrueFalse(t *testing.T) {
	k, err := NewChoiceKey("T")
	require.NoError(t, err)
	q := Question{ID: "tf", Type: TrueFalse, Key: k, Marks: 1, NegativeMarks: 1}

	assert.Equal(t, 1.0, Grade(q, NewTextAnswer("t")).Score)
	assert.Equal(t, -1.0, Grade(q, NewTextAnswer("F")).Score)
	assert.Equal(t, 0.0, Grade(q, NewTextAnswer("")).Score)
}

func TestGrade_MultiSelect(t *testing.T) {
	tests := []struct {
		name      string
		partial   bool
		answer    Answer
		score     float64
		correct   bool
		isPartial bool
	}{
		{name: "exact match any order", partial: true, answer: NewListAnswer("D", "a", "C", "B"), score: 4, correct: true},
		{name: "half of correct set", partial: true, answer: NewListAnswer("A", "B"), score: 2, isPartial: true},
		{name: "half plus a wrong option", partial: true, answer: NewListAnswer("A", "B", "E"), score: -1},
		{name: "disjoint", partial: true, answer: NewListAnswer("E"), score: -1},
		{name: "superset", partial: true, answer: NewListAnswer("A", "B", "C", "D", "E"), score: -1},
		{name: "subset without partial marking", partial: false, answer: NewListAnswer("A", "B"), score: -1},
		{name: "comma separated string", partial: true, answer: NewTextAnswer("A, B, C"), score: 3, isPartial: true},
		{name: "duplicates collapse", partial: true, answer: NewListAnswer("A", "a", "A"), score: 1, isPartial: true},
		{name: "numbers are malformed", partial: true, answer: RawAnswer([]byte(`[1,2]`)), score: -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := multiQuestion(t, "m1", []string{"A", "B", "C", "D"}, 4, 1, tc.partial)
			got := Grade(q, tc.answer)
			assert.Equal(t, tc.score, got.Score)
			assert.Equal(t, tc.correct, got.IsCorrect)
			assert.Equal(t, tc.isPartial, got.IsPartialCorrect)
			assert.True(t, got.Attempted)
		})
	}
}

func TestGrade_MultiSelectPartialBoundary(t *testing.T) {
	q := multiQuestion(t, "m1", []string{"A", "B", "C", "D"}, 3, 0.75, true)

	half := Grade(q, NewListAnswer("A", "C"))
	assert.Equal(t, q.Marks*0.5, half.Score)
	assert.True(t, half.IsPartialCorrect)
	assert.Equal(t, "Partially correct. Correct options: A, B, C, D", half.Feedback)

	flipped := Grade(q, NewListAnswer("A", "C", "F"))
	assert.Equal(t, -q.NegativeMarks, flipped.Score)
	assert.False(t, flipped.IsPartialCorrect)
}

func TestGrade_MultiSelectUnattempted(t *testing.T) {
	q := multiQuestion(t, "m1", []string{"A", "B"}, 2, 1, true)

	for _, a := range []Answer{{}, NewListAnswer(), NewTextAnswer(" "), NewListAnswer(" ", "")} {
		got := Grade(q, a)
		assert.Equal(t, 0.0, got.Score)
		assert.False(t, got.Attempted)
		assert.Equal(t, FeedbackNotAttempted, got.Feedback)
	}
}

func TestGrade_Integer(t *testing.T) {
	q := Question{ID: "i1", Type: Integer, Key: IntegerKey{Value: 42}, Marks: 4, NegativeMarks: 1}

	tests := []struct {
		name   string
		answer Answer
		score  float64
	}{
		{"number", NewNumberAnswer(42), 4},
		{"numeric string", NewTextAnswer(" 42 "), 4},
		{"integral float", RawAnswer([]byte(`42.0`)), 4},
		{"fraction", NewNumberAnswer(42.5), -1},
		{"other integer", NewNumberAnswer(41), -1},
		{"garbage", NewTextAnswer("forty-two"), -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.score, Grade(q, tc.answer).Score)
		})
	}
	assert.Equal(t, "Incorrect. Correct answer: 42", Grade(q, NewNumberAnswer(1)).Feedback)
}

func TestGrade_NumericRange(t *testing.T) {
	k, err := NewRangeKey(1.5, 2.5)
	require.NoError(t, err)
	q := Question{ID: "r1", Type: NumericRange, Key: k, Marks: 2, NegativeMarks: 0.5}

	tests := []struct {
		name   string
		answer Answer
		score  float64
	}{
		{"lower bound inclusive", NewNumberAnswer(1.5), 2},
		{"upper bound inclusive", NewNumberAnswer(2.5), 2},
		{"inside as string", NewTextAnswer("2.04"), 2},
		{"below", NewNumberAnswer(1.49), -0.5},
		{"above", NewNumberAnswer(2.51), -0.5},
		{"unparsable is a miss", NewTextAnswer("two"), -0.5},
		{"NaN is a miss", NewTextAnswer("NaN"), -0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.score, Grade(q, tc.answer).Score)
		})
	}
	assert.Equal(t, "Incorrect. Correct answer: 1.5 to 2.5", Grade(q, NewNumberAnswer(9)).Feedback)
}

func TestGrade_Subjective(t *testing.T) {
	q := Question{ID: "s1", Type: Subjective, Key: SubjectiveKey{}, Marks: 10, NegativeMarks: 2}

	got := Grade(q, NewTextAnswer("An essay"))
	assert.Equal(t, 0.0, got.Score)
	assert.True(t, got.Attempted)
	assert.Equal(t, FeedbackPending, got.Feedback)

	assert.Equal(t, FeedbackNotAttempted, Grade(q, Answer{}).Feedback)
}

func TestGrade_UnattemptedNeverPenalized(t *testing.T) {
	rk, _ := NewRangeKey(0, 1)
	questions := []Question{
		choiceQuestion(t, "c", "A", 1, 5),
		multiQuestion(t, "m", []string{"A"}, 1, 5, true),
		{ID: "i", Type: Integer, Key: IntegerKey{Value: 1}, Marks: 1, NegativeMarks: 5},
		{ID: "r", Type: NumericRange, Key: rk, Marks: 1, NegativeMarks: 5},
		{ID: "s", Type: Subjective, Key: SubjectiveKey{}, Marks: 1, NegativeMarks: 5},
	}
	for _, q := range questions {
		got := Grade(q, RawAnswer([]byte("null")))
		assert.Equal(t, 0.0, got.Score, q.ID)
		assert.Equal(t, FeedbackNotAttempted, got.Feedback, q.ID)
	}
}

func TestGrade_FeedbackHidesAnswerWhenCorrect(t *testing.T) {
	q := choiceQuestion(t, "q1", "C", 1, 0)
	assert.NotContains(t, Grade(q, NewTextAnswer("C")).Feedback, "Correct answer")
	assert.Contains(t, Grade(q, NewTextAnswer("A")).Feedback, "C")
}

func TestQuestionValidate(t *testing.T) {
	assert.NoError(t, choiceQuestion(t, "q", "A", 1, 0).Validate())

	bad := []Question{
		{ID: "", Type: SingleChoice, Key: ChoiceKey{Option: "A"}, Marks: 1},
		{ID: "q", Type: SingleChoice, Key: ChoiceKey{Option: "A"}, Marks: -1},
		{ID: "q", Type: SingleChoice, Key: ChoiceKey{Option: "A"}, Marks: 0},
		{ID: "q", Type: SingleChoice, Key: ChoiceKey{Option: "A"}, Marks: 1, NegativeMarks: -1},
		{ID: "q", Type: SingleChoice, Key: IntegerKey{Value: 1}, Marks: 1},
		{ID: "q", Type: MultiSelect, Key: MultiKey{}, Marks: 1},
		{ID: "q", Type: NumericRange, Key: RangeKey{Min: 2, Max: 1}, Marks: 1},
		{ID: "q", Type: "ESSAY", Key: SubjectiveKey{}, Marks: 1},
	}
	for _, q := range bad {
		assert.Error(t, q.Validate(), "%+v", q)
	}
}

func TestParseQuestionType(t *testing.T) {
	got, err := ParseQuestionType(" multi_select ")
	require.NoError(t, err)
	assert.Equal(t, MultiSelect, got)

	_, err = ParseQuestionType("fill_blank")
	assert.Error(t, err)
}
