package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	FeedbackCorrect      = "Correct"
	FeedbackNotAttempted = "Not attempted"
	FeedbackPending      = "Pending manual evaluation"
)

// Result is the outcome of grading one answer.
type Result struct {
	Score            float64
	IsCorrect        bool
	IsPartialCorrect bool
	Attempted        bool
	Feedback         string
}

// Grade scores one answer against one question. It never fails: malformed answers
// grade as attempted and wrong, and an unattempted answer always scores zero.
func Grade(q Question, a Answer) Result {
	if a.IsEmpty() {
		return Result{Feedback: FeedbackNotAttempted}
	}

	switch k := q.Key.(type) {
	case ChoiceKey:
		return gradeChoice(q, k, a)
	case MultiKey:
		return gradeMulti(q, k, a)
	case IntegerKey:
		v, ok := a.Int()
		return exact(q, ok && v == k.Value, strconv.FormatInt(k.Value, 10))
	case RangeKey:
		v, ok := a.Number()
		return exact(q, ok && v >= k.Min && v <= k.Max, fmt.Sprintf("%s to %s", formatMark(k.Min), formatMark(k.Max)))
	case SubjectiveKey:
		return Result{Attempted: true, Feedback: FeedbackPending}
	default:
		panic(fmt.Sprintf("scoring: unhandled answer key %T for question %s", q.Key, q.ID))
	}
}

func gradeChoice(q Question, k ChoiceKey, a Answer) Result {
	s, ok := a.Text()
	return exact(q, ok && normalizeOption(s) == k.Option, k.Option)
}

func gradeMulti(q Question, k MultiKey, a Answer) Result {
	items, ok := a.Options()
	if !ok {
		return wrong(q, strings.Join(k.Options, ", "))
	}
	selected := optionSet(items)
	if len(selected) == 0 {
		// e.g. [" ", ""]: nothing usable was chosen
		return Result{Feedback: FeedbackNotAttempted}
	}

	correct := make(map[string]struct{}, len(k.Options))
	for _, o := range k.Options {
		correct[o] = struct{}{}
	}
	hits := 0
	for o := range selected {
		if _, ok := correct[o]; !ok {
			return wrong(q, strings.Join(k.Options, ", "))
		}
		hits++
	}

	if hits == len(correct) {
		return Result{Score: q.Marks, IsCorrect: true, Attempted: true, Feedback: FeedbackCorrect}
	}
	if !q.PartialMarking {
		return wrong(q, strings.Join(k.Options, ", "))
	}
	return Result{
		Score:            q.Marks * (float64(hits) / float64(len(correct))),
		IsPartialCorrect: true,
		Attempted:        true,
		Feedback:         fmt.Sprintf("Partially correct. Correct options: %s", strings.Join(k.Options, ", ")),
	}
}

func exact(q Question, correct bool, reveal string) Result {
	if correct {
		return Result{Score: q.Marks, IsCorrect: true, Attempted: true, Feedback: FeedbackCorrect}
	}
	return wrong(q, reveal)
}

func wrong(q Question, reveal string) Result {
	return Result{
		Score:     0 - q.NegativeMarks, // 0 - x yields +0, never -0, when negative marking is off
		Attempted: true,
		Feedback:  fmt.Sprintf("Incorrect. Correct answer: %s", reveal),
	}
}

func formatMark(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
