package scoring

import (
	"errors"
	"fmt"
)

// Section is a named subset of a test's questions reported with its own sub-score.
type Section struct {
	Name        string   `json:"name"`
	QuestionIDs []string `json:"questionIds"`
	MaxMarks    float64  `json:"maxMarks"`
}

// Test is a test definition with its questions already resolved from the catalog,
// in test order.
type Test struct {
	ID             string
	Questions      []Question
	Duration       int
	AllowReattempt bool
	MaxAttempts    int
	Sections       []Section
}

// ReportEntry is the graded form of one submitted answer. MarksAwarded is signed and
// never clamped.
type ReportEntry struct {
	QuestionID       string  `json:"questionId"`
	UserAnswer       Answer  `json:"userAnswer"`
	Attempted        bool    `json:"attempted"`
	IsCorrect        bool    `json:"isCorrect"`
	IsPartialCorrect bool    `json:"isPartialCorrect"`
	MarksAwarded     float64 `json:"marksAwarded"`
	Feedback         string  `json:"feedback"`
	TimeTaken        int     `json:"timeTaken"`
}

// Report is always recomputed from answers and questions; it is never mutated after
// ScoreTest returns it.
type Report struct {
	Score          float64 `json:"score"`
	TotalMarks     float64 `json:"totalMarks"`
	CorrectAnswers int     `json:"correctAnswers"`
	WrongAnswers   int     `json:"wrongAnswers"`
	PartialCorrect int     `json:"partialCorrect"`
	Unattempted    int     `json:"unattempted"`

	// Attempted SUBJECTIVE answers. They are also counted in WrongAnswers.
	PendingEvaluation int            `json:"pendingEvaluation"`
	TotalTimeTaken    int            `json:"totalTimeTaken"`
	DetailedReport    []ReportEntry  `json:"detailedReport"`
	Sections          []SectionScore `json:"sections,omitempty"`
	Topics            []TopicStat    `json:"topics,omitempty"`
}

// DefinitionError reports a test or question definition the engine refuses to score.
type DefinitionError struct {
	TestID string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid test definition %s: %s", e.TestID, e.Reason)
}

// ValidateTest checks the structural invariants ScoreTest relies on.
func ValidateTest(t Test) error {
	if len(t.Questions) == 0 {
		return &DefinitionError{TestID: t.ID, Reason: "test has no questions"}
	}
	if t.MaxAttempts < 1 {
		return &DefinitionError{TestID: t.ID, Reason: fmt.Sprintf("max attempts must be at least 1 (got %d)", t.MaxAttempts)}
	}
	if t.Duration < 0 {
		return &DefinitionError{TestID: t.ID, Reason: "duration must not be negative"}
	}
	seen := make(map[string]struct{}, len(t.Questions))
	for _, q := range t.Questions {
		if err := q.Validate(); err != nil {
			return &DefinitionError{TestID: t.ID, Reason: err.Error()}
		}
		if _, dup := seen[q.ID]; dup {
			return &DefinitionError{TestID: t.ID, Reason: fmt.Sprintf("duplicate question %s", q.ID)}
		}
		seen[q.ID] = struct{}{}
	}
	for _, s := range t.Sections {
		if s.Name == "" {
			return &DefinitionError{TestID: t.ID, Reason: "section name is empty"}
		}
		for _, id := range s.QuestionIDs {
			if _, ok := seen[id]; !ok {
				return &DefinitionError{TestID: t.ID, Reason: fmt.Sprintf("section %q references question %s outside the test", s.Name, id)}
			}
		}
	}
	return nil
}

// IsDefinitionError reports whether err was caused by an invalid definition.
func IsDefinitionError(err error) bool {
	var de *DefinitionError
	return errors.As(err, &de)
}

// tally is the accumulator of the scoring fold. add returns a new value.
type tally struct {
	score   float64
	correct int
	wrong   int
	partial int
	skipped int
	pending int
	time    int
	entries []ReportEntry
}

func (t tally) add(q Question, a SubmittedAnswer) tally {
	r := Grade(q, a.Answer)

	next := t
	next.score += r.Score
	next.time += max(a.TimeTaken, 0)
	switch {
	case r.IsCorrect:
		next.correct++
	case r.IsPartialCorrect:
		next.partial++
	case !r.Attempted:
		next.skipped++
	default:
		next.wrong++
		if q.Type == Subjective {
			next.pending++
		}
	}

	next.entries = append(t.entries[:len(t.entries):len(t.entries)], ReportEntry{
		QuestionID:       q.ID,
		UserAnswer:       a.Answer,
		Attempted:        r.Attempted,
		IsCorrect:        r.IsCorrect,
		IsPartialCorrect: r.IsPartialCorrect,
		MarksAwarded:     r.Score,
		Feedback:         r.Feedback,
		TimeTaken:        max(a.TimeTaken, 0),
	})
	return next
}

// ScoreTest grades every submitted answer that belongs to the test and aggregates
// the result. Answers for questions outside the test, and repeated answers for a
// question already graded, are skipped. The final score is clamped at zero; the
// per-question marks are not.
func ScoreTest(answers []SubmittedAnswer, t Test) (Report, error) {
	if err := ValidateTest(t); err != nil {
		return Report{}, err
	}

	lookup := make(map[string]Question, len(t.Questions))
	var totalMarks float64
	for _, q := range t.Questions {
		lookup[q.ID] = q
		totalMarks += q.Marks
	}

	graded := make(map[string]struct{}, len(answers))
	acc := tally{entries: make([]ReportEntry, 0, len(answers))}
	for _, a := range answers {
		q, ok := lookup[a.QuestionID]
		if !ok {
			continue
		}
		if _, dup := graded[a.QuestionID]; dup {
			continue
		}
		graded[a.QuestionID] = struct{}{}
		acc = acc.add(q, a)
	}

	report := Report{
		Score:             max(0, acc.score),
		TotalMarks:        totalMarks,
		CorrectAnswers:    acc.correct,
		WrongAnswers:      acc.wrong,
		PartialCorrect:    acc.partial,
		Unattempted:       acc.skipped,
		PendingEvaluation: acc.pending,
		TotalTimeTaken:    acc.time,
		DetailedReport:    acc.entries,
	}
	if len(t.Sections) > 0 {
		report.Sections = ScoreSections(t.Sections, report.DetailedReport)
	}
	report.Topics = TopicPerformance(t.Questions, report.DetailedReport)
	return report, nil
}
