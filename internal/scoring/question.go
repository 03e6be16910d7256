// Package scoring grades exam answers and aggregates them into score reports.
//
// Everything in this package is a pure function over in-memory values: it never
// touches storage, never logs, and returns the same output for the same input.
package scoring

import (
	"fmt"
	"strings"
)

type QuestionType string

const (
	SingleChoice QuestionType = "SINGLE_CHOICE"
	TrueFalse    QuestionType = "TRUE_FALSE"
	MultiSelect  QuestionType = "MULTI_SELECT"
	Integer      QuestionType = "INTEGER"
	NumericRange QuestionType = "NUMERIC_RANGE"
	Subjective   QuestionType = "SUBJECTIVE"
)

// ParseQuestionType accepts the canonical names case-insensitively.
func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case SingleChoice, TrueFalse, MultiSelect, Integer, NumericRange, Subjective:
		return t, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// AnswerKey is the correctness data of a question. The set of implementations is
// closed: one variant per question type.
type AnswerKey interface {
	answerKey()
}

// ChoiceKey serves SINGLE_CHOICE and TRUE_FALSE.
type ChoiceKey struct {
	Option string
}

// MultiKey holds the normalized, sorted correct option set of a MULTI_SELECT question.
type MultiKey struct {
	Options []string
}

type IntegerKey struct {
	Value int64
}

// RangeKey bounds are inclusive.
type RangeKey struct {
	Min float64
	Max float64
}

type SubjectiveKey struct{}

func (ChoiceKey) answerKey()     {}
func (MultiKey) answerKey()      {}
func (IntegerKey) answerKey()    {}
func (RangeKey) answerKey()      {}
func (SubjectiveKey) answerKey() {}

// Question is the grading view of a catalog question.
type Question struct {
	ID             string
	Type           QuestionType
	Key            AnswerKey
	Marks          float64
	NegativeMarks  float64
	PartialMarking bool
	Topic          string
}

// NewChoiceKey normalizes a single option letter.
func NewChoiceKey(option string) (ChoiceKey, error) {
	o := normalizeOption(option)
	if o == "" {
		return ChoiceKey{}, fmt.Errorf("correct option is empty")
	}
	return ChoiceKey{Option: o}, nil
}

// NewMultiKey normalizes and de-duplicates the correct option set.
func NewMultiKey(options []string) (MultiKey, error) {
	set := optionSet(options)
	if len(set) == 0 {
		return MultiKey{}, fmt.Errorf("correct options are empty")
	}
	return MultiKey{Options: sortedOptions(set)}, nil
}

func NewRangeKey(min, max float64) (RangeKey, error) {
	if min > max {
		return RangeKey{}, fmt.Errorf("range min %v is greater than max %v", min, max)
	}
	return RangeKey{Min: min, Max: max}, nil
}

// Validate checks that the key variant matches the question type and that the mark
// values are usable.
func (q Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question id is empty")
	}
	if q.Marks <= 0 {
		return fmt.Errorf("question %s: marks must be positive (got %v)", q.ID, q.Marks)
	}
	if q.NegativeMarks < 0 {
		return fmt.Errorf("question %s: negative marks must not be negative (got %v)", q.ID, q.NegativeMarks)
	}

	var ok bool
	switch q.Type {
	case SingleChoice, TrueFalse:
		_, ok = q.Key.(ChoiceKey)
	case MultiSelect:
		var k MultiKey
		k, ok = q.Key.(MultiKey)
		if ok && len(k.Options) == 0 {
			return fmt.Errorf("question %s: multi-select key has no options", q.ID)
		}
	case Integer:
		_, ok = q.Key.(IntegerKey)
	case NumericRange:
		var k RangeKey
		k, ok = q.Key.(RangeKey)
		if ok && k.Min > k.Max {
			return fmt.Errorf("question %s: range min is greater than max", q.ID)
		}
	case Subjective:
		_, ok = q.Key.(SubjectiveKey)
	default:
		return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
	}
	if !ok {
		return fmt.Errorf("question %s: answer key %T does not match type %s", q.ID, q.Key, q.Type)
	}
	return nil
}
