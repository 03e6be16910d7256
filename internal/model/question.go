package model

import (
	"encoding/json"
	"exammaster_backend/internal/scoring"
	"fmt"

	"gorm.io/datatypes"
)

// Question is a catalog question. Which correctness column is used depends on
// QuestionType; ToScoring rejects rows where they disagree.
// swagger:model Question
type Question struct {
	UUIDBase
	QuestionType   string         `gorm:"size:20;not null;index" json:"questionType"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	Options        datatypes.JSON `json:"options,omitempty"` // JSON: []string shown to the learner
	CorrectOption  string         `gorm:"size:20" json:"correctOption,omitempty"`
	CorrectOptions datatypes.JSON `json:"correctOptions,omitempty"` // JSON: []string
	IntegerAnswer  *int64         `json:"integerAnswer,omitempty"`
	RangeMin       *float64       `json:"rangeMin,omitempty"`
	RangeMax       *float64       `json:"rangeMax,omitempty"`
	Marks          float64        `gorm:"not null;default:1" json:"marks"`
	NegativeMarks  float64        `gorm:"not null;default:0" json:"negativeMarks"`
	PartialMarking bool           `gorm:"default:false" json:"partialMarking"`
	Topic          string         `gorm:"size:100;index" json:"topic"`
	Explanation    string         `gorm:"type:text" json:"explanation,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionView is a question as shown while a test is being taken.
type QuestionView struct {
	ID             string          `json:"id"`
	QuestionType   string          `json:"questionType"`
	Content        string          `json:"content"`
	Options        json.RawMessage `json:"options,omitempty"`
	Marks          float64         `json:"marks"`
	NegativeMarks  float64         `json:"negativeMarks"`
	PartialMarking bool            `json:"partialMarking"`
	Topic          string          `json:"topic,omitempty"`
}

func (q *Question) StudentView() QuestionView {
	return QuestionView{
		ID:             q.ID,
		QuestionType:   q.QuestionType,
		Content:        q.Content,
		Options:        json.RawMessage(q.Options),
		Marks:          q.Marks,
		NegativeMarks:  q.NegativeMarks,
		PartialMarking: q.PartialMarking,
		Topic:          q.Topic,
	}
}

// ToScoring builds the grading view of the row.
func (q *Question) ToScoring() (scoring.Question, error) {
	qt, err := scoring.ParseQuestionType(q.QuestionType)
	if err != nil {
		return scoring.Question{}, fmt.Errorf("question %s: %w", q.ID, err)
	}

	var key scoring.AnswerKey
	switch qt {
	case scoring.SingleChoice, scoring.TrueFalse:
		key, err = scoring.NewChoiceKey(q.CorrectOption)
	case scoring.MultiSelect:
		var options []string
		if len(q.CorrectOptions) > 0 {
			if err = json.Unmarshal(q.CorrectOptions, &options); err != nil {
				break
			}
		}
		key, err = scoring.NewMultiKey(options)
	case scoring.Integer:
		if q.IntegerAnswer == nil {
			err = fmt.Errorf("integer answer is missing")
			break
		}
		key = scoring.IntegerKey{Value: *q.IntegerAnswer}
	case scoring.NumericRange:
		if q.RangeMin == nil || q.RangeMax == nil {
			err = fmt.Errorf("range bounds are missing")
			break
		}
		key, err = scoring.NewRangeKey(*q.RangeMin, *q.RangeMax)
	case scoring.Subjective:
		key = scoring.SubjectiveKey{}
	}
	if err != nil {
		return scoring.Question{}, fmt.Errorf("question %s: %w", q.ID, err)
	}

	sq := scoring.Question{
		ID:             q.ID,
		Type:           qt,
		Key:            key,
		Marks:          q.Marks,
		NegativeMarks:  q.NegativeMarks,
		PartialMarking: q.PartialMarking,
		Topic:          q.Topic,
	}
	if err := sq.Validate(); err != nil {
		return scoring.Question{}, err
	}
	return sq, nil
}
