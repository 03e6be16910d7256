package model

import (
	"encoding/json"
	"exammaster_backend/internal/scoring"
	"fmt"

	"gorm.io/datatypes"
)

// Test is a published or draft test. QuestionIDs keeps the test order.
// swagger:model Test
type Test struct {
	UUIDBase
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Duration       int            `gorm:"not null;default:0" json:"duration"` // minutes, 0 means untimed
	AllowReattempt bool           `gorm:"default:false" json:"allowReattempt"`
	MaxAttempts    int            `gorm:"not null;default:1" json:"maxAttempts"`
	IsPublished    bool           `gorm:"default:false;index" json:"isPublished"`
	QuestionIDs    datatypes.JSON `json:"questionIds"` // JSON: []string
	Sections       []TestSection  `gorm:"foreignKey:TestID" json:"sections,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

// swagger:model TestSection
type TestSection struct {
	BaseModel
	TestID      string         `gorm:"index;type:varchar(36)" json:"testId"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Position    int            `gorm:"default:0" json:"position"`
	QuestionIDs datatypes.JSON `json:"questionIds"` // JSON: []string
	MaxMarks    float64        `json:"maxMarks"`
}

func (TestSection) TableName() string {
	return "test_sections"
}

func decodeIDs(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// EncodeIDs stores an id list in a JSON column.
func EncodeIDs(ids []string) datatypes.JSON {
	if ids == nil {
		ids = []string{}
	}
	b, _ := json.Marshal(ids)
	return datatypes.JSON(b)
}

func (t *Test) QuestionIDList() ([]string, error) {
	ids, err := decodeIDs(t.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("test %s: question ids: %w", t.ID, err)
	}
	return ids, nil
}

func (s *TestSection) QuestionIDList() ([]string, error) {
	ids, err := decodeIDs(s.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("section %q: question ids: %w", s.Name, err)
	}
	return ids, nil
}

func (t *Test) Policy() scoring.AttemptPolicy {
	return scoring.AttemptPolicy{AllowReattempt: t.AllowReattempt, MaxAttempts: t.MaxAttempts}
}

// ToScoring resolves the test against its questions, which must already be in
// test order.
func (t *Test) ToScoring(questions []scoring.Question) (scoring.Test, error) {
	st := scoring.Test{
		ID:             t.ID,
		Questions:      questions,
		Duration:       t.Duration,
		AllowReattempt: t.AllowReattempt,
		MaxAttempts:    t.MaxAttempts,
	}
	for _, s := range t.Sections {
		ids, err := s.QuestionIDList()
		if err != nil {
			return scoring.Test{}, fmt.Errorf("test %s: %w", t.ID, err)
		}
		st.Sections = append(st.Sections, scoring.Section{
			Name:        s.Name,
			QuestionIDs: ids,
			MaxMarks:    s.MaxMarks,
		})
	}
	return st, nil
}

// TestView is a test as a learner sees it: no answer keys.
type TestView struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Duration       int            `json:"duration"`
	AllowReattempt bool           `json:"allowReattempt"`
	MaxAttempts    int            `json:"maxAttempts"`
	Sections       []SectionView  `json:"sections,omitempty"`
	Questions      []QuestionView `json:"questions,omitempty"`
}

type SectionView struct {
	Name        string   `json:"name"`
	QuestionIDs []string `json:"questionIds"`
	MaxMarks    float64  `json:"maxMarks"`
}
