// Package seed loads a question bank and its tests from a YAML file.
package seed

import (
	"context"
	"encoding/json"
	"exammaster_backend/internal/model"
	"exammaster_backend/internal/service"
	"exammaster_backend/pkg/logger"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the seed document. Tests refer to questions by their key.
type File struct {
	Questions []Question `yaml:"questions"`
	Tests     []Test     `yaml:"tests"`
}

type Question struct {
	Key            string   `yaml:"key"`
	Type           string   `yaml:"type"`
	Content        string   `yaml:"content"`
	Options        []string `yaml:"options"`
	CorrectOption  string   `yaml:"correct_option"`
	CorrectOptions []string `yaml:"correct_options"`
	IntegerAnswer  *int64   `yaml:"integer_answer"`
	RangeMin       *float64 `yaml:"range_min"`
	RangeMax       *float64 `yaml:"range_max"`
	Marks          float64  `yaml:"marks"`
	NegativeMarks  float64  `yaml:"negative_marks"`
	PartialMarking bool     `yaml:"partial_marking"`
	Topic          string   `yaml:"topic"`
	Explanation    string   `yaml:"explanation"`
}

type Section struct {
	Name      string   `yaml:"name"`
	Questions []string `yaml:"questions"`
	MaxMarks  float64  `yaml:"max_marks"`
}

type Test struct {
	Title          string    `yaml:"title"`
	Description    string    `yaml:"description"`
	Duration       int       `yaml:"duration"`
	AllowReattempt bool      `yaml:"allow_reattempt"`
	MaxAttempts    int       `yaml:"max_attempts"`
	Published      bool      `yaml:"published"`
	Questions      []string  `yaml:"questions"`
	Sections       []Section `yaml:"sections"`
}

// Catalog is the part of the catalog service the seeder writes through.
type Catalog interface {
	CreateQuestion(ctx context.Context, req service.QuestionReq) (*model.Question, error)
	CreateTest(ctx context.Context, req service.TestReq) (*model.Test, error)
}

// Result maps question keys to the stored IDs and lists the created tests.
type Result struct {
	QuestionIDs map[string]string
	TestIDs     []string
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	seen := make(map[string]bool, len(f.Questions))
	for i, q := range f.Questions {
		if q.Key == "" {
			return nil, fmt.Errorf("question %d has no key", i)
		}
		if seen[q.Key] {
			return nil, fmt.Errorf("duplicate question key %q", q.Key)
		}
		seen[q.Key] = true
	}
	return &f, nil
}

// Apply creates every question, then every test. It stops at the first
// rejected entry; entries created before it are kept.
func Apply(ctx context.Context, catalog Catalog, f *File) (*Result, error) {
	res := &Result{QuestionIDs: make(map[string]string, len(f.Questions))}

	for _, q := range f.Questions {
		req, err := q.request()
		if err != nil {
			return res, err
		}
		created, err := catalog.CreateQuestion(ctx, req)
		if err != nil {
			return res, fmt.Errorf("question %q: %w", q.Key, err)
		}
		res.QuestionIDs[q.Key] = created.ID
	}

	for _, t := range f.Tests {
		req, err := t.request(res.QuestionIDs)
		if err != nil {
			return res, err
		}
		created, err := catalog.CreateTest(ctx, req)
		if err != nil {
			return res, fmt.Errorf("test %q: %w", t.Title, err)
		}
		res.TestIDs = append(res.TestIDs, created.ID)
	}

	logger.Log.Info("Seed applied",
		zap.Int("questions", len(res.QuestionIDs)),
		zap.Int("tests", len(res.TestIDs)),
	)
	return res, nil
}

func (q Question) request() (service.QuestionReq, error) {
	req := service.QuestionReq{
		QuestionType:   q.Type,
		Content:        q.Content,
		CorrectOption:  q.CorrectOption,
		CorrectOptions: q.CorrectOptions,
		IntegerAnswer:  q.IntegerAnswer,
		RangeMin:       q.RangeMin,
		RangeMax:       q.RangeMax,
		Marks:          q.Marks,
		NegativeMarks:  q.NegativeMarks,
		PartialMarking: q.PartialMarking,
		Topic:          q.Topic,
		Explanation:    q.Explanation,
	}
	if len(q.Options) > 0 {
		raw, err := json.Marshal(q.Options)
		if err != nil {
			return req, fmt.Errorf("question %q options: %w", q.Key, err)
		}
		req.Options = raw
	}
	return req, nil
}

func (t Test) request(ids map[string]string) (service.TestReq, error) {
	resolve := func(keys []string) ([]string, error) {
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			id, ok := ids[k]
			if !ok {
				return nil, fmt.Errorf("test %q references unknown question %q", t.Title, k)
			}
			out = append(out, id)
		}
		return out, nil
	}

	questionIDs, err := resolve(t.Questions)
	if err != nil {
		return service.TestReq{}, err
	}
	req := service.TestReq{
		Title:          t.Title,
		Description:    t.Description,
		Duration:       t.Duration,
		AllowReattempt: t.AllowReattempt,
		MaxAttempts:    t.MaxAttempts,
		IsPublished:    t.Published,
		QuestionIDs:    questionIDs,
	}
	for _, s := range t.Sections {
		sectionIDs, err := resolve(s.Questions)
		if err != nil {
			return service.TestReq{}, err
		}
		req.Sections = append(req.Sections, service.SectionReq{
			Name:        s.Name,
			QuestionIDs: sectionIDs,
			MaxMarks:    s.MaxMarks,
		})
	}
	return req, nil
}
