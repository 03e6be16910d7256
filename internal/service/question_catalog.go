package service

import (
	"context"
	"exammaster_backend/internal/model"
	"exammaster_backend/internal/scoring"
	"exammaster_backend/internal/util"
	"exammaster_backend/pkg/logger"
	"exammaster_backend/pkg/monitoring"
	"fmt"

	"go.uber.org/zap"
)

// QuestionCatalog resolves question ids into their grading view, reading
// through the cache when one is configured.
type QuestionCatalog struct {
	Questions QuestionStore
	Cache     QuestionCache
}

func NewQuestionCatalog(questions QuestionStore, cache QuestionCache) *QuestionCatalog {
	return &QuestionCatalog{Questions: questions, Cache: cache}
}

// GetQuestionsByIDs returns the questions in the order of ids. Every id must
// exist and convert cleanly; a test pointing at anything else is corrupt.
func (s *QuestionCatalog) GetQuestionsByIDs(ctx context.Context, ids []string) ([]scoring.Question, error) {
	rows, err := s.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	questions := make([]scoring.Question, 0, len(ids))
	for _, id := range ids {
		row, ok := rows[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", util.ErrQuestionNotFound, id)
		}
		q, err := row.ToScoring()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrInvalidQuestion, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// GetRows returns the stored rows in the order of ids, skipping unknown ids.
func (s *QuestionCatalog) GetRows(ctx context.Context, ids []string) ([]model.Question, error) {
	rows, err := s.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.Question, 0, len(rows))
	for _, id := range ids {
		if row, ok := rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *QuestionCatalog) load(ctx context.Context, ids []string) (map[string]model.Question, error) {
	rows := make(map[string]model.Question, len(ids))
	missing := ids

	if s.Cache != nil {
		cached, err := s.Cache.GetMany(ctx, ids)
		if err != nil {
			logger.Log.Warn("Question cache read failed", zap.Error(err))
		} else {
			missing = missing[:0:0]
			for _, id := range ids {
				if q, ok := cached[id]; ok {
					rows[id] = q
					continue
				}
				missing = append(missing, id)
			}
			monitoring.QuestionCacheLookups.WithLabelValues("hit").Add(float64(len(ids) - len(missing)))
			monitoring.QuestionCacheLookups.WithLabelValues("miss").Add(float64(len(missing)))
		}
	}

	if len(missing) == 0 {
		return rows, nil
	}

	fetched, err := s.Questions.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, q := range fetched {
		rows[q.ID] = q
	}

	if s.Cache != nil && len(fetched) > 0 {
		if err := s.Cache.SetMany(ctx, fetched); err != nil {
			logger.Log.Warn("Question cache fill failed", zap.Error(err))
		}
	}
	return rows, nil
}
