package service

import (
	"context"
	"encoding/json"
	"errors"
	"exammaster_backend/internal/model"
	"exammaster_backend/internal/scoring"
	"exammaster_backend/internal/util"
	"exammaster_backend/pkg/logger"
	"exammaster_backend/pkg/monitoring"
	"exammaster_backend/pkg/tracing"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AttemptService struct {
	Tests    TestStore
	Attempts AttemptStore
	Catalog  *QuestionCatalog
	Reviews  *ReviewService
	Archive  ReportArchiver
	Now      func() time.Time
}

func NewAttemptService(tests TestStore, attempts AttemptStore, catalog *QuestionCatalog, reviews *ReviewService, archive ReportArchiver) *AttemptService {
	return &AttemptService{
		Tests:    tests,
		Attempts: attempts,
		Catalog:  catalog,
		Reviews:  reviews,
		Archive:  archive,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// AttemptResult is an attempt with its decoded report. Report is nil while
// the attempt is in progress.
type AttemptResult struct {
	Attempt *model.TestAttempt `json:"attempt"`
	Report  *scoring.Report    `json:"report,omitempty"`
}

func (s *AttemptService) publishedTest(ctx context.Context, testID string) (*model.Test, error) {
	test, err := s.Tests.FindByID(ctx, testID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	if !test.IsPublished {
		return nil, util.ErrTestNotPublished
	}
	return test, nil
}

// CheckEligibility reports whether the user may start a new attempt.
func (s *AttemptService) CheckEligibility(ctx context.Context, userID uint, testID string) (scoring.Eligibility, error) {
	test, err := s.publishedTest(ctx, testID)
	if err != nil {
		return scoring.Eligibility{}, err
	}
	completed, err := s.Attempts.CountCompleted(ctx, userID, testID)
	if err != nil {
		return scoring.Eligibility{}, err
	}
	return scoring.CheckEligibility(test.Policy(), completed), nil
}

// StartAttempt returns the user's in-progress attempt for the test, or creates
// the next one if the reattempt rules allow it.
func (s *AttemptService) StartAttempt(ctx context.Context, userID uint, testID string) (*model.TestAttempt, error) {
	test, err := s.publishedTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	active, err := s.Attempts.FindActive(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return active, nil
	}

	completed, err := s.Attempts.CountCompleted(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	elig := scoring.CheckEligibility(test.Policy(), completed)
	if !elig.CanAttempt {
		return nil, fmt.Errorf("%w: %s", util.ErrNotEligible, elig.Reason)
	}

	key := model.ActiveKeyFor(userID, testID)
	attempt := &model.TestAttempt{
		TestID:        testID,
		UserID:        userID,
		AttemptNumber: elig.AttemptNumber,
		Status:        string(scoring.AttemptInProgress),
		ActiveKey:     &key,
		StartedAt:     s.Now(),
	}
	if err := s.Attempts.Create(ctx, attempt); err != nil {
		// lost a race with a concurrent start
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if active, findErr := s.Attempts.FindActive(ctx, userID, testID); findErr == nil && active != nil {
				return active, nil
			}
		}
		return nil, err
	}

	logger.Log.Info("Attempt started",
		zap.String("attemptId", attempt.ID),
		zap.String("testId", testID),
		zap.Uint("userId", userID),
		zap.Int("attemptNumber", attempt.AttemptNumber),
	)
	return attempt, nil
}

func (s *AttemptService) ownedAttempt(ctx context.Context, userID uint, attemptID string) (*model.TestAttempt, error) {
	attempt, err := s.Attempts.FindByID(ctx, attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrAttemptNotOwned
	}
	return attempt, nil
}

// ListAttempts returns the user's attempts at a test, oldest first.
func (s *AttemptService) ListAttempts(ctx context.Context, userID uint, testID string) ([]model.TestAttempt, error) {
	if _, err := s.Tests.FindByID(ctx, testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return s.Attempts.ListByUserAndTest(ctx, userID, testID)
}

// GetAttemptResult returns the attempt and, once completed, its stored report.
func (s *AttemptService) GetAttemptResult(ctx context.Context, userID uint, attemptID string) (*AttemptResult, error) {
	attempt, err := s.ownedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	return storedResult(attempt)
}

func storedResult(attempt *model.TestAttempt) (*AttemptResult, error) {
	res := &AttemptResult{Attempt: attempt}
	if attempt.Status != string(scoring.AttemptCompleted) || len(attempt.Report) == 0 {
		return res, nil
	}
	var report scoring.Report
	if err := json.Unmarshal(attempt.Report, &report); err != nil {
		return nil, fmt.Errorf("attempt %s: decode report: %w", attempt.ID, err)
	}
	res.Report = &report
	return res, nil
}

// SubmitAttempt scores the answers and completes the attempt. Submitting an
// attempt that is already completed returns the stored result unchanged.
// Submissions after the time limit are still scored and flagged as timed out.
func (s *AttemptService) SubmitAttempt(ctx context.Context, userID uint, attemptID string, answers []scoring.SubmittedAnswer) (res *AttemptResult, err error) {
	ctx, span := tracing.Start(ctx, "attempt.submit",
		attribute.String("attempt.id", attemptID),
		attribute.Int("answers.count", len(answers)),
	)
	defer func() { tracing.End(span, err) }()

	attempt, err := s.ownedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == string(scoring.AttemptCompleted) {
		return storedResult(attempt)
	}

	test, err := s.Tests.FindByID(ctx, attempt.TestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}

	report, err := s.score(ctx, test, answers)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	deadline := attempt.Deadline(test.Duration)
	timedOut := !deadline.IsZero() && now.After(deadline)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}

	attempt.CompletedAt = &now
	attempt.Answers = answersJSON
	attempt.Report = reportJSON
	attempt.Score = report.Score
	attempt.TotalMarks = report.TotalMarks
	attempt.CorrectAnswers = report.CorrectAnswers
	attempt.WrongAnswers = report.WrongAnswers
	attempt.PartialCorrect = report.PartialCorrect
	attempt.Unattempted = report.Unattempted
	attempt.TimeTaken = int(now.Sub(attempt.StartedAt).Seconds())
	attempt.TimedOut = timedOut

	updated, err := s.Attempts.Complete(ctx, attempt)
	if err != nil {
		return nil, err
	}
	if !updated {
		// a concurrent submission completed it first; its result stands
		stored, err := s.Attempts.FindByID(ctx, attemptID)
		if err != nil {
			return nil, err
		}
		return storedResult(stored)
	}
	attempt.Status = string(scoring.AttemptCompleted)
	attempt.ActiveKey = nil

	monitoring.ObserveScore(report.Score, report.TotalMarks, timedOut)
	logger.Log.Info("Attempt scored",
		zap.String("attemptId", attempt.ID),
		zap.String("testId", attempt.TestID),
		zap.Uint("userId", userID),
		zap.Float64("score", report.Score),
		zap.Float64("totalMarks", report.TotalMarks),
		zap.Bool("timedOut", timedOut),
	)

	s.afterSubmit(ctx, attempt, report)
	return &AttemptResult{Attempt: attempt, Report: &report}, nil
}

func (s *AttemptService) score(ctx context.Context, test *model.Test, answers []scoring.SubmittedAnswer) (report scoring.Report, err error) {
	ctx, span := tracing.Start(ctx, "attempt.score", attribute.String("test.id", test.ID))
	defer func() { tracing.End(span, err) }()

	ids, err := test.QuestionIDList()
	if err != nil {
		return scoring.Report{}, err
	}
	questions, err := s.Catalog.GetQuestionsByIDs(ctx, ids)
	if errors.Is(err, util.ErrQuestionNotFound) || errors.Is(err, util.ErrInvalidQuestion) {
		return scoring.Report{}, fmt.Errorf("%w: %w", util.ErrInvalidTest, err)
	}
	if err != nil {
		return scoring.Report{}, err
	}
	st, err := test.ToScoring(questions)
	if err != nil {
		return scoring.Report{}, fmt.Errorf("%w: %w", util.ErrInvalidTest, err)
	}
	report, err = scoring.ScoreTest(answers, st)
	if err != nil {
		return scoring.Report{}, fmt.Errorf("%w: %w", util.ErrInvalidTest, err)
	}
	return report, nil
}

// afterSubmit runs the follow-ups of a scored attempt. They never fail the
// submission; errors are logged.
func (s *AttemptService) afterSubmit(ctx context.Context, attempt *model.TestAttempt, report scoring.Report) {
	if s.Reviews != nil {
		if err := s.Reviews.RecordTopicResults(ctx, attempt.UserID, report.Topics); err != nil {
			logger.Log.Warn("Failed to update review schedule",
				zap.String("attemptId", attempt.ID),
				zap.Error(err),
			)
		}
	}
	if s.Archive != nil {
		if err := s.Archive.Save(ctx, attempt.ID, attempt.Report); err != nil {
			logger.Log.Warn("Failed to archive report",
				zap.String("attemptId", attempt.ID),
				zap.Error(err),
			)
		}
	}
}
