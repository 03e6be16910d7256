package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// TestAttempt is one sitting of a test. ActiveKey is set only while the attempt
// is in progress; its unique index allows a single active attempt per user and test.
// swagger:model TestAttempt
type TestAttempt struct {
	UUIDBase
	TestID         string         `gorm:"index;type:varchar(36);not null" json:"testId"`
	UserID         uint           `gorm:"index;not null" json:"userId"`
	AttemptNumber  int            `gorm:"not null" json:"attemptNumber"`
	Status         string         `gorm:"size:20;not null;index;default:'IN_PROGRESS'" json:"status"`
	ActiveKey      *string        `gorm:"size:80;uniqueIndex" json:"-"`
	StartedAt      time.Time      `json:"startedAt"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	Answers        datatypes.JSON `json:"-"`
	Report         datatypes.JSON `json:"-"`
	Score          float64        `gorm:"default:0" json:"score"`
	TotalMarks     float64        `gorm:"default:0" json:"totalMarks"`
	CorrectAnswers int            `gorm:"default:0" json:"correctAnswers"`
	WrongAnswers   int            `gorm:"default:0" json:"wrongAnswers"`
	PartialCorrect int            `gorm:"default:0" json:"partialCorrect"`
	Unattempted    int            `gorm:"default:0" json:"unattempted"`
	TimeTaken      int            `gorm:"default:0" json:"timeTaken"` // seconds
	TimedOut       bool           `gorm:"default:false" json:"timedOut"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

func ActiveKeyFor(userID uint, testID string) string {
	return fmt.Sprintf("%d:%s", userID, testID)
}

// Deadline is the end of the allowed time, or zero for untimed tests.
func (a *TestAttempt) Deadline(durationMinutes int) time.Time {
	if durationMinutes <= 0 {
		return time.Time{}
	}
	return a.StartedAt.Add(time.Duration(durationMinutes) * time.Minute)
}
