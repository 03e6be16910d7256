package model

import "time"

// ReviewRecord is the spaced-repetition state of one topic for one learner.
// swagger:model ReviewRecord
type ReviewRecord struct {
	BaseModel
	UserID          uint      `gorm:"uniqueIndex:idx_review_user_topic;not null" json:"userId"`
	Topic           string    `gorm:"uniqueIndex:idx_review_user_topic;size:100;not null" json:"topic"`
	EaseFactor      float64   `gorm:"not null" json:"easeFactor"`
	IntervalDays    int       `gorm:"not null" json:"intervalDays"`
	Repetitions     int       `gorm:"default:0" json:"repetitions"`
	LastPerformance int       `json:"lastPerformance"`
	LastReviewedAt  time.Time `json:"lastReviewedAt"`
	NextReviewDate  time.Time `gorm:"index" json:"nextReviewDate"`
}

func (ReviewRecord) TableName() string {
	return "review_records"
}
