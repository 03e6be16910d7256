package util

import "errors"

var (
	ErrTestNotFound     = errors.New("test not found")
	ErrTestNotPublished = errors.New("test not published or not accessible")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrAttemptNotOwned  = errors.New("attempt belongs to another user")
	ErrNotEligible      = errors.New("not eligible to attempt this test")
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrInvalidTest      = errors.New("invalid test")
	ErrInvalidTopic     = errors.New("topic is required")
)
