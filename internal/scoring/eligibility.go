package scoring

import "fmt"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptCompleted  AttemptStatus = "COMPLETED"
)

const ReasonReattemptNotAllowed = "Reattempts not allowed for this test"

// AttemptPolicy is the reattempt configuration of a test.
type AttemptPolicy struct {
	AllowReattempt bool
	MaxAttempts    int
}

// AttemptRecord is the part of a stored attempt the eligibility check reads.
type AttemptRecord struct {
	UserID uint
	Status AttemptStatus
}

// Eligibility is a normal outcome, not an error: a denial carries its reason.
type Eligibility struct {
	CanAttempt    bool   `json:"canAttempt"`
	Reason        string `json:"reason,omitempty"`
	AttemptNumber int    `json:"attemptNumber,omitempty"`
}

// CanReattempt decides whether userID may start another attempt given the attempt
// history of the test. Only the user's COMPLETED attempts count.
func CanReattempt(userID uint, policy AttemptPolicy, history []AttemptRecord) Eligibility {
	completed := 0
	for _, a := range history {
		if a.UserID == userID && a.Status == AttemptCompleted {
			completed++
		}
	}
	return CheckEligibility(policy, completed)
}

// CheckEligibility applies the reattempt rules to a completed-attempt count.
func CheckEligibility(policy AttemptPolicy, completed int) Eligibility {
	if !policy.AllowReattempt && completed > 0 {
		return Eligibility{Reason: ReasonReattemptNotAllowed}
	}
	if completed >= policy.MaxAttempts {
		return Eligibility{Reason: fmt.Sprintf("Maximum attempts (%d) reached for this test", policy.MaxAttempts)}
	}
	return Eligibility{CanAttempt: true, AttemptNumber: completed + 1}
}
