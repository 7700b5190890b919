package models

import "time"

// Submission statuses.
const (
	SubmissionStatusReceived = "received"
	SubmissionStatusReviewed = "reviewed"
)

// Submission is one respondent's answers to a published form.
type Submission struct {
	ID          string            `json:"id"`
	FormID      string            `json:"formId"`
	Data        map[string]string `json:"data"`
	Status      string            `json:"status"`
	SubmittedAt time.Time         `json:"submittedAt"`
}
