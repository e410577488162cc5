package entity

import (
	"github.com/google/uuid"
)

type JobStatus string

const (
	JobPendingReview JobStatus = "pending_review"
	JobOpen          JobStatus = "open"
	JobActive        JobStatus = "active"
	JobCompleted     JobStatus = "completed"
	JobRejected      JobStatus = "rejected"
)

func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobPendingReview, JobOpen, JobActive, JobCompleted, JobRejected:
		return true
	default:
		return false
	}
}

// db model
type Job struct {
	Id         uuid.UUID  `json:"id" db:"id"`
	CustomerId uuid.UUID  `json:"customerId" db:"customer_id"`
	Title      string     `json:"title" db:"title"`
	Details    string     `json:"details" db:"details"`
	Location   string     `json:"location" db:"location"`
	Urgent     bool       `json:"urgent" db:"urgent"`
	Status     JobStatus  `json:"status" db:"status"`
	AwardedTo  *uuid.UUID `json:"awardedTo" db:"awarded_to"`
	CreatedAt  string     `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateJobInput struct {
	CustomerId string // given
	Title      string // given
	Details    string // given
	Location   string // given
	Urgent     bool   // given
	// Status should be set: "pending_review"
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// controller model
type JobOutputModel struct {
	Id         string `json:"id"`
	CustomerId string `json:"customerId"`
	Title      string `json:"title"`
	Details    string `json:"details"`
	Location   string `json:"location"`
	Urgent     bool   `json:"urgent"`
	Status     string `json:"status"`
	AwardedTo  string `json:"awardedTo,omitempty"`
	CreatedAt  string `json:"createdAt"`
}
