package entity

import "github.com/google/uuid"

// Conversation is the channel between a job's author and the awarded provider.
// At most one row exists per (job, provider) pair.
type Conversation struct {
	Id         uuid.UUID
	JobId      uuid.UUID
	CustomerId uuid.UUID
	ProviderId uuid.UUID
	CreatedAt  string
}

type ConversationOutputModel struct {
	Id         string `json:"id"`
	JobId      string `json:"jobId"`
	CustomerId string `json:"customerId"`
	ProviderId string `json:"providerId"`
	CreatedAt  string `json:"createdAt"`
}
