package entity

import (
	"github.com/google/uuid"
)

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

func ValidBidStatus(s BidStatus) bool {
	switch s {
	case BidPending, BidAccepted, BidRejected:
		return true
	default:
		return false
	}
}

// db model, joined with the submitter's display attributes at fetch time
type Bid struct {
	Id             uuid.UUID `json:"id" db:"id"`
	JobId          uuid.UUID `json:"jobId" db:"job_id"`
	ProviderId     uuid.UUID `json:"providerId" db:"provider_id"`
	Amount         int64     `json:"amount" db:"amount"`
	Notes          string    `json:"notes" db:"notes"`
	Status         BidStatus `json:"status" db:"status"`
	CreatedAt      string    `json:"createdAt" db:"created_at"`
	ProviderName   string    `json:"providerName" db:"provider_name"`
	ProviderLogo   string    `json:"providerLogo" db:"provider_logo"`
	ProviderRating float64   `json:"providerRating" db:"provider_rating"`
}

// service + repo input model
type CreateBidInput struct {
	JobId      string // given
	ProviderId string // given
	Amount     int64  // given, > 0
	Notes      string // given, optional
	// Status should be set: "pending"
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// controller model
type BidOutputModel struct {
	Id             string  `json:"id"`
	JobId          string  `json:"jobId"`
	ProviderId     string  `json:"providerId"`
	Amount         int64   `json:"amount"`
	Notes          string  `json:"notes"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	ProviderName   string  `json:"providerName"`
	ProviderLogo   string  `json:"providerLogo"`
	ProviderRating float64 `json:"providerRating"`
}
