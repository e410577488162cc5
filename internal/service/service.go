package service

import (
	"context"
	"job-market-api/internal/entity"
	"job-market-api/internal/feed"
	"job-market-api/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

type Job interface {
	CreateJob(ctx context.Context, input *entity.CreateJobInput) (*entity.JobOutputModel, error)
	GetJobById(ctx context.Context, jobId string) (*entity.JobOutputModel, error)
	UpdateJobStatusById(ctx context.Context, jobId string, newStatus entity.JobStatus, customerId string) (*entity.JobOutputModel, error)
	GetOpenJobs(ctx context.Context, pg *entity.PaginationInput) ([]entity.JobOutputModel, error)
}

type Bid interface {
	SubmitBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	GetBidById(ctx context.Context, bidId string) (*entity.BidOutputModel, error)
	GetJobBids(ctx context.Context, jobId string) ([]entity.BidOutputModel, error)
	GetProviderBids(ctx context.Context, providerId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)

	// AwardBid runs the accept-bid transition and returns the id of the
	// conversation between the job's author and the winning provider.
	AwardBid(ctx context.Context, jobId string, bidId string, customerId string) (string, error)
}

type Conversation interface {
	GetConversation(ctx context.Context, jobId string, providerId string) (*entity.ConversationOutputModel, error)
	GetUserConversations(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.ConversationOutputModel, error)
}

type Services struct {
	Diagnostics  Diagnostics
	Job          Job
	Bid          Bid
	Conversation Conversation
}

func NewServices(repos *repo.Repositories, changeFeed *feed.Feed) *Services {
	return &Services{
		Diagnostics:  NewDiagnosticsService(repos),
		Job:          NewJobService(repos),
		Bid:          NewBidService(repos, changeFeed),
		Conversation: NewConversationService(repos),
	}
}
