package repo

import (
	"context"
	"job-market-api/internal/entity"
	"job-market-api/internal/repo/pgdb"
	"job-market-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Job interface {
	CreateJob(ctx context.Context, input *entity.CreateJobInput) (uuid.UUID, error)
	GetJobById(ctx context.Context, id string) (*entity.Job, error)
	UpdateJobStatusById(ctx context.Context, id string, newStatus entity.JobStatus) error
	// AwardJob atomically moves the job to active with awarded_to set. The
	// update is guarded so an already-active job only matches when awarded_to
	// is the same provider; when another provider holds the award it returns
	// repo_errors.ErrConflict.
	AwardJob(ctx context.Context, jobId string, providerId uuid.UUID) error
	GetOpenJobs(ctx context.Context, pg *entity.PaginationInput) ([]entity.Job, error)
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetJobBids(ctx context.Context, jobId string) ([]entity.Bid, error)
	GetProviderBids(ctx context.Context, providerId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	AcceptBidById(ctx context.Context, id string) error
	RejectPendingSiblings(ctx context.Context, jobId string, acceptedBidId string) error
}

type Conversation interface {
	GetConversation(ctx context.Context, jobId string, providerId string) (*entity.Conversation, error)
	CreateConversation(ctx context.Context, jobId, customerId, providerId uuid.UUID) (uuid.UUID, error)
	GetUserConversations(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.Conversation, error)
}

type Provider interface {
	DoesProviderExistById(ctx context.Context, id string) (bool, error)
	// GetProviderBalance reads the billing collaborator's balance projection.
	// This subsystem never debits it.
	GetProviderBalance(ctx context.Context, id string) (int64, error)
}

type Repositories struct {
	Diagnostics
	Job
	Bid
	Conversation
	Provider
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics:  pgdb.NewDiagnosticsRepo(p),
		Job:          pgdb.NewJobRepo(p),
		Bid:          pgdb.NewBidRepo(p),
		Conversation: pgdb.NewConversationRepo(p),
		Provider:     pgdb.NewProviderRepo(p),
	}
}
