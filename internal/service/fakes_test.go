package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"job-market-api/internal/entity"
	"job-market-api/internal/repo"
	"job-market-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

// memRepo is an in-memory stand-in for the pgdb repositories. It enforces the
// same row-level guards the real schema does (single accepted bid per job,
// unique conversation pair) and counts mutating statements so tests can assert
// a replayed award issues no writes.
type memRepo struct {
	mu            sync.Mutex
	jobs          map[uuid.UUID]entity.Job
	bids          map[uuid.UUID]entity.Bid
	conversations map[uuid.UUID]entity.Conversation
	providers     map[uuid.UUID]string
	balances      map[uuid.UUID]int64

	writes int
	failOn map[string]error
}

func newMemRepo() *memRepo {
	return &memRepo{
		jobs:          make(map[uuid.UUID]entity.Job),
		bids:          make(map[uuid.UUID]entity.Bid),
		conversations: make(map[uuid.UUID]entity.Conversation),
		providers:     make(map[uuid.UUID]string),
		balances:      make(map[uuid.UUID]int64),
		failOn:        make(map[string]error),
	}
}

func (m *memRepo) repositories() *repo.Repositories {
	return &repo.Repositories{
		Diagnostics:  m,
		Job:          m,
		Bid:          m,
		Conversation: m,
		Provider:     m,
	}
}

func (m *memRepo) fail(op string) error {
	if err, ok := m.failOn[op]; ok {
		return err
	}

	return nil
}

func (m *memRepo) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.writes
}

func (m *memRepo) Ping() error { return nil }

func (m *memRepo) addProvider(name string, balance int64) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.providers[id] = name
	m.balances[id] = balance

	return id
}

func (m *memRepo) addJob(customerId uuid.UUID, status entity.JobStatus) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.jobs[id] = entity.Job{
		Id:         id,
		CustomerId: customerId,
		Title:      "fix the roof",
		Status:     status,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	return id
}

func (m *memRepo) CreateJob(ctx context.Context, input *entity.CreateJobInput) (uuid.UUID, error) {
	if err := m.fail("CreateJob"); err != nil {
		return uuid.Nil, err
	}

	customerUuid, err := uuid.Parse(input.CustomerId)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.jobs[id] = entity.Job{
		Id:         id,
		CustomerId: customerUuid,
		Title:      input.Title,
		Details:    input.Details,
		Location:   input.Location,
		Urgent:     input.Urgent,
		Status:     entity.JobPendingReview,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	m.writes++

	return id, nil
}

func (m *memRepo) GetJobById(ctx context.Context, id string) (*entity.Job, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &job, nil
}

func (m *memRepo) UpdateJobStatusById(ctx context.Context, id string, newStatus entity.JobStatus) error {
	if err := m.fail("UpdateJobStatusById"); err != nil {
		return err
	}

	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	job.Status = newStatus
	m.jobs[uuidForm] = job
	m.writes++

	return nil
}

func (m *memRepo) AwardJob(ctx context.Context, jobId string, providerId uuid.UUID) error {
	if err := m.fail("AwardJob"); err != nil {
		return err
	}

	uuidForm, err := uuid.Parse(jobId)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[uuidForm]
	if !ok {
		return repo_errors.ErrConflict
	}

	open := job.Status == entity.JobOpen
	sameWinner := job.Status == entity.JobActive && job.AwardedTo != nil && *job.AwardedTo == providerId
	if !open && !sameWinner {
		return repo_errors.ErrConflict
	}

	job.Status = entity.JobActive
	job.AwardedTo = &providerId
	m.jobs[uuidForm] = job
	m.writes++

	return nil
}

func (m *memRepo) GetOpenJobs(ctx context.Context, pg *entity.PaginationInput) ([]entity.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := make([]entity.Job, 0)
	for _, job := range m.jobs {
		if job.Status == entity.JobOpen {
			jobs = append(jobs, job)
		}
	}

	return jobs, nil
}

func (m *memRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	if err := m.fail("CreateBid"); err != nil {
		return uuid.Nil, err
	}

	jobUuid, err := uuid.Parse(input.JobId)
	if err != nil {
		return uuid.Nil, err
	}

	providerUuid, err := uuid.Parse(input.ProviderId)
	if err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.bids[id] = entity.Bid{
		Id:           id,
		JobId:        jobUuid,
		ProviderId:   providerUuid,
		Amount:       input.Amount,
		Notes:        input.Notes,
		Status:       entity.BidPending,
		CreatedAt:    time.Now().Format(time.RFC3339),
		ProviderName: m.providers[providerUuid],
	}
	m.writes++

	return id, nil
}

func (m *memRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bid, ok := m.bids[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &bid, nil
}

func (m *memRepo) GetJobBids(ctx context.Context, jobId string) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(jobId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bids := make([]entity.Bid, 0)
	for _, bid := range m.bids {
		if bid.JobId == uuidForm {
			bids = append(bids, bid)
		}
	}
	sort.Slice(bids, func(i, j int) bool { return bids[i].Amount < bids[j].Amount })

	return bids, nil
}

func (m *memRepo) GetProviderBids(ctx context.Context, providerId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(providerId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bids := make([]entity.Bid, 0)
	for _, bid := range m.bids {
		if bid.ProviderId == uuidForm {
			bids = append(bids, bid)
		}
	}

	return bids, nil
}

func (m *memRepo) AcceptBidById(ctx context.Context, id string) error {
	if err := m.fail("AcceptBidById"); err != nil {
		return err
	}

	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bid, ok := m.bids[uuidForm]
	if !ok || bid.Status == entity.BidRejected {
		return repo_errors.ErrConflict
	}
	if bid.Status == entity.BidAccepted {
		return nil
	}

	// the partial unique index on accepted bids
	for _, other := range m.bids {
		if other.JobId == bid.JobId && other.Status == entity.BidAccepted {
			return errors.New(`duplicate key value violates unique constraint "bid_single_winner"`)
		}
	}

	bid.Status = entity.BidAccepted
	m.bids[uuidForm] = bid
	m.writes++

	return nil
}

func (m *memRepo) RejectPendingSiblings(ctx context.Context, jobId string, acceptedBidId string) error {
	if err := m.fail("RejectPendingSiblings"); err != nil {
		return err
	}

	jobUuid, err := uuid.Parse(jobId)
	if err != nil {
		return err
	}

	bidUuid, err := uuid.Parse(acceptedBidId)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, bid := range m.bids {
		if bid.JobId == jobUuid && id != bidUuid && bid.Status == entity.BidPending {
			bid.Status = entity.BidRejected
			m.bids[id] = bid
			m.writes++
		}
	}

	return nil
}

func (m *memRepo) GetConversation(ctx context.Context, jobId string, providerId string) (*entity.Conversation, error) {
	jobUuid, err := uuid.Parse(jobId)
	if err != nil {
		return nil, err
	}

	providerUuid, err := uuid.Parse(providerId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, conversation := range m.conversations {
		if conversation.JobId == jobUuid && conversation.ProviderId == providerUuid {
			return &conversation, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (m *memRepo) CreateConversation(ctx context.Context, jobId, customerId, providerId uuid.UUID) (uuid.UUID, error) {
	if err := m.fail("CreateConversation"); err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, conversation := range m.conversations {
		if conversation.JobId == jobId && conversation.ProviderId == providerId {
			return uuid.Nil, errors.New(`duplicate key value violates unique constraint "conversation_job_id_provider_id_key"`)
		}
	}

	id := uuid.New()
	m.conversations[id] = entity.Conversation{
		Id:         id,
		JobId:      jobId,
		CustomerId: customerId,
		ProviderId: providerId,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	m.writes++

	return id, nil
}

func (m *memRepo) GetUserConversations(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.Conversation, error) {
	uuidForm, err := uuid.Parse(userId)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	conversations := make([]entity.Conversation, 0)
	for _, conversation := range m.conversations {
		if conversation.CustomerId == uuidForm || conversation.ProviderId == uuidForm {
			conversations = append(conversations, conversation)
		}
	}

	return conversations, nil
}

func (m *memRepo) DoesProviderExistById(ctx context.Context, id string) (bool, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.providers[uuidForm]

	return ok, nil
}

func (m *memRepo) GetProviderBalance(ctx context.Context, id string) (int64, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	balance, ok := m.balances[uuidForm]
	if !ok {
		return 0, repo_errors.ErrNotFound
	}

	return balance, nil
}
