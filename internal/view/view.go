// Package view holds the client-side half of the bid lifecycle: a viewer's
// continuously reconciled copy of one job's bid list, fed by the change feed,
// with optimistic application and rollback around every mutation it initiates.
package view

import (
	"context"
	"sort"
	"sync"

	"job-market-api/internal/common"
	"job-market-api/internal/entity"
	"job-market-api/internal/feed"
	"job-market-api/internal/optimistic"
	"job-market-api/internal/service"

	"github.com/google/uuid"
)

// Store is the marketplace surface a bid board talks to. In production this is
// backed by the service layer on the other side of the wire; tests substitute
// fakes.
type Store interface {
	GetJobById(ctx context.Context, jobId string) (*entity.Job, error)
	GetJobBids(ctx context.Context, jobId string) ([]entity.Bid, error)
	SubmitBid(ctx context.Context, input *entity.CreateBidInput) (*entity.Bid, error)
	AwardBid(ctx context.Context, jobId string, bidId string, customerId string) (string, error)
	GetProviderBalance(ctx context.Context, providerId string) (int64, error)
}

// FeedSource hands out row-scoped subscriptions. *feed.Feed satisfies it.
type FeedSource interface {
	Subscribe(jobId uuid.UUID) *feed.Subscription
}

// BidBoard is one viewer watching one job. The viewer identity is fixed at
// Open and passed into every operation instead of being read from ambient
// session state.
type BidBoard struct {
	store  Store
	jobId  uuid.UUID
	viewer uuid.UUID

	mu        sync.Mutex
	jobStatus entity.JobStatus
	awardedTo *uuid.UUID
	bids      []entity.Bid

	sub  *feed.Subscription
	done chan struct{}
}

// Open fetches the job and its current bid list, subscribes to the job's bid
// inserts, and starts merging them in. Close must be called when the viewer
// navigates away.
func Open(ctx context.Context, store Store, source FeedSource, jobId string, viewerId string) (*BidBoard, error) {
	jobUuid, err := uuid.Parse(jobId)
	if err != nil {
		return nil, err
	}

	viewerUuid, err := uuid.Parse(viewerId)
	if err != nil {
		return nil, err
	}

	job, err := store.GetJobById(ctx, jobId)
	if err != nil {
		return nil, err
	}

	bids, err := store.GetJobBids(ctx, jobId)
	if err != nil {
		return nil, err
	}

	b := &BidBoard{
		store:     store,
		jobId:     jobUuid,
		viewer:    viewerUuid,
		jobStatus: job.Status,
		awardedTo: job.AwardedTo,
		bids:      sortByAmount(bids),
		sub:       source.Subscribe(jobUuid),
		done:      make(chan struct{}),
	}

	go b.watch()

	return b, nil
}

func (b *BidBoard) watch() {
	defer close(b.done)

	for e := range b.sub.Events() {
		if e.Type != feed.BidInserted || e.JobId != b.jobId {
			continue
		}

		b.mu.Lock()
		b.bids = mergeBid(b.bids, e.Bid)
		b.mu.Unlock()
	}
}

// Close tears down the feed subscription and waits for the merge loop to stop.
func (b *BidBoard) Close() {
	b.sub.Cancel()
	<-b.done
}

// Bids returns the current local list, amount ascending.
func (b *BidBoard) Bids() []entity.Bid {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]entity.Bid, len(b.bids))
	copy(out, b.bids)

	return out
}

func (b *BidBoard) JobStatus() entity.JobStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.jobStatus
}

// SubmitBid validates locally, appends an optimistic pending entry, then
// writes through the store. Validation failures happen before any local
// change; a store failure removes the optimistic entry again and returns the
// store's error untouched.
func (b *BidBoard) SubmitBid(ctx context.Context, amount int64, notes string) (*entity.Bid, error) {
	if amount <= 0 {
		return nil, service.ErrNonPositiveAmount
	}

	balance, err := b.store.GetProviderBalance(ctx, b.viewer.String())
	if err != nil {
		return nil, err
	}
	if balance < common.Commission(amount) {
		return nil, service.ErrInsufficientBalance
	}

	placeholder := entity.Bid{
		Id:         uuid.New(),
		JobId:      b.jobId,
		ProviderId: b.viewer,
		Amount:     amount,
		Notes:      notes,
		Status:     entity.BidPending,
	}

	b.mu.Lock()
	snap := optimistic.Capture(b.bids)
	b.bids = mergeBid(b.bids, placeholder)
	b.mu.Unlock()

	created, err := b.store.SubmitBid(ctx, &entity.CreateBidInput{
		JobId:      b.jobId.String(),
		ProviderId: b.viewer.String(),
		Amount:     amount,
		Notes:      notes,
	})

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.bids = snap.Restore()

		return nil, err
	}

	// Swap the placeholder for the durable row; the feed's copy of the same
	// insert then dedupes against the server id.
	b.bids = removeBid(b.bids, placeholder.Id)
	b.bids = mergeBid(b.bids, *created)

	return created, nil
}

// Accept runs the award transition for the viewer as the job's author: the
// target goes accepted and every pending sibling rejected locally before the
// coordinator is invoked, and the whole local view reverts if it fails. On
// success the conversation id is returned for navigation into the chat.
func (b *BidBoard) Accept(ctx context.Context, bidId string) (string, error) {
	targetUuid, err := uuid.Parse(bidId)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	snap := optimistic.Capture(b.bids)
	prevStatus := b.jobStatus
	prevAwardedTo := b.awardedTo

	var winner *uuid.UUID
	for i := range b.bids {
		switch {
		case b.bids[i].Id == targetUuid:
			b.bids[i].Status = entity.BidAccepted
			providerId := b.bids[i].ProviderId
			winner = &providerId
		case b.bids[i].Status == entity.BidPending:
			b.bids[i].Status = entity.BidRejected
		}
	}
	b.jobStatus = entity.JobActive
	b.awardedTo = winner
	b.mu.Unlock()

	conversationId, err := b.store.AwardBid(ctx, b.jobId.String(), bidId, b.viewer.String())

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.bids = snap.Restore()
		b.jobStatus = prevStatus
		b.awardedTo = prevAwardedTo

		return "", err
	}

	return conversationId, nil
}

// mergeBid splices a bid into the list, deduping by id so at-least-once feed
// delivery never produces duplicate entries, and keeps the amount-ascending
// order the server uses. A known id keeps its local entry untouched: a
// redelivered insert carries the row's state at insert time, which is staler
// than any accepted/rejected transition applied locally since.
func mergeBid(bids []entity.Bid, incoming entity.Bid) []entity.Bid {
	for i := range bids {
		if bids[i].Id == incoming.Id {
			return bids
		}
	}

	return sortByAmount(append(bids, incoming))
}

func removeBid(bids []entity.Bid, id uuid.UUID) []entity.Bid {
	out := bids[:0]
	for _, bid := range bids {
		if bid.Id != id {
			out = append(out, bid)
		}
	}

	return out
}

func sortByAmount(bids []entity.Bid) []entity.Bid {
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].Amount < bids[j].Amount
	})

	return bids
}
