package service

import (
	"context"
	"errors"
	"testing"

	"job-market-api/internal/entity"
	"job-market-api/internal/feed"

	"github.com/google/uuid"
)

func newBidServiceForTest(m *memRepo) (*BidService, *feed.Feed) {
	changeFeed := feed.New()

	return NewBidService(m.repositories(), changeFeed), changeFeed
}

func TestSubmitBidHappyPath(t *testing.T) {
	m := newMemRepo()
	customer := uuid.New()
	provider := m.addProvider("Roofs & Co", 1000)
	job := m.addJob(customer, entity.JobOpen)

	svc, changeFeed := newBidServiceForTest(m)
	sub := changeFeed.Subscribe(job)
	defer sub.Cancel()

	bid, err := svc.SubmitBid(context.Background(), &entity.CreateBidInput{
		JobId:      job.String(),
		ProviderId: provider.String(),
		Amount:     100000,
		Notes:      "can start monday",
	})
	if err != nil {
		t.Fatalf("SubmitBid: %v", err)
	}
	if bid.Status != string(entity.BidPending) {
		t.Errorf("expected pending status, got %s", bid.Status)
	}
	if bid.ProviderName != "Roofs & Co" {
		t.Errorf("expected provider annotation, got %q", bid.ProviderName)
	}

	select {
	case e := <-sub.Events():
		if e.Type != feed.BidInserted {
			t.Errorf("expected bid_inserted event, got %s", e.Type)
		}
		if e.Bid.Id.String() != bid.Id {
			t.Errorf("event carries bid %s, want %s", e.Bid.Id, bid.Id)
		}
	default:
		t.Error("expected a feed event after submission")
	}
}

func TestSubmitBidNonPositiveAmount(t *testing.T) {
	m := newMemRepo()
	provider := m.addProvider("p", 1000)
	job := m.addJob(uuid.New(), entity.JobOpen)

	svc, _ := newBidServiceForTest(m)

	_, err := svc.SubmitBid(context.Background(), &entity.CreateBidInput{
		JobId: job.String(), ProviderId: provider.String(), Amount: 0,
	})
	if !errors.Is(err, ErrNonPositiveAmount) {
		t.Fatalf("expected ErrNonPositiveAmount, got %v", err)
	}
	if m.writeCount() != 0 {
		t.Errorf("expected no store writes, got %d", m.writeCount())
	}
}

func TestSubmitBidInsufficientBalance(t *testing.T) {
	m := newMemRepo()
	// commission for 100000 at 0.1% is 100
	provider := m.addProvider("p", 10)
	job := m.addJob(uuid.New(), entity.JobOpen)

	svc, _ := newBidServiceForTest(m)

	_, err := svc.SubmitBid(context.Background(), &entity.CreateBidInput{
		JobId: job.String(), ProviderId: provider.String(), Amount: 100000,
	})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if m.writeCount() != 0 {
		t.Errorf("expected no store writes, got %d", m.writeCount())
	}

	bids, err := svc.GetJobBids(context.Background(), job.String())
	if err != nil {
		t.Fatalf("GetJobBids: %v", err)
	}
	if len(bids) != 0 {
		t.Errorf("expected empty bid list, got %d entries", len(bids))
	}
}

func TestSubmitBidJobNotOpen(t *testing.T) {
	m := newMemRepo()
	provider := m.addProvider("p", 1000)
	job := m.addJob(uuid.New(), entity.JobPendingReview)

	svc, _ := newBidServiceForTest(m)

	_, err := svc.SubmitBid(context.Background(), &entity.CreateBidInput{
		JobId: job.String(), ProviderId: provider.String(), Amount: 50000,
	})
	if !errors.Is(err, ErrJobNotOpen) {
		t.Fatalf("expected ErrJobNotOpen, got %v", err)
	}
}

func TestSubmitBidUnknownProvider(t *testing.T) {
	m := newMemRepo()
	job := m.addJob(uuid.New(), entity.JobOpen)

	svc, _ := newBidServiceForTest(m)

	_, err := svc.SubmitBid(context.Background(), &entity.CreateBidInput{
		JobId: job.String(), ProviderId: uuid.New().String(), Amount: 50000,
	})
	if !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestGetJobBidsSortedByAmount(t *testing.T) {
	m := newMemRepo()
	customer := uuid.New()
	provider := m.addProvider("p", 100000)
	job := m.addJob(customer, entity.JobOpen)

	svc, _ := newBidServiceForTest(m)

	for _, amount := range []int64{50000, 120000, 75000} {
		if _, err := svc.SubmitBid(context.Background(), &entity.CreateBidInput{
			JobId: job.String(), ProviderId: provider.String(), Amount: amount,
		}); err != nil {
			t.Fatalf("SubmitBid(%d): %v", amount, err)
		}
	}

	bids, err := svc.GetJobBids(context.Background(), job.String())
	if err != nil {
		t.Fatalf("GetJobBids: %v", err)
	}

	want := []int64{50000, 75000, 120000}
	if len(bids) != len(want) {
		t.Fatalf("expected %d bids, got %d", len(want), len(bids))
	}
	for i, amount := range want {
		if bids[i].Amount != amount {
			t.Errorf("bids[%d].Amount = %d, want %d", i, bids[i].Amount, amount)
		}
	}
}
