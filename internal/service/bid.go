package service

import (
	"context"
	"errors"
	"job-market-api/internal/common"
	"job-market-api/internal/entity"
	"job-market-api/internal/feed"
	"job-market-api/internal/repo"
	"job-market-api/internal/repo/repo_errors"
)

type BidService struct {
	bidRepo          repo.Bid
	jobRepo          repo.Job
	conversationRepo repo.Conversation
	providerRepo     repo.Provider
	changeFeed       *feed.Feed
}

func NewBidService(repos *repo.Repositories, changeFeed *feed.Feed) *BidService {
	return &BidService{
		bidRepo:          repos.Bid,
		jobRepo:          repos.Job,
		conversationRepo: repos.Conversation,
		providerRepo:     repos.Provider,
		changeFeed:       changeFeed,
	}
}

func (s *BidService) SubmitBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	if input.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	job, err := s.jobRepo.GetJobById(ctx, input.JobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	if job.Status != entity.JobOpen {
		return nil, ErrJobNotOpen
	}

	exists, err := s.providerRepo.DoesProviderExistById(ctx, input.ProviderId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProviderNotFound
	}

	// Balance only needs to cover the commission; the debit itself is billing's
	// business, not ours.
	balance, err := s.providerRepo.GetProviderBalance(ctx, input.ProviderId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInsufficientBalance
		}

		return nil, err
	}
	if balance < common.Commission(input.Amount) {
		return nil, ErrInsufficientBalance
	}

	id, err := s.bidRepo.CreateBid(ctx, input)
	if err != nil {
		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	s.changeFeed.Publish(feed.Event{
		Type:  feed.BidInserted,
		JobId: bid.JobId,
		Bid:   *bid,
	})

	return mapBid(bid), nil
}

func (s *BidService) GetBidById(ctx context.Context, bidId string) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	return mapBid(bid), nil
}

func (s *BidService) GetJobBids(ctx context.Context, jobId string) ([]entity.BidOutputModel, error) {
	if _, err := s.jobRepo.GetJobById(ctx, jobId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	bids, err := s.bidRepo.GetJobBids(ctx, jobId)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

func (s *BidService) GetProviderBids(ctx context.Context, providerId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	exists, err := s.providerRepo.DoesProviderExistById(ctx, providerId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProviderNotFound
	}

	bids, err := s.bidRepo.GetProviderBids(ctx, providerId, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}
