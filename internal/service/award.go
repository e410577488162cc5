package service

import (
	"context"
	"errors"
	"job-market-api/internal/entity"
	"job-market-api/internal/repo/repo_errors"
)

// AwardBid accepts one bid and settles everything that follows from it, in a
// fixed order:
//
//  1. job → active with awarded_to set (compare-and-swap, so a racing award
//     by another provider loses instead of overwriting the winner)
//  2. every other pending bid of the job → rejected
//  3. the target bid → accepted
//  4. ensure the (job, provider) conversation exists, creating it if absent
//
// The job goes active before siblings are rejected so no observer ever sees an
// open job with an accepted bid. There are no compensating writes: a failure
// partway leaves the store partially applied, and re-running the whole call is
// safe because every step is idempotent or guarded by a read.
func (s *BidService) AwardBid(ctx context.Context, jobId string, bidId string, customerId string) (string, error) {
	job, err := s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return "", ErrJobNotFound
		}

		return "", err
	}

	if job.CustomerId.String() != customerId {
		return "", ErrUserHasNoAccessToJob
	}

	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return "", ErrBidNotFound
		}

		return "", err
	}

	if bid.JobId.String() != jobId {
		return "", ErrBidNotOnJob
	}

	if bid.Status == entity.BidRejected {
		return "", ErrBidAlreadyRejected
	}

	switch job.Status {
	case entity.JobOpen:
	case entity.JobActive:
		if job.AwardedTo == nil || *job.AwardedTo != bid.ProviderId {
			return "", ErrJobAlreadyAwarded
		}
		// Retry of an interrupted award, or a fully settled one. When nothing
		// is left to do, skip straight to the conversation lookup so a replay
		// issues no writes at all.
		if bid.Status == entity.BidAccepted {
			return s.ensureConversation(ctx, job, bid)
		}
	default:
		return "", ErrJobNotOpen
	}

	if err := s.jobRepo.AwardJob(ctx, jobId, bid.ProviderId); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return "", ErrJobAlreadyAwarded
		}

		return "", err
	}

	if err := s.bidRepo.RejectPendingSiblings(ctx, jobId, bidId); err != nil {
		return "", err
	}

	if err := s.bidRepo.AcceptBidById(ctx, bidId); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return "", ErrBidAlreadyRejected
		}

		return "", err
	}

	return s.ensureConversation(ctx, job, bid)
}

// ensureConversation is check-then-create: conversation insert is the one step
// with a non-idempotent side effect, so it never runs when a row already
// exists for the pair.
func (s *BidService) ensureConversation(ctx context.Context, job *entity.Job, bid *entity.Bid) (string, error) {
	conversation, err := s.conversationRepo.GetConversation(ctx, job.Id.String(), bid.ProviderId.String())
	if err == nil {
		return conversation.Id.String(), nil
	}
	if !errors.Is(err, repo_errors.ErrNotFound) {
		return "", err
	}

	conversationId, err := s.conversationRepo.CreateConversation(ctx, job.Id, job.CustomerId, bid.ProviderId)
	if err != nil {
		return "", err
	}

	return conversationId.String(), nil
}
