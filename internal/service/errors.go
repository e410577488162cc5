package service

import "errors"

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrBidNotFound          = errors.New("bid not found")
	ErrProviderNotFound     = errors.New("provider not found")
	ErrConversationNotFound = errors.New("conversation not found")

	ErrJobNotOpen              = errors.New("job isn't open for bidding")
	ErrNonPositiveAmount       = errors.New("bid amount must be greater than zero")
	ErrInsufficientBalance     = errors.New("provider balance doesn't cover the commission")
	ErrInvalidStatusTransition = errors.New("job status can only move forward")

	ErrUserHasNoAccessToJob = errors.New("user isn't the author of the job")
	ErrBidNotOnJob          = errors.New("bid doesn't belong to the job")
	ErrBidAlreadyRejected   = errors.New("bid is already rejected")
	ErrJobAlreadyAwarded    = errors.New("job is already awarded to another provider")
)
