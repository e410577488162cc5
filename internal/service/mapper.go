package service

import (
	"job-market-api/internal/entity"
)

func mapJob(j *entity.Job) *entity.JobOutputModel {
	out := &entity.JobOutputModel{
		Id:         j.Id.String(),
		CustomerId: j.CustomerId.String(),
		Title:      j.Title,
		Details:    j.Details,
		Location:   j.Location,
		Urgent:     j.Urgent,
		Status:     string(j.Status),
		CreatedAt:  j.CreatedAt,
	}
	if j.AwardedTo != nil {
		out.AwardedTo = j.AwardedTo.String()
	}

	return out
}

func mapJobs(jobs []entity.Job) []entity.JobOutputModel {
	s := make([]entity.JobOutputModel, 0)
	for _, job := range jobs {
		s = append(s, *mapJob(&job))
	}

	return s
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:             b.Id.String(),
		JobId:          b.JobId.String(),
		ProviderId:     b.ProviderId.String(),
		Amount:         b.Amount,
		Notes:          b.Notes,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
		ProviderName:   b.ProviderName,
		ProviderLogo:   b.ProviderLogo,
		ProviderRating: b.ProviderRating,
	}
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, *mapBid(&bid))
	}

	return s
}

func mapConversation(c *entity.Conversation) *entity.ConversationOutputModel {
	return &entity.ConversationOutputModel{
		Id:         c.Id.String(),
		JobId:      c.JobId.String(),
		CustomerId: c.CustomerId.String(),
		ProviderId: c.ProviderId.String(),
		CreatedAt:  c.CreatedAt,
	}
}

func mapConversations(conversations []entity.Conversation) []entity.ConversationOutputModel {
	s := make([]entity.ConversationOutputModel, 0)
	for _, c := range conversations {
		s = append(s, *mapConversation(&c))
	}

	return s
}
