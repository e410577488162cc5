package service

import (
	"context"
	"errors"
	"job-market-api/internal/entity"
	"job-market-api/internal/repo"
	"job-market-api/internal/repo/repo_errors"
)

type ConversationService struct {
	conversationRepo repo.Conversation
}

func NewConversationService(repos *repo.Repositories) *ConversationService {
	return &ConversationService{
		conversationRepo: repos.Conversation,
	}
}

func (s *ConversationService) GetConversation(ctx context.Context, jobId string, providerId string) (*entity.ConversationOutputModel, error) {
	conversation, err := s.conversationRepo.GetConversation(ctx, jobId, providerId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrConversationNotFound
		}

		return nil, err
	}

	return mapConversation(conversation), nil
}

func (s *ConversationService) GetUserConversations(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.ConversationOutputModel, error) {
	conversations, err := s.conversationRepo.GetUserConversations(ctx, userId, pg)
	if err != nil {
		return nil, err
	}

	return mapConversations(conversations), nil
}
