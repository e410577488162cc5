package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"job-market-api/internal/entity"
	"job-market-api/internal/repo/repo_errors"
	"job-market-api/pkg/postgres"
	"time"

	"github.com/google/uuid"
)

type ConversationRepo struct {
	*postgres.Postgres
}

func NewConversationRepo(pgdb *postgres.Postgres) *ConversationRepo {
	return &ConversationRepo{pgdb}
}

func (r *ConversationRepo) GetConversation(ctx context.Context, jobId string, providerId string) (*entity.Conversation, error) {
	jobUuid, err := uuid.Parse(jobId)
	if err != nil {
		return nil, err
	}

	providerUuid, err := uuid.Parse(providerId)
	if err != nil {
		return nil, err
	}

	getConversationSql, args, _ := r.SqlBuilder.
		Select("id, job_id, customer_id, provider_id, created_at").
		From("conversation").
		Where("job_id = ?", jobUuid).
		Where("provider_id = ?", providerUuid).
		ToSql()

	var conversation entity.Conversation
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getConversationSql, args...)
	err = row.Scan(&conversation.Id, &conversation.JobId, &conversation.CustomerId,
		&conversation.ProviderId, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &conversation, repo_errors.ErrNotFound
		}

		return &conversation, err
	}
	conversation.CreatedAt = createdAt.Format(time.RFC3339)

	return &conversation, nil
}

func (r *ConversationRepo) CreateConversation(ctx context.Context, jobId, customerId, providerId uuid.UUID) (uuid.UUID, error) {
	createConversationSql, args, _ := r.SqlBuilder.
		Insert("conversation").
		Columns("job_id", "customer_id", "provider_id").
		Values(jobId, customerId, providerId).
		Suffix("RETURNING id").
		ToSql()

	var conversationId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createConversationSql, args...).Scan(&conversationId)
	if err != nil {
		return uuid.Nil, err
	}

	return conversationId, nil
}

func (r *ConversationRepo) GetUserConversations(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.Conversation, error) {
	uuidForm, err := uuid.Parse(userId)
	if err != nil {
		return nil, err
	}

	getConversationsSql, args, _ := r.SqlBuilder.
		Select("id, job_id, customer_id, provider_id, created_at").
		From("conversation").
		Where("(customer_id = ? or provider_id = ?)", uuidForm, uuidForm).
		OrderBy("created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getConversationsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := make([]entity.Conversation, 0)
	for rows.Next() {
		var conversation entity.Conversation
		var createdAt time.Time
		if err := rows.Scan(&conversation.Id, &conversation.JobId, &conversation.CustomerId,
			&conversation.ProviderId, &createdAt); err != nil {
			return conversations, err
		}
		conversation.CreatedAt = createdAt.Format(time.RFC3339)
		conversations = append(conversations, conversation)
	}
	if err = rows.Err(); err != nil {
		return conversations, err
	}

	return conversations, nil
}
