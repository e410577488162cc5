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

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

const bidColumns = "bid.id, bid.job_id, bid.provider_id, bid.amount, bid.notes, bid.status, bid.created_at, " +
	"provider.name, provider.logo_url, provider.rating"

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	jobUuid, err := uuid.Parse(input.JobId)
	if err != nil {
		return uuid.Nil, err
	}

	providerUuid, err := uuid.Parse(input.ProviderId)
	if err != nil {
		return uuid.Nil, err
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("job_id", "provider_id", "amount", "notes", "status").
		Values(jobUuid, providerUuid, input.Amount, input.Notes, entity.BidPending).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	err = r.Database.QueryRowContext(ctx, createBidSql, args...).Scan(&bidId)
	if err != nil {
		return uuid.Nil, err
	}

	return bidId, nil
}

func scanBid(row interface{ Scan(...any) error }) (*entity.Bid, error) {
	var bid entity.Bid
	var createdAt time.Time
	err := row.Scan(&bid.Id, &bid.JobId, &bid.ProviderId, &bid.Amount, &bid.Notes,
		&bid.Status, &createdAt, &bid.ProviderName, &bid.ProviderLogo, &bid.ProviderRating)
	if err != nil {
		return &bid, err
	}
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		InnerJoin("provider on provider.id = bid.provider_id").
		Where("bid.id = ?", uuidForm).
		ToSql()

	bid, err := scanBid(r.Database.QueryRowContext(ctx, getBidSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bid, repo_errors.ErrNotFound
		}

		return bid, err
	}

	return bid, nil
}

func (r *BidRepo) GetJobBids(ctx context.Context, jobId string) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(jobId)
	if err != nil {
		return nil, err
	}

	getJobBidsSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		InnerJoin("provider on provider.id = bid.provider_id").
		Where("bid.job_id = ?", uuidForm).
		OrderBy("bid.amount ASC").
		ToSql()

	return r.queryBids(ctx, getJobBidsSql, args)
}

func (r *BidRepo) GetProviderBids(ctx context.Context, providerId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	uuidForm, err := uuid.Parse(providerId)
	if err != nil {
		return nil, err
	}

	getProviderBidsSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		InnerJoin("provider on provider.id = bid.provider_id").
		Where("bid.provider_id = ?", uuidForm).
		OrderBy("bid.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryBids(ctx, getProviderBidsSql, args)
}

func (r *BidRepo) queryBids(ctx context.Context, sqlReq string, args []any) ([]entity.Bid, error) {
	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return bids, err
		}
		bids = append(bids, *bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

func (r *BidRepo) AcceptBidById(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	// Accepting an already-accepted bid is a no-op rewrite, which keeps award
	// retries safe. The partial unique index on (job_id) where status is
	// accepted stops a second winner at the store level.
	acceptSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", entity.BidAccepted).
		Where("id = ?", uuidForm).
		Where("status in (?, ?)", entity.BidPending, entity.BidAccepted).
		ToSql()

	res, err := r.Database.ExecContext(ctx, acceptSql, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrConflict
	}

	return nil
}

func (r *BidRepo) RejectPendingSiblings(ctx context.Context, jobId string, acceptedBidId string) error {
	jobUuid, err := uuid.Parse(jobId)
	if err != nil {
		return err
	}

	bidUuid, err := uuid.Parse(acceptedBidId)
	if err != nil {
		return err
	}

	// Re-running after a partial award is a no-op once nothing is pending.
	rejectSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", entity.BidRejected).
		Where("job_id = ?", jobUuid).
		Where("id <> ?", bidUuid).
		Where("status = ?", entity.BidPending).
		ToSql()

	_, err = r.Database.ExecContext(ctx, rejectSql, args...)
	if err != nil {
		return err
	}

	return nil
}
