package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"job-market-api/internal/repo/repo_errors"
	"job-market-api/pkg/postgres"

	"github.com/google/uuid"
)

type ProviderRepo struct {
	*postgres.Postgres
}

func NewProviderRepo(pgdb *postgres.Postgres) *ProviderRepo {
	return &ProviderRepo{pgdb}
}

func (r *ProviderRepo) DoesProviderExistById(ctx context.Context, id string) (bool, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return false, err
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("id").
		From("provider").
		Where("id = ?", uuidForm).
		ToSql()

	var providerId uuid.UUID
	err = r.Database.QueryRowContext(ctx, sqlReq, args...).Scan(&providerId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *ProviderRepo) GetProviderBalance(ctx context.Context, id string) (int64, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return 0, err
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("balance").
		From("provider_balance").
		Where("provider_id = ?", uuidForm).
		ToSql()

	var balance int64
	err = r.Database.QueryRowContext(ctx, sqlReq, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repo_errors.ErrNotFound
		}

		return 0, err
	}

	return balance, nil
}
