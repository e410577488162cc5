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

type JobRepo struct {
	*postgres.Postgres
}

func NewJobRepo(pgdb *postgres.Postgres) *JobRepo {
	return &JobRepo{pgdb}
}

func (r *JobRepo) CreateJob(ctx context.Context, input *entity.CreateJobInput) (uuid.UUID, error) {
	customerUuid, err := uuid.Parse(input.CustomerId)
	if err != nil {
		return uuid.Nil, err
	}

	createJobSql, args, _ := r.SqlBuilder.
		Insert("job").
		Columns("customer_id", "title", "details", "location", "urgent", "status").
		Values(customerUuid, input.Title, input.Details, input.Location, input.Urgent, entity.JobPendingReview).
		Suffix("RETURNING id").
		ToSql()

	var jobId uuid.UUID
	err = r.Database.QueryRowContext(ctx, createJobSql, args...).Scan(&jobId)
	if err != nil {
		return uuid.Nil, err
	}

	return jobId, nil
}

func (r *JobRepo) GetJobById(ctx context.Context, id string) (*entity.Job, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	getJobSql, args, _ := r.SqlBuilder.
		Select("id, customer_id, title, details, location, urgent, status, awarded_to, created_at").
		From("job").
		Where("id = ?", uuidForm).
		ToSql()

	var job entity.Job
	var awardedTo uuid.NullUUID
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getJobSql, args...)
	err = row.Scan(&job.Id, &job.CustomerId, &job.Title, &job.Details,
		&job.Location, &job.Urgent, &job.Status, &awardedTo, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &job, repo_errors.ErrNotFound
		}

		return &job, err
	}

	if awardedTo.Valid {
		job.AwardedTo = &awardedTo.UUID
	}
	job.CreatedAt = createdAt.Format(time.RFC3339)

	return &job, nil
}

func (r *JobRepo) UpdateJobStatusById(ctx context.Context, id string, newStatus entity.JobStatus) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	updateStatusSql, args, _ := r.SqlBuilder.
		Update("job").
		Set("status", newStatus).
		Where("id = ?", uuidForm).
		ToSql()

	_, err = r.Database.ExecContext(ctx, updateStatusSql, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *JobRepo) AwardJob(ctx context.Context, jobId string, providerId uuid.UUID) error {
	uuidForm, err := uuid.Parse(jobId)
	if err != nil {
		return err
	}

	// Compare-and-swap: only an open job, or one already awarded to the same
	// provider, matches. A concurrent award by another customer attempt loses
	// here instead of silently overwriting awarded_to.
	awardSql, args, _ := r.SqlBuilder.
		Update("job").
		Set("status", entity.JobActive).
		Set("awarded_to", providerId).
		Where("id = ?", uuidForm).
		Where("(status = ? or (status = ? and awarded_to = ?))",
			entity.JobOpen, entity.JobActive, providerId).
		ToSql()

	res, err := r.Database.ExecContext(ctx, awardSql, args...)
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

func (r *JobRepo) GetOpenJobs(ctx context.Context, pg *entity.PaginationInput) ([]entity.Job, error) {
	getOpenJobsSql, args, _ := r.SqlBuilder.
		Select("id, customer_id, title, details, location, urgent, status, awarded_to, created_at").
		From("job").
		Where("status = ?", entity.JobOpen).
		OrderBy("urgent DESC", "created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getOpenJobsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]entity.Job, 0)
	for rows.Next() {
		var job entity.Job
		var awardedTo uuid.NullUUID
		var createdAt time.Time
		if err := rows.Scan(&job.Id, &job.CustomerId, &job.Title, &job.Details,
			&job.Location, &job.Urgent, &job.Status, &awardedTo, &createdAt); err != nil {
			return jobs, err
		}
		if awardedTo.Valid {
			job.AwardedTo = &awardedTo.UUID
		}
		job.CreatedAt = createdAt.Format(time.RFC3339)
		jobs = append(jobs, job)
	}
	if err = rows.Err(); err != nil {
		return jobs, err
	}

	return jobs, nil
}
