package service

import (
	"context"
	"errors"
	"job-market-api/internal/entity"
	"job-market-api/internal/repo"
	"job-market-api/internal/repo/repo_errors"
)

type JobService struct {
	jobRepo repo.Job
}

func NewJobService(repos *repo.Repositories) *JobService {
	return &JobService{
		jobRepo: repos.Job,
	}
}

func (s *JobService) CreateJob(ctx context.Context, input *entity.CreateJobInput) (*entity.JobOutputModel, error) {
	id, err := s.jobRepo.CreateJob(ctx, input)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetJobById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapJob(job), nil
}

func (s *JobService) GetJobById(ctx context.Context, jobId string) (*entity.JobOutputModel, error) {
	job, err := s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	return mapJob(job), nil
}

// статус двигается только вперёд; open → active проходит исключительно через AwardBid
func allowedJobTransition(from, to entity.JobStatus) bool {
	switch from {
	case entity.JobPendingReview:
		return to == entity.JobOpen || to == entity.JobRejected
	case entity.JobActive:
		return to == entity.JobCompleted
	default:
		return false
	}
}

func (s *JobService) UpdateJobStatusById(ctx context.Context, jobId string, newStatus entity.JobStatus, customerId string) (*entity.JobOutputModel, error) {
	job, err := s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	if job.CustomerId.String() != customerId {
		return nil, ErrUserHasNoAccessToJob
	}

	if !entity.ValidJobStatus(newStatus) || !allowedJobTransition(job.Status, newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.jobRepo.UpdateJobStatusById(ctx, jobId, newStatus); err != nil {
		return nil, err
	}

	job, err = s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		return nil, err
	}

	return mapJob(job), nil
}

func (s *JobService) GetOpenJobs(ctx context.Context, pg *entity.PaginationInput) ([]entity.JobOutputModel, error) {
	jobs, err := s.jobRepo.GetOpenJobs(ctx, pg)
	if err != nil {
		return nil, err
	}

	return mapJobs(jobs), nil
}
