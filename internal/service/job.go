package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerbuddy/bot/internal/config"
	"github.com/careerbuddy/bot/internal/domain"
	"github.com/careerbuddy/bot/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// JobService tracks job applications through the pipeline statuses.
type JobService struct {
	queries *repository.Queries
}

func NewJobService(queries *repository.Queries) *JobService {
	return &JobService{queries: queries}
}

func (s *JobService) Add(ctx context.Context, userID int64, company, role, status, link string, salary *decimal.Decimal) (*domain.Job, error) {
	company = strings.TrimSpace(company)
	role = strings.TrimSpace(role)
	if company == "" || role == "" {
		return nil, fmt.Errorf("company and role are required")
	}
	if !validJobStatus(status) {
		status = config.JobStatuses[0]
	}

	job, err := s.queries.CreateJob(ctx, &domain.Job{
		UserID:  userID,
		Company: company,
		Role:    role,
		Status:  status,
		Link:    link,
		Salary:  salary,
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (s *JobService) Get(ctx context.Context, userID, jobID int64) (*domain.Job, error) {
	job, err := s.queries.GetJobByID(ctx, jobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	if job.UserID != userID {
		return nil, domain.ErrJobNotFound
	}
	return job, nil
}

func (s *JobService) ListPage(ctx context.Context, userID int64, page int) ([]domain.Job, error) {
	return s.queries.ListJobsPage(ctx, userID, config.JobsPerPage, page*config.JobsPerPage)
}

func (s *JobService) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return s.queries.CountJobsByUser(ctx, userID)
}

// CycleStatus advances a job to the next pipeline status, wrapping around.
func (s *JobService) CycleStatus(ctx context.Context, userID, jobID int64) (*domain.Job, error) {
	job, err := s.Get(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	next := config.JobStatuses[0]
	for i, st := range config.JobStatuses {
		if st == job.Status {
			next = config.JobStatuses[(i+1)%len(config.JobStatuses)]
			break
		}
	}

	if err := s.queries.UpdateJobStatus(ctx, job.ID, next); err != nil {
		return nil, fmt.Errorf("update job status: %w", err)
	}
	job.Status = next
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, userID, jobID int64) error {
	if _, err := s.Get(ctx, userID, jobID); err != nil {
		return err
	}
	return s.queries.DeleteJob(ctx, jobID)
}

func validJobStatus(status string) bool {
	for _, st := range config.JobStatuses {
		if st == status {
			return true
		}
	}
	return false
}
