package sqlite

import (
	"staffdesk/internal/domain"
	"staffdesk/internal/domain/job"
)

// Compile-time check.
var _ domain.Repository[*job.Job] = (*JobRepo)(nil)

// JobRepo persists jobs.
type JobRepo struct {
	*BaseRepo[*job.Job]
}

// NewJobRepo creates the job repository.
func NewJobRepo(txm *TxManager) *JobRepo {
	return &JobRepo{
		BaseRepo: NewBaseRepo(txm, "jobs", job.New),
	}
}
