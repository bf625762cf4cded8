// Package analytics answers the read-only reporting questions. No session
// is required.
package analytics

import (
	"context"
	"time"

	"github.com/khrees2412/hireboard/internal/database"
	"github.com/khrees2412/hireboard/pkg/models"
)

// Window is an inclusive range of days
type Window struct {
	From time.Time
	To   time.Time
}

// PreviousMonth returns the first and last day of the calendar month before now
func PreviousMonth(now time.Time) Window {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{
		From: firstOfThisMonth.AddDate(0, -1, 0),
		To:   firstOfThisMonth.AddDate(0, 0, -1),
	}
}

// Service runs the aggregations against the gateway
type Service struct {
	store *database.Store
	now   func() time.Time
}

// New returns a Service. A nil clock means time.Now.
func New(store *database.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Window is the reporting window in effect right now
func (s *Service) Window() Window {
	return PreviousMonth(s.now())
}

// MostInterestingJob returns the job with the most applicants, lowest id on
// ties, or nil when there are no jobs.
func (s *Service) MostInterestingJob(ctx context.Context) (*models.Vacancy, error) {
	return s.store.MostAppliedJob(ctx)
}

// JobsWithNoApplicantsLastMonth returns open jobs nobody applied to last month
func (s *Service) JobsWithNoApplicantsLastMonth(ctx context.Context) ([]*models.Vacancy, error) {
	w := s.Window()
	return s.store.OpenJobsWithoutApplications(ctx, w.From, w.To)
}

// EmployerWithMaxAnnouncements returns the employers with the most distinct
// jobs that received applications last month.
func (s *Service) EmployerWithMaxAnnouncements(ctx context.Context) ([]*models.EmployerActivity, error) {
	w := s.Window()
	return s.store.EmployersWithMostActiveJobs(ctx, w.From, w.To)
}

// EmployersWithNoAnnouncements returns employers with no jobs or no
// applications last month.
func (s *Service) EmployersWithNoAnnouncements(ctx context.Context) ([]*models.EmployerActivity, error) {
	w := s.Window()
	return s.store.EmployersWithoutApplications(ctx, w.From, w.To)
}

// AvailablePositionsByEmployer groups open job titles by company name
func (s *Service) AvailablePositionsByEmployer(ctx context.Context) ([]*models.EmployerPositions, error) {
	return s.store.OpenPositionsByEmployer(ctx)
}

// JobSeekerRoster lists every seeker with their applied-job count
func (s *Service) JobSeekerRoster(ctx context.Context) ([]*models.SeekerProfile, error) {
	return s.store.JobSeekerRoster(ctx)
}
