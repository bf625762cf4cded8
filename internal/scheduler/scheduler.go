// Package scheduler runs the monthly analytics report on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/khrees2412/hireboard/internal/analytics"
	"github.com/khrees2412/hireboard/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler wraps robfig/cron and writes one report per tick
type Scheduler struct {
	cron      *cron.Cron
	spec      string
	analytics *analytics.Service
	log       *logrus.Logger
	out       io.Writer
	mu        sync.Mutex // serializes writes to out

	metrics  *metrics.Metrics
	textfile string
}

// Options configure a Scheduler
type Options struct {
	Spec     string // standard five-field cron spec
	Out      io.Writer
	Metrics  *metrics.Metrics
	Textfile string // metrics are exported here after each report when set
}

// New validates the cron spec and returns a stopped Scheduler
func New(svc *analytics.Service, log *logrus.Logger, opts Options) (*Scheduler, error) {
	if _, err := cron.ParseStandard(opts.Spec); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", opts.Spec, err)
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.PrintfLogger(log))),
		spec:      opts.Spec,
		analytics: svc,
		log:       log,
		out:       opts.Out,
		metrics:   opts.Metrics,
		textfile:  opts.Textfile,
	}, nil
}

// Start registers the report job and starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.RunOnce(ctx); err != nil {
			s.log.WithError(err).Error("monthly report failed")
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.WithField("spec", s.spec).Info("report scheduler started")
	return nil
}

// Stop waits for a running report to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("report scheduler stopped")
}

// Next returns when the report will run next
func (s *Scheduler) Next(after time.Time) time.Time {
	sched, err := cron.ParseStandard(s.spec)
	if err != nil {
		return time.Time{}
	}
	return sched.Next(after)
}

// RunOnce builds the report, writes it and exports metrics if configured
func (s *Scheduler) RunOnce(ctx context.Context) error {
	report, err := BuildReport(ctx, s.analytics)
	if err != nil {
		return err
	}

	s.mu.Lock()
	_, err = io.WriteString(s.out, report)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if s.textfile != "" && s.metrics != nil {
		if err := s.metrics.WriteTextfile(s.textfile); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
	}
	return nil
}

// BuildReport runs every analytics query and renders a plain text report
func BuildReport(ctx context.Context, svc *analytics.Service) (string, error) {
	var b strings.Builder
	w := svc.Window()
	fmt.Fprintf(&b, "Hireboard report for %s to %s\n\n", w.From.Format("2006-01-02"), w.To.Format("2006-01-02"))

	most, err := svc.MostInterestingJob(ctx)
	if err != nil {
		return "", fmt.Errorf("most interesting job: %w", err)
	}
	b.WriteString("Most interesting job:\n")
	if most == nil {
		b.WriteString("  (none)\n")
	} else {
		fmt.Fprintf(&b, "  #%d %s at %s (%d applicants)\n", most.ID, most.Title, most.CompanyName, most.AppCount)
	}

	idle, err := svc.JobsWithNoApplicantsLastMonth(ctx)
	if err != nil {
		return "", fmt.Errorf("jobs without applicants: %w", err)
	}
	fmt.Fprintf(&b, "\nOpen jobs without applicants last month (%d):\n", len(idle))
	for _, job := range idle {
		fmt.Fprintf(&b, "  #%d %s at %s\n", job.ID, job.Title, job.CompanyName)
	}

	top, err := svc.EmployerWithMaxAnnouncements(ctx)
	if err != nil {
		return "", fmt.Errorf("most active employers: %w", err)
	}
	b.WriteString("\nMost active employers last month:\n")
	for _, e := range top {
		fmt.Fprintf(&b, "  %s (%d jobs with applications)\n", e.CompanyName, e.JobCount)
	}

	quiet, err := svc.EmployersWithNoAnnouncements(ctx)
	if err != nil {
		return "", fmt.Errorf("inactive employers: %w", err)
	}
	fmt.Fprintf(&b, "\nEmployers without applications last month (%d):\n", len(quiet))
	for _, e := range quiet {
		fmt.Fprintf(&b, "  %s\n", e.CompanyName)
	}

	positions, err := svc.AvailablePositionsByEmployer(ctx)
	if err != nil {
		return "", fmt.Errorf("available positions: %w", err)
	}
	b.WriteString("\nAvailable positions:\n")
	for _, p := range positions {
		fmt.Fprintf(&b, "  %s: %s\n", p.CompanyName, strings.Join(p.Titles, ", "))
	}

	roster, err := svc.JobSeekerRoster(ctx)
	if err != nil {
		return "", fmt.Errorf("job seeker roster: %w", err)
	}
	fmt.Fprintf(&b, "\nJob seekers (%d):\n", len(roster))
	for _, p := range roster {
		fmt.Fprintf(&b, "  %s <%s> applied to %d jobs\n", p.Name, p.Email, p.AppliedJobCount)
	}

	return b.String(), nil
}
