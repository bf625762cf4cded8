package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/hireboard/internal/database"
	"github.com/khrees2412/hireboard/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		now      time.Time
		from, to string
	}{
		{time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC), "2024-05-01", "2024-05-31"},
		{time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2024-12-01", "2024-12-31"},
	}
	for _, tt := range tests {
		w := PreviousMonth(tt.now)
		assert.Equal(t, tt.from, w.From.Format("2006-01-02"), "from for %s", tt.now)
		assert.Equal(t, tt.to, w.To.Format("2006-01-02"), "to for %s", tt.now)
	}
}

func newStore(t *testing.T) *database.Store {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.New(db)
}

func TestEmptyStorage(t *testing.T) {
	s := New(newStore(t), nil)
	ctx := context.Background()

	job, err := s.MostInterestingJob(ctx)
	require.NoError(t, err)
	assert.Nil(t, job)

	roster, err := s.JobSeekerRoster(ctx)
	require.NoError(t, err)
	assert.Empty(t, roster)

	top, err := s.EmployerWithMaxAnnouncements(ctx)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestLastMonthQueries(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	s := New(store, func() time.Time { return now })

	var acme, globex, bo int64
	require.NoError(t, store.WithTx(ctx, func(tx *database.Tx) error {
		for _, u := range []struct {
			id      *int64
			email   string
			role    models.Role
			company string
		}{
			{&acme, "hr@acme.com", models.RoleEmployer, "Acme"},
			{&globex, "hr@globex.com", models.RoleEmployer, "Globex"},
			{&bo, "bo@example.com", models.RoleJobSeeker, ""},
		} {
			user := &models.User{Name: u.email, Email: u.email, Phone: "1", Password: "secret1", Role: u.role}
			if err := tx.InsertUser(ctx, user); err != nil {
				return err
			}
			*u.id = user.ID
			if u.role == models.RoleEmployer {
				if err := tx.InsertEmployer(ctx, &models.Employer{UserID: user.ID, CompanyName: u.company, Industry: "Tech", Location: "Cairo"}); err != nil {
					return err
				}
				continue
			}
			if err := tx.InsertJobSeeker(ctx, &models.JobSeeker{UserID: user.ID, ResumeLink: "cv", Industry: "Tech", PreferredLocation: "Cairo"}); err != nil {
				return err
			}
		}
		return nil
	}))

	jobs := map[string]*models.Vacancy{}
	require.NoError(t, store.WithTx(ctx, func(tx *database.Tx) error {
		for _, j := range []struct {
			title    string
			employer int64
		}{{"Backend", acme}, {"Frontend", acme}, {"Data", globex}} {
			job := &models.Vacancy{EmployerID: j.employer, Title: j.title, Description: "d", Industry: "Tech", Location: "Cairo", RequiredSkills: "s"}
			if err := tx.InsertJob(ctx, job); err != nil {
				return err
			}
			if err := tx.AdjustAnnouncedJobs(ctx, j.employer, 1); err != nil {
				return err
			}
			jobs[j.title] = job
		}

		// Backend applied to last month, Data applied to this month.
		for _, a := range []struct {
			job *models.Vacancy
			day time.Time
		}{
			{jobs["Backend"], time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
			{jobs["Data"], time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
		} {
			app := &models.Application{JobID: a.job.ID, SeekerID: bo, Status: models.ApplicationPending, ApplyDate: a.day}
			if err := tx.InsertApplication(ctx, app); err != nil {
				return err
			}
			if err := tx.RecordApplication(ctx, a.job.ID, bo); err != nil {
				return err
			}
		}
		return nil
	}))

	most, err := s.MostInterestingJob(ctx)
	require.NoError(t, err)
	require.NotNil(t, most)
	assert.Equal(t, jobs["Backend"].ID, most.ID, "ties on applicant count go to the lowest id")

	idle, err := s.JobsWithNoApplicantsLastMonth(ctx)
	require.NoError(t, err)
	require.Len(t, idle, 2)
	assert.Equal(t, "Frontend", idle[0].Title)
	assert.Equal(t, "Data", idle[1].Title)

	top, err := s.EmployerWithMaxAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Acme", top[0].CompanyName)
	assert.Equal(t, 1, top[0].JobCount)

	quiet, err := s.EmployersWithNoAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, quiet, 1)
	assert.Equal(t, "Globex", quiet[0].CompanyName)

	positions, err := s.AvailablePositionsByEmployer(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, []string{"Backend", "Frontend"}, positions[0].Titles)
	assert.Equal(t, []string{"Data"}, positions[1].Titles)

	roster, err := s.JobSeekerRoster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, 2, roster[0].AppliedJobCount)
}
