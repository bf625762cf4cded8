package scheduler

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/hireboard/internal/analytics"
	"github.com/khrees2412/hireboard/internal/database"
	"github.com/khrees2412/hireboard/internal/metrics"
	"github.com/khrees2412/hireboard/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalytics(t *testing.T) (*analytics.Service, *database.Store) {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := database.New(db)
	now := func() time.Time { return time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC) }
	return analytics.New(store, now), store
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewRejectsBadSpec(t *testing.T) {
	svc, _ := newAnalytics(t)
	_, err := New(svc, quietLogger(), Options{Spec: "every tuesday", Out: io.Discard})
	assert.Error(t, err)
}

func TestNext(t *testing.T) {
	svc, _ := newAnalytics(t)
	s, err := New(svc, quietLogger(), Options{Spec: "0 6 1 * *", Out: io.Discard})
	require.NoError(t, err)

	next := s.Next(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC), next)
}

func TestRunOnce(t *testing.T) {
	svc, store := newAnalytics(t)
	ctx := context.Background()

	require.NoError(t, store.WithTx(ctx, func(tx *database.Tx) error {
		user := &models.User{Name: "Acme HR", Email: "hr@acme.com", Phone: "1", Password: "secret1", Role: models.RoleEmployer}
		if err := tx.InsertUser(ctx, user); err != nil {
			return err
		}
		if err := tx.InsertEmployer(ctx, &models.Employer{UserID: user.ID, CompanyName: "Acme", Industry: "Tech", Location: "Cairo"}); err != nil {
			return err
		}
		return tx.InsertJob(ctx, &models.Vacancy{EmployerID: user.ID, Title: "Backend", Description: "d",
			Industry: "Tech", Location: "Cairo", RequiredSkills: "go"})
	}))

	m := metrics.New()
	m.Observe("create_job", time.Now(), nil)
	textfile := filepath.Join(t.TempDir(), "hireboard.prom")

	var out bytes.Buffer
	s, err := New(svc, quietLogger(), Options{Spec: "@monthly", Out: &out, Metrics: m, Textfile: textfile})
	require.NoError(t, err)
	require.NoError(t, s.RunOnce(ctx))

	report := out.String()
	assert.Contains(t, report, "Hireboard report for 2024-05-01 to 2024-05-31")
	assert.Contains(t, report, "#1 Backend at Acme (0 applicants)")
	assert.Contains(t, report, "Acme: Backend")
	assert.Contains(t, report, "Job seekers (0):")

	_, err = os.Stat(textfile)
	assert.NoError(t, err)
}
