package marketplace

import (
	"context"
	"time"

	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/khrees2412/hireboard/internal/database"
	"github.com/khrees2412/hireboard/internal/events"
	"github.com/khrees2412/hireboard/internal/matcher"
	"github.com/khrees2412/hireboard/internal/session"
	"github.com/khrees2412/hireboard/internal/validate"
	"github.com/khrees2412/hireboard/pkg/models"
	"github.com/sirupsen/logrus"
)

// openJob loads a job that can still receive applications and saves
func openJob(ctx context.Context, tx *database.Tx, jobID int64) (*models.Vacancy, error) {
	job, err := tx.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.ErrNotFound
	}
	if job.Status != models.JobOpen {
		return nil, apperr.ErrNotOpen
	}
	return job, nil
}

// ApplyForJob files a pending application for the logged in seeker and
// updates both applicant counters.
func (s *Service) ApplyForJob(ctx context.Context, sess *session.Session, jobID int64) (app *models.Application, err error) {
	defer s.observe("apply_for_job", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleJobSeeker)
	if err != nil {
		return nil, err
	}

	app = &models.Application{
		JobID:     jobID,
		SeekerID:  id.UserID,
		Status:    models.ApplicationPending,
		ApplyDate: s.today(),
	}
	err = s.inTx(ctx, "apply_for_job", func(tx *database.Tx) error {
		if _, err := openJob(ctx, tx, jobID); err != nil {
			return err
		}
		applied, err := tx.HasApplied(ctx, id.UserID, jobID)
		if err != nil {
			return err
		}
		if applied {
			return apperr.ErrAlreadyApplied
		}
		if err := tx.InsertApplication(ctx, app); err != nil {
			return err
		}
		return tx.RecordApplication(ctx, jobID, id.UserID)
	})
	if err != nil {
		return nil, err
	}

	s.committed("apply_for_job", id.UserID, logrus.Fields{"job_id": jobID, "application_id": app.ID})
	e := events.New(events.ApplicationSubmitted, id.UserID)
	e.JobID = jobID
	e.ApplicationID = app.ID
	e.Status = string(app.Status)
	s.publish(ctx, e)
	return app, nil
}

// SaveJob bookmarks an open job for the logged in seeker
func (s *Service) SaveJob(ctx context.Context, sess *session.Session, jobID int64) (err error) {
	defer s.observe("save_job", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleJobSeeker)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, "save_job", func(tx *database.Tx) error {
		if _, err := openJob(ctx, tx, jobID); err != nil {
			return err
		}
		saved, err := tx.HasSaved(ctx, id.UserID, jobID)
		if err != nil {
			return err
		}
		if saved {
			return apperr.ErrAlreadySaved
		}
		return tx.InsertSavedVacancy(ctx, &models.SavedVacancy{JobID: jobID, SeekerID: id.UserID, SaveDate: s.today()})
	})
	if err != nil {
		return err
	}

	s.committed("save_job", id.UserID, logrus.Fields{"job_id": jobID})
	e := events.New(events.JobSaved, id.UserID)
	e.JobID = jobID
	s.publish(ctx, e)
	return nil
}

// UpdateApplicationStatus accepts or rejects an application on one of the
// employer's jobs. Reviewed applications may be reviewed again.
func (s *Service) UpdateApplicationStatus(ctx context.Context, sess *session.Session, appID int64, status string) (err error) {
	defer s.observe("update_application_status", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleEmployer)
	if err != nil {
		return err
	}
	newStatus, err := validate.ApplicationStatus(status)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, "update_application_status", func(tx *database.Tx) error {
		ok, err := tx.SetApplicationStatus(ctx, appID, id.UserID, newStatus)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.committed("update_application_status", id.UserID, logrus.Fields{"application_id": appID, "status": newStatus})
	e := events.New(events.ApplicationStatusChanged, id.UserID)
	e.ApplicationID = appID
	e.Status = string(newStatus)
	s.publish(ctx, e)
	return nil
}

// ListApplications returns the applications on the logged in employer's jobs
func (s *Service) ListApplications(ctx context.Context, sess *session.Session) (apps []*models.ApplicationListing, err error) {
	defer s.observe("list_applications", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleEmployer)
	if err != nil {
		return nil, err
	}
	return s.store.ListApplicationsForEmployer(ctx, id.UserID)
}

// ListSavedJobs returns the logged in seeker's saved jobs, newest first
func (s *Service) ListSavedJobs(ctx context.Context, sess *session.Session) (jobs []*models.Vacancy, err error) {
	defer s.observe("list_saved_jobs", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleJobSeeker)
	if err != nil {
		return nil, err
	}
	return s.store.ListSavedJobs(ctx, id.UserID)
}

// AddSkill records a skill for the logged in seeker, replacing the years
// if the skill is already listed.
func (s *Service) AddSkill(ctx context.Context, sess *session.Session, skill, years string) (err error) {
	defer s.observe("add_skill", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleJobSeeker)
	if err != nil {
		return err
	}
	if err := validate.Required(validate.Field{Name: "skill", Value: skill}); err != nil {
		return err
	}
	n, err := validate.Experience("years_experience", years)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, "add_skill", func(tx *database.Tx) error {
		return tx.UpsertSkill(ctx, &models.Skill{SeekerID: id.UserID, Skill: skill, YearsExperience: n})
	})
	if err != nil {
		return err
	}
	s.committed("add_skill", id.UserID, logrus.Fields{"skill": skill})
	return nil
}

// SeekerCriteria are raw filter inputs; empty values are ignored
type SeekerCriteria struct {
	Industry      string
	Location      string
	MinExperience string
}

// FilterJobSeekers returns seekers matching every supplied criterion
func (s *Service) FilterJobSeekers(ctx context.Context, c SeekerCriteria) (seekers []*models.SeekerProfile, err error) {
	defer s.observe("filter_job_seekers", time.Now(), &err)

	minExp, err := validate.OptionalExperience("min_experience", c.MinExperience)
	if err != nil {
		return nil, err
	}
	return s.store.FilterJobSeekers(ctx, database.SeekerFilter{
		Industry:      c.Industry,
		Location:      c.Location,
		MinExperience: minExp,
	})
}

// RecommendJobs ranks open jobs for the logged in seeker
func (s *Service) RecommendJobs(ctx context.Context, sess *session.Session, limit int) (matches []matcher.Match, err error) {
	defer s.observe("recommend_jobs", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleJobSeeker)
	if err != nil {
		return nil, err
	}

	seeker, err := s.store.GetJobSeeker(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if seeker == nil {
		return nil, apperr.ErrNotFound
	}
	skills, err := s.store.ListSkills(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.store.FilterVacancies(ctx, database.VacancyFilter{})
	if err != nil {
		return nil, err
	}

	return matcher.Rank(jobs, seeker, skills, limit), nil
}
