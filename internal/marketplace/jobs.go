package marketplace

import (
	"context"
	"time"

	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/khrees2412/hireboard/internal/database"
	"github.com/khrees2412/hireboard/internal/events"
	"github.com/khrees2412/hireboard/internal/session"
	"github.com/khrees2412/hireboard/internal/validate"
	"github.com/khrees2412/hireboard/pkg/models"
	"github.com/sirupsen/logrus"
)

// CreateJobInput carries the raw job form
type CreateJobInput struct {
	Title          string
	Description    string
	Industry       string
	Location       string
	RequiredSkills string
	MinExperience  string
}

// JobPatch holds the job fields to change. Empty fields are left unchanged.
type JobPatch struct {
	Title          string
	Description    string
	Industry       string
	Location       string
	RequiredSkills string
	MinExperience  string
}

// CreateJob posts an open vacancy for the logged in employer and bumps
// their announced job count in the same transaction.
func (s *Service) CreateJob(ctx context.Context, sess *session.Session, in CreateJobInput) (job *models.Vacancy, err error) {
	defer s.observe("create_job", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleEmployer)
	if err != nil {
		return nil, err
	}
	if err := validate.Required(
		validate.Field{Name: "title", Value: in.Title},
		validate.Field{Name: "description", Value: in.Description},
		validate.Field{Name: "industry", Value: in.Industry},
		validate.Field{Name: "location", Value: in.Location},
		validate.Field{Name: "required_skills", Value: in.RequiredSkills},
	); err != nil {
		return nil, err
	}
	minExp, err := validate.Experience("min_experience", in.MinExperience)
	if err != nil {
		return nil, err
	}

	job = &models.Vacancy{
		EmployerID:     id.UserID,
		Title:          in.Title,
		Description:    in.Description,
		Industry:       in.Industry,
		Location:       in.Location,
		RequiredSkills: in.RequiredSkills,
		MinExperience:  minExp,
		CompanyName:    id.CompanyName,
	}
	err = s.inTx(ctx, "create_job", func(tx *database.Tx) error {
		if err := tx.InsertJob(ctx, job); err != nil {
			return err
		}
		return tx.AdjustAnnouncedJobs(ctx, id.UserID, 1)
	})
	if err != nil {
		return nil, err
	}

	s.committed("create_job", id.UserID, logrus.Fields{"job_id": job.ID})
	e := events.New(events.JobCreated, id.UserID)
	e.JobID = job.ID
	s.publish(ctx, e)
	return job, nil
}

// HideJob closes one of the employer's jobs. A job owned by someone else is
// reported as not found.
func (s *Service) HideJob(ctx context.Context, sess *session.Session, jobID int64) (err error) {
	defer s.observe("hide_job", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleEmployer)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, "hide_job", func(tx *database.Tx) error {
		ok, err := tx.CloseJob(ctx, jobID, id.UserID)
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

	s.committed("hide_job", id.UserID, logrus.Fields{"job_id": jobID})
	e := events.New(events.JobClosed, id.UserID)
	e.JobID = jobID
	s.publish(ctx, e)
	return nil
}

// DeleteJob removes one of the employer's jobs with its applications and
// saved rows. Unlike HideJob, a job owned by someone else fails with ErrNotOwner.
func (s *Service) DeleteJob(ctx context.Context, sess *session.Session, jobID int64) (err error) {
	defer s.observe("delete_job", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleEmployer)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, "delete_job", func(tx *database.Tx) error {
		job, err := tx.GetJob(ctx, jobID)
		if err != nil {
			return err
		}
		if job == nil {
			return apperr.ErrNotFound
		}
		if job.EmployerID != id.UserID {
			return apperr.ErrNotOwner
		}
		if err := tx.DeleteJob(ctx, jobID); err != nil {
			return err
		}
		return tx.AdjustAnnouncedJobs(ctx, id.UserID, -1)
	})
	if err != nil {
		return err
	}

	s.committed("delete_job", id.UserID, logrus.Fields{"job_id": jobID})
	e := events.New(events.JobDeleted, id.UserID)
	e.JobID = jobID
	s.publish(ctx, e)
	return nil
}

// UpdateJob changes the supplied fields of one of the employer's jobs
func (s *Service) UpdateJob(ctx context.Context, sess *session.Session, jobID int64, patch JobPatch) (err error) {
	defer s.observe("update_job", time.Now(), &err)

	id, err := sess.RequireRole(models.RoleEmployer)
	if err != nil {
		return err
	}

	upd := database.JobUpdate{
		Title:          optional(patch.Title),
		Description:    optional(patch.Description),
		Industry:       optional(patch.Industry),
		Location:       optional(patch.Location),
		RequiredSkills: optional(patch.RequiredSkills),
	}
	if patch.MinExperience != "" {
		years, err := validate.Experience("min_experience", patch.MinExperience)
		if err != nil {
			return err
		}
		upd.MinExperience = &years
	}
	if upd.Title == nil && upd.Description == nil && upd.Industry == nil && upd.Location == nil &&
		upd.RequiredSkills == nil && upd.MinExperience == nil {
		return apperr.ErrNoFieldsProvided
	}

	err = s.inTx(ctx, "update_job", func(tx *database.Tx) error {
		ok, err := tx.UpdateJob(ctx, jobID, id.UserID, upd)
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

	s.committed("update_job", id.UserID, logrus.Fields{"job_id": jobID})
	e := events.New(events.JobUpdated, id.UserID)
	e.JobID = jobID
	s.publish(ctx, e)
	return nil
}

// GetJobDetails returns one job in any status
func (s *Service) GetJobDetails(ctx context.Context, jobID int64) (job *models.Vacancy, err error) {
	defer s.observe("get_job_details", time.Now(), &err)

	job, err = s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.ErrNotFound
	}
	return job, nil
}

// ListOpenJobs returns the public job board
func (s *Service) ListOpenJobs(ctx context.Context) (jobs []*models.OpenJobListing, err error) {
	defer s.observe("list_open_jobs", time.Now(), &err)

	return s.store.ListOpenJobs(ctx)
}

// VacancyCriteria are raw filter inputs; empty values are ignored
type VacancyCriteria struct {
	Industry      string
	Location      string
	MaxExperience string
}

// FilterVacancies returns open jobs matching every supplied criterion
func (s *Service) FilterVacancies(ctx context.Context, c VacancyCriteria) (jobs []*models.Vacancy, err error) {
	defer s.observe("filter_vacancies", time.Now(), &err)

	maxExp, err := validate.OptionalExperience("max_experience", c.MaxExperience)
	if err != nil {
		return nil, err
	}
	return s.store.FilterVacancies(ctx, database.VacancyFilter{
		Industry:      c.Industry,
		Location:      c.Location,
		MaxExperience: maxExp,
	})
}
