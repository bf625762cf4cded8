package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/khrees2412/hireboard/pkg/models"
)

// UserUpdate lists the account columns to change; nil fields are left alone.
type UserUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

// JobUpdate lists the vacancy columns to change; nil fields are left alone.
type JobUpdate struct {
	Title          *string
	Description    *string
	Industry       *string
	Location       *string
	RequiredSkills *string
	MinExperience  *int
}

// VacancyFilter narrows the open job board; zero values are ignored
type VacancyFilter struct {
	Industry      string
	Location      string
	MaxExperience *int
}

// SeekerFilter narrows the job seeker list; zero values are ignored
type SeekerFilter struct {
	Industry      string
	Location      string
	MinExperience *int
}

// User operations

func (q *Queries) InsertUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, email, phone, password, role) VALUES (?, ?, ?, ?, ?)`
	result, err := q.q.ExecContext(ctx, query, user.Name, user.Email, user.Phone, user.Password, string(user.Role))
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrDuplicateEmail
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (q *Queries) InsertEmployer(ctx context.Context, emp *models.Employer) error {
	query := `INSERT INTO employers (user_id, company_name, industry, location, announced_job_count)
			  VALUES (?, ?, ?, ?, 0)`
	_, err := q.q.ExecContext(ctx, query, emp.UserID, emp.CompanyName, emp.Industry, emp.Location)
	if err != nil {
		return err
	}
	emp.AnnouncedJobCount = 0
	return nil
}

func (q *Queries) InsertJobSeeker(ctx context.Context, seeker *models.JobSeeker) error {
	query := `INSERT INTO job_seekers (user_id, resume_link, industry, preferred_location, applied_job_count)
			  VALUES (?, ?, ?, ?, 0)`
	_, err := q.q.ExecContext(ctx, query, seeker.UserID, seeker.ResumeLink, seeker.Industry, seeker.PreferredLocation)
	if err != nil {
		return err
	}
	seeker.AppliedJobCount = 0
	return nil
}

const userColumns = `id, name, email, phone, password, role, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	var role string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Password, &role, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	return user, nil
}

// FindUserByCredentials returns nil when no user has exactly this email and password
func (q *Queries) FindUserByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	row := q.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? AND password = ?`, email, password)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (q *Queries) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(q.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (q *Queries) GetEmployer(ctx context.Context, userID int64) (*models.Employer, error) {
	query := `SELECT user_id, company_name, industry, location, announced_job_count
			  FROM employers WHERE user_id = ?`
	emp := &models.Employer{}
	err := q.q.QueryRowContext(ctx, query, userID).Scan(&emp.UserID, &emp.CompanyName, &emp.Industry,
		&emp.Location, &emp.AnnouncedJobCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return emp, err
}

func (q *Queries) GetJobSeeker(ctx context.Context, userID int64) (*models.JobSeeker, error) {
	query := `SELECT user_id, resume_link, industry, preferred_location, applied_job_count
			  FROM job_seekers WHERE user_id = ?`
	seeker := &models.JobSeeker{}
	err := q.q.QueryRowContext(ctx, query, userID).Scan(&seeker.UserID, &seeker.ResumeLink, &seeker.Industry,
		&seeker.PreferredLocation, &seeker.AppliedJobCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return seeker, err
}

// UpdateUser applies the present fields and reports how many rows changed
func (q *Queries) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (int64, error) {
	b := newUpdate("users")
	b.setString("name", upd.Name)
	b.setString("email", upd.Email)
	b.setString("phone", upd.Phone)
	b.setString("password", upd.Password)
	if b.empty() {
		return 0, apperr.ErrNoFieldsProvided
	}

	query, args := b.build("id = ?", id)
	result, err := q.q.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.ErrDuplicateEmail
		}
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteEmployerAccount removes an employer and everything hanging off it:
// applications, saved rows and jobs first, then the profile and user rows.
func (q *Queries) DeleteEmployerAccount(ctx context.Context, userID int64) error {
	ownJobs := `SELECT id FROM vacancy_jobs WHERE employer_id = ?`
	return q.execAll(ctx, []statement{
		{`UPDATE job_seekers
		  SET applied_job_count = applied_job_count - (
			  SELECT COUNT(*) FROM applications a
			  WHERE a.seeker_id = job_seekers.user_id AND a.job_id IN (` + ownJobs + `))
		  WHERE user_id IN (SELECT seeker_id FROM applications WHERE job_id IN (` + ownJobs + `))`,
			[]any{userID, userID}},
		{`DELETE FROM applications WHERE job_id IN (` + ownJobs + `)`, []any{userID}},
		{`DELETE FROM saved_vacancies WHERE job_id IN (` + ownJobs + `)`, []any{userID}},
		{`DELETE FROM vacancy_jobs WHERE employer_id = ?`, []any{userID}},
		{`DELETE FROM employers WHERE user_id = ?`, []any{userID}},
		{`DELETE FROM users WHERE id = ?`, []any{userID}},
	})
}

// DeleteJobSeekerAccount removes a seeker's applications, saved rows and
// skills, then the profile and user rows.
func (q *Queries) DeleteJobSeekerAccount(ctx context.Context, userID int64) error {
	return q.execAll(ctx, []statement{
		{`UPDATE vacancy_jobs
		  SET app_count = app_count - (
			  SELECT COUNT(*) FROM applications a
			  WHERE a.job_id = vacancy_jobs.id AND a.seeker_id = ?)
		  WHERE id IN (SELECT job_id FROM applications WHERE seeker_id = ?)`,
			[]any{userID, userID}},
		{`DELETE FROM applications WHERE seeker_id = ?`, []any{userID}},
		{`DELETE FROM saved_vacancies WHERE seeker_id = ?`, []any{userID}},
		{`DELETE FROM has_skills WHERE seeker_id = ?`, []any{userID}},
		{`DELETE FROM job_seekers WHERE user_id = ?`, []any{userID}},
		{`DELETE FROM users WHERE id = ?`, []any{userID}},
	})
}

// Job operations

const vacancyColumns = `v.id, v.employer_id, v.title, v.description, v.industry, v.location,
	v.required_skills, v.min_experience, v.app_count, v.status, COALESCE(e.company_name, '')`

func scanVacancy(row interface{ Scan(...any) error }) (*models.Vacancy, error) {
	job := &models.Vacancy{}
	var status string
	err := row.Scan(&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.Industry, &job.Location,
		&job.RequiredSkills, &job.MinExperience, &job.AppCount, &status, &job.CompanyName)
	if err != nil {
		return nil, err
	}
	job.Status = models.JobStatus(status)
	return job, nil
}

func scanVacancies(rows *sql.Rows) ([]*models.Vacancy, error) {
	defer rows.Close()

	jobs := []*models.Vacancy{}
	for rows.Next() {
		job, err := scanVacancy(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (q *Queries) InsertJob(ctx context.Context, job *models.Vacancy) error {
	query := `INSERT INTO vacancy_jobs (employer_id, title, description, industry, location,
			  required_skills, min_experience, app_count, status) VALUES (?, ?, ?, ?, ?, ?, ?, 0, 'Open')`
	result, err := q.q.ExecContext(ctx, query, job.EmployerID, job.Title, job.Description, job.Industry,
		job.Location, job.RequiredSkills, job.MinExperience)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	job.ID = id
	job.AppCount = 0
	job.Status = models.JobOpen
	return nil
}

// GetJob returns the job with its company name, or nil if it does not exist
func (q *Queries) GetJob(ctx context.Context, id int64) (*models.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + `
			  FROM vacancy_jobs v LEFT JOIN employers e ON e.user_id = v.employer_id
			  WHERE v.id = ?`
	job, err := scanVacancy(q.q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return job, err
}

// AdjustAnnouncedJobs adds delta to an employer's job counter
func (q *Queries) AdjustAnnouncedJobs(ctx context.Context, employerID int64, delta int) error {
	_, err := q.q.ExecContext(ctx,
		`UPDATE employers SET announced_job_count = announced_job_count + ? WHERE user_id = ?`, delta, employerID)
	return err
}

// CloseJob hides a job owned by employerID; false means no such job for that owner
func (q *Queries) CloseJob(ctx context.Context, jobID, employerID int64) (bool, error) {
	result, err := q.q.ExecContext(ctx,
		`UPDATE vacancy_jobs SET status = 'Closed' WHERE id = ? AND employer_id = ?`, jobID, employerID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// UpdateJob applies the present fields to a job owned by employerID
func (q *Queries) UpdateJob(ctx context.Context, jobID, employerID int64, upd JobUpdate) (bool, error) {
	b := newUpdate("vacancy_jobs")
	b.setString("title", upd.Title)
	b.setString("description", upd.Description)
	b.setString("industry", upd.Industry)
	b.setString("location", upd.Location)
	b.setString("required_skills", upd.RequiredSkills)
	b.setInt("min_experience", upd.MinExperience)
	if b.empty() {
		return false, apperr.ErrNoFieldsProvided
	}

	query, args := b.build("id = ? AND employer_id = ?", jobID, employerID)
	result, err := q.q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// DeleteJob removes a job's applications and saved rows, then the job.
// Seekers' applied counters are decremented for the removed applications.
func (q *Queries) DeleteJob(ctx context.Context, jobID int64) error {
	return q.execAll(ctx, []statement{
		{`UPDATE job_seekers
		  SET applied_job_count = applied_job_count - (
			  SELECT COUNT(*) FROM applications a
			  WHERE a.seeker_id = job_seekers.user_id AND a.job_id = ?)
		  WHERE user_id IN (SELECT seeker_id FROM applications WHERE job_id = ?)`,
			[]any{jobID, jobID}},
		{`DELETE FROM applications WHERE job_id = ?`, []any{jobID}},
		{`DELETE FROM saved_vacancies WHERE job_id = ?`, []any{jobID}},
		{`DELETE FROM vacancy_jobs WHERE id = ?`, []any{jobID}},
	})
}

func (q *Queries) ListOpenJobs(ctx context.Context) ([]*models.OpenJobListing, error) {
	query := `SELECT v.id, v.title, v.location, e.company_name, e.industry
			  FROM vacancy_jobs v JOIN employers e ON e.user_id = v.employer_id
			  WHERE v.status = 'Open'
			  ORDER BY v.id`
	rows, err := q.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []*models.OpenJobListing{}
	for rows.Next() {
		l := &models.OpenJobListing{}
		if err := rows.Scan(&l.JobID, &l.Title, &l.Location, &l.CompanyName, &l.CompanyIndustry); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// FilterVacancies returns open jobs matching every criterion that is set
func (q *Queries) FilterVacancies(ctx context.Context, f VacancyFilter) ([]*models.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + `
			  FROM vacancy_jobs v JOIN employers e ON e.user_id = v.employer_id
			  WHERE v.status = 'Open'`
	args := []any{}
	if f.Industry != "" {
		query += ` AND v.industry = ?`
		args = append(args, f.Industry)
	}
	if f.Location != "" {
		query += ` AND v.location = ?`
		args = append(args, f.Location)
	}
	if f.MaxExperience != nil {
		query += ` AND v.min_experience <= ?`
		args = append(args, *f.MaxExperience)
	}
	query += ` ORDER BY v.id`

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanVacancies(rows)
}

// Application operations

func (q *Queries) HasApplied(ctx context.Context, seekerID, jobID int64) (bool, error) {
	var exists bool
	err := q.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE seeker_id = ? AND job_id = ?)`, seekerID, jobID).Scan(&exists)
	return exists, err
}

func (q *Queries) InsertApplication(ctx context.Context, app *models.Application) error {
	query := `INSERT INTO applications (job_id, seeker_id, status, apply_date) VALUES (?, ?, ?, ?)`
	result, err := q.q.ExecContext(ctx, query, app.JobID, app.SeekerID, string(app.Status),
		app.ApplyDate.Format(dateLayout))
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrAlreadyApplied
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	app.ID = id
	return nil
}

// RecordApplication bumps the job's applicant counter and the seeker's applied counter
func (q *Queries) RecordApplication(ctx context.Context, jobID, seekerID int64) error {
	return q.execAll(ctx, []statement{
		{`UPDATE vacancy_jobs SET app_count = app_count + 1 WHERE id = ?`, []any{jobID}},
		{`UPDATE job_seekers SET applied_job_count = applied_job_count + 1 WHERE user_id = ?`, []any{seekerID}},
	})
}

func (q *Queries) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	query := `SELECT id, job_id, seeker_id, status, apply_date FROM applications WHERE id = ?`
	app := &models.Application{}
	var status string
	err := q.q.QueryRowContext(ctx, query, id).Scan(&app.ID, &app.JobID, &app.SeekerID, &status, &app.ApplyDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	app.Status = models.ApplicationStatus(status)
	return app, nil
}

// SetApplicationStatus changes the status of an application on one of the
// employer's jobs; false means no such application for that employer.
func (q *Queries) SetApplicationStatus(ctx context.Context, appID, employerID int64, status models.ApplicationStatus) (bool, error) {
	result, err := q.q.ExecContext(ctx,
		`UPDATE applications SET status = ?
		 WHERE id = ? AND job_id IN (SELECT id FROM vacancy_jobs WHERE employer_id = ?)`,
		string(status), appID, employerID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// ListApplicationsForEmployer lists applications on the employer's jobs with the seeker's name
func (q *Queries) ListApplicationsForEmployer(ctx context.Context, employerID int64) ([]*models.ApplicationListing, error) {
	query := `SELECT a.id, a.job_id, v.title, u.name, a.status
			  FROM applications a
			  JOIN vacancy_jobs v ON a.job_id = v.id
			  JOIN users u ON a.seeker_id = u.id
			  WHERE v.employer_id = ?
			  ORDER BY a.id`
	rows, err := q.q.QueryContext(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []*models.ApplicationListing{}
	for rows.Next() {
		l := &models.ApplicationListing{}
		var status string
		if err := rows.Scan(&l.ApplicationID, &l.JobID, &l.JobTitle, &l.SeekerName, &status); err != nil {
			return nil, err
		}
		l.Status = models.ApplicationStatus(status)
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// Saved vacancy operations

func (q *Queries) HasSaved(ctx context.Context, seekerID, jobID int64) (bool, error) {
	var exists bool
	err := q.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_vacancies WHERE seeker_id = ? AND job_id = ?)`, seekerID, jobID).Scan(&exists)
	return exists, err
}

func (q *Queries) InsertSavedVacancy(ctx context.Context, saved *models.SavedVacancy) error {
	_, err := q.q.ExecContext(ctx, `INSERT INTO saved_vacancies (job_id, seeker_id, save_date) VALUES (?, ?, ?)`,
		saved.JobID, saved.SeekerID, saved.SaveDate.Format(dateLayout))
	if err != nil && isUniqueViolation(err) {
		return apperr.ErrAlreadySaved
	}
	return err
}

func (q *Queries) ListSavedJobs(ctx context.Context, seekerID int64) ([]*models.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + `
			  FROM saved_vacancies sv
			  JOIN vacancy_jobs v ON sv.job_id = v.id
			  LEFT JOIN employers e ON e.user_id = v.employer_id
			  WHERE sv.seeker_id = ?
			  ORDER BY sv.save_date DESC, v.id`
	rows, err := q.q.QueryContext(ctx, query, seekerID)
	if err != nil {
		return nil, err
	}
	return scanVacancies(rows)
}

// Skill operations

// UpsertSkill inserts a skill or replaces its years of experience
func (q *Queries) UpsertSkill(ctx context.Context, skill *models.Skill) error {
	_, err := q.q.ExecContext(ctx,
		`INSERT INTO has_skills (seeker_id, skill, years_experience) VALUES (?, ?, ?)
		 ON CONFLICT (seeker_id, skill) DO UPDATE SET years_experience = excluded.years_experience`,
		skill.SeekerID, skill.Skill, skill.YearsExperience)
	return err
}

func (q *Queries) ListSkills(ctx context.Context, seekerID int64) ([]*models.Skill, error) {
	rows, err := q.q.QueryContext(ctx,
		`SELECT seeker_id, skill, years_experience FROM has_skills WHERE seeker_id = ? ORDER BY skill`, seekerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []*models.Skill{}
	for rows.Next() {
		s := &models.Skill{}
		if err := rows.Scan(&s.SeekerID, &s.Skill, &s.YearsExperience); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

const seekerProfileColumns = `u.id, u.name, u.email, u.phone, j.industry, j.preferred_location, j.applied_job_count`

func scanSeekerProfiles(rows *sql.Rows) ([]*models.SeekerProfile, error) {
	defer rows.Close()

	profiles := []*models.SeekerProfile{}
	for rows.Next() {
		p := &models.SeekerProfile{}
		if err := rows.Scan(&p.UserID, &p.Name, &p.Email, &p.Phone, &p.Industry, &p.PreferredLocation,
			&p.AppliedJobCount); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// FilterJobSeekers returns seekers matching every criterion that is set. The
// experience criterion matches seekers with at least one skill of that many years.
func (q *Queries) FilterJobSeekers(ctx context.Context, f SeekerFilter) ([]*models.SeekerProfile, error) {
	query := `SELECT ` + seekerProfileColumns + `
			  FROM users u JOIN job_seekers j ON u.id = j.user_id
			  WHERE u.role = 'JobSeeker'`
	args := []any{}
	if f.MinExperience != nil {
		query += ` AND EXISTS (SELECT 1 FROM has_skills hs WHERE hs.seeker_id = j.user_id AND hs.years_experience >= ?)`
		args = append(args, *f.MinExperience)
	}
	if f.Industry != "" {
		query += ` AND j.industry = ?`
		args = append(args, f.Industry)
	}
	if f.Location != "" {
		query += ` AND j.preferred_location = ?`
		args = append(args, f.Location)
	}
	query += ` ORDER BY u.name, u.id`

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanSeekerProfiles(rows)
}

// formatDate renders a day boundary the way dates are stored
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
