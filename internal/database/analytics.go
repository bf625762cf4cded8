package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/khrees2412/hireboard/pkg/models"
)

// Read-only aggregations. Date windows are inclusive day ranges.

// MostAppliedJob returns the job with the highest applicant count, lowest id
// first on ties, or nil when there are no jobs.
func (q *Queries) MostAppliedJob(ctx context.Context) (*models.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + `
			  FROM vacancy_jobs v LEFT JOIN employers e ON e.user_id = v.employer_id
			  WHERE v.app_count = (SELECT MAX(app_count) FROM vacancy_jobs)
			  ORDER BY v.id
			  LIMIT 1`
	job, err := scanVacancy(q.q.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return job, err
}

// OpenJobsWithoutApplications lists open jobs that received no application between from and to
func (q *Queries) OpenJobsWithoutApplications(ctx context.Context, from, to time.Time) ([]*models.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + `
			  FROM vacancy_jobs v LEFT JOIN employers e ON e.user_id = v.employer_id
			  WHERE v.status = 'Open'
			  AND NOT EXISTS (
				  SELECT 1 FROM applications a
				  WHERE a.job_id = v.id AND a.apply_date BETWEEN ? AND ?)
			  ORDER BY v.id`
	rows, err := q.q.QueryContext(ctx, query, formatDate(from), formatDate(to))
	if err != nil {
		return nil, err
	}
	return scanVacancies(rows)
}

// EmployersWithMostActiveJobs returns the employers whose number of distinct
// jobs with an application between from and to equals the maximum. Nobody
// qualifies when no job received an application.
func (q *Queries) EmployersWithMostActiveJobs(ctx context.Context, from, to time.Time) ([]*models.EmployerActivity, error) {
	query := `WITH activity AS (
				  SELECT e.user_id AS employer_id, e.company_name AS company_name,
						 COUNT(DISTINCT a.job_id) AS job_count
				  FROM employers e
				  JOIN vacancy_jobs v ON v.employer_id = e.user_id
				  JOIN applications a ON a.job_id = v.id
				  WHERE a.apply_date BETWEEN ? AND ?
				  GROUP BY e.user_id, e.company_name
			  )
			  SELECT employer_id, company_name, job_count FROM activity
			  WHERE job_count = (SELECT MAX(job_count) FROM activity)
			  ORDER BY company_name, employer_id`
	rows, err := q.q.QueryContext(ctx, query, formatDate(from), formatDate(to))
	if err != nil {
		return nil, err
	}
	return scanEmployerActivity(rows)
}

// EmployersWithoutApplications returns employers with no jobs, or whose jobs
// received no application between from and to.
func (q *Queries) EmployersWithoutApplications(ctx context.Context, from, to time.Time) ([]*models.EmployerActivity, error) {
	query := `SELECT e.user_id, e.company_name, COUNT(DISTINCT v.id)
			  FROM employers e
			  LEFT JOIN vacancy_jobs v ON v.employer_id = e.user_id
			  LEFT JOIN applications a ON a.job_id = v.id AND a.apply_date BETWEEN ? AND ?
			  GROUP BY e.user_id, e.company_name
			  HAVING COUNT(a.id) = 0
			  ORDER BY e.company_name, e.user_id`
	rows, err := q.q.QueryContext(ctx, query, formatDate(from), formatDate(to))
	if err != nil {
		return nil, err
	}
	return scanEmployerActivity(rows)
}

func scanEmployerActivity(rows *sql.Rows) ([]*models.EmployerActivity, error) {
	defer rows.Close()

	result := []*models.EmployerActivity{}
	for rows.Next() {
		a := &models.EmployerActivity{}
		if err := rows.Scan(&a.EmployerID, &a.CompanyName, &a.JobCount); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// OpenPositionsByEmployer groups open job titles by company, ordered by company name
func (q *Queries) OpenPositionsByEmployer(ctx context.Context) ([]*models.EmployerPositions, error) {
	query := `SELECT e.company_name, v.title
			  FROM vacancy_jobs v JOIN employers e ON e.user_id = v.employer_id
			  WHERE v.status = 'Open'
			  ORDER BY e.company_name, v.id`
	rows, err := q.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []*models.EmployerPositions{}
	var current *models.EmployerPositions
	for rows.Next() {
		var company, title string
		if err := rows.Scan(&company, &title); err != nil {
			return nil, err
		}
		if current == nil || current.CompanyName != company {
			current = &models.EmployerPositions{CompanyName: company}
			groups = append(groups, current)
		}
		current.Titles = append(current.Titles, title)
	}
	return groups, rows.Err()
}

// JobSeekerRoster lists every job seeker with their applied-job count, ordered by name
func (q *Queries) JobSeekerRoster(ctx context.Context) ([]*models.SeekerProfile, error) {
	query := `SELECT ` + seekerProfileColumns + `
			  FROM users u JOIN job_seekers j ON u.id = j.user_id
			  ORDER BY u.name, u.id`
	rows, err := q.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanSeekerProfiles(rows)
}
