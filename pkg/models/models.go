package models

import "time"

// Role discriminates which profile table extends a user row
type Role string

const (
	RoleEmployer  Role = "Employer"
	RoleJobSeeker Role = "JobSeeker"
)

// JobStatus is the discoverability state of a vacancy
type JobStatus string

const (
	JobOpen   JobStatus = "Open"
	JobClosed JobStatus = "Closed"
)

// ApplicationStatus is the employer's review outcome
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// User represents an account. Role never changes after registration.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Employer extends a user with role Employer
type Employer struct {
	UserID            int64  `json:"user_id"`
	CompanyName       string `json:"company_name"`
	Industry          string `json:"industry"`
	Location          string `json:"location"`
	AnnouncedJobCount int    `json:"announced_job_count"`
}

// JobSeeker extends a user with role JobSeeker
type JobSeeker struct {
	UserID            int64  `json:"user_id"`
	ResumeLink        string `json:"resume_link"`
	Industry          string `json:"industry"`
	PreferredLocation string `json:"preferred_location"`
	AppliedJobCount   int    `json:"applied_job_count"`
}

// Vacancy represents a job posted by an employer
type Vacancy struct {
	ID             int64     `json:"id"`
	EmployerID     int64     `json:"employer_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Industry       string    `json:"industry"`
	Location       string    `json:"location"`
	RequiredSkills string    `json:"required_skills"`
	MinExperience  int       `json:"min_experience"`
	AppCount       int       `json:"app_count"`
	Status         JobStatus `json:"status"`
	CompanyName    string    `json:"company_name,omitempty"` // filled by joined listings
}

// Application represents a seeker's application to a vacancy
type Application struct {
	ID        int64             `json:"id"`
	JobID     int64             `json:"job_id"`
	SeekerID  int64             `json:"seeker_id"`
	Status    ApplicationStatus `json:"status"`
	ApplyDate time.Time         `json:"apply_date"`
}

// SavedVacancy is a bookmark of a vacancy by a seeker
type SavedVacancy struct {
	JobID    int64     `json:"job_id"`
	SeekerID int64     `json:"seeker_id"`
	SaveDate time.Time `json:"save_date"`
}

// Skill is a HasSkills row
type Skill struct {
	SeekerID        int64  `json:"seeker_id"`
	Skill           string `json:"skill"`
	YearsExperience int    `json:"years_experience"`
}

// ApplicationListing is an application joined with its job title and seeker name
type ApplicationListing struct {
	ApplicationID int64             `json:"application_id"`
	JobID         int64             `json:"job_id"`
	JobTitle      string            `json:"job_title"`
	SeekerName    string            `json:"seeker_name"`
	Status        ApplicationStatus `json:"status"`
}

// OpenJobListing is a row of the public job board
type OpenJobListing struct {
	JobID           int64  `json:"job_id"`
	Title           string `json:"title"`
	Location        string `json:"location"`
	CompanyName     string `json:"company_name"`
	CompanyIndustry string `json:"company_industry"`
}

// SeekerProfile is a job seeker joined with the user row
type SeekerProfile struct {
	UserID            int64  `json:"user_id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Industry          string `json:"industry"`
	PreferredLocation string `json:"preferred_location"`
	AppliedJobCount   int    `json:"applied_job_count"`
}

// EmployerActivity counts an employer's jobs that received applications in a window
type EmployerActivity struct {
	EmployerID  int64  `json:"employer_id"`
	CompanyName string `json:"company_name"`
	JobCount    int    `json:"job_count"`
}

// EmployerPositions groups open job titles under a company
type EmployerPositions struct {
	CompanyName string   `json:"company_name"`
	Titles      []string `json:"titles"`
}
