package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// dateLayout is how apply and save dates are stored
const dateLayout = "2006-01-02"

// Open creates the parent directory, opens the SQLite database with foreign
// keys and immediate transactions enabled, and runs migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// _txlock=immediate takes the write lock at BEGIN so check-then-insert
	// sequences cannot interleave with another writer.
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates all necessary tables. Foreign keys deliberately have
// no ON DELETE CASCADE: account and job deletion remove dependents explicitly.
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CHECK(role IN ('Employer', 'JobSeeker'))
	);

	CREATE TABLE IF NOT EXISTS employers (
		user_id INTEGER PRIMARY KEY,
		company_name TEXT NOT NULL,
		industry TEXT NOT NULL,
		location TEXT NOT NULL,
		announced_job_count INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS job_seekers (
		user_id INTEGER PRIMARY KEY,
		resume_link TEXT NOT NULL,
		industry TEXT NOT NULL,
		preferred_location TEXT NOT NULL,
		applied_job_count INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS vacancy_jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employer_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		industry TEXT NOT NULL,
		location TEXT NOT NULL,
		required_skills TEXT NOT NULL,
		min_experience INTEGER NOT NULL DEFAULT 0,
		app_count INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Open',
		FOREIGN KEY (employer_id) REFERENCES employers(user_id),
		CHECK(min_experience >= 0),
		CHECK(status IN ('Open', 'Closed'))
	);

	CREATE TABLE IF NOT EXISTS applications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id INTEGER NOT NULL,
		seeker_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		apply_date DATE NOT NULL,
		FOREIGN KEY (job_id) REFERENCES vacancy_jobs(id),
		FOREIGN KEY (seeker_id) REFERENCES job_seekers(user_id),
		UNIQUE(seeker_id, job_id),
		CHECK(status IN ('Pending', 'Accepted', 'Rejected'))
	);

	CREATE TABLE IF NOT EXISTS saved_vacancies (
		job_id INTEGER NOT NULL,
		seeker_id INTEGER NOT NULL,
		save_date DATE NOT NULL,
		PRIMARY KEY (seeker_id, job_id),
		FOREIGN KEY (job_id) REFERENCES vacancy_jobs(id),
		FOREIGN KEY (seeker_id) REFERENCES job_seekers(user_id)
	);

	CREATE TABLE IF NOT EXISTS has_skills (
		seeker_id INTEGER NOT NULL,
		skill TEXT NOT NULL,
		years_experience INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (seeker_id, skill),
		FOREIGN KEY (seeker_id) REFERENCES job_seekers(user_id),
		CHECK(years_experience >= 0)
	);

	CREATE INDEX IF NOT EXISTS idx_vacancy_jobs_employer ON vacancy_jobs(employer_id);
	CREATE INDEX IF NOT EXISTS idx_vacancy_jobs_status ON vacancy_jobs(status);
	CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications(job_id);
	CREATE INDEX IF NOT EXISTS idx_applications_apply_date ON applications(apply_date);
	CREATE INDEX IF NOT EXISTS idx_saved_vacancies_job_id ON saved_vacancies(job_id);
	`

	_, err := db.Exec(schema)
	return err
}
