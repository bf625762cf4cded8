package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/khrees2412/hireboard/pkg/models"
	"github.com/mattn/go-sqlite3"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestWithTxCommits(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET name = ?, phone = ? WHERE id = ?")).
		WithArgs("Bo", "5550100", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	name, phone := "Bo", "5550100"
	err := s.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.UpdateUser(ctx, 4, UserUpdate{Name: &name, Phone: &phone})
		return err
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestWithTxRollsBackOnStatementFailure(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	diskErr := errors.New("disk I/O error")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO vacancy_jobs")).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE employers SET announced_job_count")).
		WithArgs(1, int64(2)).
		WillReturnError(diskErr)
	mock.ExpectRollback()

	err := s.WithTx(ctx, func(tx *Tx) error {
		job := &models.Vacancy{EmployerID: 2, Title: "t", Description: "d", Industry: "i", Location: "l", RequiredSkills: "s"}
		if err := tx.InsertJob(ctx, job); err != nil {
			return err
		}
		return tx.AdjustAnnouncedJobs(ctx, 2, 1)
	})
	if !errors.Is(err, diskErr) {
		t.Fatalf("expected disk error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateUserWithoutFieldsIssuesNoStatement(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := s.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.UpdateUser(ctx, 1, UserUpdate{})
		return err
	})
	if !errors.Is(err, apperr.ErrNoFieldsProvided) {
		t.Fatalf("expected ErrNoFieldsProvided, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUniqueViolationClassified(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	unique := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(unique)

	user := &models.User{Name: "A", Email: "a@example.com", Phone: "1", Password: "secret1", Role: models.RoleEmployer}
	if err := s.InsertUser(ctx, user); !errors.Is(err, apperr.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	other := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}
	if isUniqueViolation(other) {
		t.Error("foreign key failure must not be classified as unique violation")
	}
	if isUniqueViolation(errors.New("UNIQUE constraint failed")) {
		t.Error("only typed sqlite errors are classified")
	}
}

func TestUpdateBuilder(t *testing.T) {
	title := "Go Developer"
	years := 3
	tests := []struct {
		name      string
		build     func(b *updateBuilder)
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "single column",
			build:     func(b *updateBuilder) { b.setString("title", &title) },
			wantQuery: "UPDATE vacancy_jobs SET title = ? WHERE id = ?",
			wantArgs:  []any{title, int64(1)},
		},
		{
			name: "absent fields skipped",
			build: func(b *updateBuilder) {
				b.setString("title", nil)
				b.setString("location", &title)
				b.setInt("min_experience", &years)
			},
			wantQuery: "UPDATE vacancy_jobs SET location = ?, min_experience = ? WHERE id = ?",
			wantArgs:  []any{title, years, int64(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newUpdate("vacancy_jobs")
			tt.build(b)
			query, args := b.build("id = ?", int64(1))
			if query != tt.wantQuery {
				t.Errorf("query = %q, want %q", query, tt.wantQuery)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("got %d args, want %d", len(args), len(tt.wantArgs))
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("arg %d = %v, want %v", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}

	if !newUpdate("users").empty() {
		t.Error("new builder should be empty")
	}
}
