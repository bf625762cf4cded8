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
)

// RegisterInput carries the raw registration form. Employers fill
// CompanyName; job seekers fill ResumeLink. Location is the company location
// for employers and the preferred location for seekers.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Role     string
	Password string

	CompanyName string
	ResumeLink  string
	Industry    string
	Location    string
}

// UserPatch holds the account fields to change. Empty fields are left unchanged.
type UserPatch struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register creates a user and its employer or job seeker profile
func (s *Service) Register(ctx context.Context, in RegisterInput) (user *models.User, err error) {
	defer s.observe("register", time.Now(), &err)

	if err := validate.Required(
		validate.Field{Name: "name", Value: in.Name},
		validate.Field{Name: "email", Value: in.Email},
		validate.Field{Name: "phone", Value: in.Phone},
		validate.Field{Name: "role", Value: in.Role},
		validate.Field{Name: "password", Value: in.Password},
	); err != nil {
		return nil, err
	}
	role, err := validate.Role(in.Role)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleEmployer:
		err = validate.Required(
			validate.Field{Name: "company_name", Value: in.CompanyName},
			validate.Field{Name: "industry", Value: in.Industry},
			validate.Field{Name: "location", Value: in.Location},
		)
	case models.RoleJobSeeker:
		err = validate.Required(
			validate.Field{Name: "resume_link", Value: in.ResumeLink},
			validate.Field{Name: "industry", Value: in.Industry},
			validate.Field{Name: "preferred_location", Value: in.Location},
		)
	}
	if err != nil {
		return nil, err
	}
	if err := validate.Email(in.Email); err != nil {
		return nil, err
	}
	if err := validate.Phone(in.Phone); err != nil {
		return nil, err
	}
	if err := validate.Password(in.Password); err != nil {
		return nil, err
	}

	user = &models.User{Name: in.Name, Email: in.Email, Phone: in.Phone, Password: in.Password, Role: role}
	err = s.inTx(ctx, "register", func(tx *database.Tx) error {
		if err := tx.InsertUser(ctx, user); err != nil {
			return err
		}
		if role == models.RoleEmployer {
			return tx.InsertEmployer(ctx, &models.Employer{
				UserID:      user.ID,
				CompanyName: in.CompanyName,
				Industry:    in.Industry,
				Location:    in.Location,
			})
		}
		return tx.InsertJobSeeker(ctx, &models.JobSeeker{
			UserID:            user.ID,
			ResumeLink:        in.ResumeLink,
			Industry:          in.Industry,
			PreferredLocation: in.Location,
		})
	})
	if err != nil {
		return nil, err
	}

	s.committed("register", user.ID, nil)
	s.publish(ctx, events.New(events.UserRegistered, user.ID))
	return user, nil
}

// Login establishes sess for the user with exactly this email and password.
// Unknown email and wrong password fail the same way.
func (s *Service) Login(ctx context.Context, sess *session.Session, email, password string) (id session.Identity, err error) {
	defer s.observe("login", time.Now(), &err)

	if err := validate.Email(email); err != nil {
		return session.Identity{}, err
	}
	if err := validate.Password(password); err != nil {
		return session.Identity{}, err
	}

	user, err := s.store.FindUserByCredentials(ctx, email, password)
	if err != nil {
		return session.Identity{}, err
	}
	if user == nil {
		return session.Identity{}, apperr.ErrInvalidCredentials
	}

	id = session.Identity{UserID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	if user.Role == models.RoleEmployer {
		emp, err := s.store.GetEmployer(ctx, user.ID)
		if err != nil {
			return session.Identity{}, err
		}
		if emp != nil {
			id.CompanyName = emp.CompanyName
		}
	}

	sess.Establish(id)
	s.log.WithField("user_id", id.UserID).Debug("logged in")
	return id, nil
}

// Logout clears the session
func (s *Service) Logout(sess *session.Session) {
	sess.Clear()
}

// UpdateUser changes the logged in user's own account
func (s *Service) UpdateUser(ctx context.Context, sess *session.Session, patch UserPatch) (err error) {
	defer s.observe("update_user", time.Now(), &err)

	id, err := sess.RequireActive()
	if err != nil {
		return err
	}

	upd := database.UserUpdate{
		Name:     optional(patch.Name),
		Email:    optional(patch.Email),
		Phone:    optional(patch.Phone),
		Password: optional(patch.Password),
	}
	if upd.Name == nil && upd.Email == nil && upd.Phone == nil && upd.Password == nil {
		return apperr.ErrNoFieldsProvided
	}
	if upd.Email != nil {
		if err := validate.Email(*upd.Email); err != nil {
			return err
		}
	}
	if upd.Phone != nil {
		if err := validate.Phone(*upd.Phone); err != nil {
			return err
		}
	}
	if upd.Password != nil {
		if err := validate.Password(*upd.Password); err != nil {
			return err
		}
	}

	err = s.inTx(ctx, "update_user", func(tx *database.Tx) error {
		n, err := tx.UpdateUser(ctx, id.UserID, upd)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	if upd.Name != nil {
		id.Name = *upd.Name
	}
	if upd.Email != nil {
		id.Email = *upd.Email
	}
	sess.Establish(id)
	s.committed("update_user", id.UserID, nil)
	return nil
}

// DeleteUser removes the logged in user and everything they own, then
// clears the session. confirmEmail must equal the session's email.
func (s *Service) DeleteUser(ctx context.Context, sess *session.Session, confirmEmail string) (err error) {
	defer s.observe("delete_user", time.Now(), &err)

	id, err := sess.RequireActive()
	if err != nil {
		return err
	}
	if err := validate.Required(validate.Field{Name: "confirm_email", Value: confirmEmail}); err != nil {
		return err
	}
	if confirmEmail != id.Email {
		return apperr.ErrNotOwner
	}

	err = s.inTx(ctx, "delete_user", func(tx *database.Tx) error {
		if id.Role == models.RoleEmployer {
			return tx.DeleteEmployerAccount(ctx, id.UserID)
		}
		return tx.DeleteJobSeekerAccount(ctx, id.UserID)
	})
	if err != nil {
		return err
	}

	sess.Clear()
	s.committed("delete_user", id.UserID, nil)
	s.publish(ctx, events.New(events.UserDeleted, id.UserID))
	return nil
}
