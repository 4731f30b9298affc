package app

import (
	"errors"
	"strings"
	"time"

	"exam-practice-manager/internal/domain"
)

// UserDirectory is the slice of the user repository the auth service needs.
type UserDirectory interface {
	GetByUsername(username string) (domain.User, error)
	Add(u domain.User) error
}

// AuthService authenticates accounts and registers new ones. There is no
// ambient "current user": Login hands back a UserSession value and callers
// pass it to whatever needs to know who is acting.
type AuthService struct {
	users UserDirectory
	now   func() time.Time
}

func NewAuthService(users UserDirectory) *AuthService {
	return &AuthService{users: users, now: time.Now}
}

// NewAuthServiceWithClock allows deterministic timestamps in tests.
func NewAuthServiceWithClock(users UserDirectory, now func() time.Time) *AuthService {
	return &AuthService{users: users, now: now}
}

// UserSession represents one logged-in user, valid from Login until the
// caller discards it.
type UserSession struct {
	User    domain.User
	LoginAt time.Time
}

// IsLecturer reports whether the session belongs to a lecturer account.
func (s *UserSession) IsLecturer() bool { return s.User.Role == domain.RoleLecturer }

// IsStudent reports whether the session belongs to a student account.
func (s *UserSession) IsStudent() bool { return s.User.Role == domain.RoleStudent }

// Login authenticates by case-insensitive username and exact password match
// against the stored credential. A missing account and a wrong password both
// come back as domain.ErrInvalidCredentials.
func (a *AuthService) Login(username, password string) (*UserSession, error) {
	user, err := a.users.GetByUsername(strings.TrimSpace(username))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Password != password {
		return nil, domain.ErrInvalidCredentials
	}
	return &UserSession{User: user, LoginAt: a.now()}, nil
}

// Register creates a new account. The username must be unique under any
// casing; field-level validation (email shape, ID format) is the front end's
// job before calling this.
func (a *AuthService) Register(user domain.User) error {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return domain.ErrInvalidUsername
	}
	user.CreatedDate = a.now()
	return a.users.Add(user)
}
