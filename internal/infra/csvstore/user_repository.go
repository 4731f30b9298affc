package csvstore

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"exam-practice-manager/internal/domain"
)

// Default accounts written into a brand-new users.csv so the tool is usable
// immediately after init.
var defaultUsers = []domain.User{
	{Username: "lecturer", Password: "lecturer123", Role: domain.RoleLecturer, Email: "lecturer@example.edu", IDNumber: "L0001"},
	{Username: "student", Password: "student123", Role: domain.RoleStudent, Email: "student@example.edu", IDNumber: "S0001"},
}

// UserRepository persists accounts in users.csv, keyed by username
// (case-insensitive).
type UserRepository struct {
	tbl table
	now func() time.Time
}

func NewUserRepository(dir string) *UserRepository {
	return &UserRepository{
		tbl: table{
			path:   filepath.Join(dir, "users.csv"),
			header: userHeader,
		},
		now: time.Now,
	}
}

// Init creates the backing file with its header if it is missing. When the
// file did not exist and seedDefaults is set, one lecturer and one student
// account are written so a fresh install has something to log in with.
func (r *UserRepository) Init(seedDefaults bool) error {
	_, statErr := os.Stat(r.tbl.path)
	existed := statErr == nil

	if err := r.tbl.init(); err != nil {
		return err
	}
	if existed || !seedDefaults {
		return nil
	}

	created := r.now()
	for _, u := range defaultUsers {
		u.CreatedDate = created
		if err := r.tbl.appendRow(userToRow(u)); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) GetAll() ([]domain.User, error) {
	rows, err := r.tbl.readRows()
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		if u, ok := userFromRow(row); ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// GetByUsername returns domain.ErrUserNotFound when no account matches. The
// lookup is case-insensitive.
func (r *UserRepository) GetByUsername(username string) (domain.User, error) {
	users, err := r.GetAll()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

// Add appends a new account; domain.ErrUsernameTaken when the username is
// already in use under any casing.
func (r *UserRepository) Add(u domain.User) error {
	users, err := r.GetAll()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Username, u.Username) {
			return domain.ErrUsernameTaken
		}
	}
	return r.tbl.appendRow(userToRow(u))
}

// Update replaces the account with the same username.
func (r *UserRepository) Update(u domain.User) error {
	users, err := r.GetAll()
	if err != nil {
		return err
	}
	found := false
	rows := make([]string, len(users))
	for i, existing := range users {
		if strings.EqualFold(existing.Username, u.Username) {
			existing = u
			found = true
		}
		rows[i] = userToRow(existing)
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return r.tbl.rewrite(rows)
}

// Delete removes the account and reports whether anything was removed.
func (r *UserRepository) Delete(username string) (bool, error) {
	users, err := r.GetAll()
	if err != nil {
		return false, err
	}
	rows := make([]string, 0, len(users))
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			continue
		}
		rows = append(rows, userToRow(u))
	}
	if len(rows) == len(users) {
		return false, nil
	}
	if err := r.tbl.rewrite(rows); err != nil {
		return false, err
	}
	return true, nil
}

// ListByRole returns the accounts holding the given role in file order.
func (r *UserRepository) ListByRole(role domain.Role) ([]domain.User, error) {
	users, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	var matched []domain.User
	for _, u := range users {
		if u.Role == role {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

func (r *UserRepository) Count() (int, error) {
	users, err := r.GetAll()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}
