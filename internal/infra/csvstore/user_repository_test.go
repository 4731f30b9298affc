package csvstore

import (
	"errors"
	"testing"

	"exam-practice-manager/internal/domain"
)

func newUserRepo(t *testing.T, seed bool) *UserRepository {
	t.Helper()
	repo := NewUserRepository(t.TempDir())
	if err := repo.Init(seed); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return repo
}

func TestUserInitSeedsDefaultsOnce(t *testing.T) {
	repo := newUserRepo(t, true)

	users, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 seeded accounts, got %d", len(users))
	}
	if users[0].Role != domain.RoleLecturer || users[1].Role != domain.RoleStudent {
		t.Fatalf("unexpected seed roles: %+v", users)
	}

	// A second Init against an existing file must not duplicate the seeds.
	if err := repo.Init(true); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	users, err = repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 accounts after re-init, got %d", len(users))
	}
}

func TestUserInitWithoutSeeding(t *testing.T) {
	repo := newUserRepo(t, false)

	users, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty table, got %+v", users)
	}
}

func TestUserLookupIsCaseInsensitive(t *testing.T) {
	repo := newUserRepo(t, false)

	u := domain.User{
		Username:    "Jordan.Lee",
		Password:    "pw",
		Role:        domain.RoleStudent,
		Email:       "jordan@example.edu",
		IDNumber:    "S0042",
		CreatedDate: testDate,
	}
	if err := repo.Add(u); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := repo.GetByUsername("JORDAN.lee")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if got.Username != "Jordan.Lee" {
		t.Fatalf("unexpected account: %+v", got)
	}

	dup := u
	dup.Username = "jordan.LEE"
	if err := repo.Add(dup); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("Add duplicate = %v, want ErrUsernameTaken", err)
	}
}

func TestUserUpdateDeleteAndRoleFilter(t *testing.T) {
	repo := newUserRepo(t, true)

	u, err := repo.GetByUsername("student")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	u.Email = "new@example.edu"
	if err := repo.Update(u); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := repo.GetByUsername("student")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if got.Email != "new@example.edu" {
		t.Fatalf("update not persisted: %+v", got)
	}

	lecturers, err := repo.ListByRole(domain.RoleLecturer)
	if err != nil {
		t.Fatalf("ListByRole failed: %v", err)
	}
	if len(lecturers) != 1 || lecturers[0].Username != "lecturer" {
		t.Fatalf("unexpected lecturer listing: %+v", lecturers)
	}

	if removed, err := repo.Delete("STUDENT"); err != nil || !removed {
		t.Fatalf("Delete = %v, %v", removed, err)
	}
	if _, err := repo.GetByUsername("student"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("GetByUsername after delete = %v, want ErrUserNotFound", err)
	}
}
