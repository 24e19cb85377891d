package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
)

func TestUpsertUser_CreateThenRoleSwitch(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	ctx := context.Background()

	u, err := UpsertUser(ctx, db, "u1", domain.RoleWorker)
	if err != nil {
		t.Fatalf("UpsertUser create: %v", err)
	}
	if u.ID != "u1" || u.Role != domain.RoleWorker {
		t.Fatalf("unexpected user: %+v", u)
	}

	// Registering again with a different role switches it in place.
	u2, err := UpsertUser(ctx, db, "u1", domain.RoleEmployer)
	if err != nil {
		t.Fatalf("UpsertUser update: %v", err)
	}
	if u2.Role != domain.RoleEmployer {
		t.Fatalf("role not switched: %+v", u2)
	}

	total, err := CountUsers(ctx, db, "")
	if err != nil || total != 1 {
		t.Fatalf("expected a single row, got %d (err=%v)", total, err)
	}
}

func TestGetUser_Missing(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	if _, err := GetUser(context.Background(), db, "ghost"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found, got %v", err)
	}
}

func TestUpdateUserFields_SetsAndMisses(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	ctx := context.Background()
	if _, err := UpsertUser(ctx, db, "su", domain.RoleSuperuser); err != nil {
		t.Fatalf("seed: %v", err)
	}

	fields := map[string]any{"secondary_role": domain.RoleEmployer}
	if err := UpdateUserFields(ctx, db, "su", fields); err != nil {
		t.Fatalf("UpdateUserFields: %v", err)
	}
	if _, leaked := fields["updated_at"]; leaked {
		t.Fatalf("caller map mutated: %v", fields)
	}
	u, err := GetUser(ctx, db, "su")
	if err != nil || u.SecondaryRole != domain.RoleEmployer {
		t.Fatalf("secondary role not applied: %+v (err=%v)", u, err)
	}

	if err := UpdateUserFields(ctx, db, "ghost", map[string]any{"disabled": true}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListUsers_RoleFilterAndPagination(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	ctx := context.Background()
	for _, seed := range []struct{ uid, role string }{
		{"w1", domain.RoleWorker},
		{"w2", domain.RoleWorker},
		{"e1", domain.RoleEmployer},
	} {
		if _, err := UpsertUser(ctx, db, seed.uid, seed.role); err != nil {
			t.Fatalf("seed %s: %v", seed.uid, err)
		}
	}

	workers, err := ListUsers(ctx, db, domain.RoleWorker, 0, 10)
	if err != nil || len(workers) != 2 {
		t.Fatalf("expected 2 workers, got %d (err=%v)", len(workers), err)
	}

	page, err := ListUsers(ctx, db, "", 0, 2)
	if err != nil || len(page) != 2 {
		t.Fatalf("expected a page of 2, got %d (err=%v)", len(page), err)
	}

	n, err := CountUsers(ctx, db, domain.RoleEmployer)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 employer, got %d (err=%v)", n, err)
	}
}

func TestDeleteUser_RemovesRow(t *testing.T) {
	db := newTestDB(t, &domain.User{})
	ctx := context.Background()
	if _, err := UpsertUser(ctx, db, "gone", domain.RoleWorker); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := DeleteUser(ctx, db, "gone"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := GetUser(ctx, db, "gone"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("row should be gone, got %v", err)
	}
}
