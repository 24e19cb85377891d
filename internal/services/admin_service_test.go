package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/repo"
)

// seedMarketplace builds a small populated marketplace: one worker with an
// active profile, one employer with a profile and an offer, and the match
// the engine created between them.
func seedMarketplace(t *testing.T, db *gorm.DB) (offerID, matchID string) {
	t.Helper()
	ctx := context.Background()
	engine := newTestEngine(db)
	profiles := NewProfileService(db, engine)
	offers := NewOfferService(db, engine)

	seedUser(t, db, "w1", domain.RoleWorker)
	seedUser(t, db, "e1", domain.RoleEmployer)
	seedUser(t, db, "root", domain.RoleSuperuser)

	if _, _, err := profiles.SaveWorkerProfile(ctx, "w1", WorkerProfileInput{Rubro: "gastronomia", Puesto: "Cocinero"}); err != nil {
		t.Fatalf("seed worker profile: %v", err)
	}
	if _, _, err := profiles.SaveEmployerProfile(ctx, "e1", EmployerProfileInput{BusinessName: "Lo de Carlos", Rubro: "gastronomia"}); err != nil {
		t.Fatalf("seed employer profile: %v", err)
	}
	o, matches, err := offers.Publish(ctx, "e1", OfferInput{Rubro: "gastronomia", Puesto: "Cocinero"})
	if err != nil || len(matches) != 1 {
		t.Fatalf("seed offer: %d matches (err=%v)", len(matches), err)
	}
	return o.ID, matches[0].ID
}

func TestAdminService_RequireSuperuser(t *testing.T) {
	db := newServiceDB(t)
	svc := NewAdminService(db)
	ctx := context.Background()

	seedUser(t, db, "w1", domain.RoleWorker)
	seedUser(t, db, "root", domain.RoleSuperuser)

	if _, err := svc.RequireSuperuser(ctx, "nobody"); !errors.Is(err, ErrSuperuserRequired) {
		t.Fatalf("missing user: expected ErrSuperuserRequired, got %v", err)
	}
	if _, err := svc.RequireSuperuser(ctx, "w1"); !errors.Is(err, ErrSuperuserRequired) {
		t.Fatalf("worker: expected ErrSuperuserRequired, got %v", err)
	}
	u, err := svc.RequireSuperuser(ctx, "root")
	if err != nil || u.ID != "root" {
		t.Fatalf("superuser: %+v (err=%v)", u, err)
	}
}

func TestAdminService_GetStats(t *testing.T) {
	db := newServiceDB(t)
	svc := NewAdminService(db)
	seedMarketplace(t, db)

	st, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalUsers != 3 || st.UsersByRole[domain.RoleWorker] != 1 {
		t.Fatalf("user counts: %+v", st)
	}
	if st.TotalMatches != 1 || st.MatchesByStatus[domain.MatchPending] != 1 {
		t.Fatalf("match counts: %+v", st)
	}
	if st.TotalJobOffers != 1 || st.ActiveJobOffers != 1 || st.InactiveJobOffers != 0 {
		t.Fatalf("offer counts: %+v", st)
	}
}

func TestAdminService_ListAndGetUsers(t *testing.T) {
	db := newServiceDB(t)
	svc := NewAdminService(db)
	seedMarketplace(t, db)
	ctx := context.Background()

	all, total, err := svc.ListUsers(ctx, "", 0, 10)
	if err != nil || total != 3 || len(all) != 3 {
		t.Fatalf("list all: %d/%d (err=%v)", len(all), total, err)
	}

	employers, total, err := svc.ListUsers(ctx, domain.RoleEmployer, 0, 10)
	if err != nil || total != 1 || len(employers) != 1 {
		t.Fatalf("filtered list: %d/%d (err=%v)", len(employers), total, err)
	}
	e := employers[0]
	if e.Profile == nil || len(e.JobOffers) != 1 {
		t.Fatalf("employer row should carry profile and offers: %+v", e)
	}

	d, err := svc.GetUser(ctx, "e1")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if d.Stats.Matches != 1 || d.Stats.JobOffers != 1 {
		t.Fatalf("employer stats: %+v", d.Stats)
	}
	if _, err := svc.GetUser(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// Stats queries are not best-effort: a failing count surfaces instead of
	// reporting zeros.
	if err := db.Migrator().DropTable(&domain.Match{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	if _, err := svc.GetUser(ctx, "e1"); err == nil {
		t.Fatalf("expected count failure to propagate")
	}
}

func TestAdminService_UpdateUser(t *testing.T) {
	db := newServiceDB(t)
	svc := NewAdminService(db)
	ctx := context.Background()
	seedUser(t, db, "w1", domain.RoleWorker)

	bad := "astronaut"
	if _, err := svc.UpdateUser(ctx, "w1", &bad, nil); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.UpdateUser(ctx, "nobody", nil, nil); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	role := domain.RoleEmployer
	disabled := true
	u, err := svc.UpdateUser(ctx, "w1", &role, &disabled)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Role != domain.RoleEmployer || !u.Disabled {
		t.Fatalf("fields not applied: %+v", u)
	}
}

func TestAdminService_DeleteUser(t *testing.T) {
	db := newServiceDB(t)
	svc := NewAdminService(db)
	ctx := context.Background()
	offerID, matchID := seedMarketplace(t, db)

	if err := svc.DeleteUser(ctx, "root", false); !errors.Is(err, ErrSuperuserImmutable) {
		t.Fatalf("superuser: expected ErrSuperuserImmutable, got %v", err)
	}
	if err := svc.DeleteUser(ctx, "nobody", false); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// Soft delete disables and stamps, the row stays.
	if err := svc.DeleteUser(ctx, "w1", false); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	w, err := repo.GetUser(ctx, db, "w1")
	if err != nil {
		t.Fatalf("soft-deleted row should stay: %v", err)
	}
	if !w.Disabled || w.DeletedAt == nil {
		t.Fatalf("soft delete flags missing: %+v", w)
	}

	// Hard delete removes the employer, its profile, and its offers.
	if err := svc.DeleteUser(ctx, "e1", true); err != nil {
		t.Fatalf("hard delete: %v", err)
	}
	if _, err := repo.GetUser(ctx, db, "e1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("user row should be gone, got %v", err)
	}
	if _, err := repo.GetEmployerProfile(ctx, db, "e1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("profile should be gone, got %v", err)
	}
	if _, err := repo.GetJobOffer(ctx, db, offerID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("offers should be gone, got %v", err)
	}

	// Matches keep their snapshot and survive both deletions.
	if _, err := repo.GetMatch(ctx, db, matchID); err != nil {
		t.Fatalf("match should survive user deletion: %v", err)
	}
}

func TestAdminService_ListOffersAndMatches(t *testing.T) {
	db := newServiceDB(t)
	svc := NewAdminService(db)
	seedMarketplace(t, db)
	ctx := context.Background()

	offers, total, err := svc.ListOffers(ctx, nil, "", 0, 10)
	if err != nil || total != 1 || len(offers) != 1 {
		t.Fatalf("offers: %d/%d (err=%v)", len(offers), total, err)
	}
	if offers[0].Employer == nil || offers[0].Employer.BusinessName != "Lo de Carlos" {
		t.Fatalf("offer enrichment missing: %+v", offers[0])
	}

	matches, total, err := svc.ListMatches(ctx, domain.MatchPending, 0, 10)
	if err != nil || total != 1 || len(matches) != 1 {
		t.Fatalf("matches: %d/%d (err=%v)", len(matches), total, err)
	}
	m := matches[0]
	if m.Worker == nil || m.Employer == nil {
		t.Fatalf("match enrichment missing: %+v", m)
	}

	none, total, err := svc.ListMatches(ctx, domain.MatchRejected, 0, 10)
	if err != nil || total != 0 || len(none) != 0 {
		t.Fatalf("rejected filter: %d/%d (err=%v)", len(none), total, err)
	}
}
