package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
)

func seedMatch(t *testing.T, db *gorm.DB, worker, employer, offer string) *domain.Match {
	t.Helper()
	m := &domain.Match{
		WorkerID:   worker,
		EmployerID: employer,
		OfferID:    offer,
		Rubro:      "gastronomia",
		Puesto:     "Cocinero",
	}
	if err := CreateMatch(context.Background(), db, m); err != nil {
		t.Fatalf("seed match %s/%s: %v", worker, offer, err)
	}
	return m
}

func TestCreateMatch_DeterministicIDAndDuplicate(t *testing.T) {
	db := newTestDB(t, &domain.Match{})
	ctx := context.Background()

	m := seedMatch(t, db, "w1", "e1", "o1")
	if m.ID != domain.MatchID("w1", "o1") {
		t.Fatalf("id not derived from pair: %s", m.ID)
	}
	if m.Status != domain.MatchPending {
		t.Fatalf("default status should be pending, got %s", m.Status)
	}

	dup := &domain.Match{WorkerID: "w1", EmployerID: "e1", OfferID: "o1"}
	if err := CreateMatch(ctx, db, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	var total int64
	db.Model(&domain.Match{}).Count(&total)
	if total != 1 {
		t.Fatalf("duplicate insert must leave a single row, got %d", total)
	}
}

func TestUpdateMatchStatus_NoTransitionGuard(t *testing.T) {
	db := newTestDB(t, &domain.Match{})
	ctx := context.Background()

	m := seedMatch(t, db, "w1", "e1", "o1")

	if err := UpdateMatchStatus(ctx, db, m.ID, domain.MatchAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	// A settled match can still be flipped; the repo layer imposes no policy.
	if err := UpdateMatchStatus(ctx, db, m.ID, domain.MatchRejected); err != nil {
		t.Fatalf("re-transition: %v", err)
	}
	got, err := GetMatch(ctx, db, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.MatchRejected {
		t.Fatalf("status = %s, want rejected", got.Status)
	}

	if err := UpdateMatchStatus(ctx, db, "ghost", domain.MatchAccepted); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListMatches_SidesAndAdminFilter(t *testing.T) {
	db := newTestDB(t, &domain.Match{})
	ctx := context.Background()

	seedMatch(t, db, "w1", "e1", "o1")
	seedMatch(t, db, "w1", "e2", "o2")
	seedMatch(t, db, "w2", "e1", "o3")

	byWorker, err := ListMatchesByWorker(ctx, db, "w1")
	if err != nil || len(byWorker) != 2 {
		t.Fatalf("worker side: %d matches (err=%v)", len(byWorker), err)
	}
	byEmployer, err := ListMatchesByEmployer(ctx, db, "e1")
	if err != nil || len(byEmployer) != 2 {
		t.Fatalf("employer side: %d matches (err=%v)", len(byEmployer), err)
	}

	if err := UpdateMatchStatus(ctx, db, domain.MatchID("w1", "o1"), domain.MatchAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	accepted, err := ListMatches(ctx, db, domain.MatchAccepted, 0, 10)
	if err != nil || len(accepted) != 1 {
		t.Fatalf("status filter: %d matches (err=%v)", len(accepted), err)
	}
	all, err := ListMatches(ctx, db, "", 0, 10)
	if err != nil || len(all) != 3 {
		t.Fatalf("unfiltered: %d matches (err=%v)", len(all), err)
	}

	total, err := CountMatches(ctx, db, domain.MatchPending)
	if err != nil || total != 2 {
		t.Fatalf("CountMatches(pending) = %d (err=%v)", total, err)
	}
	n, err := CountMatchesForUser(ctx, db, "worker_id", "w1")
	if err != nil || n != 2 {
		t.Fatalf("CountMatchesForUser = %d (err=%v)", n, err)
	}
}

func TestCreateMatch_SnapshotTimestamps(t *testing.T) {
	db := newTestDB(t, &domain.Match{})

	before := time.Now().UTC().Add(-time.Second)
	m := seedMatch(t, db, "w1", "e1", "o1")
	if m.CreatedAt.Before(before) || m.UpdatedAt.Before(before) {
		t.Fatalf("timestamps not set on insert: %+v", m)
	}
	if m.Rubro != "gastronomia" || m.Puesto != "Cocinero" {
		t.Fatalf("category snapshot not persisted: %+v", m)
	}
}
