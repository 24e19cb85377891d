package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
)

// fakeEngineStore records CreateMatch calls and serves canned category
// listings, so engine behavior is testable without a database.
type fakeEngineStore struct {
	offers  []domain.JobOffer
	workers []domain.WorkerProfile

	created   []domain.Match
	createErr map[string]error // keyed by offer id or worker id
}

func (f *fakeEngineStore) ListActiveOffersByCategory(ctx context.Context, db *gorm.DB, rubro, puesto string) ([]domain.JobOffer, error) {
	var out []domain.JobOffer
	for _, o := range f.offers {
		if o.Rubro == rubro && o.Puesto == puesto && o.Active {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeEngineStore) ListActiveWorkersByCategory(ctx context.Context, db *gorm.DB, rubro, puesto string) ([]domain.WorkerProfile, error) {
	var out []domain.WorkerProfile
	for _, w := range f.workers {
		if w.Rubro == rubro && w.Puesto == puesto && w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeEngineStore) CreateMatch(ctx context.Context, db *gorm.DB, m *domain.Match) error {
	if err := f.createErr[m.OfferID]; err != nil {
		return err
	}
	if err := f.createErr[m.WorkerID]; err != nil {
		return err
	}
	f.created = append(f.created, *m)
	return nil
}

var errFakeDup = errors.New("pair already matched")

func isFakeDup(err error) bool { return errors.Is(err, errFakeDup) }

func TestMatchEngine_OnWorkerProfilePublished(t *testing.T) {
	store := &fakeEngineStore{
		offers: []domain.JobOffer{
			{ID: "o1", EmployerID: "e1", Rubro: "gastronomia", Puesto: "Cocinero", Active: true},
			{ID: "o2", EmployerID: "e2", Rubro: "gastronomia", Puesto: "Cocinero", Active: true},
			{ID: "o3", EmployerID: "e3", Rubro: "gastronomia", Puesto: "Mozo", Active: true},
			{ID: "o4", EmployerID: "e4", Rubro: "gastronomia", Puesto: "Cocinero", Active: false},
		},
	}
	eng := NewMatchEngine(nil, store, isFakeDup)

	profile := &domain.WorkerProfile{UserID: "w1", Rubro: "gastronomia", Puesto: "Cocinero", Active: true}
	created, err := eng.OnWorkerProfilePublished(context.Background(), "w1", profile)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d matches, want 2: %+v", len(created), created)
	}
	for _, m := range created {
		if m.WorkerID != "w1" || m.Status != domain.MatchPending {
			t.Fatalf("bad match: %+v", m)
		}
		if m.Rubro != "gastronomia" || m.Puesto != "Cocinero" {
			t.Fatalf("category snapshot missing: %+v", m)
		}
	}
	if created[0].OfferID != "o1" || created[1].OfferID != "o2" {
		t.Fatalf("matches out of listing order: %+v", created)
	}
}

func TestMatchEngine_DuplicatesSkipped(t *testing.T) {
	store := &fakeEngineStore{
		offers: []domain.JobOffer{
			{ID: "o1", EmployerID: "e1", Rubro: "gastronomia", Puesto: "Cocinero", Active: true},
			{ID: "o2", EmployerID: "e2", Rubro: "gastronomia", Puesto: "Cocinero", Active: true},
		},
		createErr: map[string]error{"o1": errFakeDup},
	}
	eng := NewMatchEngine(nil, store, isFakeDup)

	profile := &domain.WorkerProfile{UserID: "w1", Rubro: "gastronomia", Puesto: "Cocinero", Active: true}
	created, err := eng.OnWorkerProfilePublished(context.Background(), "w1", profile)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(created) != 1 || created[0].OfferID != "o2" {
		t.Fatalf("duplicate should be skipped silently: %+v", created)
	}
}

func TestMatchEngine_PartialFailure(t *testing.T) {
	boom := errors.New("disk full")
	store := &fakeEngineStore{
		offers: []domain.JobOffer{
			{ID: "o1", EmployerID: "e1", Rubro: "gastronomia", Puesto: "Cocinero", Active: true},
			{ID: "o2", EmployerID: "e2", Rubro: "gastronomia", Puesto: "Cocinero", Active: true},
			{ID: "o3", EmployerID: "e3", Rubro: "gastronomia", Puesto: "Cocinero", Active: true},
		},
		createErr: map[string]error{"o2": boom},
	}
	eng := NewMatchEngine(nil, store, isFakeDup)

	profile := &domain.WorkerProfile{UserID: "w1", Rubro: "gastronomia", Puesto: "Cocinero", Active: true}
	created, err := eng.OnWorkerProfilePublished(context.Background(), "w1", profile)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(created) != 1 || created[0].OfferID != "o1" {
		t.Fatalf("matches created before the failure must be returned: %+v", created)
	}
}

func TestMatchEngine_OnJobOfferPublished(t *testing.T) {
	store := &fakeEngineStore{
		workers: []domain.WorkerProfile{
			{UserID: "w1", Rubro: "gastronomia", Puesto: "Cocinero", Active: true},
			{UserID: "w2", Rubro: "gastronomia", Puesto: "Cocinero", Active: true},
			{UserID: "w3", Rubro: "gastronomia", Puesto: "Cocinero", Active: false},
		},
		createErr: map[string]error{"w2": errFakeDup},
	}
	eng := NewMatchEngine(nil, store, isFakeDup)

	offer := &domain.JobOffer{EmployerID: "e1", Rubro: "gastronomia", Puesto: "Cocinero", Active: true}
	created, err := eng.OnJobOfferPublished(context.Background(), "o9", offer)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d matches, want 1: %+v", len(created), created)
	}
	m := created[0]
	if m.WorkerID != "w1" || m.EmployerID != "e1" || m.OfferID != "o9" {
		t.Fatalf("bad match: %+v", m)
	}
}
