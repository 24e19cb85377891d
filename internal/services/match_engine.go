// Package services – MatchEngine
//
// This file implements the rule engine that keeps the marketplace invariant:
// every (active worker profile, active job offer) pair sharing an identical
// (rubro, puesto) has exactly one match. The engine runs synchronously inside
// the publish request for worker profiles and job offers.
//
// Duplicate prevention is not advisory: match ids are derived from the
// (worker, offer) pair, so a concurrent publish racing on the same pair
// collides on the primary key, and the loser's insert degrades into a no-op.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// EngineStore defines the persistence contract required by MatchEngine.
// Implementations are responsible for category queries and conditional
// match inserts.
type EngineStore interface {
	// ListActiveOffersByCategory returns active offers with the exact
	// (rubro, puesto) pair.
	ListActiveOffersByCategory(ctx context.Context, db *gorm.DB, rubro, puesto string) ([]domain.JobOffer, error)

	// ListActiveWorkersByCategory returns active worker profiles with the
	// exact (rubro, puesto) pair.
	ListActiveWorkersByCategory(ctx context.Context, db *gorm.DB, rubro, puesto string) ([]domain.WorkerProfile, error)

	// CreateMatch conditionally inserts a match, returning repo.ErrDuplicate
	// (matched by IsDuplicate) when the pair already exists.
	CreateMatch(ctx context.Context, db *gorm.DB, m *domain.Match) error
}

// MatchEngine computes missing matches whenever a worker profile or a job
// offer is published. It holds the duplicate classifier as a field so fakes
// without the repo sentinel can plug in their own predicate.
type MatchEngine struct {
	// DB is the GORM handle passed through to the store.
	DB *gorm.DB
	// Store is the persistence port used by this engine.
	Store EngineStore
	// IsDuplicate classifies CreateMatch errors; duplicates are skipped
	// silently instead of aborting the run.
	IsDuplicate func(error) bool
}

// NewMatchEngine constructs a MatchEngine over the given store.
func NewMatchEngine(db *gorm.DB, store EngineStore, isDuplicate func(error) bool) *MatchEngine {
	if isDuplicate == nil {
		isDuplicate = func(error) bool { return false }
	}
	return &MatchEngine{DB: db, Store: store, IsDuplicate: isDuplicate}
}

// OnWorkerProfilePublished creates the missing matches for a worker profile
// that was just saved. It queries active offers with the same (rubro,
// puesto), inserts a pending match per unmatched offer, and returns the
// newly created matches in iteration order.
//
// The batch is not atomic: a store failure aborts the remainder of the run,
// but matches created before the failure stay committed and are returned
// alongside the error.
func (e *MatchEngine) OnWorkerProfilePublished(ctx context.Context, workerID string, profile *domain.WorkerProfile) ([]domain.Match, error) {
	tr := otel.Tracer("services/MatchEngine")
	ctx, span := tr.Start(ctx, "OnWorkerProfilePublished",
		trace.WithAttributes(
			attribute.String("worker.id", workerID),
			attribute.String("rubro", profile.Rubro),
			attribute.String("puesto", profile.Puesto),
		),
	)
	defer span.End()

	offers, err := e.Store.ListActiveOffersByCategory(ctx, e.DB, profile.Rubro, profile.Puesto)
	if err != nil {
		return nil, err
	}

	created := make([]domain.Match, 0, len(offers))
	for _, offer := range offers {
		m := domain.Match{
			WorkerID:   workerID,
			EmployerID: offer.EmployerID,
			OfferID:    offer.ID,
			Rubro:      profile.Rubro,
			Puesto:     profile.Puesto,
			Status:     domain.MatchPending,
		}
		if err := e.Store.CreateMatch(ctx, e.DB, &m); err != nil {
			if e.IsDuplicate(err) {
				continue
			}
			span.SetAttributes(attribute.Int("matches.created", len(created)))
			return created, err
		}
		created = append(created, m)
	}

	span.SetAttributes(attribute.Int("matches.created", len(created)))
	matchesCreated.Add(float64(len(created)))
	return created, nil
}

// OnJobOfferPublished is the symmetric path run when an employer publishes
// an offer: it iterates active worker profiles with the same (rubro, puesto)
// and creates the missing matches. Same partial-failure contract as the
// worker path.
func (e *MatchEngine) OnJobOfferPublished(ctx context.Context, offerID string, offer *domain.JobOffer) ([]domain.Match, error) {
	tr := otel.Tracer("services/MatchEngine")
	ctx, span := tr.Start(ctx, "OnJobOfferPublished",
		trace.WithAttributes(
			attribute.String("offer.id", offerID),
			attribute.String("rubro", offer.Rubro),
			attribute.String("puesto", offer.Puesto),
		),
	)
	defer span.End()

	workers, err := e.Store.ListActiveWorkersByCategory(ctx, e.DB, offer.Rubro, offer.Puesto)
	if err != nil {
		return nil, err
	}

	created := make([]domain.Match, 0, len(workers))
	for _, w := range workers {
		m := domain.Match{
			WorkerID:   w.UserID,
			EmployerID: offer.EmployerID,
			OfferID:    offerID,
			Rubro:      offer.Rubro,
			Puesto:     offer.Puesto,
			Status:     domain.MatchPending,
		}
		if err := e.Store.CreateMatch(ctx, e.DB, &m); err != nil {
			if e.IsDuplicate(err) {
				continue
			}
			span.SetAttributes(attribute.Int("matches.created", len(created)))
			return created, err
		}
		created = append(created, m)
	}

	span.SetAttributes(attribute.Int("matches.created", len(created)))
	matchesCreated.Add(float64(len(created)))
	return created, nil
}
