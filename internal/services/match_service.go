// Package services – MatchService
//
// This file implements the match lifecycle: authorization-gated status
// transitions and the per-user match listing enriched with counterpart
// data. Service-level errors (ErrMatchNotFound, ErrNotParticipant,
// ErrInvalidStatus) are returned for predictable cases so handlers can map
// them to HTTP results consistently.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MatchStore defines the persistence contract required by MatchService.
type MatchStore interface {
	// GetMatch fetches a match by id.
	GetMatch(ctx context.Context, db *gorm.DB, id string) (*domain.Match, error)

	// UpdateMatchStatus overwrites a match's status.
	UpdateMatchStatus(ctx context.Context, db *gorm.DB, id, status string) error

	// ListMatchesByWorker returns a worker's matches, newest first.
	ListMatchesByWorker(ctx context.Context, db *gorm.DB, workerID string) ([]domain.Match, error)

	// ListMatchesByEmployer returns an employer's matches, newest first.
	ListMatchesByEmployer(ctx context.Context, db *gorm.DB, employerID string) ([]domain.Match, error)

	// GetWorkerProfile / GetEmployerProfile / GetJobOffer back the
	// best-effort enrichment of match listings.
	GetWorkerProfile(ctx context.Context, db *gorm.DB, uid string) (*domain.WorkerProfile, error)
	GetEmployerProfile(ctx context.Context, db *gorm.DB, uid string) (*domain.EmployerProfile, error)
	GetJobOffer(ctx context.Context, db *gorm.DB, id string) (*domain.JobOffer, error)
}

// MatchService exposes the status state machine and enriched listings over
// Match records. Both participants hold symmetric rights: either side may
// accept or reject.
type MatchService struct {
	DB    *gorm.DB
	Store MatchStore
}

// NewMatchService constructs a MatchService over the given store.
func NewMatchService(db *gorm.DB, store MatchStore) *MatchService {
	return &MatchService{DB: db, Store: store}
}

// StatusResult is the payload returned by SetStatus.
type StatusResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// EnrichedMatch is a match joined with its counterpart documents for list
// views. Enrichment is best-effort: a missing counterpart leaves the field
// nil and is never an error.
type EnrichedMatch struct {
	domain.Match
	Worker   *domain.WorkerProfile   `json:"worker,omitempty"`
	Employer *domain.EmployerProfile `json:"employer,omitempty"`
	JobOffer *domain.JobOffer        `json:"jobOffer,omitempty"`
}

// SetStatus transitions a match to accepted or rejected on behalf of uid.
//
// Preconditions: status must be accepted/rejected, the match must exist,
// and uid must be one of the two participants. The current status is
// deliberately not checked: re-accepting a rejected match is allowed and
// simply overwrites the field. That permissiveness is part of the observed
// contract and is locked in by tests; tightening it is a product decision.
func (s *MatchService) SetStatus(ctx context.Context, matchID, uid, status string) (*StatusResult, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "SetStatus",
		trace.WithAttributes(
			attribute.String("match.id", matchID),
			attribute.String("user.id", uid),
			attribute.String("status", status),
		),
	)
	defer span.End()

	if status != domain.MatchAccepted && status != domain.MatchRejected {
		return nil, ErrInvalidStatus
	}

	m, err := s.Store.GetMatch(ctx, s.DB, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if !m.IsParticipant(uid) {
		return nil, ErrNotParticipant
	}

	if err := s.Store.UpdateMatchStatus(ctx, s.DB, matchID, status); err != nil {
		return nil, err
	}
	return &StatusResult{ID: matchID, Status: status}, nil
}

// ListForUser returns uid's matches for the given role, newest first, each
// enriched with the counterpart documents: workers see the employer profile
// and the referenced offer, employers see the worker profile.
func (s *MatchService) ListForUser(ctx context.Context, uid, role string) ([]EnrichedMatch, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "ListForUser",
		trace.WithAttributes(
			attribute.String("user.id", uid),
			attribute.String("role", role),
		),
	)
	defer span.End()

	var (
		matches []domain.Match
		err     error
	)
	if role == domain.RoleWorker {
		matches, err = s.Store.ListMatchesByWorker(ctx, s.DB, uid)
	} else {
		matches, err = s.Store.ListMatchesByEmployer(ctx, s.DB, uid)
	}
	if err != nil {
		return nil, err
	}

	out := make([]EnrichedMatch, 0, len(matches))
	for _, m := range matches {
		em := EnrichedMatch{Match: m}
		if role == domain.RoleWorker {
			em.Employer = optional(s.Store.GetEmployerProfile(ctx, s.DB, m.EmployerID))
			em.JobOffer = optional(s.Store.GetJobOffer(ctx, s.DB, m.OfferID))
		} else {
			em.Worker = optional(s.Store.GetWorkerProfile(ctx, s.DB, m.WorkerID))
		}
		out = append(out, em)
	}
	return out, nil
}

// optional converts a lookup result into an optional value: any error
// (missing row included) yields nil. It makes the "missing counterpart is
// not an error" enrichment policy explicit.
func optional[T any](v *T, err error) *T {
	if err != nil {
		return nil
	}
	return v
}
