// Package services – OfferService
//
// This file implements job offer publishing and maintenance. Publishing an
// offer is the second trigger that feeds the match engine. Later edits go
// through a restricted patch (they do not re-run the engine, and existing
// matches keep their snapshotted rubro/puesto), and deletion is a hard
// delete that leaves matches in place.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/repo"
)

// OfferService owns job offer documents.
type OfferService struct {
	DB     *gorm.DB
	Engine *MatchEngine
}

// NewOfferService constructs an OfferService wired to the match engine.
func NewOfferService(db *gorm.DB, engine *MatchEngine) *OfferService {
	return &OfferService{DB: db, Engine: engine}
}

// OfferInput carries the client-supplied fields of an offer publish action.
type OfferInput struct {
	Rubro        string `json:"rubro" binding:"required"`
	Puesto       string `json:"puesto" binding:"required"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Salary       string `json:"salary"`
	Schedule     string `json:"schedule"`
}

// Publish creates a new active offer owned by uid and synchronously runs
// the match engine over active worker profiles. The caller must be an
// employer, or a superuser acting through an employer secondary role.
func (s *OfferService) Publish(ctx context.Context, uid string, in OfferInput) (*domain.JobOffer, []domain.Match, error) {
	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEmployerRoleRequired
		}
		return nil, nil, err
	}
	if !u.IsEmployer() {
		return nil, nil, ErrEmployerRoleRequired
	}

	o := &domain.JobOffer{
		EmployerID:   uid,
		Rubro:        in.Rubro,
		Puesto:       in.Puesto,
		Description:  in.Description,
		Requirements: in.Requirements,
		Salary:       in.Salary,
		Schedule:     in.Schedule,
		Active:       true,
	}
	if err := repo.CreateJobOffer(ctx, s.DB, o); err != nil {
		return nil, nil, err
	}

	matches, err := s.Engine.OnJobOfferPublished(ctx, o.ID, o)
	if err != nil {
		return o, matches, err
	}
	return o, matches, nil
}

// ListMine returns every offer owned by uid, newest first.
func (s *OfferService) ListMine(ctx context.Context, uid string) ([]domain.JobOffer, error) {
	return repo.ListOffersByEmployer(ctx, s.DB, uid)
}

// patchableOfferFields is the restricted subset an employer may PATCH.
var patchableOfferFields = map[string]struct{}{
	"rubro":        {},
	"puesto":       {},
	"description":  {},
	"requirements": {},
	"salary":       {},
	"schedule":     {},
	"active":       {},
}

// Patch applies the allowed subset of updates to an offer owned by uid.
// Unknown fields are dropped silently. Returns the filtered update map that
// was applied.
func (s *OfferService) Patch(ctx context.Context, uid, offerID string, updates map[string]any) (map[string]any, error) {
	o, err := repo.GetJobOffer(ctx, s.DB, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	if o.EmployerID != uid {
		return nil, ErrNotOfferOwner
	}

	filtered := make(map[string]any, len(updates))
	for k, v := range updates {
		if _, ok := patchableOfferFields[k]; ok {
			filtered[k] = v
		}
	}
	if err := repo.UpdateJobOfferFields(ctx, s.DB, offerID, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// Delete hard-deletes an offer owned by uid. Matches that reference the
// offer are intentionally left in place; they keep their snapshot and stay
// queryable.
func (s *OfferService) Delete(ctx context.Context, uid, offerID string) error {
	o, err := repo.GetJobOffer(ctx, s.DB, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOfferNotFound
		}
		return err
	}
	if o.EmployerID != uid {
		return ErrNotOfferOwner
	}
	return repo.DeleteJobOffer(ctx, s.DB, offerID)
}
