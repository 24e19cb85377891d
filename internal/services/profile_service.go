// Package services – ProfileService
//
// This file implements worker and employer profile management. Worker
// profile submissions are the first of the two triggers that feed the match
// engine; employer profiles are plain documents with no matching side
// effect. Both follow wholesale upsert semantics.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/repo"
)

// ProfileService owns worker and employer profile documents.
type ProfileService struct {
	DB     *gorm.DB
	Engine *MatchEngine
}

// NewProfileService constructs a ProfileService wired to the match engine.
func NewProfileService(db *gorm.DB, engine *MatchEngine) *ProfileService {
	return &ProfileService{DB: db, Engine: engine}
}

// WorkerProfileInput carries the client-supplied fields of a worker profile
// submission. Rubro and Puesto are validated at the handler boundary.
type WorkerProfileInput struct {
	Rubro       string `json:"rubro" binding:"required"`
	Puesto      string `json:"puesto" binding:"required"`
	Zona        string `json:"zona"`
	VideoURL    string `json:"videoUrl"`
	Description string `json:"description"`
	Experience  string `json:"experience"`
}

// PublishResult pairs the saved document with the matches the engine
// created for it during the same request.
type PublishResult struct {
	Created    bool
	NewMatches []domain.Match
}

// SaveWorkerProfile upserts uid's worker profile (active, wholesale
// overwrite) and synchronously runs the match engine over active offers.
// The caller must be registered as a worker. Matches created before an
// engine failure stay committed; the error still propagates.
func (s *ProfileService) SaveWorkerProfile(ctx context.Context, uid string, in WorkerProfileInput) (*domain.WorkerProfile, *PublishResult, error) {
	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrWorkerRoleRequired
		}
		return nil, nil, err
	}
	if !u.IsWorker() {
		return nil, nil, ErrWorkerRoleRequired
	}

	created := false
	if _, err := repo.GetWorkerProfile(ctx, s.DB, uid); errors.Is(err, gorm.ErrRecordNotFound) {
		created = true
	}

	p := &domain.WorkerProfile{
		UserID:      uid,
		Rubro:       in.Rubro,
		Puesto:      in.Puesto,
		Zona:        in.Zona,
		VideoURL:    in.VideoURL,
		Description: in.Description,
		Experience:  in.Experience,
		Active:      true,
	}
	if err := repo.UpsertWorkerProfile(ctx, s.DB, p); err != nil {
		return nil, nil, err
	}

	matches, err := s.Engine.OnWorkerProfilePublished(ctx, uid, p)
	if err != nil {
		return p, &PublishResult{Created: created, NewMatches: matches}, err
	}
	return p, &PublishResult{Created: created, NewMatches: matches}, nil
}

// GetWorkerProfile returns uid's worker profile.
func (s *ProfileService) GetWorkerProfile(ctx context.Context, uid string) (*domain.WorkerProfile, error) {
	p, err := repo.GetWorkerProfile(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// SetWorkerActive toggles uid's profile visibility. The document persists
// either way; deactivation only hides the worker from future engine runs.
func (s *ProfileService) SetWorkerActive(ctx context.Context, uid string, active bool) error {
	if err := repo.SetWorkerActive(ctx, s.DB, uid, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}

// EmployerProfileInput carries the client-supplied fields of an employer
// profile submission.
type EmployerProfileInput struct {
	BusinessName string `json:"businessName" binding:"required"`
	Rubro        string `json:"rubro" binding:"required"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
}

// SaveEmployerProfile upserts uid's employer profile. The caller must be an
// employer, or a superuser acting through an employer secondary role.
func (s *ProfileService) SaveEmployerProfile(ctx context.Context, uid string, in EmployerProfileInput) (*domain.EmployerProfile, bool, error) {
	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrEmployerRoleRequired
		}
		return nil, false, err
	}
	if !u.IsEmployer() {
		return nil, false, ErrEmployerRoleRequired
	}

	created := false
	if _, err := repo.GetEmployerProfile(ctx, s.DB, uid); errors.Is(err, gorm.ErrRecordNotFound) {
		created = true
	}

	p := &domain.EmployerProfile{
		UserID:       uid,
		BusinessName: in.BusinessName,
		Rubro:        in.Rubro,
		Description:  in.Description,
		Address:      in.Address,
		Phone:        in.Phone,
		Active:       true,
	}
	if err := repo.UpsertEmployerProfile(ctx, s.DB, p); err != nil {
		return nil, false, err
	}
	return p, created, nil
}

// GetEmployerProfile returns uid's employer profile.
func (s *ProfileService) GetEmployerProfile(ctx context.Context, uid string) (*domain.EmployerProfile, error) {
	p, err := repo.GetEmployerProfile(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}
