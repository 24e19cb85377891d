// Package services – AdminService
//
// This file implements the superuser back-office: platform stats, user
// administration (role changes, disable, soft/hard delete), and global
// listings of job offers and matches.
//
// Hard-deleting a user removes the user row, its profile, and (for
// employers) its job offers in one transaction. Match rows referencing the
// deleted account are intentionally not part of that batch: they keep their
// snapshot and remain queryable with a dangling counterpart, which the
// enrichment layer renders as an omitted field.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/repo"
)

// AdminService implements the superuser-only use-cases.
type AdminService struct {
	DB *gorm.DB
}

// NewAdminService constructs an AdminService.
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// RequireSuperuser loads uid and verifies it is an enabled superuser.
func (s *AdminService) RequireSuperuser(ctx context.Context, uid string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuperuserRequired
		}
		return nil, err
	}
	if u.Role != domain.RoleSuperuser {
		return nil, ErrSuperuserRequired
	}
	return u, nil
}

// Stats is the dashboard aggregate.
type Stats struct {
	TotalUsers        int64            `json:"totalUsers"`
	UsersByRole       map[string]int64 `json:"usersByRole"`
	TotalMatches      int64            `json:"totalMatches"`
	MatchesByStatus   map[string]int64 `json:"matchesByStatus"`
	TotalJobOffers    int64            `json:"totalJobOffers"`
	ActiveJobOffers   int64            `json:"activeJobOffers"`
	InactiveJobOffers int64            `json:"inactiveJobOffers"`
}

// GetStats aggregates platform-wide counts for the dashboard.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	roles, err := repo.UserRoleCounts(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	statuses, err := repo.MatchStatusCounts(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	active, inactive, err := repo.OfferActivityCounts(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		UsersByRole:       roles,
		MatchesByStatus:   statuses,
		ActiveJobOffers:   active,
		InactiveJobOffers: inactive,
		TotalJobOffers:    active + inactive,
	}
	for _, n := range roles {
		st.TotalUsers += n
	}
	for _, n := range statuses {
		st.TotalMatches += n
	}
	return st, nil
}

// AdminUser is a user row enriched with its profile and, for employers,
// its job offers.
type AdminUser struct {
	domain.User
	Profile   any               `json:"profile,omitempty"`
	JobOffers []domain.JobOffer `json:"jobOffers,omitempty"`
}

// ListUsers returns a page of users, optionally filtered by role, each
// enriched with profile data.
func (s *AdminService) ListUsers(ctx context.Context, role string, offset, limit int) ([]AdminUser, int64, error) {
	total, err := repo.CountUsers(ctx, s.DB, role)
	if err != nil {
		return nil, 0, err
	}
	users, err := repo.ListUsers(ctx, s.DB, role, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]AdminUser, 0, len(users))
	for _, u := range users {
		au := AdminUser{User: u}
		switch u.Role {
		case domain.RoleWorker:
			if p := optional(repo.GetWorkerProfile(ctx, s.DB, u.ID)); p != nil {
				au.Profile = p
			}
		case domain.RoleEmployer:
			if p := optional(repo.GetEmployerProfile(ctx, s.DB, u.ID)); p != nil {
				au.Profile = p
			}
			if offers, err := repo.ListOffersByEmployer(ctx, s.DB, u.ID); err == nil && len(offers) > 0 {
				au.JobOffers = offers
			}
		}
		out = append(out, au)
	}
	return out, total, nil
}

// UserStats counts a user's footprint for the detail view.
type UserStats struct {
	Matches   int64 `json:"matches"`
	JobOffers int64 `json:"jobOffers"`
	Chats     int64 `json:"chats"`
}

// UserDetail is the admin user detail aggregate.
type UserDetail struct {
	User    *domain.User `json:"user"`
	Profile any          `json:"profile"`
	Stats   UserStats    `json:"stats"`
}

// GetUser returns one user with profile and usage stats.
func (s *AdminService) GetUser(ctx context.Context, uid string) (*UserDetail, error) {
	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	d := &UserDetail{User: u}
	switch u.Role {
	case domain.RoleWorker:
		if p := optional(repo.GetWorkerProfile(ctx, s.DB, uid)); p != nil {
			d.Profile = p
		}
		if d.Stats.Matches, err = repo.CountMatchesForUser(ctx, s.DB, "worker_id", uid); err != nil {
			return nil, err
		}
		if d.Stats.Chats, err = repo.CountChatsForUser(ctx, s.DB, "worker_id", uid); err != nil {
			return nil, err
		}
	case domain.RoleEmployer:
		if p := optional(repo.GetEmployerProfile(ctx, s.DB, uid)); p != nil {
			d.Profile = p
		}
		if d.Stats.Matches, err = repo.CountMatchesForUser(ctx, s.DB, "employer_id", uid); err != nil {
			return nil, err
		}
		if d.Stats.Chats, err = repo.CountChatsForUser(ctx, s.DB, "employer_id", uid); err != nil {
			return nil, err
		}
		if d.Stats.JobOffers, err = repo.CountJobOffers(ctx, s.DB, nil, uid); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// UpdateUser patches a user's role and/or disabled flag.
func (s *AdminService) UpdateUser(ctx context.Context, uid string, role *string, disabled *bool) (*domain.User, error) {
	if _, err := repo.GetUser(ctx, s.DB, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	fields := map[string]any{}
	if role != nil {
		switch *role {
		case domain.RoleWorker, domain.RoleEmployer, domain.RoleSuperuser:
			fields["role"] = *role
		default:
			return nil, ErrInvalidRole
		}
	}
	if disabled != nil {
		fields["disabled"] = *disabled
	}
	if err := repo.UpdateUserFields(ctx, s.DB, uid, fields); err != nil {
		return nil, err
	}
	return repo.GetUser(ctx, s.DB, uid)
}

// DeleteUser removes or disables an account. Superusers are never
// deletable. With hard=false the account is soft-deleted (disabled plus a
// deletedAt stamp). With hard=true the user row, its profile, and its job
// offers are removed in one transaction; match rows are not cascaded.
func (s *AdminService) DeleteUser(ctx context.Context, uid string, hard bool) error {
	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Role == domain.RoleSuperuser {
		return ErrSuperuserImmutable
	}

	if !hard {
		now := time.Now().UTC()
		return repo.UpdateUserFields(ctx, s.DB, uid, map[string]any{
			"disabled":   true,
			"deleted_at": now,
		})
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch u.Role {
		case domain.RoleWorker:
			if err := repo.DeleteWorkerProfile(ctx, tx, uid); err != nil {
				return err
			}
		case domain.RoleEmployer:
			if err := repo.DeleteEmployerProfile(ctx, tx, uid); err != nil {
				return err
			}
			if err := repo.DeleteOffersByEmployer(ctx, tx, uid); err != nil {
				return err
			}
		}
		return repo.DeleteUser(ctx, tx, uid)
	})
}

// AdminOffer is an offer enriched with its employer profile.
type AdminOffer struct {
	domain.JobOffer
	Employer *domain.EmployerProfile `json:"employer,omitempty"`
}

// ListOffers returns a page of offers with optional filters, each enriched
// with the owning employer's profile.
func (s *AdminService) ListOffers(ctx context.Context, active *bool, employerID string, offset, limit int) ([]AdminOffer, int64, error) {
	total, err := repo.CountJobOffers(ctx, s.DB, active, employerID)
	if err != nil {
		return nil, 0, err
	}
	offers, err := repo.ListJobOffers(ctx, s.DB, active, employerID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]AdminOffer, 0, len(offers))
	for _, o := range offers {
		out = append(out, AdminOffer{
			JobOffer: o,
			Employer: optional(repo.GetEmployerProfile(ctx, s.DB, o.EmployerID)),
		})
	}
	return out, total, nil
}

// AdminMatch is a match enriched with both sides for the back-office view.
type AdminMatch struct {
	domain.Match
	Worker   *domain.WorkerProfile   `json:"worker,omitempty"`
	Employer *domain.EmployerProfile `json:"employer,omitempty"`
}

// ListMatches returns a page of matches with an optional status filter,
// enriched with both participant profiles.
func (s *AdminService) ListMatches(ctx context.Context, status string, offset, limit int) ([]AdminMatch, int64, error) {
	total, err := repo.CountMatches(ctx, s.DB, status)
	if err != nil {
		return nil, 0, err
	}
	matches, err := repo.ListMatches(ctx, s.DB, status, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]AdminMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, AdminMatch{
			Match:    m,
			Worker:   optional(repo.GetWorkerProfile(ctx, s.DB, m.WorkerID)),
			Employer: optional(repo.GetEmployerProfile(ctx, s.DB, m.EmployerID)),
		})
	}
	return out, total, nil
}
