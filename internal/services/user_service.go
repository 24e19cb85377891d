// Package services – UserService
//
// This file implements account registration and the /me aggregate. A user
// row only pins the uid from the identity provider to a marketplace role;
// everything else lives in the profile documents.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/repo"
)

// UserService owns user rows and role assignment.
type UserService struct {
	DB *gorm.DB
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates or updates uid's account with the given role.
func (s *UserService) Register(ctx context.Context, uid, role string) (*domain.User, error) {
	switch role {
	case domain.RoleWorker, domain.RoleEmployer, domain.RoleSuperuser:
	default:
		return nil, ErrInvalidRole
	}
	return repo.UpsertUser(ctx, s.DB, uid, role)
}

// Me is the aggregate returned by the /me endpoint: the account plus the
// profile matching its effective role, when one exists.
type Me struct {
	User    *domain.User `json:"user"`
	Profile any          `json:"profile"`
}

// Get returns uid's account and, best-effort, the profile for its effective
// role. A missing profile is not an error.
func (s *UserService) Get(ctx context.Context, uid string) (*Me, error) {
	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	me := &Me{User: u}
	switch u.EffectiveRole() {
	case domain.RoleWorker:
		if p := optional(repo.GetWorkerProfile(ctx, s.DB, uid)); p != nil {
			me.Profile = p
		}
	case domain.RoleEmployer:
		if p := optional(repo.GetEmployerProfile(ctx, s.DB, uid)); p != nil {
			me.Profile = p
		}
	}
	return me, nil
}

// SetSecondaryRole stores the worker/employer persona a superuser acts
// through. Only superusers may hold one.
func (s *UserService) SetSecondaryRole(ctx context.Context, uid, secondary string) error {
	if secondary != domain.RoleWorker && secondary != domain.RoleEmployer {
		return ErrInvalidSecondaryRole
	}

	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSuperuserRequired
		}
		return err
	}
	if u.Role != domain.RoleSuperuser {
		return ErrSuperuserRequired
	}

	return repo.UpdateUserFields(ctx, s.DB, uid, map[string]any{"secondary_role": secondary})
}
