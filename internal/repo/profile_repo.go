// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for worker and
// employer profiles.
//
// Profiles follow upsert semantics: every submission overwrites the whole
// row keyed by the owning user id. Deactivating a worker only flips the
// Active flag; the row persists so existing matches keep resolving.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Lucho2590/LaburoYA/internal/domain"
)

// UpsertWorkerProfile saves a worker profile wholesale. CreatedAt is only
// set on first insert; every call refreshes UpdatedAt.
func UpsertWorkerProfile(ctx context.Context, db *gorm.DB, p *domain.WorkerProfile) error {
	now := time.Now().UTC()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"rubro", "puesto", "zona", "video_url", "description",
				"experience", "active", "updated_at",
			}),
		}).
		Create(p).Error
}

// GetWorkerProfile fetches a worker profile by owner uid.
func GetWorkerProfile(ctx context.Context, db *gorm.DB, uid string) (*domain.WorkerProfile, error) {
	var p domain.WorkerProfile
	if err := db.WithContext(ctx).Where("user_id = ?", uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SetWorkerActive toggles a worker profile's visibility. Returns ErrNotFound
// when the worker has no profile yet.
func SetWorkerActive(ctx context.Context, db *gorm.DB, uid string, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.WorkerProfile{}).
		Where("user_id = ?", uid).
		Updates(map[string]any{"active": active, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActiveWorkersByCategory returns every active worker profile whose
// rubro and puesto equal the given pair exactly. No normalization is applied
// to either field.
func ListActiveWorkersByCategory(ctx context.Context, db *gorm.DB, rubro, puesto string) ([]domain.WorkerProfile, error) {
	var out []domain.WorkerProfile
	err := db.WithContext(ctx).
		Where("rubro = ? AND puesto = ? AND active = ?", rubro, puesto, true).
		Find(&out).Error
	return out, err
}

// DeleteWorkerProfile removes a worker profile row. Missing rows are not an
// error so admin cascades stay idempotent.
func DeleteWorkerProfile(ctx context.Context, db *gorm.DB, uid string) error {
	return db.WithContext(ctx).Where("user_id = ?", uid).Delete(&domain.WorkerProfile{}).Error
}

// UpsertEmployerProfile saves an employer profile wholesale, mirroring
// UpsertWorkerProfile.
func UpsertEmployerProfile(ctx context.Context, db *gorm.DB, p *domain.EmployerProfile) error {
	now := time.Now().UTC()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"business_name", "rubro", "description", "address", "phone",
				"active", "updated_at",
			}),
		}).
		Create(p).Error
}

// GetEmployerProfile fetches an employer profile by owner uid.
func GetEmployerProfile(ctx context.Context, db *gorm.DB, uid string) (*domain.EmployerProfile, error) {
	var p domain.EmployerProfile
	if err := db.WithContext(ctx).Where("user_id = ?", uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteEmployerProfile removes an employer profile row.
func DeleteEmployerProfile(ctx context.Context, db *gorm.DB, uid string) error {
	return db.WithContext(ctx).Where("user_id = ?", uid).Delete(&domain.EmployerProfile{}).Error
}
