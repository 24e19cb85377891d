// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the JobOffer
// model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
)

// CreateJobOffer inserts a new offer row. The offer ID is a randomly
// generated UUID and both timestamps are set to UTC now.
func CreateJobOffer(ctx context.Context, db *gorm.DB, o *domain.JobOffer) error {
	now := time.Now().UTC()
	o.ID = uuid.NewString()
	o.CreatedAt = now
	o.UpdatedAt = now
	return db.WithContext(ctx).Create(o).Error
}

// GetJobOffer fetches an offer by id, or ErrNotFound if missing.
func GetJobOffer(ctx context.Context, db *gorm.DB, id string) (*domain.JobOffer, error) {
	var o domain.JobOffer
	if err := db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOffersByEmployer returns every offer owned by employerID, most recent
// first.
func ListOffersByEmployer(ctx context.Context, db *gorm.DB, employerID string) ([]domain.JobOffer, error) {
	var out []domain.JobOffer
	err := db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListActiveOffersByCategory returns every active offer whose rubro and
// puesto equal the given pair exactly. No normalization is applied.
func ListActiveOffersByCategory(ctx context.Context, db *gorm.DB, rubro, puesto string) ([]domain.JobOffer, error) {
	var out []domain.JobOffer
	err := db.WithContext(ctx).
		Where("rubro = ? AND puesto = ? AND active = ?", rubro, puesto, true).
		Find(&out).Error
	return out, err
}

// UpdateJobOfferFields applies a pre-filtered column map to an offer row.
// Returns ErrNotFound when no row matched; the caller is responsible for
// restricting the map to patchable fields.
func UpdateJobOfferFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	cols := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		cols[k] = v
	}
	cols["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.JobOffer{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteJobOffer hard-deletes an offer row. Matches referencing the offer
// are left untouched.
func DeleteJobOffer(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.JobOffer{}).Error
}

// DeleteOffersByEmployer removes every offer owned by employerID, used by
// the admin hard-delete cascade.
func DeleteOffersByEmployer(ctx context.Context, db *gorm.DB, employerID string) error {
	return db.WithContext(ctx).Where("employer_id = ?", employerID).Delete(&domain.JobOffer{}).Error
}

// ListJobOffers returns offers ordered by creation time descending with
// optional active and employer filters, for the admin back-office.
func ListJobOffers(ctx context.Context, db *gorm.DB, active *bool, employerID string, offset, limit int) ([]domain.JobOffer, error) {
	q := db.WithContext(ctx).Order("created_at desc")
	if active != nil {
		q = q.Where("active = ?", *active)
	}
	if employerID != "" {
		q = q.Where("employer_id = ?", employerID)
	}
	var out []domain.JobOffer
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountJobOffers mirrors ListJobOffers for pagination metadata.
func CountJobOffers(ctx context.Context, db *gorm.DB, active *bool, employerID string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.JobOffer{})
	if active != nil {
		q = q.Where("active = ?", *active)
	}
	if employerID != "" {
		q = q.Where("employer_id = ?", employerID)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}
