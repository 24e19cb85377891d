// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Match model.
//
// Match rows use a deterministic primary key derived from the
// (workerID, offerID) pair, so duplicate prevention is a property of the
// insert itself rather than a check-then-insert race. CreateMatch surfaces
// the collision as ErrDuplicate and callers treat it as "already matched".
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
)

// CreateMatch conditionally inserts a match for the (worker, offer) pair.
// The id is derived with domain.MatchID; if the pair is already matched the
// insert collides and ErrDuplicate is returned with no side effect.
func CreateMatch(ctx context.Context, db *gorm.DB, m *domain.Match) error {
	now := time.Now().UTC()
	m.ID = domain.MatchID(m.WorkerID, m.OfferID)
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Status == "" {
		m.Status = domain.MatchPending
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetMatch fetches a match by id, or ErrNotFound if missing.
func GetMatch(ctx context.Context, db *gorm.DB, id string) (*domain.Match, error) {
	var m domain.Match
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMatchStatus overwrites the status field and refreshes UpdatedAt.
// There is deliberately no guard on the current status here; the permissive
// transition policy is owned by the service layer.
func UpdateMatchStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMatchesByWorker returns a worker's matches, most recent first.
func ListMatchesByWorker(ctx context.Context, db *gorm.DB, workerID string) ([]domain.Match, error) {
	var out []domain.Match
	err := db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListMatchesByEmployer returns an employer's matches, most recent first.
func ListMatchesByEmployer(ctx context.Context, db *gorm.DB, employerID string) ([]domain.Match, error) {
	var out []domain.Match
	err := db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListMatches returns matches ordered by creation time descending with an
// optional status filter, for the admin back-office.
func ListMatches(ctx context.Context, db *gorm.DB, status string, offset, limit int) ([]domain.Match, error) {
	q := db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Match
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountMatches mirrors ListMatches for pagination metadata.
func CountMatches(ctx context.Context, db *gorm.DB, status string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Match{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// CountMatchesForUser counts matches where uid sits on the given side
// ("worker_id" or "employer_id"), used for admin user detail stats.
func CountMatchesForUser(ctx context.Context, db *gorm.DB, column, uid string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Match{}).
		Where(column+" = ?", uid).
		Count(&total).Error
	return total, err
}
