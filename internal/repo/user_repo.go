// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Lucho2590/LaburoYA/internal/domain"
)

// UpsertUser creates the user row for uid with the given role, or switches
// the role on an existing row. Registration is idempotent.
func UpsertUser(ctx context.Context, db *gorm.DB, uid, role string) (*domain.User, error) {
	u := &domain.User{
		ID:        uid,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(u).Error
	if err != nil {
		return nil, err
	}
	// Re-read so the caller sees the merged row, not just the insert payload.
	return GetUser(ctx, db, uid)
}

// GetUser fetches a user by uid, or ErrNotFound if missing.
func GetUser(ctx context.Context, db *gorm.DB, uid string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserFields applies a column map to a user row. Returns ErrNotFound
// when no row matched.
func UpdateUserFields(ctx context.Context, db *gorm.DB, uid string, fields map[string]any) error {
	cols := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		cols[k] = v
	}
	cols["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", uid).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers returns users ordered by creation time descending, optionally
// filtered by role. Pagination is applied at the query level.
func ListUsers(ctx context.Context, db *gorm.DB, role string, offset, limit int) ([]domain.User, error) {
	q := db.WithContext(ctx).Order("created_at desc")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var out []domain.User
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountUsers returns the total number of users, optionally filtered by role.
func CountUsers(ctx context.Context, db *gorm.DB, role string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// DeleteUser hard-deletes the user row. Related rows are the caller's
// responsibility (the admin service batches profile and offer deletes in
// the same transaction).
func DeleteUser(ctx context.Context, db *gorm.DB, uid string) error {
	return db.WithContext(ctx).Where("id = ?", uid).Delete(&domain.User{}).Error
}
