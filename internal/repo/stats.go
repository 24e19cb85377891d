// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate queries behind the admin
// stats dashboard. Each function is context-aware and safe to call from
// services or handlers.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
)

// groupCount is the scan target for GROUP BY counts.
type groupCount struct {
	Key   string
	Total int64
}

// UserRoleCounts returns the number of users per role.
func UserRoleCounts(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	var rows []groupCount
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Select("role AS key, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toMap(rows), nil
}

// MatchStatusCounts returns the number of matches per status.
func MatchStatusCounts(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	var rows []groupCount
	err := db.WithContext(ctx).
		Model(&domain.Match{}).
		Select("status AS key, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toMap(rows), nil
}

// OfferActivityCounts returns (active, inactive) job offer counts.
func OfferActivityCounts(ctx context.Context, db *gorm.DB) (active, inactive int64, err error) {
	if err = db.WithContext(ctx).
		Model(&domain.JobOffer{}).
		Where("active = ?", true).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}
	err = db.WithContext(ctx).
		Model(&domain.JobOffer{}).
		Where("active = ?", false).
		Count(&inactive).Error
	return active, inactive, err
}

func toMap(rows []groupCount) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, r := range rows {
		m[r.Key] = r.Total
	}
	return m
}
