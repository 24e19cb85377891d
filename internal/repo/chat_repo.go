// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Chat and
// Message models.
//
// A chat is one-to-one with its match (unique index on match_id), which is
// what makes get-or-create idempotent: a racing create collides on the
// index, is reported as ErrDuplicate, and the caller re-reads the winner.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
)

// CreateChat inserts the chat row for a match, copying the two participant
// ids from it. Returns ErrDuplicate when the match already has a chat.
func CreateChat(ctx context.Context, db *gorm.DB, matchID, workerID, employerID string) (*domain.Chat, error) {
	now := time.Now().UTC()
	c := &domain.Chat{
		ID:         uuid.NewString(),
		MatchID:    matchID,
		WorkerID:   workerID,
		EmployerID: employerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return c, nil
}

// GetChat fetches a chat by id, or ErrNotFound if missing.
func GetChat(ctx context.Context, db *gorm.DB, id string) (*domain.Chat, error) {
	var c domain.Chat
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetChatByMatch fetches the chat attached to a match, or ErrNotFound.
func GetChatByMatch(ctx context.Context, db *gorm.DB, matchID string) (*domain.Chat, error) {
	var c domain.Chat
	if err := db.WithContext(ctx).Where("match_id = ?", matchID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListChatsForUser returns the chats where uid sits on the given side
// ("worker_id" or "employer_id"), ordered by last activity descending.
// Chats without any message yet sort last.
func ListChatsForUser(ctx context.Context, db *gorm.DB, column, uid string) ([]domain.Chat, error) {
	var out []domain.Chat
	err := db.WithContext(ctx).
		Where(column+" = ?", uid).
		Order("last_message_at desc").
		Find(&out).Error
	return out, err
}

// CreateMessage inserts a message row. Callers run it inside the same
// transaction as UpdateChatPreview so the denormalized preview never drifts
// from the message log.
func CreateMessage(db *gorm.DB, chatID, senderID, text string) (*domain.Message, error) {
	m := &domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	return m, db.Create(m).Error
}

// UpdateChatPreview denormalizes the latest message onto the chat row for
// list views.
func UpdateChatPreview(db *gorm.DB, chatID, preview string, at time.Time) error {
	return db.
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Updates(map[string]any{
			"last_message":    preview,
			"last_message_at": at,
			"updated_at":      at,
		}).Error
}

// ListMessagesBefore returns up to limit messages for a chat in descending
// creation order, optionally restricted to those created strictly before
// the cursor. Callers reverse the slice to present chronological order.
func ListMessagesBefore(ctx context.Context, db *gorm.DB, chatID string, limit int, before *time.Time) ([]domain.Message, error) {
	q := db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at desc, id desc")
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.Message
	err := q.Find(&out).Error
	return out, err
}

// CountChatsForUser counts the chats where uid sits on the given side,
// used for admin user detail stats.
func CountChatsForUser(ctx context.Context, db *gorm.DB, column, uid string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where(column+" = ?", uid).
		Count(&total).Error
	return total, err
}
