// Package services – ChatService
//
// This file implements the chat gateway unlocked by a match: lazy,
// idempotent creation of the single thread between a match's two
// participants, message posting with a denormalized preview on the chat
// row, and cursor-based message listing for polling clients.
//
// Note on gating: chat creation requires only that the caller is a
// participant of an existing match, not that the match is accepted. Opening
// a chat on a pending match is therefore possible; the behavior is kept
// as-is and covered by a test until product says otherwise.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ChatService coordinates chat threads and their messages.
type ChatService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// PreviewMaxRunes caps the denormalized last-message preview.
	PreviewMaxRunes int

	// DefaultPageSize bounds ListMessages when the caller passes no limit.
	DefaultPageSize int
}

// NewChatService constructs a ChatService with the preview and paging
// defaults used in production.
func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		DB:              db,
		PreviewMaxRunes: 100,
		DefaultPageSize: 50,
	}
}

// EnrichedChat is a chat joined with the counterpart's profile for list
// views. Enrichment is best-effort.
type EnrichedChat struct {
	domain.Chat
	Worker   *domain.WorkerProfile   `json:"worker,omitempty"`
	Employer *domain.EmployerProfile `json:"employer,omitempty"`
}

// GetOrCreate returns the chat thread for a match, creating it lazily on
// first access. The caller must be one of the match's participants. The
// operation is idempotent: repeated calls return the same chat, including
// under a creation race, where the losing insert re-reads the winner.
// The second return value reports whether the chat was created by this call.
func (s *ChatService) GetOrCreate(ctx context.Context, matchID, uid string) (*domain.Chat, bool, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "GetOrCreate",
		trace.WithAttributes(
			attribute.String("match.id", matchID),
			attribute.String("user.id", uid),
		),
	)
	defer span.End()

	m, err := repo.GetMatch(ctx, s.DB, matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrMatchNotFound
		}
		return nil, false, err
	}
	if !m.IsParticipant(uid) {
		return nil, false, ErrNotParticipant
	}

	if c, err := repo.GetChatByMatch(ctx, s.DB, matchID); err == nil {
		return c, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	c, err := repo.CreateChat(ctx, s.DB, matchID, m.WorkerID, m.EmployerID)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			c, err = repo.GetChatByMatch(ctx, s.DB, matchID)
			return c, false, err
		}
		return nil, false, err
	}
	return c, true, nil
}

// PostMessage appends a message to a chat on behalf of senderID. The text
// must be non-empty after trimming. The message insert and the preview
// denormalization run in one transaction so list views never show a preview
// without its message.
func (s *ChatService) PostMessage(ctx context.Context, chatID, senderID, text string) (*domain.Message, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "PostMessage",
		trace.WithAttributes(
			attribute.String("chat.id", chatID),
			attribute.String("sender.id", senderID),
		),
	)
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	chat, err := repo.GetChat(ctx, s.DB, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if !chat.IsParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	var msg *domain.Message
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.CreateMessage(tx, chatID, senderID, text)
		if err != nil {
			return err
		}
		msg = m
		return repo.UpdateChatPreview(tx, chatID, s.preview(text), m.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	messagesPosted.Inc()
	return msg, nil
}

// ListMessages returns a chat's messages in chronological ascending order,
// bounded by limit and optionally restricted to those created before the
// cursor. Authorization is identical to PostMessage. Internally messages
// are fetched newest-first and reversed, so "the latest N before the
// cursor" is what a polling client receives.
func (s *ChatService) ListMessages(ctx context.Context, chatID, uid string, limit int, before *time.Time) ([]domain.Message, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "ListMessages",
		trace.WithAttributes(
			attribute.String("chat.id", chatID),
			attribute.String("user.id", uid),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	chat, err := repo.GetChat(ctx, s.DB, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if !chat.IsParticipant(uid) {
		return nil, ErrNotParticipant
	}

	if limit <= 0 {
		limit = s.DefaultPageSize
	}
	msgs, err := repo.ListMessagesBefore(ctx, s.DB, chatID, limit, before)
	if err != nil {
		return nil, err
	}

	// Reverse to ascending.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// ListForUser returns uid's chats for the given role ordered by last
// activity, each enriched with the counterpart's profile.
func (s *ChatService) ListForUser(ctx context.Context, uid, role string) ([]EnrichedChat, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "ListForUser",
		trace.WithAttributes(
			attribute.String("user.id", uid),
			attribute.String("role", role),
		),
	)
	defer span.End()

	column := "employer_id"
	if role == domain.RoleWorker {
		column = "worker_id"
	}
	chats, err := repo.ListChatsForUser(ctx, s.DB, column, uid)
	if err != nil {
		return nil, err
	}

	out := make([]EnrichedChat, 0, len(chats))
	for _, c := range chats {
		ec := EnrichedChat{Chat: c}
		if role == domain.RoleWorker {
			ec.Employer = optional(repo.GetEmployerProfile(ctx, s.DB, c.EmployerID))
		} else {
			ec.Worker = optional(repo.GetWorkerProfile(ctx, s.DB, c.WorkerID))
		}
		out = append(out, ec)
	}
	return out, nil
}

// preview clips text to the configured preview length by runes.
func (s *ChatService) preview(text string) string {
	max := s.PreviewMaxRunes
	if max <= 0 {
		max = 100
	}
	if utf8.RuneCountInString(text) > max {
		return string([]rune(text)[:max])
	}
	return text
}
