// Package handlers provides HTTP handler implementations for the public API.
//
// This file wires the handler set to the application services and holds the
// shared plumbing: the service contracts consumed by the transport layer,
// the authenticated-identity helper, pagination clamping, and the mapping
// from service sentinel errors to HTTP responses.
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/services"
	"github.com/Lucho2590/LaburoYA/internal/utils"
)

//
// Service contracts (context-aware)
//

// UserService defines account operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type UserService interface {
	// Register creates or updates the caller's account with a role.
	Register(ctx context.Context, uid, role string) (*domain.User, error)
	// Get returns the account plus its effective-role profile.
	Get(ctx context.Context, uid string) (*services.Me, error)
	// SetSecondaryRole stores the persona a superuser acts through.
	SetSecondaryRole(ctx context.Context, uid, secondary string) error
}

// ProfileService defines worker/employer profile operations.
type ProfileService interface {
	SaveWorkerProfile(ctx context.Context, uid string, in services.WorkerProfileInput) (*domain.WorkerProfile, *services.PublishResult, error)
	GetWorkerProfile(ctx context.Context, uid string) (*domain.WorkerProfile, error)
	SetWorkerActive(ctx context.Context, uid string, active bool) error
	SaveEmployerProfile(ctx context.Context, uid string, in services.EmployerProfileInput) (*domain.EmployerProfile, bool, error)
	GetEmployerProfile(ctx context.Context, uid string) (*domain.EmployerProfile, error)
}

// OfferService defines job-offer lifecycle operations.
type OfferService interface {
	Publish(ctx context.Context, uid string, in services.OfferInput) (*domain.JobOffer, []domain.Match, error)
	ListMine(ctx context.Context, uid string) ([]domain.JobOffer, error)
	Patch(ctx context.Context, uid, offerID string, updates map[string]any) (map[string]any, error)
	Delete(ctx context.Context, uid, offerID string) error
}

// MatchService defines match lifecycle operations.
type MatchService interface {
	SetStatus(ctx context.Context, matchID, uid, status string) (*services.StatusResult, error)
	ListForUser(ctx context.Context, uid, role string) ([]services.EnrichedMatch, error)
}

// ChatService defines chat access and messaging operations.
type ChatService interface {
	GetOrCreate(ctx context.Context, matchID, uid string) (*domain.Chat, bool, error)
	PostMessage(ctx context.Context, chatID, senderID, text string) (*domain.Message, error)
	ListMessages(ctx context.Context, chatID, uid string, limit int, before *time.Time) ([]domain.Message, error)
	ListForUser(ctx context.Context, uid, role string) ([]services.EnrichedChat, error)
}

// AdminService defines the superuser back-office operations.
type AdminService interface {
	RequireSuperuser(ctx context.Context, uid string) (*domain.User, error)
	GetStats(ctx context.Context) (*services.Stats, error)
	ListUsers(ctx context.Context, role string, offset, limit int) ([]services.AdminUser, int64, error)
	GetUser(ctx context.Context, uid string) (*services.UserDetail, error)
	UpdateUser(ctx context.Context, uid string, role *string, disabled *bool) (*domain.User, error)
	DeleteUser(ctx context.Context, uid string, hard bool) error
	ListOffers(ctx context.Context, active *bool, employerID string, offset, limit int) ([]services.AdminOffer, int64, error)
	ListMatches(ctx context.Context, status string, offset, limit int) ([]services.AdminMatch, int64, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the marketplace API. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	userSvc    UserService
	profileSvc ProfileService
	offerSvc   OfferService
	matchSvc   MatchService
	chatSvc    ChatService
	adminSvc   AdminService
}

// New constructs a Handlers instance bound to the given services.
func New(userSvc UserService, profileSvc ProfileService, offerSvc OfferService, matchSvc MatchService, chatSvc ChatService, adminSvc AdminService) *Handlers {
	return &Handlers{
		userSvc:    userSvc,
		profileSvc: profileSvc,
		offerSvc:   offerSvc,
		matchSvc:   matchSvc,
		chatSvc:    chatSvc,
		adminSvc:   adminSvc,
	}
}

// userID extracts the authenticated user id from the Gin context (set by the
// auth middleware). If absent, it falls back to the "X-User-ID" header
// (tests use it). Returns "" when no identity is available.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return ""
}

// mustUserID returns the caller's identity or aborts with 401.
func mustUserID(c *gin.Context) (string, bool) {
	uid := userID(c)
	if uid == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return "", false
	}
	return uid, true
}

// effectiveRole resolves the role the caller acts under (superusers act
// through their secondary role). Unregistered callers get "".
func (h *Handlers) effectiveRole(c *gin.Context, uid string) (string, bool) {
	me, err := h.userSvc.Get(c.Request.Context(), uid)
	if err != nil {
		failFromService(c, err)
		return "", false
	}
	return me.User.EffectiveRole(), true
}

//
// Shared DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// paginate builds the response metadata for a page.
func paginate(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

//
// Error translation
//

// failFromService maps service sentinel errors onto the HTTP error envelope.
// Unknown errors become 500 and are logged by fail().
func failFromService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrOfferNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrChatNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrNotParticipant),
		errors.Is(err, services.ErrNotOfferOwner),
		errors.Is(err, services.ErrWorkerRoleRequired),
		errors.Is(err, services.ErrEmployerRoleRequired),
		errors.Is(err, services.ErrSuperuserRequired),
		errors.Is(err, services.ErrSuperuserImmutable):
		fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidSecondaryRole),
		errors.Is(err, services.ErrEmptyMessage):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
