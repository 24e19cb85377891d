// Package domain defines the persistence models for the job-matching
// marketplace: users, worker and employer profiles, job offers, matches,
// chats, and messages. These types are mapped with GORM and are shared by
// the repository and service layers.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user account can hold. Superusers may additionally carry a
// secondary role (worker or employer) that lets them exercise the regular
// marketplace flows on top of their admin privileges.
const (
	RoleWorker    = "worker"
	RoleEmployer  = "employer"
	RoleSuperuser = "superuser"
)

// Match lifecycle states. Pending is the initial state; accepted and
// rejected are set by either participant via the match status endpoint.
const (
	MatchPending  = "pending"
	MatchAccepted = "accepted"
	MatchRejected = "rejected"
)

// User is the account record keyed by the identity provider's stable uid.
// It only carries role information; profile data lives in WorkerProfile /
// EmployerProfile keyed by the same uid.
type User struct {
	ID            string     `json:"uid"                     gorm:"type:varchar(128);primaryKey"`
	Role          string     `json:"role"                    gorm:"type:varchar(16);not null;index"`
	SecondaryRole string     `json:"secondaryRole,omitempty" gorm:"type:varchar(16)"`
	Disabled      bool       `json:"disabled"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// EffectiveRole returns the role that decides which profile a user operates
// with: superusers act through their secondary role, everyone else through
// their primary one.
func (u User) EffectiveRole() string {
	if u.Role == RoleSuperuser {
		return u.SecondaryRole
	}
	return u.Role
}

// IsEmployer reports whether the account may publish job offers, either as a
// plain employer or as a superuser with an employer secondary role.
func (u User) IsEmployer() bool {
	return u.Role == RoleEmployer || (u.Role == RoleSuperuser && u.SecondaryRole == RoleEmployer)
}

// IsWorker reports whether the account may publish a worker profile.
func (u User) IsWorker() bool {
	return u.Role == RoleWorker || (u.Role == RoleSuperuser && u.SecondaryRole == RoleWorker)
}

// WorkerProfile is a worker's public card. The row is keyed by the owning
// user id and is overwritten wholesale on every profile submission (upsert,
// not patch). Deactivation flips Active; the row itself persists.
type WorkerProfile struct {
	UserID      string    `json:"uid"                   gorm:"type:varchar(128);primaryKey"`
	Rubro       string    `json:"rubro"                 gorm:"type:varchar(64);not null;index:idx_workers_cat,priority:1"`
	Puesto      string    `json:"puesto"                gorm:"type:varchar(128);not null;index:idx_workers_cat,priority:2"`
	Zona        string    `json:"zona,omitempty"        gorm:"type:varchar(64)"`
	VideoURL    string    `json:"videoUrl,omitempty"    gorm:"type:text"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Experience  string    `json:"experience,omitempty"  gorm:"type:text"`
	Active      bool      `json:"active"                gorm:"index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the database table name for WorkerProfile.
func (WorkerProfile) TableName() string { return "worker_profiles" }

// EmployerProfile is the employer's business card, keyed by the owning user
// id with the same upsert semantics as WorkerProfile. Employers do not
// trigger matching directly; their job offers do.
type EmployerProfile struct {
	UserID       string    `json:"uid"                   gorm:"type:varchar(128);primaryKey"`
	BusinessName string    `json:"businessName"          gorm:"type:varchar(255);not null"`
	Rubro        string    `json:"rubro"                 gorm:"type:varchar(64);not null"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	Address      string    `json:"address,omitempty"     gorm:"type:varchar(255)"`
	Phone        string    `json:"phone,omitempty"       gorm:"type:varchar(64)"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the database table name for EmployerProfile.
func (EmployerProfile) TableName() string { return "employer_profiles" }

// JobOffer is a published position. Offers are created once per publish
// action; a restricted field subset may be patched later, and deletion is a
// hard delete of the row with no cascade to existing matches.
type JobOffer struct {
	ID           string    `json:"id"                     gorm:"type:char(36);primaryKey"`
	EmployerID   string    `json:"employerId"             gorm:"type:varchar(128);not null;index"`
	Rubro        string    `json:"rubro"                  gorm:"type:varchar(64);not null;index:idx_offers_cat,priority:1"`
	Puesto       string    `json:"puesto"                 gorm:"type:varchar(128);not null;index:idx_offers_cat,priority:2"`
	Description  string    `json:"description,omitempty"  gorm:"type:text"`
	Requirements string    `json:"requirements,omitempty" gorm:"type:text"`
	Salary       string    `json:"salary,omitempty"       gorm:"type:varchar(128)"`
	Schedule     string    `json:"schedule,omitempty"     gorm:"type:varchar(128)"`
	Active       bool      `json:"active"                 gorm:"index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the database table name for JobOffer.
func (JobOffer) TableName() string { return "job_offers" }

// Match pairs one worker with one job offer. Rubro and Puesto are
// snapshotted from the triggering documents at creation time and are never
// resynced when the profile or offer is edited later; the pair of ids plus
// the snapshot is an immutable record, Status is the only mutable field.
//
// The ID is derived deterministically from (WorkerID, OfferID), so two
// racing publish operations that discover the same pair collide on the
// primary key instead of inserting duplicates. The composite unique index
// backs the same invariant at the schema level.
type Match struct {
	ID         string    `json:"id"         gorm:"type:char(36);primaryKey"`
	WorkerID   string    `json:"workerId"   gorm:"type:varchar(128);not null;uniqueIndex:ux_match_pair,priority:1;index"`
	EmployerID string    `json:"employerId" gorm:"type:varchar(128);not null;index"`
	OfferID    string    `json:"offerId"    gorm:"type:char(36);not null;uniqueIndex:ux_match_pair,priority:2"`
	Rubro      string    `json:"rubro"      gorm:"type:varchar(64);not null"`
	Puesto     string    `json:"puesto"     gorm:"type:varchar(128);not null"`
	Status     string    `json:"status"     gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','accepted','rejected');index"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Match.
func (Match) TableName() string { return "matches" }

// IsParticipant reports whether uid is one of the two sides of the match.
// Both sides hold equal, symmetric rights over it.
func (m Match) IsParticipant(uid string) bool {
	return uid == m.WorkerID || uid == m.EmployerID
}

// matchNamespace is the fixed UUID namespace for deterministic match ids.
var matchNamespace = uuid.MustParse("5cfe81d6-4f06-49fb-9f3c-1b6ad6a22cf8")

// MatchID derives the deterministic id for a (worker, offer) pair. The same
// pair always maps to the same id, which makes match creation an idempotent,
// conditional insert rather than a check-then-insert.
func MatchID(workerID, offerID string) string {
	return uuid.NewSHA1(matchNamespace, []byte(workerID+"\x00"+offerID)).String()
}

// Chat is the single conversation thread attached to a match, created lazily
// on first access and jointly owned by its two fixed participants. MatchID
// carries a unique index so repeated creation attempts resolve to the same
// row. LastMessage/LastMessageAt are denormalized previews for list views.
type Chat struct {
	ID            string     `json:"id"                      gorm:"type:char(36);primaryKey"`
	MatchID       string     `json:"matchId"                 gorm:"type:char(36);not null;uniqueIndex:ux_chat_match"`
	WorkerID      string     `json:"workerId"                gorm:"type:varchar(128);not null;index"`
	EmployerID    string     `json:"employerId"              gorm:"type:varchar(128);not null;index"`
	LastMessage   string     `json:"lastMessage,omitempty"   gorm:"type:varchar(128)"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// TableName returns the database table name for Chat.
func (Chat) TableName() string { return "chats" }

// IsParticipant reports whether uid may read or write this chat.
func (c Chat) IsParticipant(uid string) bool {
	return uid == c.WorkerID || uid == c.EmployerID
}

// Message is a single utterance within a chat, authored by one of the two
// participants. Messages are append-only.
type Message struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	ChatID    string    `json:"chatId"    gorm:"type:char(36);not null;index:idx_chat_msgs,priority:1"`
	SenderID  string    `json:"senderId"  gorm:"type:varchar(128);not null"`
	Text      string    `json:"text"      gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_chat_msgs,priority:2"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }
