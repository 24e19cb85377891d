// Package services defines the business logic for the marketplace: the match
// engine, the match lifecycle, chats, profiles, offers, and the admin
// back-office. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// Not-found errors.
var (
	// ErrUserNotFound indicates the account has not registered a role yet.
	ErrUserNotFound = errors.New("user not found")

	// ErrProfileNotFound indicates the user has no worker/employer profile.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrOfferNotFound indicates the requested job offer does not exist.
	ErrOfferNotFound = errors.New("job offer not found")

	// ErrMatchNotFound indicates the requested match does not exist.
	ErrMatchNotFound = errors.New("match not found")

	// ErrChatNotFound indicates the requested chat does not exist.
	ErrChatNotFound = errors.New("chat not found")
)

// Authorization errors.
var (
	// ErrNotParticipant is returned when the caller is neither the worker
	// nor the employer of the match or chat being accessed.
	ErrNotParticipant = errors.New("not a participant")

	// ErrNotOfferOwner is returned when someone other than the publishing
	// employer mutates a job offer.
	ErrNotOfferOwner = errors.New("not the offer owner")

	// ErrWorkerRoleRequired is returned when a worker-only operation is
	// attempted by a non-worker account.
	ErrWorkerRoleRequired = errors.New("user must be registered as worker")

	// ErrEmployerRoleRequired is returned when an employer-only operation is
	// attempted by an account that is neither an employer nor a superuser
	// with an employer secondary role.
	ErrEmployerRoleRequired = errors.New("user must be registered as employer")

	// ErrSuperuserRequired gates the admin back-office and secondary roles.
	ErrSuperuserRequired = errors.New("superuser privileges required")

	// ErrSuperuserImmutable is returned when an admin tries to delete a
	// superuser account.
	ErrSuperuserImmutable = errors.New("cannot delete superuser accounts")
)

// Validation errors.
var (
	// ErrInvalidStatus is returned when a match transition targets anything
	// other than accepted or rejected.
	ErrInvalidStatus = errors.New(`status must be "accepted" or "rejected"`)

	// ErrInvalidRole is returned when registration names an unknown role.
	ErrInvalidRole = errors.New(`role must be "worker", "employer" or "superuser"`)

	// ErrInvalidSecondaryRole is returned when a superuser sets a secondary
	// role outside worker/employer.
	ErrInvalidSecondaryRole = errors.New(`secondaryRole must be "worker" or "employer"`)

	// ErrEmptyMessage is returned when a chat message is empty after
	// trimming whitespace.
	ErrEmptyMessage = errors.New("message text is required")
)
