// Account HTTP handlers.
//
// This file exposes REST endpoints for account lifecycle:
//   - POST  /auth/register        (pin a role to the caller's uid)
//   - GET   /auth/me              (account + effective-role profile)
//   - PATCH /auth/secondary-role  (superuser persona selection)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the JSON payload for role registration.
type RegisterRequest struct {
	// Role is the marketplace role to register under.
	Role string `json:"role" binding:"required" example:"worker"`
}

// SecondaryRoleRequest is the JSON payload for superuser persona selection.
type SecondaryRoleRequest struct {
	// SecondaryRole is the persona the superuser acts through.
	SecondaryRole string `json:"secondaryRole" binding:"required" example:"employer"`
}

// Register godoc
// @ID          register
// @Summary     Register a role for the current user
// @Description Creates or updates the caller's account with the given role.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterRequest  true  "Registration payload"
//
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.userSvc.Register(c.Request.Context(), uid, strings.TrimSpace(req.Role))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// Me godoc
// @ID          me
// @Summary     Current account
// @Description Returns the caller's account plus the profile matching its effective role.
// @Tags        Auth
// @Produce     json
//
// @Success     200  {object}  services.Me
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	me, err := h.userSvc.Get(c.Request.Context(), uid)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, me)
}

// SetSecondaryRole godoc
// @ID          setSecondaryRole
// @Summary     Set superuser secondary role
// @Description Stores the worker/employer persona a superuser acts through.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SecondaryRoleRequest  true  "Secondary role payload"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not a superuser"
// @Router      /auth/secondary-role [patch]
func (h *Handlers) SetSecondaryRole(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	var req SecondaryRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "secondaryRole required")
		return
	}
	if err := h.userSvc.SetSecondaryRole(c.Request.Context(), uid, strings.TrimSpace(req.SecondaryRole)); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}
