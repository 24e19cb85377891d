// Match HTTP handlers.
//
// This file exposes the match lifecycle endpoints:
//   - GET   /matches              (caller's matches, enriched with counterpart)
//   - PATCH /matches/{id}/status  (accept or reject, participants only)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MatchStatusRequest is the JSON payload for a match status transition.
type MatchStatusRequest struct {
	// Status is the target state.
	Status string `json:"status" binding:"required" example:"accepted"`
}

// ListMatches godoc
// @ID          listMatches
// @Summary     List the caller's matches
// @Description Workers see the employer profile and the referenced offer on each match; employers see the worker profile. Missing counterparts are omitted, never an error.
// @Tags        Matches
// @Produce     json
//
// @Success     200  {array}   services.EnrichedMatch
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /matches [get]
func (h *Handlers) ListMatches(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	role, okRole := h.effectiveRole(c, uid)
	if !okRole {
		return
	}

	matches, err := h.matchSvc.ListForUser(c.Request.Context(), uid, role)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, matches)
}

// UpdateMatchStatus godoc
// @ID          updateMatchStatus
// @Summary     Accept or reject a match
// @Description Sets the match status. Only the worker or the employer on the match may transition it.
// @Tags        Matches
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                        true  "Match ID (UUID)"  format(uuid)
// @Param       body  body  handlers.MatchStatusRequest  true  "Target status"
//
// @Success     200  {object}  services.StatusResult
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid status"
// @Failure     403  {object}  handlers.ErrorResponse  "Not a participant"
// @Failure     404  {object}  handlers.ErrorResponse  "Match not found"
// @Router      /matches/{id}/status [patch]
func (h *Handlers) UpdateMatchStatus(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	var req MatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required")
		return
	}

	res, err := h.matchSvc.SetStatus(c.Request.Context(), c.Param("id"), uid, strings.TrimSpace(req.Status))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}
