// Worker profile HTTP handlers.
//
// This file exposes REST endpoints for the worker side of the marketplace:
//   - POST  /workers         (upsert profile, runs the match engine)
//   - GET   /workers/me      (own profile)
//   - PATCH /workers/status  (toggle visibility)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/services"
)

// WorkerStatusRequest is the JSON payload for toggling worker visibility.
type WorkerStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SaveWorkerResponse wraps a saved worker profile and the matches the
// engine created for it during the same request.
type SaveWorkerResponse struct {
	Profile    *domain.WorkerProfile `json:"profile"`
	Created    bool                  `json:"created"`
	NewMatches []domain.Match        `json:"newMatches"`
}

// SaveWorkerProfile godoc
// @ID          saveWorkerProfile
// @Summary     Create or update the caller's worker profile
// @Description Upserts the profile (reactivating it), runs the match engine over active offers, and returns new matches.
// @Tags        Workers
// @Accept      json
// @Produce     json
//
// @Param       body  body  services.WorkerProfileInput  true  "Worker profile payload"
//
// @Success     200  {object}  handlers.SaveWorkerResponse
// @Success     201  {object}  handlers.SaveWorkerResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not registered as worker"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /workers [post]
func (h *Handlers) SaveWorkerProfile(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	var in services.WorkerProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rubro and puesto are required")
		return
	}

	profile, result, err := h.profileSvc.SaveWorkerProfile(c.Request.Context(), uid, in)
	if err != nil {
		failFromService(c, err)
		return
	}

	resp := SaveWorkerResponse{Profile: profile}
	if result != nil {
		resp.Created = result.Created
		resp.NewMatches = result.NewMatches
	}
	if resp.NewMatches == nil {
		resp.NewMatches = []domain.Match{}
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	ok(c, status, resp)
}

// GetMyWorkerProfile godoc
// @ID          getMyWorkerProfile
// @Summary     Get the caller's worker profile
// @Tags        Workers
// @Produce     json
//
// @Success     200  {object}  domain.WorkerProfile
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Router      /workers/me [get]
func (h *Handlers) GetMyWorkerProfile(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	p, err := h.profileSvc.GetWorkerProfile(c.Request.Context(), uid)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// SetWorkerStatus godoc
// @ID          setWorkerStatus
// @Summary     Toggle worker profile visibility
// @Description Inactive profiles are invisible to the match engine; existing matches are untouched.
// @Tags        Workers
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.WorkerStatusRequest  true  "Visibility payload"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Router      /workers/status [patch]
func (h *Handlers) SetWorkerStatus(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	var req WorkerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "active (bool) is required")
		return
	}
	if err := h.profileSvc.SetWorkerActive(c.Request.Context(), uid, *req.Active); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}
