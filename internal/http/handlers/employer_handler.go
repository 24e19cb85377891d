// Employer profile HTTP handlers.
//
// This file exposes:
//   - POST /employers     (upsert business profile)
//   - GET  /employers/me  (own profile)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lucho2590/LaburoYA/internal/services"
)

// SaveEmployerProfile godoc
// @ID          saveEmployerProfile
// @Summary     Create or update the caller's employer profile
// @Description Upserts the business profile. Allowed for employers and for superusers with an employer secondary role.
// @Tags        Employers
// @Accept      json
// @Produce     json
//
// @Param       body  body  services.EmployerProfileInput  true  "Employer profile payload"
//
// @Success     200  {object}  domain.EmployerProfile
// @Success     201  {object}  domain.EmployerProfile
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not registered as employer"
// @Router      /employers [post]
func (h *Handlers) SaveEmployerProfile(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	var in services.EmployerProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "businessName and rubro are required")
		return
	}

	p, created, err := h.profileSvc.SaveEmployerProfile(c.Request.Context(), uid, in)
	if err != nil {
		failFromService(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, p)
}

// GetMyEmployerProfile godoc
// @ID          getMyEmployerProfile
// @Summary     Get the caller's employer profile
// @Tags        Employers
// @Produce     json
//
// @Success     200  {object}  domain.EmployerProfile
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Router      /employers/me [get]
func (h *Handlers) GetMyEmployerProfile(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	p, err := h.profileSvc.GetEmployerProfile(c.Request.Context(), uid)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
