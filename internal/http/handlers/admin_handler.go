// Admin back-office HTTP handlers. Every endpoint here is superuser-gated.
//
//   - GET    /admin/stats
//   - GET    /admin/users        (role filter + pagination)
//   - GET    /admin/users/{uid}
//   - PATCH  /admin/users/{uid}  (role / disabled)
//   - DELETE /admin/users/{uid}  (?hard=true for hard delete)
//   - GET    /admin/job-offers
//   - GET    /admin/matches
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Lucho2590/LaburoYA/internal/services"
)

// requireSuperuser verifies the caller's superuser role or aborts.
func (h *Handlers) requireSuperuser(c *gin.Context) (string, bool) {
	uid, okID := mustUserID(c)
	if !okID {
		return "", false
	}
	if _, err := h.adminSvc.RequireSuperuser(c.Request.Context(), uid); err != nil {
		failFromService(c, err)
		return "", false
	}
	return uid, true
}

// AdminUpdateUserRequest is the JSON payload for account moderation.
type AdminUpdateUserRequest struct {
	Role     *string `json:"role"`
	Disabled *bool   `json:"disabled"`
}

// AdminUsersResponse wraps a page of enriched accounts.
type AdminUsersResponse struct {
	Users      []services.AdminUser `json:"users"`
	Pagination Pagination           `json:"pagination"`
}

// AdminOffersResponse wraps a page of offers with owner info.
type AdminOffersResponse struct {
	Offers     []services.AdminOffer `json:"offers"`
	Pagination Pagination            `json:"pagination"`
}

// AdminMatchesResponse wraps a page of matches with both sides resolved.
type AdminMatchesResponse struct {
	Matches    []services.AdminMatch `json:"matches"`
	Pagination Pagination            `json:"pagination"`
}

// AdminStats godoc
// @ID          adminStats
// @Summary     Marketplace statistics
// @Tags        Admin
// @Produce     json
//
// @Success     200  {object}  services.Stats
// @Failure     403  {object}  handlers.ErrorResponse  "Not a superuser"
// @Router      /admin/stats [get]
func (h *Handlers) AdminStats(c *gin.Context) {
	if _, okSU := h.requireSuperuser(c); !okSU {
		return
	}
	stats, err := h.adminSvc.GetStats(c.Request.Context())
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, stats)
}

// AdminListUsers godoc
// @ID          adminListUsers
// @Summary     List accounts with profile and offers
// @Tags        Admin
// @Produce     json
//
// @Param       role       query  string  false  "Filter by role"
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.AdminUsersResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Not a superuser"
// @Router      /admin/users [get]
func (h *Handlers) AdminListUsers(c *gin.Context) {
	if _, okSU := h.requireSuperuser(c); !okSU {
		return
	}
	page, pageSize := clampPagination(c)

	users, total, err := h.adminSvc.ListUsers(c.Request.Context(), c.Query("role"), (page-1)*pageSize, pageSize)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, AdminUsersResponse{Users: users, Pagination: paginate(page, pageSize, total)})
}

// AdminGetUser godoc
// @ID          adminGetUser
// @Summary     Account detail with activity stats
// @Tags        Admin
// @Produce     json
//
// @Param       uid  path  string  true  "User ID"
//
// @Success     200  {object}  services.UserDetail
// @Failure     403  {object}  handlers.ErrorResponse  "Not a superuser"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /admin/users/{uid} [get]
func (h *Handlers) AdminGetUser(c *gin.Context) {
	if _, okSU := h.requireSuperuser(c); !okSU {
		return
	}
	detail, err := h.adminSvc.GetUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, detail)
}

// AdminUpdateUser godoc
// @ID          adminUpdateUser
// @Summary     Moderate an account
// @Description Updates the role and/or disabled flag of an account.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       uid   path  string                          true  "User ID"
// @Param       body  body  handlers.AdminUpdateUserRequest true  "Fields to update"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not a superuser"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /admin/users/{uid} [patch]
func (h *Handlers) AdminUpdateUser(c *gin.Context) {
	if _, okSU := h.requireSuperuser(c); !okSU {
		return
	}
	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Role == nil && req.Disabled == nil) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "role or disabled is required")
		return
	}

	u, err := h.adminSvc.UpdateUser(c.Request.Context(), c.Param("uid"), req.Role, req.Disabled)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// AdminDeleteUser godoc
// @ID          adminDeleteUser
// @Summary     Delete an account
// @Description Soft-deletes by default (disabled + deletedAt). With ?hard=true the account, its profile, and its offers are removed in one transaction; matches are kept. Superusers cannot be deleted.
// @Tags        Admin
// @Produce     json
//
// @Param       uid   path   string  true   "User ID"
// @Param       hard  query  bool    false  "Hard delete"  default(false)
//
// @Success     204  {string}  string "No Content"
// @Failure     403  {object}  handlers.ErrorResponse  "Not a superuser / target is superuser"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /admin/users/{uid} [delete]
func (h *Handlers) AdminDeleteUser(c *gin.Context) {
	if _, okSU := h.requireSuperuser(c); !okSU {
		return
	}
	hard, _ := strconv.ParseBool(c.Query("hard"))
	if err := h.adminSvc.DeleteUser(c.Request.Context(), c.Param("uid"), hard); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}

// AdminListOffers godoc
// @ID          adminListOffers
// @Summary     List job offers across the marketplace
// @Tags        Admin
// @Produce     json
//
// @Param       active       query  bool    false  "Filter by active flag"
// @Param       employer_id  query  string  false  "Filter by owner"
// @Param       page         query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size    query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.AdminOffersResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Not a superuser"
// @Router      /admin/job-offers [get]
func (h *Handlers) AdminListOffers(c *gin.Context) {
	if _, okSU := h.requireSuperuser(c); !okSU {
		return
	}
	page, pageSize := clampPagination(c)

	var active *bool
	if raw := c.Query("active"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "active must be a boolean")
			return
		}
		active = &b
	}

	offers, total, err := h.adminSvc.ListOffers(c.Request.Context(), active, c.Query("employer_id"), (page-1)*pageSize, pageSize)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, AdminOffersResponse{Offers: offers, Pagination: paginate(page, pageSize, total)})
}

// AdminListMatches godoc
// @ID          adminListMatches
// @Summary     List matches across the marketplace
// @Tags        Admin
// @Produce     json
//
// @Param       status     query  string  false  "Filter by status"
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.AdminMatchesResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Not a superuser"
// @Router      /admin/matches [get]
func (h *Handlers) AdminListMatches(c *gin.Context) {
	if _, okSU := h.requireSuperuser(c); !okSU {
		return
	}
	page, pageSize := clampPagination(c)

	matches, total, err := h.adminSvc.ListMatches(c.Request.Context(), c.Query("status"), (page-1)*pageSize, pageSize)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, AdminMatchesResponse{Matches: matches, Pagination: paginate(page, pageSize, total)})
}
