// Job offer HTTP handlers.
//
// This file exposes the employer-side offer lifecycle:
//   - POST   /job-offers            (publish, runs the match engine)
//   - GET    /job-offers/my-offers  (own offers, newest first)
//   - PATCH  /job-offers/{id}       (partial update, owner only)
//   - DELETE /job-offers/{id}       (hard delete, owner only)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/services"
)

// PublishOfferResponse wraps a published offer and the matches the engine
// created for it during the same request.
type PublishOfferResponse struct {
	Offer      *domain.JobOffer `json:"offer"`
	NewMatches []domain.Match   `json:"newMatches"`
}

// PublishOffer godoc
// @ID          publishOffer
// @Summary     Publish a job offer
// @Description Creates an active offer, runs the match engine over active worker profiles, and returns new matches.
// @Tags        JobOffers
// @Accept      json
// @Produce     json
//
// @Param       body  body  services.OfferInput  true  "Offer payload"
//
// @Success     201  {object}  handlers.PublishOfferResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not registered as employer"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /job-offers [post]
func (h *Handlers) PublishOffer(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	var in services.OfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rubro and puesto are required")
		return
	}

	offer, matches, err := h.offerSvc.Publish(c.Request.Context(), uid, in)
	if err != nil {
		failFromService(c, err)
		return
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	ok(c, http.StatusCreated, PublishOfferResponse{Offer: offer, NewMatches: matches})
}

// ListMyOffers godoc
// @ID          listMyOffers
// @Summary     List the caller's job offers
// @Tags        JobOffers
// @Produce     json
//
// @Success     200  {array}   domain.JobOffer
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /job-offers/my-offers [get]
func (h *Handlers) ListMyOffers(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	offers, err := h.offerSvc.ListMine(c.Request.Context(), uid)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, offers)
}

// PatchOffer godoc
// @ID          patchOffer
// @Summary     Update a job offer
// @Description Applies a partial update to an offer owned by the caller. Unknown fields are ignored.
// @Tags        JobOffers
// @Accept      json
// @Produce     json
//
// @Param       id    path  string          true  "Offer ID (UUID)"  format(uuid)
// @Param       body  body  map[string]any  true  "Fields to update"
//
// @Success     200  {object}  map[string]any
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Offer not found"
// @Router      /job-offers/{id} [patch]
func (h *Handlers) PatchOffer(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "a non-empty JSON object is required")
		return
	}

	applied, err := h.offerSvc.Patch(c.Request.Context(), uid, c.Param("id"), updates)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, applied)
}

// DeleteOffer godoc
// @ID          deleteOffer
// @Summary     Delete a job offer
// @Description Hard-deletes an offer owned by the caller. Matches created from the offer are kept.
// @Tags        JobOffers
// @Produce     json
//
// @Param       id  path  string  true  "Offer ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Offer not found"
// @Router      /job-offers/{id} [delete]
func (h *Handlers) DeleteOffer(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	if err := h.offerSvc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}
