// Chat HTTP handlers.
//
// This file exposes the messaging endpoints unlocked by matches:
//   - POST /chats/{id}           (get-or-create the chat for a match id)
//   - GET  /chats                (caller's chats, last activity first)
//   - GET  /chats/{id}/messages  (poll messages, ascending, cursor via ?before)
//   - POST /chats/{id}/messages  (append a message, updates the preview)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/utils"
)

// PostMessageRequest is the JSON payload for appending a chat message.
type PostMessageRequest struct {
	// Text is the message body (leading/trailing whitespace is trimmed).
	Text string `json:"text" binding:"required" example:"Hola, vi tu oferta"`
}

// OpenChatResponse wraps the chat resource and whether this call created it.
type OpenChatResponse struct {
	Chat    *domain.Chat `json:"chat"`
	Created bool         `json:"created"`
}

// OpenChat godoc
// @ID          openChat
// @Summary     Open the chat for a match
// @Description Returns the chat bound to the match, creating it on first access. Idempotent per match.
// @Tags        Chats
// @Produce     json
//
// @Param       id  path  string  true  "Match ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.OpenChatResponse
// @Success     201  {object}  handlers.OpenChatResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Not a participant"
// @Failure     404  {object}  handlers.ErrorResponse  "Match not found"
// @Router      /chats/{id} [post]
func (h *Handlers) OpenChat(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	chat, created, err := h.chatSvc.GetOrCreate(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		failFromService(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, OpenChatResponse{Chat: chat, Created: created})
}

// ListChats godoc
// @ID          listChats
// @Summary     List the caller's chats
// @Description Returns chats ordered by last activity, each enriched with the counterpart's profile.
// @Tags        Chats
// @Produce     json
//
// @Success     200  {array}   services.EnrichedChat
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chats [get]
func (h *Handlers) ListChats(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	role, okRole := h.effectiveRole(c, uid)
	if !okRole {
		return
	}

	chats, err := h.chatSvc.ListForUser(c.Request.Context(), uid, role)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, chats)
}

// ListMessages godoc
// @ID          listMessages
// @Summary     Poll messages in a chat
// @Description Returns up to limit messages in ascending order. Pass ?before=<RFC3339> to page further back.
// @Tags        Chats
// @Produce     json
//
// @Param       id      path   string  true   "Chat ID (UUID)"  format(uuid)
// @Param       limit   query  int     false  "Max messages"    default(50)
// @Param       before  query  string  false  "RFC3339 cursor: only messages created before this instant"
//
// @Success     200  {array}   domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Bad cursor"
// @Failure     403  {object}  handlers.ErrorResponse  "Not a participant"
// @Failure     404  {object}  handlers.ErrorResponse  "Chat not found"
// @Router      /chats/{id}/messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}

	limit := utils.AtoiDefault(c.Query("limit"), 0)
	var before *time.Time
	if raw := c.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "before must be an RFC3339 timestamp")
			return
		}
		before = &t
	}

	msgs, err := h.chatSvc.ListMessages(c.Request.Context(), c.Param("id"), uid, limit, before)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusOK, msgs)
}

// PostMessage godoc
// @ID          postMessage
// @Summary     Send a message
// @Description Appends a message to the chat and refreshes the last-message preview atomically.
// @Tags        Chats
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                        true  "Chat ID (UUID)"  format(uuid)
// @Param       body  body  handlers.PostMessageRequest  true  "Message payload"
//
// @Success     201  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Empty message"
// @Failure     403  {object}  handlers.ErrorResponse  "Not a participant"
// @Failure     404  {object}  handlers.ErrorResponse  "Chat not found"
// @Router      /chats/{id}/messages [post]
func (h *Handlers) PostMessage(c *gin.Context) {
	uid, okID := mustUserID(c)
	if !okID {
		return
	}
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "text required")
		return
	}

	msg, err := h.chatSvc.PostMessage(c.Request.Context(), c.Param("id"), uid, req.Text)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusCreated, msg)
}
