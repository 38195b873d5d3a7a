package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"tradecircle/backend/internal/social"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// statusForError maps social-layer sentinel errors to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, social.ErrUserNotFound),
		errors.Is(err, social.ErrRequestNotFound),
		errors.Is(err, social.ErrFriendshipAbsent),
		errors.Is(err, social.ErrBlockNotFound),
		errors.Is(err, social.ErrConversationNotFound),
		errors.Is(err, social.ErrTeamNotFound),
		errors.Is(err, social.ErrInviteNotFound),
		errors.Is(err, social.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, social.ErrBlocked),
		errors.Is(err, social.ErrNotFriends),
		errors.Is(err, social.ErrNotRecipient),
		errors.Is(err, social.ErrNotSender),
		errors.Is(err, social.ErrNotParticipant),
		errors.Is(err, social.ErrNotMember),
		errors.Is(err, social.ErrInsufficientRole),
		errors.Is(err, social.ErrOwnerImmovable):
		return http.StatusForbidden
	case errors.Is(err, social.ErrSelfTarget),
		errors.Is(err, social.ErrEmptyMessage),
		errors.Is(err, social.ErrMessageTooLong),
		errors.Is(err, social.ErrInvalidSignalType):
		return http.StatusBadRequest
	case errors.Is(err, social.ErrAlreadyFriends),
		errors.Is(err, social.ErrRequestExists),
		errors.Is(err, social.ErrNotPending),
		errors.Is(err, social.ErrAlreadyMember),
		errors.Is(err, social.ErrInviteInvalid),
		errors.Is(err, social.ErrInviteExpired):
		return http.StatusConflict
	case errors.Is(err, social.ErrRateLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// respondError writes the mapped status and error message. Unexpected
// errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// actingUserID reads the authenticated user's id set by the auth
// middleware.
func actingUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// parseSince reads the optional `since` cursor, accepting RFC3339 or
// unix milliseconds. Zero or missing values mean "from the beginning".
func parseSince(c *gin.Context) (*time.Time, bool) {
	raw := c.Query("since")
	if raw == "" || raw == "0" {
		return nil, true
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return &ts, true
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		ts := time.UnixMilli(ms)
		return &ts, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid since cursor"})
	return nil, false
}
