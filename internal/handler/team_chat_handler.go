package handler

import (
	"io"
	"net/http"
	"time"

	"tradecircle/backend/internal/database"
	"tradecircle/backend/internal/hub"
	"tradecircle/backend/internal/models"
	"tradecircle/backend/internal/ratelimit"
	"tradecircle/backend/internal/social"

	"github.com/gin-gonic/gin"
)

// TeamMessageResponse defines the structure for a team chat message.
type TeamMessageResponse struct {
	ID        uint      `json:"id"`
	TeamID    uint      `json:"team_id"`
	SenderID  uint      `json:"sender_id"`
	Sender    string    `json:"sender,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func newTeamMessageResponse(m models.TeamMessage) TeamMessageResponse {
	return TeamMessageResponse{
		ID:        m.ID,
		TeamID:    m.TeamID,
		SenderID:  m.SenderID,
		Sender:    m.Sender.Nickname,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// PostTeamMessage godoc
// @Summary      Post a team chat message
// @Description  Appends a message to the team channel and broadcasts it to connected stream clients. Members only; rate limited per sender.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int              true "Team ID"
// @Param        input body PostMessageInput true "Message"
// @Success      201  {object}  TeamMessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Failure      429  {object}  ErrorResponse "Rate limited"
// @Router       /teams/{id}/messages [post]
func PostTeamMessage(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input PostMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := social.PostTeamMessage(database.DB, ratelimit.Chat, teamID, userID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	response := newTeamMessageResponse(*message)
	hub.GlobalHub.Broadcast(teamID, hub.Event{
		Type:    hub.EventTeamMessage,
		Payload: response,
	})

	c.JSON(http.StatusCreated, response)
}

// ListTeamMessages godoc
// @Summary      List team chat messages
// @Description  Returns up to 50 team messages, oldest first, optionally after a `since` cursor. Members only.
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int    true  "Team ID"
// @Param        since query string false "RFC3339 timestamp or unix milliseconds"
// @Success      200  {array}   TeamMessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Router       /teams/{id}/messages [get]
func ListTeamMessages(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	since, ok := parseSince(c)
	if !ok {
		return
	}

	messages, err := social.ListTeamMessages(database.DB, teamID, userID, since)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]TeamMessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, newTeamMessageResponse(m))
	}

	c.JSON(http.StatusOK, responses)
}

// StreamTeamMessages godoc
// @Summary      Stream team chat events
// @Description  Subscribes to the team channel over server-sent events. Members only.
// @Tags         teams
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Success      200  {string}  string "event stream"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Router       /teams/{id}/messages/stream [get]
func StreamTeamMessages(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := social.RequireTeamMember(database.DB, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(teamID, client)
	defer hub.GlobalHub.Unsubscribe(teamID, client)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case payload, open := <-client:
			if !open {
				return false
			}
			c.SSEvent("message", string(payload))
			return true
		}
	})
}
