package handler

import (
	"net/http"
	"time"

	"tradecircle/backend/internal/database"
	"tradecircle/backend/internal/models"
	"tradecircle/backend/internal/ratelimit"
	"tradecircle/backend/internal/social"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// StartConversationInput defines the body for opening a direct-message channel.
type StartConversationInput struct {
	FriendID uint `json:"friend_id" binding:"required"`
}

// PostMessageInput defines the body for posting a message.
type PostMessageInput struct {
	Content string `json:"content" binding:"required"`
}

// ConversationResponse defines the structure for a conversation summary.
type ConversationResponse struct {
	ID        uint               `json:"id"`
	Partner   PublicUserResponse `json:"partner"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// MessageResponse defines the structure for a direct message.
type MessageResponse struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func newMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

// endregion

// StartConversation godoc
// @Summary      Start or resume a conversation
// @Description  Returns the conversation with a friend, creating it on first contact.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body StartConversationInput true "Friend"
// @Success      200  {object}  map[string]uint "{"conversation_id": 1}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not friends or blocked"
// @Router       /chat/start [post]
func StartConversation(c *gin.Context) {
	userID := actingUserID(c)

	var input StartConversationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := social.GetOrCreateConversation(database.DB, userID, input.FriendID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation_id": conv.ID})
}

// ListConversations godoc
// @Summary      List conversations
// @Description  Returns the user's conversations, most recently active first.
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ConversationResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /chat/conversations [get]
func ListConversations(c *gin.Context) {
	userID := actingUserID(c)

	conversations, err := social.ListConversations(database.DB, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		partner := conv.UserA
		if conv.UserAID == userID {
			partner = conv.UserB
		}
		responses = append(responses, ConversationResponse{
			ID:        conv.ID,
			Partner:   newPublicUserResponse(partner),
			UpdatedAt: conv.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// ListMessages godoc
// @Summary      List messages in a conversation
// @Description  Returns up to 50 messages, oldest first, optionally after a `since` cursor.
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int    true  "Conversation ID"
// @Param        since query string false "RFC3339 timestamp or unix milliseconds"
// @Success      200  {array}   MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a participant"
// @Failure      404  {object}  ErrorResponse "Conversation not found"
// @Router       /chat/conversations/{id}/messages [get]
func ListMessages(c *gin.Context) {
	userID := actingUserID(c)
	conversationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	since, ok := parseSince(c)
	if !ok {
		return
	}

	messages, err := social.ListMessages(database.DB, conversationID, userID, since)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, newMessageResponse(m))
	}

	c.JSON(http.StatusOK, responses)
}

// PostMessage godoc
// @Summary      Post a message
// @Description  Appends a message to a conversation the sender belongs to. Content is 1-1000 characters after trimming; posting is rate limited per sender.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int              true "Conversation ID"
// @Param        input body PostMessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a participant"
// @Failure      404  {object}  ErrorResponse "Conversation not found"
// @Failure      429  {object}  ErrorResponse "Rate limited"
// @Router       /chat/conversations/{id}/messages [post]
func PostMessage(c *gin.Context) {
	userID := actingUserID(c)
	conversationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input PostMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := social.PostMessage(database.DB, ratelimit.Chat, conversationID, userID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newMessageResponse(*message))
}
