package handler

import (
	"net/http"
	"time"

	"tradecircle/backend/internal/database"
	"tradecircle/backend/internal/models"
	"tradecircle/backend/internal/social"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SendRequestInput defines the body for sending a friend request.
type SendRequestInput struct {
	UserID uint `json:"user_id" binding:"required"`
}

// RespondRequestInput defines the body for answering or withdrawing a request.
type RespondRequestInput struct {
	Action string `json:"action" binding:"required,oneof=accept decline cancel"`
}

// FriendRequestResponse defines the structure for a friend request.
type FriendRequestResponse struct {
	ID          uint       `json:"id"`
	FromUserID  uint       `json:"from_user_id"`
	ToUserID    uint       `json:"to_user_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

func newFriendRequestResponse(r models.FriendRequest) FriendRequestResponse {
	return FriendRequestResponse{
		ID:          r.ID,
		FromUserID:  r.FromUserID,
		ToUserID:    r.ToUserID,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		RespondedAt: r.RespondedAt,
	}
}

// endregion

// ListFriends godoc
// @Summary      List friends
// @Description  Returns the authenticated user's confirmed friends.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends [get]
func ListFriends(c *gin.Context) {
	userID := actingUserID(c)

	friendIDs, err := social.FriendIDs(database.DB, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	friends := []PublicUserResponse{}
	if len(friendIDs) > 0 {
		var users []models.User
		if err := database.DB.Find(&users, friendIDs).Error; err != nil {
			respondError(c, err)
			return
		}
		for _, user := range users {
			friends = append(friends, newPublicUserResponse(user))
		}
	}

	c.JSON(http.StatusOK, friends)
}

// RemoveFriend godoc
// @Summary      Remove a friend
// @Description  Deletes the friendship with the given user.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        userID path int true "Friend's User ID"
// @Success      200  {object}  map[string]string "{"message": "Friend removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friends/{userID} [delete]
func RemoveFriend(c *gin.Context) {
	userID := actingUserID(c)
	friendID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	if err := social.RemoveFriendship(database.DB, userID, friendID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

// ListFriendRequests godoc
// @Summary      List friend requests
// @Description  Returns the user's pending friend requests, filtered by direction.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        direction query string false "incoming or outgoing (default both)"
// @Success      200  {array}   FriendRequestResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends/requests [get]
func ListFriendRequests(c *gin.Context) {
	userID := actingUserID(c)

	query := database.DB.Where("status = ?", models.RequestPending)
	switch c.Query("direction") {
	case "incoming":
		query = query.Where("to_user_id = ?", userID)
	case "outgoing":
		query = query.Where("from_user_id = ?", userID)
	case "":
		query = query.Where("from_user_id = ? OR to_user_id = ?", userID, userID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be incoming or outgoing"})
		return
	}

	var requests []models.FriendRequest
	if err := query.Order("created_at asc").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	responses := make([]FriendRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, newFriendRequestResponse(r))
	}

	c.JSON(http.StatusOK, responses)
}

// SendFriendRequest godoc
// @Summary      Send a friend request
// @Description  Sends a friend request to another user.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendRequestInput true "Target user"
// @Success      201  {object}  FriendRequestResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Blocked"
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Already friends or request pending"
// @Router       /friends/requests [post]
func SendFriendRequest(c *gin.Context) {
	userID := actingUserID(c)

	var input SendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := social.SendFriendRequest(database.DB, userID, input.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newFriendRequestResponse(*request))
}

// RespondFriendRequest godoc
// @Summary      Respond to or cancel a friend request
// @Description  The recipient may accept or decline a pending request; the sender may cancel it.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int                 true "Request ID"
// @Param        input body RespondRequestInput true "Action"
// @Success      200  {object}  FriendRequestResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the recipient/sender"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      409  {object}  ErrorResponse "Request no longer pending"
// @Router       /friends/requests/{id} [patch]
func RespondFriendRequest(c *gin.Context) {
	userID := actingUserID(c)
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input RespondRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var request *models.FriendRequest
	var err error
	switch social.RequestAction(input.Action) {
	case social.ActionCancel:
		request, err = social.CancelFriendRequest(database.DB, requestID, userID)
	default:
		request, err = social.RespondFriendRequest(database.DB, requestID, userID, social.RequestAction(input.Action))
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newFriendRequestResponse(*request))
}
