package handler

import (
	"net/http"

	"tradecircle/backend/internal/database"
	"tradecircle/backend/internal/models"
	"tradecircle/backend/internal/social"

	"github.com/gin-gonic/gin"
)

// BlockInput defines the body for blocking a user.
type BlockInput struct {
	UserID uint `json:"user_id" binding:"required"`
}

// ListBlocks godoc
// @Summary      List blocked users
// @Description  Returns the users the authenticated user has blocked.
// @Tags         blocks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /blocks [get]
func ListBlocks(c *gin.Context) {
	userID := actingUserID(c)

	blockedIDs, err := social.BlockedIDs(database.DB, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	blocked := []PublicUserResponse{}
	if len(blockedIDs) > 0 {
		var users []models.User
		if err := database.DB.Find(&users, blockedIDs).Error; err != nil {
			respondError(c, err)
			return
		}
		for _, user := range users {
			blocked = append(blocked, newPublicUserResponse(user))
		}
	}

	c.JSON(http.StatusOK, blocked)
}

// CreateBlock godoc
// @Summary      Block a user
// @Description  Blocks a user, removing any friendship and canceling pending requests between the pair. Idempotent.
// @Tags         blocks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body BlockInput true "Target user"
// @Success      201  {object}  map[string]string "{"message": "User blocked"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /blocks [post]
func CreateBlock(c *gin.Context) {
	userID := actingUserID(c)

	var input BlockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := social.UpsertBlock(database.DB, userID, input.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User blocked"})
}

// RemoveBlock godoc
// @Summary      Unblock a user
// @Description  Removes a block. Does not restore any prior friendship.
// @Tags         blocks
// @Produce      json
// @Security     BearerAuth
// @Param        userID path int true "Blocked User ID"
// @Success      200  {object}  map[string]string "{"message": "User unblocked"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Block not found"
// @Router       /blocks/{userID} [delete]
func RemoveBlock(c *gin.Context) {
	userID := actingUserID(c)
	blockedID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	if err := social.RemoveBlock(database.DB, userID, blockedID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}
