package handler

import (
	"net/http"
	"time"

	"tradecircle/backend/internal/config"
	"tradecircle/backend/internal/database"
	"tradecircle/backend/internal/social"

	"github.com/gin-gonic/gin"
)

// onlineWindow returns the configured heartbeat freshness window.
func onlineWindow() time.Duration {
	if config.AppConfig != nil && config.AppConfig.PresenceOnlineWindowSeconds > 0 {
		return time.Duration(config.AppConfig.PresenceOnlineWindowSeconds) * time.Second
	}
	return social.DefaultOnlineWindow
}

// Heartbeat godoc
// @Summary      Send a presence heartbeat
// @Description  Marks the authenticated user online. Clients send this periodically; there is no explicit logout signal.
// @Tags         presence
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string "{"message": "ok"}"
// @Failure      401  {object}  ErrorResponse
// @Router       /presence/heartbeat [post]
func Heartbeat(c *gin.Context) {
	userID := actingUserID(c)

	if err := social.Heartbeat(database.DB, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// FriendsPresence godoc
// @Summary      Get friends' presence
// @Description  Returns each friend's effective status plus a count of those currently online.
// @Tags         presence
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "{"friends": [...], "online_count": 2}"
// @Failure      401  {object}  ErrorResponse
// @Router       /presence/friends [get]
func FriendsPresence(c *gin.Context) {
	userID := actingUserID(c)

	friends, onlineCount, err := social.FriendsPresence(database.DB, userID, time.Now(), onlineWindow())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"friends":      friends,
		"online_count": onlineCount,
	})
}
