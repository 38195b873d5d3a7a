package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradecircle/backend/internal/auth"
	"tradecircle/backend/internal/config"
	"tradecircle/backend/internal/database"
	"tradecircle/backend/internal/models"
	"tradecircle/backend/internal/ratelimit"
	"tradecircle/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection would see a separate empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	ratelimit.Chat = ratelimit.NewWindow(100, time.Minute)

	router := gin.New()
	friendRoutes := router.Group("/api/v1/friends")
	friendRoutes.Use(auth.AuthMiddleware())
	{
		friendRoutes.GET("", ListFriends)
		friendRoutes.POST("/requests", SendFriendRequest)
		friendRoutes.PATCH("/requests/:id", RespondFriendRequest)
	}
	chatRoutes := router.Group("/api/v1/chat")
	chatRoutes.Use(auth.AuthMiddleware())
	{
		chatRoutes.POST("/start", StartConversation)
		chatRoutes.GET("/conversations/:id/messages", ListMessages)
		chatRoutes.POST("/conversations/:id/messages", PostMessage)
	}
	return router
}

func createTestUser(t *testing.T, nickname string) (models.User, string) {
	t.Helper()
	user := models.User{
		Nickname:     nickname,
		Email:        nickname + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, database.DB.Create(&user).Error)
	token, err := jwt.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/friends", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/friends", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFriendRequestToFirstMessage(t *testing.T) {
	router := setupTestRouter(t)
	_, aliceToken := createTestUser(t, "alice")
	bob, bobToken := createTestUser(t, "bob")

	// Alice sends Bob a friend request.
	w := doJSON(t, router, http.MethodPost, "/api/v1/friends/requests", aliceToken,
		gin.H{"user_id": bob.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var request FriendRequestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &request))
	assert.Equal(t, "pending", request.Status)

	// Bob accepts it.
	w = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/api/v1/friends/requests/%d", request.ID), bobToken,
		gin.H{"action": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Alice opens a conversation.
	w = doJSON(t, router, http.MethodPost, "/api/v1/chat/start", aliceToken,
		gin.H{"friend_id": bob.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var started struct {
		ConversationID uint `json:"conversation_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))
	require.NotZero(t, started.ConversationID)

	// Alice says hello.
	w = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/chat/conversations/%d/messages", started.ConversationID),
		aliceToken, gin.H{"content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Bob reads the conversation from the start.
	w = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/chat/conversations/%d/messages?since=0", started.ConversationID),
		bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var messages []MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Content)
}

func TestStartConversationWithStranger(t *testing.T) {
	router := setupTestRouter(t)
	_, aliceToken := createTestUser(t, "alice")
	bob, _ := createTestUser(t, "bob")

	w := doJSON(t, router, http.MethodPost, "/api/v1/chat/start", aliceToken,
		gin.H{"friend_id": bob.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
