package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"tradecircle/backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserRouter(t *testing.T) *gin.Engine {
	t.Helper()
	router := setupTestRouter(t)

	router.POST("/api/v1/auth/register", RegisterUser)
	router.POST("/api/v1/auth/login", LoginUser)

	userRoutes := router.Group("/api/v1/users")
	userRoutes.Use(auth.AuthMiddleware())
	{
		userRoutes.GET("", SearchUsers)
	}
	blockRoutes := router.Group("/api/v1/blocks")
	blockRoutes.Use(auth.AuthMiddleware())
	{
		blockRoutes.POST("", CreateBlock)
	}
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	router := setupUserRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "",
		gin.H{"nickname": "trader1", "email": "Trader1@Example.com", "password": "password123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)

	// Registering the same nickname again conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "",
		gin.H{"nickname": "trader1", "email": "other@example.com", "password": "password123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Login works with the lowercased email too.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		gin.H{"login": "trader1@example.com", "password": "password123"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		gin.H{"login": "trader1", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchUsersExcludesBlocked(t *testing.T) {
	router := setupUserRouter(t)
	_, aliceToken := createTestUser(t, "alice")
	bob, _ := createTestUser(t, "bob")
	carol, _ := createTestUser(t, "carol")

	search := func() []PublicUserResponse {
		w := doJSON(t, router, http.MethodGet, "/api/v1/users", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var page PaginatedResponse[PublicUserResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		return page.Data
	}

	// Alice sees everyone but herself.
	results := search()
	require.Len(t, results, 2)

	// Alice blocks Bob; he disappears from her results.
	w := doJSON(t, router, http.MethodPost, "/api/v1/blocks", aliceToken,
		gin.H{"user_id": bob.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	results = search()
	require.Len(t, results, 1)
	assert.Equal(t, carol.ID, results[0].ID)
}
