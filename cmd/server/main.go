package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"tradecircle/backend/internal/auth"
	"tradecircle/backend/internal/config"
	"tradecircle/backend/internal/database"
	"tradecircle/backend/internal/handler"
	"tradecircle/backend/internal/ratelimit"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           TradeCircle API
// @version         1.0
// @description     This is the API for the TradeCircle trading journal service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Configure the chat rate limiter from config
	ratelimit.Chat = ratelimit.NewWindow(
		config.AppConfig.ChatRateLimit,
		time.Duration(config.AppConfig.ChatRateWindowSeconds)*time.Second,
	)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.GET("/:id", handler.GetUserByID)
		}

		// Friend routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.GET("", handler.ListFriends)
			friendRoutes.DELETE("/:userID", handler.RemoveFriend)
			friendRoutes.GET("/requests", handler.ListFriendRequests)
			friendRoutes.POST("/requests", handler.SendFriendRequest)
			friendRoutes.PATCH("/requests/:id", handler.RespondFriendRequest)
		}

		// Block routes (protected)
		blockRoutes := apiV1.Group("/blocks")
		blockRoutes.Use(auth.AuthMiddleware())
		{
			blockRoutes.GET("", handler.ListBlocks)
			blockRoutes.POST("", handler.CreateBlock)
			blockRoutes.DELETE("/:userID", handler.RemoveBlock)
		}

		// Chat routes (protected)
		chatRoutes := apiV1.Group("/chat")
		chatRoutes.Use(auth.AuthMiddleware())
		{
			chatRoutes.POST("/start", handler.StartConversation)
			chatRoutes.GET("/conversations", handler.ListConversations)
			chatRoutes.GET("/conversations/:id/messages", handler.ListMessages)
			chatRoutes.POST("/conversations/:id/messages", handler.PostMessage)
		}

		// Presence routes (protected)
		presenceRoutes := apiV1.Group("/presence")
		presenceRoutes.Use(auth.AuthMiddleware())
		{
			presenceRoutes.POST("/heartbeat", handler.Heartbeat)
			presenceRoutes.GET("/friends", handler.FriendsPresence)
		}

		// Team routes (protected)
		teamRoutes := apiV1.Group("/teams")
		teamRoutes.Use(auth.AuthMiddleware())
		{
			teamRoutes.POST("", handler.CreateTeam)
			teamRoutes.GET("", handler.ListMyTeams)
			teamRoutes.POST("/invites/accept", handler.AcceptTeamInvite) // Must be before /:id
			teamRoutes.GET("/:id", handler.GetTeam)
			teamRoutes.PUT("/:id", handler.UpdateTeam)
			teamRoutes.POST("/:id/leave", handler.LeaveTeam)
			teamRoutes.DELETE("/:id/members/:userID", handler.KickTeamMember)
			teamRoutes.POST("/:id/invites", handler.CreateTeamInvite)
			teamRoutes.DELETE("/:id/invites/:inviteID", handler.RevokeTeamInvite)
			teamRoutes.GET("/:id/messages", handler.ListTeamMessages)
			teamRoutes.POST("/:id/messages", handler.PostTeamMessage)
			teamRoutes.GET("/:id/messages/stream", handler.StreamTeamMessages)
			teamRoutes.GET("/:id/rooms", handler.ListRooms)
			teamRoutes.POST("/:id/rooms", handler.CreateRoom)
			teamRoutes.GET("/:id/leaderboard", handler.TeamLeaderboard)
		}

		// Room signaling routes (protected)
		roomRoutes := apiV1.Group("/rooms")
		roomRoutes.Use(auth.AuthMiddleware())
		{
			roomRoutes.GET("/:id/signal", handler.PollSignals)
			roomRoutes.POST("/:id/signal", handler.PostSignal)
		}

		// Trade journal routes (protected)
		tradeRoutes := apiV1.Group("/trades")
		tradeRoutes.Use(auth.AuthMiddleware())
		{
			tradeRoutes.POST("", handler.CreateTrade)
			tradeRoutes.GET("", handler.ListTrades)
			tradeRoutes.GET("/:id", handler.GetTrade)
			tradeRoutes.PUT("/:id", handler.UpdateTrade)
			tradeRoutes.DELETE("/:id", handler.DeleteTrade)
		}
	}

	fmt.Println("Server is running on :8080")
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(":8080"))
}
