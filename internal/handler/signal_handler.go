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

// RoomInput defines the body for creating a team room.
type RoomInput struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RoomResponse defines the structure for a team video room.
type RoomResponse struct {
	ID     uint   `json:"id"`
	TeamID uint   `json:"team_id"`
	Name   string `json:"name"`
}

// SignalInput defines the body for posting a signaling message.
type SignalInput struct {
	Type    string `json:"type" binding:"required"`
	Target  *uint  `json:"target,omitempty"`
	Payload string `json:"payload"`
}

// SignalResponse defines the structure for a signaling message.
type SignalResponse struct {
	ID        uint      `json:"id"`
	RoomID    uint      `json:"room_id"`
	SenderID  uint      `json:"sender_id"`
	TargetID  *uint     `json:"target_id,omitempty"`
	Type      string    `json:"type"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

func newSignalResponse(s models.RoomSignal) SignalResponse {
	return SignalResponse{
		ID:        s.ID,
		RoomID:    s.RoomID,
		SenderID:  s.SenderID,
		TargetID:  s.TargetID,
		Type:      string(s.Type),
		Payload:   s.Payload,
		CreatedAt: s.CreatedAt,
	}
}

// endregion

// CreateRoom godoc
// @Summary      Create a team room (admins only)
// @Description  Creates a video room owned by the team.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int       true "Team ID"
// @Param        input body RoomInput true "Room Info"
// @Success      201  {object}  RoomResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /teams/{id}/rooms [post]
func CreateRoom(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := social.RequireTeamAdmin(database.DB, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	var input RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := models.Room{
		TeamID:    teamID,
		Name:      input.Name,
		CreatedBy: userID,
	}
	if err := database.DB.Create(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, RoomResponse{ID: room.ID, TeamID: room.TeamID, Name: room.Name})
}

// ListRooms godoc
// @Summary      List a team's rooms
// @Description  Returns the team's video rooms. Members only.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Success      200  {array}   RoomResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Router       /teams/{id}/rooms [get]
func ListRooms(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := social.RequireTeamMember(database.DB, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	var rooms []models.Room
	if err := database.DB.Where("team_id = ?", teamID).Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}

	responses := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, RoomResponse{ID: room.ID, TeamID: room.TeamID, Name: room.Name})
	}

	c.JSON(http.StatusOK, responses)
}

// PostSignal godoc
// @Summary      Post a signaling message
// @Description  Relays a WebRTC signaling message (offer/answer/ice/control) into a room. Team members only.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int         true "Room ID"
// @Param        input body SignalInput true "Signal"
// @Success      201  {object}  SignalResponse
// @Failure      400  {object}  ErrorResponse "Invalid signal type"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Failure      404  {object}  ErrorResponse "Room not found"
// @Router       /rooms/{id}/signal [post]
func PostSignal(c *gin.Context) {
	userID := actingUserID(c)
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input SignalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signal, err := social.PostSignal(database.DB, roomID, userID, models.SignalType(input.Type), input.Target, input.Payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSignalResponse(*signal))
}

// PollSignals godoc
// @Summary      Poll signaling messages
// @Description  Returns up to 100 signals for the room, oldest first, excluding the requester's own. Clients re-poll with the newest timestamp as `since`.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int    true  "Room ID"
// @Param        since query string false "RFC3339 timestamp or unix milliseconds"
// @Success      200  {array}   SignalResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Failure      404  {object}  ErrorResponse "Room not found"
// @Router       /rooms/{id}/signal [get]
func PollSignals(c *gin.Context) {
	userID := actingUserID(c)
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	since, ok := parseSince(c)
	if !ok {
		return
	}

	signals, err := social.PollSignals(database.DB, roomID, userID, since)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]SignalResponse, 0, len(signals))
	for _, s := range signals {
		responses = append(responses, newSignalResponse(s))
	}

	c.JSON(http.StatusOK, responses)
}
