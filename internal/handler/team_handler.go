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

// TeamInput defines the body for creating or updating a team.
type TeamInput struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// AcceptInviteInput defines the body for redeeming an invite token.
type AcceptInviteInput struct {
	Token string `json:"token" binding:"required"`
}

// TeamResponse defines the structure for a team.
type TeamResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	OwnerID     uint                 `json:"owner_id"`
	Members     []TeamMemberResponse `json:"members,omitempty"`
}

// TeamMemberResponse defines the structure for a team member.
type TeamMemberResponse struct {
	User PublicUserResponse `json:"user"`
	Role string             `json:"role"`
}

// InviteResponse defines the structure for a team invite.
type InviteResponse struct {
	ID        uint      `json:"id"`
	Token     string    `json:"token"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newTeamResponse(team models.Team, members []models.TeamMember) TeamResponse {
	response := TeamResponse{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		OwnerID:     team.OwnerID,
	}
	for _, m := range members {
		response.Members = append(response.Members, TeamMemberResponse{
			User: newPublicUserResponse(m.User),
			Role: string(m.Role),
		})
	}
	return response
}

// endregion

// CreateTeam godoc
// @Summary      Create a team
// @Description  Creates a team with the authenticated user as its owner.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body TeamInput true "Team Info"
// @Success      201  {object}  TeamResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /teams [post]
func CreateTeam(c *gin.Context) {
	userID := actingUserID(c)

	var input TeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := social.CreateTeam(database.DB, userID, input.Name, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTeamResponse(*team, nil))
}

// ListMyTeams godoc
// @Summary      List my teams
// @Description  Returns every team the authenticated user belongs to.
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   TeamResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /teams [get]
func ListMyTeams(c *gin.Context) {
	userID := actingUserID(c)

	var memberships []models.TeamMember
	if err := database.DB.Preload("Team").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teams"})
		return
	}

	teams := make([]TeamResponse, 0, len(memberships))
	for _, m := range memberships {
		teams = append(teams, newTeamResponse(m.Team, nil))
	}

	c.JSON(http.StatusOK, teams)
}

// GetTeam godoc
// @Summary      Get a team
// @Description  Returns a team with its member list. Members only.
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Success      200  {object}  TeamResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Failure      404  {object}  ErrorResponse "Team not found"
// @Router       /teams/{id} [get]
func GetTeam(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}

	if _, err := social.RequireTeamMember(database.DB, userID, team.ID); err != nil {
		respondError(c, err)
		return
	}

	var members []models.TeamMember
	if err := database.DB.Preload("User").Where("team_id = ?", team.ID).Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, newTeamResponse(team, members))
}

// UpdateTeam godoc
// @Summary      Update a team (admins only)
// @Description  Updates the team's name and description.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int       true "Team ID"
// @Param        input body TeamInput true "New Team Info"
// @Success      200  {object}  TeamResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Insufficient permissions"
// @Failure      404  {object}  ErrorResponse "Team not found"
// @Router       /teams/{id} [put]
func UpdateTeam(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var team models.Team
	if err := database.DB.First(&team, teamID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}

	if err := social.RequireTeamAdmin(database.DB, userID, team.ID); err != nil {
		respondError(c, err)
		return
	}

	var input TeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team.Name = input.Name
	team.Description = input.Description
	if err := database.DB.Save(&team).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update team"})
		return
	}

	c.JSON(http.StatusOK, newTeamResponse(team, nil))
}

// LeaveTeam godoc
// @Summary      Leave a team
// @Description  Leaves the team. The owner can only leave when no other members remain, which deletes the team.
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Success      200  {object}  map[string]string "{"message": "Left team"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /teams/{id}/leave [post]
func LeaveTeam(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := social.LeaveTeam(database.DB, teamID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left team"})
}

// KickTeamMember godoc
// @Summary      Kick a team member (admins only)
// @Description  Removes a member from the team. The owner cannot be removed.
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "Team ID"
// @Param        userID path int true "User ID of member to kick"
// @Success      200  {object}  map[string]string "{"message": "Member removed"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /teams/{id}/members/{userID} [delete]
func KickTeamMember(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	if err := social.KickTeamMember(database.DB, teamID, memberID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// CreateTeamInvite godoc
// @Summary      Create a team invite (admins only)
// @Description  Issues a single-use invite token valid for 7 days.
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Success      201  {object}  InviteResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /teams/{id}/invites [post]
func CreateTeamInvite(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invite, err := social.CreateTeamInvite(database.DB, teamID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, InviteResponse{
		ID:        invite.ID,
		Token:     invite.Token,
		Status:    string(invite.Status),
		ExpiresAt: invite.ExpiresAt,
	})
}

// RevokeTeamInvite godoc
// @Summary      Revoke a team invite (admins only)
// @Description  Voids a pending invite token.
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id       path int true "Team ID"
// @Param        inviteID path int true "Invite ID"
// @Success      200  {object}  map[string]string "{"message": "Invite revoked"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /teams/{id}/invites/{inviteID} [delete]
func RevokeTeamInvite(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	inviteID, ok := parseIDParam(c, "inviteID")
	if !ok {
		return
	}

	if err := social.RevokeTeamInvite(database.DB, teamID, inviteID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invite revoked"})
}

// AcceptTeamInvite godoc
// @Summary      Accept a team invite
// @Description  Joins a team by redeeming a pending, unexpired invite token.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AcceptInviteInput true "Invite token"
// @Success      200  {object}  TeamResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Invite not found"
// @Failure      409  {object}  ErrorResponse "Invite used, revoked or expired"
// @Router       /teams/invites/accept [post]
func AcceptTeamInvite(c *gin.Context) {
	userID := actingUserID(c)

	var input AcceptInviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := social.AcceptTeamInvite(database.DB, input.Token, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTeamResponse(*team, nil))
}

// TeamLeaderboard godoc
// @Summary      Get the team leaderboard
// @Description  Returns each member's realized PnL, trade count and win rate, best PnL first. Members only.
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Success      200  {array}   social.LeaderboardEntry
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a member"
// @Router       /teams/{id}/leaderboard [get]
func TeamLeaderboard(c *gin.Context) {
	userID := actingUserID(c)
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := social.RequireTeamMember(database.DB, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	entries, err := social.TeamLeaderboard(database.DB, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
