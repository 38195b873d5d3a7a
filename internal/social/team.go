package social

import (
	"errors"
	"time"

	"tradecircle/backend/internal/models"
	"tradecircle/backend/internal/ratelimit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InviteTTL is how long a team invite token stays valid.
const InviteTTL = 7 * 24 * time.Hour

// CreateTeam creates a team and enrolls the creator as its owner in one
// transaction.
func CreateTeam(db *gorm.DB, ownerID uint, name, description string) (*models.Team, error) {
	team := models.Team{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		member := models.TeamMember{
			TeamID: team.ID,
			UserID: ownerID,
			Role:   models.RoleOwner,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// CreateTeamInvite issues a pending invite token for the team. Only
// owners and admins may invite.
func CreateTeamInvite(db *gorm.DB, teamID, inviterID uint) (*models.TeamInvite, error) {
	if err := RequireTeamAdmin(db, inviterID, teamID); err != nil {
		return nil, err
	}

	invite := models.TeamInvite{
		TeamID:    teamID,
		InviterID: inviterID,
		Token:     uuid.NewString(),
		Status:    models.InvitePending,
		ExpiresAt: time.Now().Add(InviteTTL),
	}
	if err := db.Create(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// AcceptTeamInvite redeems a pending, unexpired invite token for the
// acting user. Marking the invite accepted and adding the member happen
// in one transaction; a token is single-use.
func AcceptTeamInvite(db *gorm.DB, token string, userID uint) (*models.Team, error) {
	var invite models.TeamInvite
	if err := db.Where("token = ?", token).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}

	if invite.Status != models.InvitePending {
		return nil, ErrInviteInvalid
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, ErrInviteExpired
	}

	role, err := TeamRole(db, userID, invite.TeamID)
	if err != nil {
		return nil, err
	}
	if role != nil {
		return nil, ErrAlreadyMember
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&invite).Update("status", models.InviteAccepted).Error; err != nil {
			return err
		}
		member := models.TeamMember{
			TeamID: invite.TeamID,
			UserID: userID,
			Role:   models.RoleMember,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	var team models.Team
	if err := db.First(&team, invite.TeamID).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// RevokeTeamInvite voids a pending invite. Only owners and admins may
// revoke.
func RevokeTeamInvite(db *gorm.DB, teamID, inviteID, actingUser uint) error {
	if err := RequireTeamAdmin(db, actingUser, teamID); err != nil {
		return err
	}

	var invite models.TeamInvite
	err := db.Where("id = ? AND team_id = ?", inviteID, teamID).First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInviteNotFound
	}
	if err != nil {
		return err
	}
	if invite.Status != models.InvitePending {
		return ErrInviteInvalid
	}
	return db.Model(&invite).Update("status", models.InviteRevoked).Error
}

// KickTeamMember removes a member from the team. Only owners and admins
// may kick; the owner can never be removed.
func KickTeamMember(db *gorm.DB, teamID, memberID, actingUser uint) error {
	if err := RequireTeamAdmin(db, actingUser, teamID); err != nil {
		return err
	}

	role, err := TeamRole(db, memberID, teamID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrNotMember
	}
	if *role == models.RoleOwner {
		return ErrOwnerImmovable
	}

	return db.Where("team_id = ? AND user_id = ?", teamID, memberID).
		Delete(&models.TeamMember{}).Error
}

// LeaveTeam removes the acting user from the team. The owner cannot
// leave while other members remain; a sole owner leaving deletes the
// team with its membership.
func LeaveTeam(db *gorm.DB, teamID, userID uint) error {
	role, err := TeamRole(db, userID, teamID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrNotMember
	}

	if *role != models.RoleOwner {
		return db.Where("team_id = ? AND user_id = ?", teamID, userID).
			Delete(&models.TeamMember{}).Error
	}

	var others int64
	err = db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id <> ?", teamID, userID).
		Count(&others).Error
	if err != nil {
		return err
	}
	if others > 0 {
		return ErrOwnerImmovable
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, teamID).Error
	})
}

// PostTeamMessage appends a chat message to the team channel, applying
// the same content validation and rate limit as direct messages.
func PostTeamMessage(db *gorm.DB, limiter ratelimit.Limiter, teamID, sender uint, content string) (*models.TeamMessage, error) {
	if _, err := RequireTeamMember(db, sender, teamID); err != nil {
		return nil, err
	}

	trimmed, err := ValidateMessageContent(content)
	if err != nil {
		return nil, err
	}

	if !limiter.Allow(sender) {
		return nil, ErrRateLimited
	}

	message := models.TeamMessage{
		TeamID:   teamID,
		SenderID: sender,
		Content:  trimmed,
	}
	if err := db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListTeamMessages returns up to MessagePageSize team messages, oldest
// first, optionally restricted to messages created strictly after
// `since`. Membership required.
func ListTeamMessages(db *gorm.DB, teamID, actingUser uint, since *time.Time) ([]models.TeamMessage, error) {
	if _, err := RequireTeamMember(db, actingUser, teamID); err != nil {
		return nil, err
	}

	query := db.Preload("Sender").Where("team_id = ?", teamID)
	if since != nil {
		query = query.Where("created_at > ?", *since)
	}

	var messages []models.TeamMessage
	err := query.Order("created_at asc").Limit(MessagePageSize).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// LeaderboardEntry is one member's aggregate standing in the team.
type LeaderboardEntry struct {
	UserID     uint    `json:"user_id"`
	Nickname   string  `json:"nickname"`
	TotalPnl   float64 `json:"total_pnl"`
	TradeCount int64   `json:"trade_count"`
	WinRate    float64 `json:"win_rate"`
}

// TeamLeaderboard aggregates realized PnL per team member over closed
// trades, best total first. Members without closed trades still appear.
func TeamLeaderboard(db *gorm.DB, teamID uint) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := db.Raw(`
		SELECT u.id AS user_id,
		       u.nickname AS nickname,
		       COALESCE(SUM(t.pnl), 0) AS total_pnl,
		       COUNT(t.id) AS trade_count,
		       COALESCE(AVG(CASE WHEN t.pnl > 0 THEN 1.0 ELSE 0.0 END), 0) AS win_rate
		FROM team_members tm
		JOIN users u ON u.id = tm.user_id
		LEFT JOIN trades t ON t.user_id = u.id AND t.pnl IS NOT NULL AND t.deleted_at IS NULL
		WHERE tm.team_id = ?
		GROUP BY u.id, u.nickname
		ORDER BY total_pnl DESC`, teamID).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
