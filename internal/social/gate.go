package social

import (
	"errors"

	"tradecircle/backend/internal/models"

	"gorm.io/gorm"
)

// CanMessage reports whether two users may exchange direct messages:
// they must be friends and no block may exist between them. The block
// check is defense in depth, since creating a block already deletes the
// friendship.
func CanMessage(db *gorm.DB, u1, u2 uint) (bool, error) {
	friends, err := AreFriends(db, u1, u2)
	if err != nil {
		return false, err
	}
	if !friends {
		return false, nil
	}
	blocked, err := HasBlockBetween(db, u1, u2)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// IsUserInConversation reports whether the user is one of the two
// participants of the conversation.
func IsUserInConversation(conv *models.Conversation, userID uint) bool {
	return conv.UserAID == userID || conv.UserBID == userID
}

// TeamRole returns the user's role in the team, or nil when the user is
// not a member.
func TeamRole(db *gorm.DB, userID, teamID uint) (*models.TeamRole, error) {
	var member models.TeamMember
	err := db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member.Role, nil
}

// RequireTeamMember fails with ErrNotMember unless the user belongs to
// the team.
func RequireTeamMember(db *gorm.DB, userID, teamID uint) (models.TeamRole, error) {
	role, err := TeamRole(db, userID, teamID)
	if err != nil {
		return "", err
	}
	if role == nil {
		return "", ErrNotMember
	}
	return *role, nil
}

// RequireTeamAdmin fails unless the user is the team's owner or an admin.
func RequireTeamAdmin(db *gorm.DB, userID, teamID uint) error {
	role, err := RequireTeamMember(db, userID, teamID)
	if err != nil {
		return err
	}
	if role != models.RoleOwner && role != models.RoleAdmin {
		return ErrInsufficientRole
	}
	return nil
}
