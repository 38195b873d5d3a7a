package models

import (
	"time"

	"gorm.io/gorm"
)

// Team is a group of traders with shared chat, rooms and a leaderboard.
type Team struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"`
	Description string
	OwnerID     uint `gorm:"not null"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

// TeamRole defines a member's permission level within a team.
type TeamRole string

const (
	RoleOwner  TeamRole = "owner"
	RoleAdmin  TeamRole = "admin"
	RoleMember TeamRole = "member"
)

// TeamMember links a user to a team with a role.
type TeamMember struct {
	TeamID    uint     `gorm:"primaryKey"`
	UserID    uint     `gorm:"primaryKey"`
	Role      TeamRole `gorm:"type:varchar(20);not null;default:'member'"`
	CreatedAt time.Time

	Team Team `gorm:"foreignKey:TeamID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// InviteStatus defines the state of a team invite token.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRevoked  InviteStatus = "revoked"
)

// TeamInvite is a single-use token that grants team membership when
// accepted before its expiry.
type TeamInvite struct {
	gorm.Model
	TeamID    uint         `gorm:"not null;index"`
	InviterID uint         `gorm:"not null"`
	Token     string       `gorm:"size:36;uniqueIndex;not null"`
	Status    InviteStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ExpiresAt time.Time    `gorm:"not null"`

	Team    Team `gorm:"foreignKey:TeamID"`
	Inviter User `gorm:"foreignKey:InviterID"`
}

// TeamMessage is a chat message scoped to a team rather than a pair.
type TeamMessage struct {
	gorm.Model
	TeamID   uint   `gorm:"not null;index"`
	SenderID uint   `gorm:"not null"`
	Content  string `gorm:"size:1000;not null"`

	Sender User `gorm:"foreignKey:SenderID"`
}
