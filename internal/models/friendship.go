package models

import "time"

// Friendship is a confirmed, mutual connection between two users.
// The pair is stored normalized (UserAID < UserBID) so (A,B) and (B,A)
// map to the same row; the composite primary key enforces uniqueness.
type Friendship struct {
	UserAID   uint `gorm:"primaryKey"`
	UserBID   uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserA User `gorm:"foreignKey:UserAID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserB User `gorm:"foreignKey:UserBID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// RequestStatus defines the state of a friend request.
type RequestStatus string

const (
	// RequestPending means the request has been sent but not yet answered.
	RequestPending RequestStatus = "pending"

	// RequestAccepted means the recipient accepted; a Friendship now exists.
	RequestAccepted RequestStatus = "accepted"

	// RequestDeclined means the recipient declined the request.
	RequestDeclined RequestStatus = "declined"

	// RequestCanceled means the sender withdrew the request, or a block
	// between the pair canceled it.
	RequestCanceled RequestStatus = "canceled"
)

// FriendRequest is a directed request from one user to another.
// Accepted, declined and canceled are terminal states.
type FriendRequest struct {
	ID          uint          `gorm:"primaryKey"`
	FromUserID  uint          `gorm:"not null;index"`
	ToUserID    uint          `gorm:"not null;index"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time
	RespondedAt *time.Time

	FromUser User `gorm:"foreignKey:FromUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ToUser   User `gorm:"foreignKey:ToUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Block is a directed suppression edge: the blocker no longer sees or
// interacts with the blocked user. Creating one also tears down any
// friendship and pending requests between the pair.
type Block struct {
	BlockerID uint `gorm:"primaryKey"`
	BlockedID uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Blocker User `gorm:"foreignKey:BlockerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Blocked User `gorm:"foreignKey:BlockedID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
