package models

import "gorm.io/gorm"

// Room is a team's video room. Signaling messages are scoped to a room
// and authorized against the owning team's membership.
type Room struct {
	gorm.Model
	TeamID    uint   `gorm:"not null;index"`
	Name      string `gorm:"size:255;not null"`
	CreatedBy uint   `gorm:"not null"`

	Team Team `gorm:"foreignKey:TeamID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// SignalType tags a WebRTC signaling message.
type SignalType string

const (
	SignalOffer      SignalType = "offer"
	SignalAnswer     SignalType = "answer"
	SignalICE        SignalType = "ice"
	SignalJoin       SignalType = "join"
	SignalLeave      SignalType = "leave"
	SignalShareStart SignalType = "share_start"
	SignalShareStop  SignalType = "share_stop"
)

// ValidSignalType reports whether t is one of the known signal types.
func ValidSignalType(t SignalType) bool {
	switch t {
	case SignalOffer, SignalAnswer, SignalICE, SignalJoin, SignalLeave, SignalShareStart, SignalShareStop:
		return true
	}
	return false
}

// RoomSignal is an ephemeral signaling message relayed through the store.
// TargetID is nil for room-wide broadcasts. Rows are append-only and read
// back by clients polling with a `since` cursor.
type RoomSignal struct {
	gorm.Model
	RoomID   uint       `gorm:"not null;index"`
	SenderID uint       `gorm:"not null"`
	TargetID *uint      `gorm:"index"`
	Type     SignalType `gorm:"type:varchar(20);not null"`
	Payload  string     `gorm:"type:text"`
}
