package models

import "time"

// PresenceStatus is the stored presence state for a user.
type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusAway    PresenceStatus = "away"
	StatusOffline PresenceStatus = "offline"
)

// Presence is a last-write-wins heartbeat record, one row per user.
// A user reads as online while the last heartbeat is recent enough;
// the stored status is only a fallback for stale rows.
type Presence struct {
	UserID    uint           `gorm:"primaryKey"`
	Status    PresenceStatus `gorm:"type:varchar(20);not null;default:'offline'"`
	UpdatedAt time.Time
	LastSeen  time.Time

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
