package models

import "gorm.io/gorm"

// Conversation is a two-party direct-message channel, keyed by the
// normalized participant pair. UpdatedAt is bumped on every new message
// so conversation lists can be ordered by recency.
type Conversation struct {
	gorm.Model
	UserAID uint `gorm:"not null;uniqueIndex:idx_conversation_pair"`
	UserBID uint `gorm:"not null;uniqueIndex:idx_conversation_pair"`

	UserA User `gorm:"foreignKey:UserAID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserB User `gorm:"foreignKey:UserBID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Message is a single immutable direct message within a conversation.
type Message struct {
	gorm.Model
	ConversationID uint   `gorm:"not null;index"`
	SenderID       uint   `gorm:"not null"`
	Content        string `gorm:"size:1000;not null"`

	Sender User `gorm:"foreignKey:SenderID"`
}
