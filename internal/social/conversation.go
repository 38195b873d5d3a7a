package social

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"tradecircle/backend/internal/models"
	"tradecircle/backend/internal/ratelimit"

	"gorm.io/gorm"
)

// MaxMessageLength is the content cap for direct and team messages,
// counted in characters after trimming.
const MaxMessageLength = 1000

// MessagePageSize caps how many messages a single list call returns.
const MessagePageSize = 50

// GetOrCreateConversation returns the conversation between the acting
// user and a friend, creating it on first contact. The two failure
// causes are distinct so clients can tell "not friends" from "blocked".
func GetOrCreateConversation(db *gorm.DB, actingUser, friendID uint) (*models.Conversation, error) {
	if actingUser == friendID {
		return nil, ErrSelfTarget
	}

	blocked, err := HasBlockBetween(db, actingUser, friendID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	friends, err := AreFriends(db, actingUser, friendID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, ErrNotFriends
	}

	a, b := NormalizePair(actingUser, friendID)
	var conv models.Conversation
	err = db.Where("user_a_id = ? AND user_b_id = ?", a, b).
		FirstOrCreate(&conv, models.Conversation{UserAID: a, UserBID: b}).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ValidateMessageContent trims the content and enforces the 1–1000
// character bound, returning the trimmed text.
func ValidateMessageContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > MaxMessageLength {
		return "", ErrMessageTooLong
	}
	return trimmed, nil
}

// PostMessage appends a message to a conversation the sender belongs to,
// after content validation and the per-sender rate limit. The message
// insert and the conversation's recency bump share one transaction.
func PostMessage(db *gorm.DB, limiter ratelimit.Limiter, conversationID, sender uint, content string) (*models.Message, error) {
	var conv models.Conversation
	if err := db.First(&conv, conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !IsUserInConversation(&conv, sender) {
		return nil, ErrNotParticipant
	}

	trimmed, err := ValidateMessageContent(content)
	if err != nil {
		return nil, err
	}

	if !limiter.Allow(sender) {
		return nil, ErrRateLimited
	}

	message := models.Message{
		ConversationID: conv.ID,
		SenderID:       sender,
		Content:        trimmed,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&conv).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessages returns up to MessagePageSize messages for a conversation
// the user belongs to, oldest first, optionally restricted to messages
// created strictly after `since`.
func ListMessages(db *gorm.DB, conversationID, actingUser uint, since *time.Time) ([]models.Message, error) {
	var conv models.Conversation
	if err := db.First(&conv, conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !IsUserInConversation(&conv, actingUser) {
		return nil, ErrNotParticipant
	}

	query := db.Where("conversation_id = ?", conv.ID)
	if since != nil {
		query = query.Where("created_at > ?", *since)
	}

	var messages []models.Message
	err := query.Order("created_at asc").Limit(MessagePageSize).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListConversations returns the user's conversations, most recently
// active first.
func ListConversations(db *gorm.DB, userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := db.Preload("UserA").Preload("UserB").
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at desc").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}
