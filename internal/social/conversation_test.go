package social

import (
	"strings"
	"testing"
	"time"

	"tradecircle/backend/internal/models"
	"tradecircle/backend/internal/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openLimiter never rejects; used where rate limiting is not under test.
func openLimiter() ratelimit.Limiter {
	return ratelimit.NewWindow(1000000, time.Hour)
}

func startConversation(t *testing.T, db *gorm.DB, a, b uint) *models.Conversation {
	t.Helper()
	befriend(t, db, a, b)
	conv, err := GetOrCreateConversation(db, a, b)
	require.NoError(t, err)
	return conv
}

func TestGetOrCreateConversationRequiresFriendship(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := GetOrCreateConversation(db, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFriends)
}

func TestGetOrCreateConversationDistinguishesBlocked(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	require.NoError(t, UpsertBlock(db, bob.ID, alice.ID))

	_, err := GetOrCreateConversation(db, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestGetOrCreateConversationPairKeyed(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	conv := startConversation(t, db, alice.ID, bob.ID)

	// The reverse direction resolves to the same conversation.
	reverse, err := GetOrCreateConversation(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, reverse.ID)

	var count int64
	require.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostMessageContentBounds(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	conv := startConversation(t, db, alice.ID, bob.ID)

	_, err := PostMessage(db, openLimiter(), conv.ID, alice.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = PostMessage(db, openLimiter(), conv.ID, alice.ID, strings.Repeat("a", 1001))
	assert.ErrorIs(t, err, ErrMessageTooLong)

	_, err = PostMessage(db, openLimiter(), conv.ID, alice.ID, "x")
	assert.NoError(t, err)

	_, err = PostMessage(db, openLimiter(), conv.ID, alice.ID, strings.Repeat("a", 1000))
	assert.NoError(t, err)
}

func TestPostMessageOutsiderForbidden(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	conv := startConversation(t, db, alice.ID, bob.ID)

	_, err := PostMessage(db, openLimiter(), conv.ID, carol.ID, "hi")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = ListMessages(db, conv.ID, carol.ID, nil)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestPostMessageUnknownConversation(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")

	_, err := PostMessage(db, openLimiter(), 42, alice.ID, "hi")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestPostMessageRateLimited(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	conv := startConversation(t, db, alice.ID, bob.ID)

	limiter := ratelimit.NewWindow(2, time.Minute)

	_, err := PostMessage(db, limiter, conv.ID, alice.ID, "one")
	require.NoError(t, err)
	_, err = PostMessage(db, limiter, conv.ID, alice.ID, "two")
	require.NoError(t, err)
	_, err = PostMessage(db, limiter, conv.ID, alice.ID, "three")
	assert.ErrorIs(t, err, ErrRateLimited)

	// The other participant has their own budget.
	_, err = PostMessage(db, limiter, conv.ID, bob.ID, "still fine")
	assert.NoError(t, err)
}

func TestPostMessageBumpsConversation(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	conv := startConversation(t, db, alice.ID, bob.ID)
	before := conv.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	_, err := PostMessage(db, openLimiter(), conv.ID, alice.ID, "bump")
	require.NoError(t, err)

	var reloaded models.Conversation
	require.NoError(t, db.First(&reloaded, conv.ID).Error)
	assert.True(t, reloaded.UpdatedAt.After(before))
}

func TestListMessagesSinceCursor(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	conv := startConversation(t, db, alice.ID, bob.ID)

	first, err := PostMessage(db, openLimiter(), conv.ID, alice.ID, "first")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = PostMessage(db, openLimiter(), conv.ID, bob.ID, "second")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = PostMessage(db, openLimiter(), conv.ID, alice.ID, "third")
	require.NoError(t, err)

	all, err := ListMessages(db, conv.ID, bob.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Content)
	assert.Equal(t, "third", all[2].Content)

	// Strictly greater than the cursor: the first message is excluded.
	since := first.CreatedAt
	newer, err := ListMessages(db, conv.ID, bob.ID, &since)
	require.NoError(t, err)
	require.Len(t, newer, 2)
	assert.Equal(t, "second", newer[0].Content)
}

func TestListMessagesPageCap(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	conv := startConversation(t, db, alice.ID, bob.ID)

	for i := 0; i < MessagePageSize+5; i++ {
		_, err := PostMessage(db, openLimiter(), conv.ID, alice.ID, "spam")
		require.NoError(t, err)
	}

	messages, err := ListMessages(db, conv.ID, bob.ID, nil)
	require.NoError(t, err)
	assert.Len(t, messages, MessagePageSize)
}

func TestDirectMessageFlow(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := SendFriendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = RespondFriendRequest(db, request.ID, bob.ID, ActionAccept)
	require.NoError(t, err)

	conv, err := GetOrCreateConversation(db, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = PostMessage(db, openLimiter(), conv.ID, alice.ID, "hello")
	require.NoError(t, err)

	messages, err := ListMessages(db, conv.ID, bob.ID, nil)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, alice.ID, messages[0].SenderID)
}
