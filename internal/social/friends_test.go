package social

import (
	"testing"

	"tradecircle/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFriendRequestRejectsSelf(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")

	_, err := SendFriendRequest(db, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfTarget)
}

func TestSendFriendRequestUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")

	_, err := SendFriendRequest(db, alice.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendFriendRequestDuplicatePending(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := SendFriendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	// Same direction
	_, err = SendFriendRequest(db, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrRequestExists)

	// Opposite direction collapses too
	_, err = SendFriendRequest(db, bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrRequestExists)
}

func TestRespondFriendRequestOnlyRecipient(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := SendFriendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	// The sender cannot accept their own request.
	_, err = RespondFriendRequest(db, request.ID, alice.ID, ActionAccept)
	assert.ErrorIs(t, err, ErrNotRecipient)
}

func TestAcceptCreatesSingleFriendship(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := SendFriendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	accepted, err := RespondFriendRequest(db, request.ID, bob.ID, ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, accepted.Status)
	assert.NotNil(t, accepted.RespondedAt)

	friends, err := AreFriends(db, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, friends)

	var count int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A terminal request cannot be answered again.
	_, err = RespondFriendRequest(db, request.ID, bob.ID, ActionAccept)
	assert.ErrorIs(t, err, ErrNotPending)

	// The reverse direction can never create a second row.
	_, err = SendFriendRequest(db, bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrAlreadyFriends)
}

func TestDeclineLeavesNoFriendship(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := SendFriendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	declined, err := RespondFriendRequest(db, request.ID, bob.ID, ActionDecline)
	require.NoError(t, err)
	assert.Equal(t, models.RequestDeclined, declined.Status)
	assert.NotNil(t, declined.RespondedAt)

	friends, err := AreFriends(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, friends)
}

func TestCancelFriendRequestOnlySender(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	request, err := SendFriendRequest(db, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = CancelFriendRequest(db, request.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotSender)

	canceled, err := CancelFriendRequest(db, request.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestCanceled, canceled.Status)

	_, err = CancelFriendRequest(db, request.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestRemoveFriendship(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	befriend(t, db, alice.ID, bob.ID)

	require.NoError(t, RemoveFriendship(db, bob.ID, alice.ID))

	friends, err := AreFriends(db, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, friends)

	assert.ErrorIs(t, RemoveFriendship(db, bob.ID, alice.ID), ErrFriendshipAbsent)
}

func TestFriendIDs(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	befriend(t, db, alice.ID, bob.ID)
	befriend(t, db, carol.ID, alice.ID)

	ids, err := FriendIDs(db, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{bob.ID, carol.ID}, ids)

	ids, err = FriendIDs(db, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID}, ids)
}
