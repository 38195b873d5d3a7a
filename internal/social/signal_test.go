package social

import (
	"testing"
	"time"

	"tradecircle/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createRoom(t *testing.T, db *gorm.DB, teamID, creator uint) models.Room {
	t.Helper()
	room := models.Room{TeamID: teamID, Name: "main", CreatedBy: creator}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func TestPostSignalValidation(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	carol := createUser(t, db, "carol")

	team, err := CreateTeam(db, alice.ID, "alpha", "")
	require.NoError(t, err)
	room := createRoom(t, db, team.ID, alice.ID)

	_, err = PostSignal(db, room.ID, alice.ID, "telepathy", nil, "{}")
	assert.ErrorIs(t, err, ErrInvalidSignalType)

	_, err = PostSignal(db, room.ID, carol.ID, models.SignalJoin, nil, "{}")
	assert.ErrorIs(t, err, ErrNotMember)

	_, err = PostSignal(db, 9999, alice.ID, models.SignalJoin, nil, "{}")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	signal, err := PostSignal(db, room.ID, alice.ID, models.SignalOffer, nil, `{"sdp":"..."}`)
	require.NoError(t, err)
	assert.Equal(t, models.SignalOffer, signal.Type)
}

func TestPollSignalsExcludesRequester(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	team, err := CreateTeam(db, alice.ID, "alpha", "")
	require.NoError(t, err)
	joinTeam(t, db, team.ID, alice.ID, bob.ID)
	room := createRoom(t, db, team.ID, alice.ID)

	_, err = PostSignal(db, room.ID, alice.ID, models.SignalJoin, nil, "{}")
	require.NoError(t, err)
	_, err = PostSignal(db, room.ID, alice.ID, models.SignalOffer, &bob.ID, "{}")
	require.NoError(t, err)
	_, err = PostSignal(db, room.ID, bob.ID, models.SignalAnswer, &alice.ID, "{}")
	require.NoError(t, err)

	// Alice only sees Bob's signal; clients don't need their own echoes.
	forAlice, err := PollSignals(db, room.ID, alice.ID, nil)
	require.NoError(t, err)
	require.Len(t, forAlice, 1)
	assert.Equal(t, models.SignalAnswer, forAlice[0].Type)

	forBob, err := PollSignals(db, room.ID, bob.ID, nil)
	require.NoError(t, err)
	assert.Len(t, forBob, 2)
}

func TestPollSignalsSinceCursor(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	team, err := CreateTeam(db, alice.ID, "alpha", "")
	require.NoError(t, err)
	joinTeam(t, db, team.ID, alice.ID, bob.ID)
	room := createRoom(t, db, team.ID, alice.ID)

	first, err := PostSignal(db, room.ID, alice.ID, models.SignalJoin, nil, "{}")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = PostSignal(db, room.ID, alice.ID, models.SignalICE, nil, "{}")
	require.NoError(t, err)

	// Only strictly newer rows come back.
	since := first.CreatedAt
	signals, err := PollSignals(db, room.ID, bob.ID, &since)
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, models.SignalICE, signals[0].Type)
}

func TestPollSignalsRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	carol := createUser(t, db, "carol")

	team, err := CreateTeam(db, alice.ID, "alpha", "")
	require.NoError(t, err)
	room := createRoom(t, db, team.ID, alice.ID)

	_, err = PollSignals(db, room.ID, carol.ID, nil)
	assert.ErrorIs(t, err, ErrNotMember)
}
