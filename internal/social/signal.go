package social

import (
	"errors"
	"time"

	"tradecircle/backend/internal/models"

	"gorm.io/gorm"
)

// SignalPageSize caps how many signals a single poll returns.
const SignalPageSize = 100

// PostSignal persists a signaling message for a team's room. The sender
// must belong to the room's owning team and the type must be one of the
// known signal types.
func PostSignal(db *gorm.DB, roomID, sender uint, sigType models.SignalType, target *uint, payload string) (*models.RoomSignal, error) {
	if !models.ValidSignalType(sigType) {
		return nil, ErrInvalidSignalType
	}

	var room models.Room
	if err := db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if _, err := RequireTeamMember(db, sender, room.TeamID); err != nil {
		return nil, err
	}

	signal := models.RoomSignal{
		RoomID:   room.ID,
		SenderID: sender,
		TargetID: target,
		Type:     sigType,
		Payload:  payload,
	}
	if err := db.Create(&signal).Error; err != nil {
		return nil, err
	}
	return &signal, nil
}

// PollSignals returns up to SignalPageSize signals for the room, oldest
// first, excluding the requester's own rows and, when `since` is given,
// only rows created strictly after it. Clients re-poll periodically;
// there is no push channel.
func PollSignals(db *gorm.DB, roomID, requester uint, since *time.Time) ([]models.RoomSignal, error) {
	var room models.Room
	if err := db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if _, err := RequireTeamMember(db, requester, room.TeamID); err != nil {
		return nil, err
	}

	query := db.Where("room_id = ? AND sender_id <> ?", room.ID, requester)
	if since != nil {
		query = query.Where("created_at > ?", *since)
	}

	var signals []models.RoomSignal
	err := query.Order("created_at asc").Limit(SignalPageSize).Find(&signals).Error
	if err != nil {
		return nil, err
	}
	return signals, nil
}
