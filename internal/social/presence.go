package social

import (
	"time"

	"tradecircle/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultOnlineWindow is how recent a heartbeat must be for a user to
// read as online regardless of their stored status.
const DefaultOnlineWindow = 60 * time.Second

// Heartbeat upserts the user's presence row: status online, both
// timestamps now. Last write wins.
func Heartbeat(db *gorm.DB, userID uint) error {
	now := time.Now()
	presence := models.Presence{
		UserID:    userID,
		Status:    models.StatusOnline,
		UpdatedAt: now,
		LastSeen:  now,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at", "last_seen"}),
	}).Create(&presence).Error
}

// EffectiveStatus computes the status a reader should see: online while
// the heartbeat is within the window, otherwise the stored status.
// Staleness is evaluated lazily at read time; there is no expiry worker.
func EffectiveStatus(p models.Presence, now time.Time, window time.Duration) models.PresenceStatus {
	if now.Sub(p.UpdatedAt) < window {
		return models.StatusOnline
	}
	return p.Status
}

// FriendPresence is one friend's presence as seen by the caller.
type FriendPresence struct {
	UserID   uint                  `json:"user_id"`
	Nickname string                `json:"nickname"`
	Status   models.PresenceStatus `json:"status"`
	LastSeen *time.Time            `json:"last_seen,omitempty"`
}

// FriendsPresence returns the presence of every friend of the user plus
// the count of those currently online. Friends with no presence row yet
// read as offline.
func FriendsPresence(db *gorm.DB, userID uint, now time.Time, window time.Duration) ([]FriendPresence, int, error) {
	friendIDs, err := FriendIDs(db, userID)
	if err != nil {
		return nil, 0, err
	}
	if len(friendIDs) == 0 {
		return []FriendPresence{}, 0, nil
	}

	var friends []models.User
	if err := db.Find(&friends, friendIDs).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Presence
	if err := db.Where("user_id IN ?", friendIDs).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	byUser := make(map[uint]models.Presence, len(rows))
	for _, p := range rows {
		byUser[p.UserID] = p
	}

	online := 0
	result := make([]FriendPresence, 0, len(friends))
	for _, friend := range friends {
		entry := FriendPresence{
			UserID:   friend.ID,
			Nickname: friend.Nickname,
			Status:   models.StatusOffline,
		}
		if p, ok := byUser[friend.ID]; ok {
			entry.Status = EffectiveStatus(p, now, window)
			lastSeen := p.LastSeen
			entry.LastSeen = &lastSeen
		}
		if entry.Status == models.StatusOnline {
			online++
		}
		result = append(result, entry)
	}
	return result, online, nil
}
