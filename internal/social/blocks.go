package social

import (
	"errors"
	"time"

	"tradecircle/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertBlock creates a block from blocker to blocked. The block, the
// deletion of any friendship and the cancellation of any pending requests
// between the pair are applied in one transaction; blocking an already
// blocked user is a no-op.
func UpsertBlock(db *gorm.DB, blocker, blocked uint) error {
	if blocker == blocked {
		return ErrSelfTarget
	}

	var target models.User
	if err := db.First(&target, blocked).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		a, b := NormalizePair(blocker, blocked)
		if err := tx.Where("user_a_id = ? AND user_b_id = ?", a, b).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}

		now := time.Now()
		err := tx.Model(&models.FriendRequest{}).
			Where("status = ?", models.RequestPending).
			Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", blocker, blocked, blocked, blocker).
			Updates(map[string]interface{}{
				"status":       models.RequestCanceled,
				"responded_at": now,
			}).Error
		if err != nil {
			return err
		}

		block := models.Block{BlockerID: blocker, BlockedID: blocked}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&block).Error
	})
}

// RemoveBlock deletes a block. It does not restore any friendship the
// block tore down.
func RemoveBlock(db *gorm.DB, blocker, blocked uint) error {
	result := db.Where("blocker_id = ? AND blocked_id = ?", blocker, blocked).
		Delete(&models.Block{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlockNotFound
	}
	return nil
}

// HasBlockBetween reports whether a block exists between two users in
// either direction.
func HasBlockBetween(db *gorm.DB, u1, u2 uint) (bool, error) {
	var count int64
	err := db.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", u1, u2, u2, u1).
		Count(&count).Error
	return count > 0, err
}

// BlockedIDs returns the ids of every user the given user has blocked.
func BlockedIDs(db *gorm.DB, blocker uint) ([]uint, error) {
	var blocks []models.Block
	if err := db.Where("blocker_id = ?", blocker).Find(&blocks).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.BlockedID)
	}
	return ids, nil
}
