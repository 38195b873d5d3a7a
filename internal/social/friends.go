package social

import (
	"errors"
	"time"

	"tradecircle/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestAction is a response to a pending friend request.
type RequestAction string

const (
	ActionAccept  RequestAction = "accept"
	ActionDecline RequestAction = "decline"
	ActionCancel  RequestAction = "cancel"
)

// SendFriendRequest creates a pending request from one user to another.
// It rejects self-requests, blocked pairs, existing friendships and
// duplicate pending requests in either direction.
func SendFriendRequest(db *gorm.DB, from, to uint) (*models.FriendRequest, error) {
	if from == to {
		return nil, ErrSelfTarget
	}

	var target models.User
	if err := db.First(&target, to).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	blocked, err := HasBlockBetween(db, from, to)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	friends, err := AreFriends(db, from, to)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	var pending int64
	err = db.Model(&models.FriendRequest{}).
		Where("status = ?", models.RequestPending).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", from, to, to, from).
		Count(&pending).Error
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrRequestExists
	}

	request := models.FriendRequest{
		FromUserID: from,
		ToUserID:   to,
		Status:     models.RequestPending,
	}
	if err := db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// RespondFriendRequest accepts or declines a pending request. Only the
// recipient may respond. Accepting materializes the Friendship in the
// same transaction as the status change.
func RespondFriendRequest(db *gorm.DB, requestID, actingUser uint, action RequestAction) (*models.FriendRequest, error) {
	if action != ActionAccept && action != ActionDecline {
		return nil, errors.New("action must be accept or decline")
	}

	var request models.FriendRequest
	if err := db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if request.ToUserID != actingUser {
		return nil, ErrNotRecipient
	}
	if request.Status != models.RequestPending {
		return nil, ErrNotPending
	}

	now := time.Now()
	newStatus := models.RequestDeclined
	if action == ActionAccept {
		newStatus = models.RequestAccepted
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Updates(map[string]interface{}{
			"status":       newStatus,
			"responded_at": now,
		}).Error; err != nil {
			return err
		}
		if newStatus != models.RequestAccepted {
			return nil
		}
		a, b := NormalizePair(request.FromUserID, request.ToUserID)
		friendship := models.Friendship{UserAID: a, UserBID: b}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&friendship).Error
	})
	if err != nil {
		return nil, err
	}

	request.Status = newStatus
	request.RespondedAt = &now
	return &request, nil
}

// CancelFriendRequest withdraws a pending request. Only the sender may
// cancel.
func CancelFriendRequest(db *gorm.DB, requestID, actingUser uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if request.FromUserID != actingUser {
		return nil, ErrNotSender
	}
	if request.Status != models.RequestPending {
		return nil, ErrNotPending
	}

	now := time.Now()
	if err := db.Model(&request).Updates(map[string]interface{}{
		"status":       models.RequestCanceled,
		"responded_at": now,
	}).Error; err != nil {
		return nil, err
	}

	request.Status = models.RequestCanceled
	request.RespondedAt = &now
	return &request, nil
}

// AreFriends reports whether a friendship row exists for the pair.
func AreFriends(db *gorm.DB, u1, u2 uint) (bool, error) {
	a, b := NormalizePair(u1, u2)
	var count int64
	err := db.Model(&models.Friendship{}).
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		Count(&count).Error
	return count > 0, err
}

// RemoveFriendship deletes the friendship between the acting user and
// another user, failing when no row exists.
func RemoveFriendship(db *gorm.DB, actingUser, other uint) error {
	if actingUser == other {
		return ErrSelfTarget
	}
	a, b := NormalizePair(actingUser, other)
	result := db.Where("user_a_id = ? AND user_b_id = ?", a, b).Delete(&models.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFriendshipAbsent
	}
	return nil
}

// FriendIDs returns the ids of every user the given user is friends with.
func FriendIDs(db *gorm.DB, userID uint) ([]uint, error) {
	var friendships []models.Friendship
	err := db.Where("user_a_id = ? OR user_b_id = ?", userID, userID).Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.UserAID == userID {
			ids = append(ids, f.UserBID)
		} else {
			ids = append(ids, f.UserAID)
		}
	}
	return ids, nil
}
