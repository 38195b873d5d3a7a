package social

import "errors"

// Sentinel errors returned by the social layer. Handlers map these to
// HTTP statuses at the boundary; nothing below the handler layer writes
// a response.
var (
	ErrSelfTarget       = errors.New("cannot target yourself")
	ErrUserNotFound     = errors.New("user not found")
	ErrBlocked          = errors.New("blocked")
	ErrAlreadyFriends   = errors.New("already friends")
	ErrRequestExists    = errors.New("a pending request already exists between these users")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrNotRecipient     = errors.New("only the recipient can respond to this request")
	ErrNotSender        = errors.New("only the sender can cancel this request")
	ErrNotPending       = errors.New("request is no longer pending")
	ErrNotFriends       = errors.New("not friends")
	ErrFriendshipAbsent = errors.New("friendship not found")
	ErrBlockNotFound    = errors.New("block not found")

	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrEmptyMessage         = errors.New("message content must not be empty")
	ErrMessageTooLong       = errors.New("message content exceeds 1000 characters")
	ErrRateLimited          = errors.New("too many messages, slow down")

	ErrTeamNotFound     = errors.New("team not found")
	ErrNotMember        = errors.New("not a member of this team")
	ErrInsufficientRole = errors.New("insufficient permissions")
	ErrAlreadyMember    = errors.New("already a member of this team")
	ErrInviteNotFound   = errors.New("invite not found")
	ErrInviteInvalid    = errors.New("invite is no longer valid")
	ErrInviteExpired    = errors.New("invite has expired")
	ErrOwnerImmovable   = errors.New("the owner cannot be removed from the team")

	ErrRoomNotFound      = errors.New("room not found")
	ErrInvalidSignalType = errors.New("invalid signal type")
)
