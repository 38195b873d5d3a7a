package social

// NormalizePair orders two user ids so that pair-keyed rows are
// direction-independent: NormalizePair(a, b) == NormalizePair(b, a).
// Every reader and writer of Friendship and Conversation rows must go
// through this function.
func NormalizePair(u1, u2 uint) (uint, uint) {
	if u2 < u1 {
		return u2, u1
	}
	return u1, u2
}
