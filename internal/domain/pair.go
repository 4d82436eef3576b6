package domain

import (
	"errors"
	"time"
)

// ErrSelfPair is returned when both sides of a pair are the same user.
var ErrSelfPair = errors.New("cannot pair a user with themself")

// Pair is an unordered pair of user IDs in canonical form: Lo sorts strictly
// before Hi under byte-wise string comparison. Construct it with NewPair so
// callers can never smuggle in an unordered or self-referential pair.
type Pair struct {
	Lo string
	Hi string
}

// NewPair returns the canonical pair for two user IDs, regardless of argument
// order. Returns ErrSelfPair if a == b.
func NewPair(a, b string) (Pair, error) {
	if a == b {
		return Pair{}, ErrSelfPair
	}
	if a < b {
		return Pair{Lo: a, Hi: b}, nil
	}
	return Pair{Lo: b, Hi: a}, nil
}

// Other returns the member of the pair that is not the given user ID, and
// whether the given ID is a member at all.
func (p Pair) Other(userID string) (string, bool) {
	switch userID {
	case p.Lo:
		return p.Hi, true
	case p.Hi:
		return p.Lo, true
	}
	return "", false
}

// Soulmate is the durable, undirected relationship formed from a mutual
// soullink request. Stored with UserLoID < UserHiID by construction; at most
// one row exists per unordered pair.
type Soulmate struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserLoID  string    `json:"user_lo_id"`
	UserHiID  string    `json:"user_hi_id"`
}
