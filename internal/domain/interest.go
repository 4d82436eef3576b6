package domain

import "time"

// InterestKind distinguishes the three directional interest edges a user can
// record.
type InterestKind string

const (
	// InterestProfile is "I am interested in this user's profile".
	InterestProfile InterestKind = "profile"
	// InterestAnswer is "I am interested in this answer". Interest in
	// content, not in a person: it never forms a relationship.
	InterestAnswer InterestKind = "answer"
	// InterestSoullink is a request to become soulmates with another user.
	InterestSoullink InterestKind = "soullink"
)

// Valid reports whether the kind is one of the known values.
func (k InterestKind) Valid() bool {
	switch k {
	case InterestProfile, InterestAnswer, InterestSoullink:
		return true
	}
	return false
}

// Mutualizes reports whether two opposing edges of this kind form a mutual
// event. Answer interest targets content, so it never mutualizes.
func (k InterestKind) Mutualizes() bool {
	return k == InterestProfile || k == InterestSoullink
}

// Interest is a directional "actor is interested in target" fact. The target
// is a user ID for profile and soullink edges, and an answer ID for answer
// edges. A user may record each directional edge at most once.
type Interest struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	ActorID   string       `json:"actor_id"`
	TargetID  string       `json:"target_id"`
	Kind      InterestKind `json:"kind"`
}

// SubmitResult describes the outcome of submitting a directional interest
// edge: whether the mirror edge already existed, and if so which event fired.
type SubmitResult struct {
	// Mutual is true when this submission was the second-arriving edge of
	// the pair and a mutual event fired.
	Mutual bool `json:"mutual"`
	// Event is the notification kind emitted for the mutual event. Empty
	// when Mutual is false.
	Event NotificationKind `json:"event,omitempty"`
	// SoulmateID is set when the mutual event formed (or found) a soulmate
	// pair.
	SoulmateID string `json:"soulmate_id,omitempty"`
}
