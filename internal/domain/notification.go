package domain

import (
	"fmt"
	"time"
)

// NotificationKind identifies what a notification is about.
type NotificationKind string

const (
	// NotificationMutualProfileInterest fires when both users have
	// expressed profile interest in each other.
	NotificationMutualProfileInterest NotificationKind = "mutual_profile_interest"
	// NotificationSoulmateFormed fires when a mutual soullink request
	// promotes the pair to soulmates.
	NotificationSoulmateFormed NotificationKind = "soulmate_formed"
	// NotificationAnswerLiked fires when someone expresses interest in a
	// user's answer.
	NotificationAnswerLiked NotificationKind = "answer_liked"
)

// Content renders the user-facing message for this kind, naming the
// counterpart user.
func (k NotificationKind) Content(counterpartName string) string {
	switch k {
	case NotificationMutualProfileInterest:
		return fmt.Sprintf("You and %s expressed interest in each other.", counterpartName)
	case NotificationSoulmateFormed:
		return fmt.Sprintf("You and %s are now soulmates.", counterpartName)
	case NotificationAnswerLiked:
		return fmt.Sprintf("%s liked your answer.", counterpartName)
	}
	return ""
}

// Notification is owned by its recipient user and carries optional weak
// references to related entities. The Related* fields are lookup-only
// identifiers: deleting the referenced entity does not delete the
// notification, so they may dangle.
type Notification struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UserID    string           `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	Content   string           `json:"content"`
	IsRead    bool             `json:"is_read"`

	RelatedUserID     string `json:"related_user_id,omitempty"`
	RelatedBookISBN   string `json:"related_book_isbn,omitempty"`
	RelatedQuestionID string `json:"related_question_id,omitempty"`
	RelatedAnswerID   string `json:"related_answer_id,omitempty"`
	RelatedSoulmateID string `json:"related_soulmate_id,omitempty"`
}
