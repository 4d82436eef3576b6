package domain

// User represents a reader account. User IDs are opaque strings with a total
// (byte-wise) order; that order is what canonical pairing relies on.
type User struct {
	Timestamps
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	DisplayName  string `json:"display_name"`
	Bio          string `json:"bio,omitempty"`
}

// Name returns the best available name to display for the user.
// Prefers DisplayName, falls back to email.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
