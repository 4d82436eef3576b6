package domain

// ShelfStatus tracks where a book sits in a user's reading life.
type ShelfStatus string

const (
	// ShelfStatusWant marks a book the user intends to read.
	ShelfStatusWant ShelfStatus = "want"
	// ShelfStatusReading marks a book the user is currently reading.
	ShelfStatusReading ShelfStatus = "reading"
	// ShelfStatusFinished marks a book the user has finished.
	ShelfStatusFinished ShelfStatus = "finished"
)

// Valid reports whether the status is one of the known values.
func (s ShelfStatus) Valid() bool {
	switch s {
	case ShelfStatusWant, ShelfStatusReading, ShelfStatusFinished:
		return true
	}
	return false
}

// BookshelfEntry links a user to a book on their shelf.
// At most one entry per (user, book); cascades when either side is deleted.
type BookshelfEntry struct {
	Timestamps
	ID       string      `json:"id"`
	UserID   string      `json:"user_id"`
	BookISBN string      `json:"book_isbn"`
	Status   ShelfStatus `json:"status"`
}
