package domain

// Book represents a book in the catalog. The ISBN is the natural key; books
// exist independently of users.
type Book struct {
	Timestamps
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	Author      string `json:"author,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
}

// Question is a free-text prompt attached to exactly one book.
// Deleting the book deletes its questions.
type Question struct {
	Timestamps
	ID       string `json:"id"`
	BookISBN string `json:"book_isbn"`
	Content  string `json:"content"`
}

// Answer is a user's response to a question. It is owned by both its question
// and its author; deleting either removes the answer.
type Answer struct {
	Timestamps
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	UserID     string `json:"user_id"`
	Content    string `json:"content"`
}
