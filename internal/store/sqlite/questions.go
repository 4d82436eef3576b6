package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store"
)

const questionColumns = `id, created_at, updated_at, book_isbn, content`

func scanQuestion(scanner interface{ Scan(dest ...any) error }) (*domain.Question, error) {
	var q domain.Question

	var createdAt, updatedAt string
	err := scanner.Scan(&q.ID, &createdAt, &updatedAt, &q.BookISBN, &q.Content)
	if err != nil {
		return nil, err
	}

	q.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	q.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQuestion inserts a question attached to a book.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) CreateQuestion(ctx context.Context, q *domain.Question) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (id, created_at, updated_at, book_isbn, content)
		VALUES (?, ?, ?, ?, ?)`,
		q.ID,
		formatTime(q.CreatedAt),
		formatTime(q.UpdatedAt),
		q.BookISBN,
		q.Content,
	)
	return mapError(err, store.ErrAlreadyExists)
}

// GetQuestion retrieves a question by ID.
// Returns store.ErrNotFound if the question does not exist.
func (s *Store) GetQuestion(ctx context.Context, id string) (*domain.Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)

	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListQuestionsByBook returns all questions on a book, oldest first.
func (s *Store) ListQuestionsByBook(ctx context.Context, isbn string) ([]*domain.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE book_isbn = ? ORDER BY created_at ASC`, isbn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}

// DeleteQuestion performs a hard delete. Answers on the question cascade.
// Returns store.ErrNotFound if the question does not exist.
func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return mapError(err, store.ErrAlreadyExists)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

const answerColumns = `id, created_at, updated_at, question_id, user_id, content`

func scanAnswer(scanner interface{ Scan(dest ...any) error }) (*domain.Answer, error) {
	var a domain.Answer

	var createdAt, updatedAt string
	err := scanner.Scan(&a.ID, &createdAt, &updatedAt, &a.QuestionID, &a.UserID, &a.Content)
	if err != nil {
		return nil, err
	}

	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAnswer inserts an answer authored by a user on a question.
// Returns store.ErrNotFound if the question or author does not exist.
func (s *Store) CreateAnswer(ctx context.Context, a *domain.Answer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO answers (id, created_at, updated_at, question_id, user_id, content)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID,
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
		a.QuestionID,
		a.UserID,
		a.Content,
	)
	return mapError(err, store.ErrAlreadyExists)
}

// GetAnswer retrieves an answer by ID.
// Returns store.ErrNotFound if the answer does not exist.
func (s *Store) GetAnswer(ctx context.Context, id string) (*domain.Answer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE id = ?`, id)

	a, err := scanAnswer(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnswersByQuestion returns all answers on a question, oldest first.
func (s *Store) ListAnswersByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE question_id = ? ORDER BY created_at ASC`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*domain.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return answers, nil
}

// DeleteAnswer performs a hard delete. Answer-interest edges cascade.
// Returns store.ErrNotFound if the answer does not exist.
func (s *Store) DeleteAnswer(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM answers WHERE id = ?`, id)
	if err != nil {
		return mapError(err, store.ErrAlreadyExists)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
