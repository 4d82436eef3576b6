// Package main seeds the database with demo data.
//
// It creates a handful of readers, books with discussion questions and
// answers, shelf entries, and enough interest edges to form one mutual
// profile match and one soulmate pair.
//
// Usage:
//
//	BOOKBOND_DB_PATH=~/BookBond/bookbond.db go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/bookbondapp/bookbond-server/internal/logger"
	"github.com/bookbondapp/bookbond-server/internal/service"
	"github.com/bookbondapp/bookbond-server/internal/store"
	"github.com/bookbondapp/bookbond-server/internal/store/sqlite"
)

var dbPathFlag = flag.String("db-path", "", "Path to the SQLite database file")

func main() {
	flag.Parse()

	dbPath := *dbPathFlag
	if dbPath == "" {
		dbPath = os.Getenv("BOOKBOND_DB_PATH")
	}
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/BookBond/bookbond.db")
	}

	log := logger.New(logger.Config{Level: slog.LevelInfo})
	log.Info("opening database", "path", dbPath)

	s, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		log.Fatal("failed to open store", "error", err)
	}
	defer s.Close()

	accounts := service.NewAccountService(s, log.Logger)
	social := service.NewSocialService(s, log.Logger)

	ctx := context.Background()

	users := seedUsers(ctx, log, accounts)
	books := seedBooks(ctx, log, accounts)
	seedDiscussion(ctx, log, accounts, social, users, books)
	seedRelationships(ctx, log, social, users)

	log.Info("seeding complete")
}

type seededUser struct {
	ID    string
	Name  string
	Email string
}

func seedUsers(ctx context.Context, log *logger.Logger, accounts *service.AccountService) []seededUser {
	specs := []struct {
		email string
		name  string
		bio   string
	}{
		{"ada@bookbond.example", "Ada", "Science fiction, mostly."},
		{"ben@bookbond.example", "Ben", "Rereads Dune every year."},
		{"cam@bookbond.example", "Cam", "Nonfiction and history."},
		{"dee@bookbond.example", "Dee", ""},
	}

	var users []seededUser
	for _, spec := range specs {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("failed to hash password", "error", err)
		}

		u, err := accounts.RegisterUser(ctx, service.RegisterUserRequest{
			Email:        spec.email,
			PasswordHash: string(hash),
			DisplayName:  spec.name,
			Bio:          spec.bio,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Info("user already seeded, skipping", "email", spec.email)
			continue
		}
		if err != nil {
			log.Fatal("failed to seed user", "email", spec.email, "error", err)
		}
		users = append(users, seededUser{ID: u.ID, Name: u.DisplayName, Email: u.Email})
	}
	return users
}

func seedBooks(ctx context.Context, log *logger.Logger, accounts *service.AccountService) []string {
	specs := []service.AddBookRequest{
		{
			ISBN:      "978-0-441-17271-9",
			Title:     "Dune",
			Author:    "Frank Herbert",
			Publisher: "Ace",
		},
		{
			ISBN:      "978-0-553-29335-0",
			Title:     "Foundation",
			Author:    "Isaac Asimov",
			Publisher: "Spectra",
		},
		{
			ISBN:      "978-0-7432-7356-5",
			Title:     "1776",
			Author:    "David McCullough",
			Publisher: "Simon & Schuster",
		},
	}

	var isbns []string
	for _, spec := range specs {
		if _, err := accounts.AddBook(ctx, spec); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				log.Info("book already seeded, skipping", "isbn", spec.ISBN)
			} else {
				log.Fatal("failed to seed book", "isbn", spec.ISBN, "error", err)
			}
		}
		isbns = append(isbns, spec.ISBN)
	}
	return isbns
}

func seedDiscussion(ctx context.Context, log *logger.Logger, accounts *service.AccountService, social *service.SocialService, users []seededUser, isbns []string) {
	if len(users) < 2 || len(isbns) == 0 {
		return
	}

	q, err := accounts.AddQuestion(ctx, service.AddQuestionRequest{
		BookISBN: isbns[0],
		Content:  "Which character changed the most for you?",
	})
	if err != nil {
		log.Fatal("failed to seed question", "error", err)
	}

	a, err := accounts.AddAnswer(ctx, service.AddAnswerRequest{
		QuestionID: q.ID,
		UserID:     users[1].ID,
		Content:    "Paul. The early chapters read completely differently on a reread.",
	})
	if err != nil {
		log.Fatal("failed to seed answer", "error", err)
	}

	// The first user likes the answer, which notifies its author.
	if err := social.LikeAnswer(ctx, users[0].ID, a.ID); err != nil {
		log.Fatal("failed to seed answer like", "error", err)
	}

	for i, u := range users {
		_, err := accounts.ShelveBook(ctx, service.ShelveBookRequest{
			UserID:   u.ID,
			BookISBN: isbns[i%len(isbns)],
			Status:   "reading",
		})
		if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
			log.Fatal("failed to seed shelf entry", "user", u.ID, "error", err)
		}
	}
}

func seedRelationships(ctx context.Context, log *logger.Logger, social *service.SocialService, users []seededUser) {
	if len(users) < 4 {
		return
	}

	// Ada and Ben become a mutual profile match.
	mustSubmit(log, func() error {
		_, err := social.ExpressProfileInterest(ctx, users[0].ID, users[1].ID)
		return err
	})
	mustSubmit(log, func() error {
		_, err := social.ExpressProfileInterest(ctx, users[1].ID, users[0].ID)
		return err
	})

	// Cam and Dee become soulmates.
	mustSubmit(log, func() error {
		_, err := social.RequestSoullink(ctx, users[2].ID, users[3].ID)
		return err
	})
	mustSubmit(log, func() error {
		res, err := social.RequestSoullink(ctx, users[3].ID, users[2].ID)
		if err == nil && res.Mutual {
			fmt.Printf("soulmate pair formed: %s\n", res.SoulmateID)
		}
		return err
	})

	// One unanswered request, so the inbox has something pending.
	mustSubmit(log, func() error {
		_, err := social.ExpressProfileInterest(ctx, users[3].ID, users[0].ID)
		return err
	})
}

func mustSubmit(log *logger.Logger, fn func() error) {
	if err := fn(); err != nil && !errors.Is(err, store.ErrDuplicateEdge) {
		log.Fatal("failed to seed interest", "error", err)
	}
}
