package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/govdesk/front-office-api/internal/models"
	"github.com/govdesk/front-office-api/internal/repository"
	"github.com/govdesk/front-office-api/pkg/config"
	"github.com/govdesk/front-office-api/pkg/database"
)

// Seeds the first administrator account so the office can log in on a fresh
// deployment. Refuses to overwrite an existing username.
func main() {
	var (
		username string
		email    string
		fullName string
	)

	flag.StringVar(&username, "username", "admin", "Administrator username")
	flag.StringVar(&email, "email", "", "Administrator email")
	flag.StringVar(&fullName, "name", "System Administrator", "Display name")
	flag.Parse()

	if email == "" {
		log.Fatal("email is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepository(db)
	if _, err := users.FindByUsername(ctx, username); err == nil {
		log.Fatalf("user %q already exists", username)
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("failed to read password: %v", err)
	}
	if len(password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         models.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created administrator %s (%s)\n", username, user.ID)
}
