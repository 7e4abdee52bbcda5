package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"shopwave/internal/config"
	"shopwave/internal/db"
	"shopwave/internal/model"
	"shopwave/internal/password"
	"shopwave/internal/repository"
)

// demoUser is a development account created by the seeder.
type demoUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

var demoUsers = []demoUser{
	{Email: "alice@example.com", Password: "password123", FirstName: "Alice", LastName: "Nguyen"},
	{Email: "bob@example.com", Password: "password123", FirstName: "Bob", LastName: "Keller"},
	{Email: "demo@example.com", Password: "demo1234", FirstName: "Demo"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	hasher := password.NewHasher()
	ctx := context.Background()

	created, skipped := 0, 0
	for _, du := range demoUsers {
		if _, err := userRepo.FindByEmail(ctx, du.Email); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check existing user %s: %v", du.Email, err)
		}

		hash, err := hasher.Hash(du.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", du.Email, err)
		}

		user := &model.User{
			Email:        du.Email,
			PasswordHash: hash,
			FirstName:    du.FirstName,
		}
		if du.LastName != "" {
			lastName := du.LastName
			user.LastName = &lastName
		}

		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", du.Email, err)
		}
		created++
	}

	log.Printf("Seed complete: %d created, %d skipped", created, skipped)
}
