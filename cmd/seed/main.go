package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"match-service/internal/adapters/database"
	"match-service/internal/config"
	"match-service/internal/models"
	"match-service/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	db, err := database.NewMySQLDB(
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	memberRepo := repository.NewMemberRepository(db)
	ctx := context.Background()

	seedMembers := []struct {
		email       string
		displayName string
		city        string
		country     string
	}{
		{"alice@match.local", "Alice", "Lisbon", "Portugal"},
		{"bob@match.local", "Bob", "Porto", "Portugal"},
		{"carol@match.local", "Carol", "Madrid", "Spain"},
	}

	password, _ := bcrypt.GenerateFromPassword([]byte("Pa$$w0rd"), bcrypt.DefaultCost)

	for _, m := range seedMembers {
		existing, err := memberRepo.FindByEmail(ctx, m.email)
		if err != nil {
			log.Fatal("Failed to check existing member:", err)
		}
		if existing != nil {
			slog.Info("Member already exists, skipping", "email", m.email)
			continue
		}

		member := &models.Member{
			ID:          uuid.NewString(),
			Email:       m.email,
			Password:    string(password),
			DisplayName: m.displayName,
			City:        m.city,
			Country:     m.country,
		}
		if err := memberRepo.Create(ctx, member); err != nil {
			slog.Warn("Failed to create member", "email", m.email, "error", err)
			continue
		}
		slog.Info("Created member", "email", m.email, "id", member.ID)
	}

	slog.Info("Seeding completed")
}
