package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"medprep/internal/config"
	"medprep/internal/database"
	"medprep/internal/dto"
	"medprep/internal/logger"
	"medprep/internal/repository"
	"medprep/internal/service"

	"go.uber.org/zap"
)

// Seeding goes through the same ingestion path as the API so every bundled
// question is held to the same validation contract.
func main() {
	inputPath := flag.String("file", "database/seed/questions.json", "questions JSON file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return
	}

	err = logger.Initialize(cfg.Logger)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}
	defer logger.Sync()

	logger.Get().Info("Seed process starting up...", zap.String("file", *inputPath))

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		logger.Get().Fatal("Failed to read questions file", zap.Error(err))
	}

	var questions []dto.CreateQuestionRequest
	if err := json.Unmarshal(raw, &questions); err != nil {
		logger.Get().Fatal("Failed to parse questions file", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.GetDSN())
	if err != nil {
		logger.Get().Fatal("Failed to connect to Postgres database", zap.Error(err))
	}
	defer db.Close()
	logger.Get().Info("Successfully connected to Postgres database.")

	repo := repository.NewQuestionDatabaseAdapter(db)
	// The seeder bypasses the page cache; created rows are read fresh.
	svc := service.NewQuestionService(repo, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var created, failed int
	for i := range questions {
		if _, err := svc.CreateQuestion(ctx, &questions[i]); err != nil {
			failed++
			logger.Get().Warn("Skipping invalid question",
				zap.Int("index", i),
				zap.String("topic", questions[i].Topic),
				zap.Error(err),
			)
			continue
		}
		created++
	}

	logger.Get().Info("Seed process finished",
		zap.Int("created", created),
		zap.Int("failed", failed),
	)
}
