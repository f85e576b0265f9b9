package main

import (
	"context"
	"log"
	"os"

	"stayhub/internal/database"
	"stayhub/internal/modules/voucher"
	"stayhub/internal/repository"

	"github.com/joho/godotenv"
)

// Run from cron. Expires ACTIVE vouchers past their end date and marks
// exhausted ones used up.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	svc := voucher.NewService(repository.NewVoucherRepository(db), nil)
	updated, err := svc.ExpireDue(context.Background())
	if err != nil {
		log.Fatalf("voucher sweep failed: %v", err)
	}
	log.Printf("voucher sweep completed: updated=%d", updated)
}
