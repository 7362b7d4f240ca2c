// Command sweep deletes expired share links. Expired links are already
// invisible to lookups; this reclaims the rows. Run it from cron.
package main

import (
	"context"
	"log"
	"time"

	"documo/internal/config"
	"documo/internal/database"
	"documo/internal/observability"
	"documo/internal/repository"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	swept, err := repository.NewShareLinkRepository(db).DeleteExpired(ctx)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	observability.ShareLinksSwept.Add(float64(swept))
	log.Printf("Swept %d expired share links", swept)
}
