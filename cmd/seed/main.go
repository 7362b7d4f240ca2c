// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"documo/internal/config"
	"documo/internal/database"
	"documo/internal/seed"
)

func main() {
	orgs := flag.Int("orgs", 3, "Number of organizations to create")
	folders := flag.Int("folders", 4, "Folders per organization")
	requests := flag.Int("requests", 3, "Requests per folder")
	clean := flag.Bool("clean", true, "Clear existing data first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if *clean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{
		Organizations:     *orgs,
		FoldersPerOrg:     *folders,
		RequestsPerFolder: *requests,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. All staff users share the password %q", seed.DefaultPassword)
}
