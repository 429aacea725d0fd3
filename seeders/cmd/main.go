package main

import (
	"context"
	"log"

	"gearguard/migrations"
	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	"gearguard/seeders"
)

func main() {
	cfg := config.New()
	ctx := context.Background()

	if err := migrations.Up(cfg.Postgres.DSN); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	db, err := postgresql.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer db.Close()

	if err := seeders.Run(ctx, db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
}
