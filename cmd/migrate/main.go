package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/pageza/recipemint/backend/config"
	"github.com/pageza/recipemint/backend/internal/database"
)

func main() {
	status := flag.Bool("status", false, "List migrations and whether they are applied")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("DATABASE_URL is not set and configuration failed: %v", err)
		}
		dsn = database.PostgresDSN(cfg)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		log.Fatalf("failed to create migrations table: %v", err)
	}

	migrations, err := database.Migrations()
	if err != nil {
		log.Fatalf("failed to load migrations: %v", err)
	}

	for _, m := range migrations {
		var applied bool
		if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations WHERE name = $1)", m.Name).Scan(&applied); err != nil {
			log.Fatalf("failed to check migration status: %v", err)
		}

		if *status {
			state := "pending"
			if applied {
				state = "applied"
			}
			fmt.Printf("%-40s %s\n", m.Name, state)
			continue
		}
		if applied {
			fmt.Printf("Migration already applied: %s\n", m.Name)
			continue
		}

		fmt.Printf("Applying migration: %s\n", m.Name)
		tx, err := db.Begin()
		if err != nil {
			log.Fatalf("failed to start transaction: %v", err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			log.Fatalf("failed to apply migration %s: %v", m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO migrations (name) VALUES ($1)", m.Name); err != nil {
			tx.Rollback()
			log.Fatalf("failed to record migration: %v", err)
		}
		if err := tx.Commit(); err != nil {
			log.Fatalf("failed to commit migration: %v", err)
		}
		fmt.Printf("Successfully applied migration: %s\n", m.Name)
	}

	if !*status {
		fmt.Println("All migrations applied successfully.")
	}
}
