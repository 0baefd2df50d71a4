package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq"

	"tourlogistics/internal/config"
	"tourlogistics/migrations"
)

func main() {
	if len(os.Args) != 2 || (os.Args[1] != "up" && os.Args[1] != "down") {
		log.Fatal("Usage: migrate [up|down]")
	}

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if os.Args[1] == "up" {
		if err := migrations.Up(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations applied successfully")
		return
	}

	if err := migrations.Down(db); err != nil {
		log.Fatalf("Failed to rollback migrations: %v", err)
	}
	log.Println("Migrations rolled back successfully")
}
