package main

import (
	"context"
	"log"
	"os"

	"methodcost/adapters/postgres"
	"methodcost/app"
	"methodcost/domain/core"
	"methodcost/internal"
	"methodcost/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// migrate applies the schema and loads portfolio files for one user.
// The user comes from DEFAULT_USER_ID when set.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url> [portfolio.xlsx|portfolio.csv ...]")
	}

	databaseURL := os.Args[1]
	files := os.Args[2:]

	userID, err := core.ParseUserID(os.Getenv("DEFAULT_USER_ID"))
	if err != nil {
		log.Fatalf("Invalid DEFAULT_USER_ID: %v", err)
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema at version %s", runner.Version())

	projects := app.NewProjectService(postgres.NewProjectRepository(db), internal.DefaultLogger)

	imported, failed := 0, 0
	for _, file := range files {
		loaded, err := projects.ImportFile(ctx, userID, file)
		if err != nil {
			log.Printf("Failed to import %s: %v", file, err)
			failed++
			continue
		}
		log.Printf("Imported %d projects from %s", len(loaded), file)
		imported += len(loaded)
	}

	log.Printf("Import complete: %d projects for user %s, %d files failed", imported, userID, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
