package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"methodcost/adapters/postgres"
	"methodcost/app"
	"methodcost/internal"
	"methodcost/internal/config"
	apperrors "methodcost/internal/errors"
	"methodcost/internal/migration"
	"methodcost/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase opens the PostgreSQL pool and applies the schema
func initDatabase(ctx context.Context, appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to connect to database", err)
	}

	db.SetMaxOpenConns(appConfig.Database.MaxOpenConns)
	db.SetMaxIdleConns(appConfig.Database.MaxIdleConns)
	db.SetConnMaxLifetime(appConfig.Database.ConnMaxLifetime)

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := initDatabase(ctx, appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	projectRepo := postgres.NewProjectRepository(db)
	analysisRepo := postgres.NewAnalysisRepository(db)

	projects := app.NewProjectService(projectRepo, logger)
	analyses := app.NewAnalysisService(projectRepo, analysisRepo, logger).
		WithSaveTimeout(appConfig.Analysis.SaveTimeout)

	if file := appConfig.Data.ProjectsFile; file != "" {
		imported, err := projects.ImportFile(ctx, appConfig.Server.DefaultUserID, file)
		if err != nil {
			log.Fatalf("Failed to import %s: %v", file, err)
		}
		logger.Info("Imported %d projects from %s", len(imported), file)
	}

	server := ui.NewApp(ui.Config{
		Port:          appConfig.Server.Port,
		DefaultUserID: appConfig.Server.DefaultUserID,
		MaxUploadMB:   appConfig.Server.MaxUploadMB,
	}, projects, analyses, logger).Server()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed: %v", err)
		}
	}()

	log.Printf("Starting methodcost server on port %s", appConfig.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
