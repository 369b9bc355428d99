package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/mratin/sparkfeed/backend/internal/router"
	"github.com/mratin/sparkfeed/backend/pkg/config"
	"github.com/mratin/sparkfeed/backend/pkg/firebase"
	"github.com/mratin/sparkfeed/backend/pkg/storage"
	"github.com/mratin/sparkfeed/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	ctx := context.Background()

	// Initialize Firebase when credentials are configured
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	} else {
		log.Println("Firebase credentials not configured, federated login disabled.")
	}

	// Initialize object store when a bucket is configured
	var objectStore storage.ObjectStore
	if cfg.GCSBucket != "" {
		gcsStore, err := storage.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize object store: %v", err)
		}
		objectStore = gcsStore
	} else {
		log.Println("GCS bucket not configured, image uploads disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, firebaseAuthClient, objectStore, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
