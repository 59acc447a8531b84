package main

import (
	"flag"
	"log"

	"go-bizmanager/internal/config"
	"go-bizmanager/internal/repository"
	"go-bizmanager/internal/service"
	"go-bizmanager/pkg/database"
	"go-bizmanager/pkg/jwt"

	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("-email and -password are required")
	}

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Setup Database
	db, err := database.Connect(database.Options{Driver: cfg.DBDriver, DSN: cfg.DatabaseURL}, zap.NewNop())
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// 3. Reset
	auth := service.NewAuthService(repository.NewUserRepo(db), jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL))
	if err := auth.ResetPassword(*email, *password); err != nil {
		log.Fatalf("❌ Failed to reset password for %s: %v", *email, err)
	}

	log.Printf("✅ Password for %s has been reset", *email)
}
