package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/acme/login-api/internal/config"
	"github.com/acme/login-api/internal/identity"
	"github.com/acme/login-api/internal/infra"
	"github.com/acme/login-api/internal/logging"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "plaintext password, hashed before storage")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New("seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	svc := identity.NewService(identity.NewPostgresRepository(db), cfg.BcryptCost)
	user, err := svc.Register(ctx, *name, *email, *password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			log.Warn("user already exists", "email", *email)
			return
		}
		log.Error("register user", "error", err)
		os.Exit(1)
	}

	log.Info("seeded user", "id", user.ID, "email", user.Email, "name", user.Name)
}
