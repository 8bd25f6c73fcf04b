// Command devtoken mints an HS256 session token signed with JWT_SECRET so the
// API can be exercised locally without the hosted auth provider.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/courtside/platform/internal/auth"
	"github.com/courtside/platform/internal/infra"
	"github.com/joho/godotenv"
)

func main() {
	subject := flag.String("sub", "user_dev", "subject (user id) to embed in the token")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if err := run(*subject, *ttl); err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		os.Exit(1)
	}
}

func run(subject string, ttl time.Duration) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.ClerkJWTKey != "" {
		return errors.New("CLERK_JWT_KEY is set; the API will not accept HS256 dev tokens")
	}

	token, err := auth.IssueDevToken(cfg.JWTSecret, subject, ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Println(token)
	return nil
}
