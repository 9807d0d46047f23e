// Command seed-user creates a user account directly in the database.
// The API has no registration endpoint; accounts are provisioned with
// this tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cartshop/cartshop/internal/auth"
	"github.com/cartshop/cartshop/internal/model"
	"github.com/cartshop/cartshop/internal/repository"
)

type output struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		username    = flag.String("username", "", "Username for the new account")
		password    = flag.String("password", "", "Password for the new account")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-username and -password are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		Username:     *username,
		PasswordHash: hash,
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	if *format == "json" {
		_ = json.NewEncoder(os.Stdout).Encode(output{
			UserID:   user.ID,
			Username: user.Username,
		})
		return
	}

	fmt.Printf("created user %q with id %d\n", user.Username, user.ID)
}
