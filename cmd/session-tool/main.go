package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/you/expensefront/domain"
	"github.com/you/expensefront/internal/app"
	"github.com/you/expensefront/internal/config"
	"github.com/you/expensefront/internal/infrastructure/auth"
)

// Inspects or clears the persisted session, for verifying a session store
// setup without launching the full client.
func main() {
	cmd := "show"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	container, err := app.NewContainer(cfg, nil)
	if err != nil {
		log.Fatalf("container: %v", err)
	}
	defer container.Close()

	ctx := context.Background()

	switch cmd {
	case "show":
		show(ctx, container)
	case "clear":
		if err := container.SessionStore.Clear(ctx); err != nil {
			log.Fatalf("Failed to clear session: %v", err)
		}
		fmt.Println("✓ Session cleared")
	default:
		fmt.Fprintf(os.Stderr, "usage: session-tool [show|clear]\n")
		os.Exit(2)
	}
}

func show(ctx context.Context, container *app.Container) {
	fmt.Println("Session Store Inspection")
	fmt.Println("========================")
	fmt.Printf("Backend: %s\n", container.Config.SessionStorage)

	token, user, err := container.SessionStore.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}
	if token == "" {
		fmt.Println("No stored session")
		return
	}

	fmt.Println("✓ Token present")
	if user != nil {
		fmt.Printf("✓ Cached user: %s <%s> (%s)\n", user.Name, user.Email, user.Role)
	} else {
		fmt.Println("No cached user (next start will hydrate over the network)")
	}

	info, err := auth.NewJWTInspector().Inspect(token)
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		fmt.Printf("✗ Token expired at %s\n", time.Unix(info.ExpiresAt, 0))
	case err != nil:
		fmt.Println("Token is opaque to local inspection")
	default:
		fmt.Printf("✓ Token valid until %s (role %s)\n", time.Unix(info.ExpiresAt, 0), info.Role)
	}
}
