// Command retally rebuilds every candidate and post counter from the vote
// ledger under the current counting policy. Use it after restoring a backup
// or changing the verification setting.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/election-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	if err := app.Retally(ctx); err != nil {
		log.Printf("retally: %v", err)
		cancel()
		os.Exit(1)
	}
}
