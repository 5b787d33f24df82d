// Command verify-integrity recomputes the fingerprint of every vote and
// compares it with the stored one. It is intended for scheduled audits.
//
// Exit codes: 0 = ledger intact, 1 = tampered votes found, 2 = error.
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

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	report, err := app.VerifyIntegrity(ctx)
	if err != nil {
		log.Printf("verify-integrity: %v", err)
		cancel()
		os.Exit(2)
	}

	if !report.Clean() {
		cancel()
		os.Exit(1)
	}
}
