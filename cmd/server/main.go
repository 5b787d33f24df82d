// Command server runs the election vote casting and tallying API.
//
// Usage:
//
//	server        run the API until SIGINT/SIGTERM
//	server -env   print the environment variables it reads and exit
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/election-backend/internal/app"
	"github.com/heartmarshall/election-backend/internal/config"
)

func main() {
	describe := flag.Bool("env", false, "print configuration environment variables and exit")
	flag.Parse()

	if *describe {
		if err := config.Describe(os.Stdout); err != nil {
			log.Fatalf("server: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Printf("server: %v", err)
		stop()
		os.Exit(1)
	}
}
