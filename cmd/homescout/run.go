package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/abelbrown/homescout/internal/engine"
	"github.com/abelbrown/homescout/internal/logging"
	"github.com/abelbrown/homescout/internal/notify"
	"github.com/abelbrown/homescout/internal/zillow"
)

func runSearch() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	pages := fs.Int("pages", 3, "Result pages to fetch from the upstream API")
	noEmail := fs.Bool("no-email", false, "Skip the digest email")
	keepPending := fs.Bool("keep-pending", false, "Do not expire unreviewed pending listings this run")
	timeout := fs.Duration("timeout", 5*time.Minute, "Overall run timeout")
	fs.Parse(os.Args[1:])

	if err := logging.Init(); err != nil {
		log.Fatalf("failed to init logging: %v", err)
	}
	defer logging.Close()

	cfg := loadConfig()
	if *keepPending {
		cfg.KeepPending = true
	}

	client, err := zillow.NewClient(requireAPIKey(cfg))
	if err != nil {
		log.Fatalf("failed to create search client: %v", err)
	}

	st := openDB()
	defer st.Close()

	opts := []engine.Option{engine.WithPages(*pages)}
	if !*noEmail {
		mailer, err := notify.NewMailer(cfg.Secrets)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: email disabled: %v\n", err)
		} else {
			opts = append(opts, engine.WithSender(mailer))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := engine.New(cfg, st, client, opts...).Run(ctx)
	if err != nil {
		logging.Error("run failed", "err", err)
		log.Fatalf("run failed: %v", err)
	}

	fmt.Printf("Fetched:     %d\n", res.Fetched)
	fmt.Printf("Filtered:    %d\n", res.Filtered)
	fmt.Printf("Candidates:  %d\n", res.Candidates)
	fmt.Printf("Expired:     %d\n", res.Expired)
	fmt.Printf("Shortlist:   %d\n", len(res.Picks))
	for i, s := range res.Picks {
		fmt.Printf("  %d. %-50s score %.1f\n", i+1, s.Listing.Address, s.Score)
	}
	if res.EmailSent {
		fmt.Println("Digest sent.")
	}
	fmt.Println("\nRun 'homescout review' to go through the shortlist.")
}
