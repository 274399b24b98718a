// Command homescout is the CLI for the listing scout.
//
// Usage:
//
//	homescout                    Show help
//	homescout run                One search pass: fetch, rank, shortlist, email
//	homescout review             Interactive review of the pending shortlist
//	homescout feedback <text>    Adjust preferences from free-text feedback
//	homescout stats              Store and profile statistics
package main

import (
	"fmt"
	"os"
)

const usage = `homescout — Austin listing scout CLI

Usage:
  homescout <command> [flags]

Commands:
  run         One search pass: fetch listings, rank, shortlist, send digest
  review      Interactive review of the pending shortlist (favorite/dismiss)
  feedback    Adjust preferences from free-text feedback
  stats       Store and profile statistics

Environment (.env is honored):
  RAPIDAPI_KEY         Zillow RapidAPI key (required for run)
  GMAIL_ADDRESS        Digest sender address
  GMAIL_APP_PASSWORD   Gmail app password
  RECIPIENT_EMAIL      Digest recipient (RECIPIENT_EMAIL_2 optional)

Run 'homescout <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "run":
		runSearch()
	case "review":
		runReview()
	case "feedback":
		runFeedback()
	case "stats":
		runStats()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "homescout: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
