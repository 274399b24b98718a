package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/abelbrown/homescout/internal/feedback"
)

func runFeedback() {
	fs := flag.NewFlagSet("feedback", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "Show what would change without saving")
	fs.Parse(os.Args[1:])

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: homescout feedback [flags] <free-text feedback>")
		fmt.Fprintln(os.Stderr, `  e.g. homescout feedback "more like Zilker, max $900k, no HOA"`)
		os.Exit(1)
	}

	st := openDB()
	defer st.Close()

	updates := feedback.Parse(text)
	if updates.Empty() {
		fmt.Println("No changes detected from feedback")
		return
	}

	updated, changes := feedback.Apply(updates, st.Profile())
	fmt.Println(feedback.Changelog(changes))

	if *dryRun {
		fmt.Println("(dry run, nothing saved)")
		return
	}
	if err := st.SaveProfile(updated); err != nil {
		log.Fatalf("failed to save profile: %v", err)
	}
}
