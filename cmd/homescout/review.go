package main

import (
	"flag"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/homescout/internal/ui"
)

func runReview() {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	model, err := ui.New(st)
	if err != nil {
		log.Fatalf("failed to load pending listings: %v", err)
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("review UI failed: %v", err)
	}
}
