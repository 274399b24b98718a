// Package ui provides the interactive review screen for the pending
// shortlist.
//
// The view layer is "dumb": it renders store snapshots and handles user
// input. Every decision (favorite, dismiss) is written through to the
// store immediately so a crash mid-session loses nothing.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/homescout/internal/finance"
	"github.com/abelbrown/homescout/internal/listing"
	"github.com/abelbrown/homescout/internal/store"
)

// Model is the root Bubble Tea model for the review screen.
type Model struct {
	store *store.Store
	items []listing.Listing

	cursor    int
	width     int
	height    int
	statusMsg string

	favorited int
	dismissed int
}

// New builds the review model over the store's current pending set.
func New(st *store.Store) (Model, error) {
	pending, err := st.Pending()
	if err != nil {
		return Model{}, fmt.Errorf("loading pending listings: %w", err)
	}
	return Model{
		store:     st,
		items:     pending,
		statusMsg: fmt.Sprintf("%d to review", len(pending)),
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Top):
			m.cursor = 0
		case key.Matches(msg, keys.Bottom):
			if len(m.items) > 0 {
				m.cursor = len(m.items) - 1
			}
		case key.Matches(msg, keys.Favorite):
			return m.favorite(), nil
		case key.Matches(msg, keys.Dismiss):
			return m.dismiss(), nil
		}
	}
	return m, nil
}

// favorite saves the selected listing and removes it from the queue.
func (m Model) favorite() Model {
	l, ok := m.selected()
	if !ok {
		return m
	}
	if err := m.store.AddFavorite(l); err != nil {
		m.statusMsg = ErrorStyle.Render(fmt.Sprintf("favorite failed: %v", err))
		return m
	}
	if err := m.store.RemovePending(l.ID); err != nil {
		m.statusMsg = ErrorStyle.Render(fmt.Sprintf("remove failed: %v", err))
		return m
	}
	m.favorited++
	m.statusMsg = FavoriteMark.Render("♥ saved ") + l.Address
	return m.removeSelected()
}

// dismiss marks the selected listing so it never resurfaces.
func (m Model) dismiss() Model {
	l, ok := m.selected()
	if !ok {
		return m
	}
	if err := m.store.Dismiss(l.ID); err != nil {
		m.statusMsg = ErrorStyle.Render(fmt.Sprintf("dismiss failed: %v", err))
		return m
	}
	if err := m.store.RemovePending(l.ID); err != nil {
		m.statusMsg = ErrorStyle.Render(fmt.Sprintf("remove failed: %v", err))
		return m
	}
	m.dismissed++
	m.statusMsg = DismissMark.Render("✗ dismissed ") + l.Address
	return m.removeSelected()
}

func (m Model) selected() (listing.Listing, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return listing.Listing{}, false
	}
	return m.items[m.cursor], true
}

func (m Model) removeSelected() Model {
	m.items = append(m.items[:m.cursor], m.items[m.cursor+1:]...)
	if m.cursor >= len(m.items) && m.cursor > 0 {
		m.cursor = len(m.items) - 1
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(EmptyStyle.Render(m.emptyMessage()))
	} else {
		b.WriteString(m.renderList())
		b.WriteString(m.renderCard())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) emptyMessage() string {
	if m.favorited+m.dismissed > 0 {
		return fmt.Sprintf("All reviewed: %d favorited, %d dismissed. Press q to exit.", m.favorited, m.dismissed)
	}
	return "Nothing pending. Run a search first, then come back."
}

func (m Model) renderHeader() string {
	left := fmt.Sprintf("HOMESCOUT REVIEW │ %d pending", len(m.items))
	return Header.Render(left)
}

func (m Model) renderList() string {
	var b strings.Builder
	for i, l := range m.items {
		row := fmt.Sprintf("%-44s %12s", truncate(l.Address, 44), shortPrice(l))
		if i == m.cursor {
			b.WriteString(SelectedItem.Render("> " + row))
		} else {
			b.WriteString(NormalItem.Render("  " + row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCard() string {
	l, ok := m.selected()
	if !ok {
		return ""
	}

	var lines []string
	lines = append(lines, CardTitle.Render(l.Address))

	price := shortPrice(l)
	if l.Price != nil && *l.Price > 0 {
		price += CardMeta.Render(fmt.Sprintf("  ~$%.0f/mo est.", finance.TotalMonthly(*l.Price)))
	}
	lines = append(lines, CardPrice.Render(price))

	if specs := specLine(l); specs != "" {
		lines = append(lines, CardMeta.Render(specs))
	}
	if l.Neighborhood != "" {
		hood := l.Neighborhood
		if l.Direction != "" {
			hood += " (" + l.Direction + ")"
		}
		lines = append(lines, CardMeta.Render(hood))
	}
	if l.Description != "" {
		lines = append(lines, CardMeta.Render(truncate(l.Description, 120)))
	}
	if l.DetailURL != "" {
		lines = append(lines, CardURL.Render(l.DetailURL))
	}
	return Card.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	help := "j/k: navigate  f: favorite  x: dismiss  q: quit"
	return StatusBar.Render(m.statusMsg + " │ " + help)
}

func shortPrice(l listing.Listing) string {
	if l.Price == nil || *l.Price <= 0 {
		return "price n/a"
	}
	p := *l.Price
	if p >= 1_000_000 {
		return fmt.Sprintf("$%.2fM", p/1_000_000)
	}
	return fmt.Sprintf("$%.0fk", p/1_000)
}

func specLine(l listing.Listing) string {
	var parts []string
	if l.Beds != nil {
		parts = append(parts, fmt.Sprintf("%g bd", *l.Beds))
	}
	if l.Baths != nil {
		parts = append(parts, fmt.Sprintf("%g ba", *l.Baths))
	}
	if l.Sqft != nil {
		parts = append(parts, fmt.Sprintf("%.0f sqft", *l.Sqft))
	}
	if l.Distance != nil {
		parts = append(parts, fmt.Sprintf("%.1f mi out", *l.Distance))
	}
	if l.HasHOA != nil && *l.HasHOA {
		if l.HOAFee != nil && *l.HOAFee > 0 {
			parts = append(parts, fmt.Sprintf("HOA $%.0f", *l.HOAFee))
		} else {
			parts = append(parts, "HOA")
		}
	}
	return strings.Join(parts, " │ ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// Key bindings
var keys = struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Favorite key.Binding
	Dismiss  key.Binding
}{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	Up:       key.NewBinding(key.WithKeys("k", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down")),
	Top:      key.NewBinding(key.WithKeys("g")),
	Bottom:   key.NewBinding(key.WithKeys("G")),
	Favorite: key.NewBinding(key.WithKeys("f")),
	Dismiss:  key.NewBinding(key.WithKeys("x")),
}
