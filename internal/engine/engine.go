// Package engine runs one full pipeline pass: derive the taste profile
// from favorites, fetch and filter fresh listings, score and select a
// shortlist, persist it as pending, and send the digest.
//
// A run is a straight line over snapshots of the store. Nothing in here
// holds locks across network calls and nothing runs periodically; the
// caller (cron, launchd, or the CLI) decides cadence.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/abelbrown/homescout/internal/config"
	"github.com/abelbrown/homescout/internal/filter"
	"github.com/abelbrown/homescout/internal/geo"
	"github.com/abelbrown/homescout/internal/listing"
	"github.com/abelbrown/homescout/internal/logging"
	"github.com/abelbrown/homescout/internal/notify"
	"github.com/abelbrown/homescout/internal/prefs"
	"github.com/abelbrown/homescout/internal/scoring"
	"github.com/abelbrown/homescout/internal/selection"
	"github.com/abelbrown/homescout/internal/store"
	"github.com/abelbrown/homescout/internal/zillow"
)

// defaultPages is how many result pages a run pulls from the upstream API.
const defaultPages = 3

// Fetcher pulls listing pages for a search prompt. *zillow.Client is the
// production implementation; tests substitute a canned one.
type Fetcher interface {
	SearchPages(ctx context.Context, prompt string, pages int) ([]listing.Listing, error)
}

// Sender delivers the run digest. *notify.Mailer is the production
// implementation.
type Sender interface {
	Send(d notify.Digest) error
}

// Engine wires the pipeline's collaborators together.
type Engine struct {
	cfg    *config.Config
	store  *store.Store
	fetch  Fetcher
	sender Sender // nil disables email
	pages  int
}

// Option adjusts an Engine at construction.
type Option func(*Engine)

// WithSender enables digest email at the end of a run.
func WithSender(s Sender) Option {
	return func(e *Engine) { e.sender = s }
}

// WithPages overrides how many upstream pages a run fetches.
func WithPages(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pages = n
		}
	}
}

// New builds an Engine over an open store and a fetcher.
func New(cfg *config.Config, st *store.Store, f Fetcher, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, store: st, fetch: f, pages: defaultPages}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result summarizes what a run did.
type Result struct {
	Profile    *prefs.Profile
	Fetched    int
	Filtered   int
	Candidates int
	Expired    int
	Picks      []scoring.Scored
	EmailSent  bool
}

// Run executes one pipeline pass. The returned Result is valid even when
// email delivery fails; only fetch and store errors abort a run.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	favorites, err := e.store.Favorites()
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}

	profile := prefs.Derive(favorites)
	if err := e.store.SaveProfile(profile); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	logging.Info("derived profile",
		"favorites", len(favorites),
		"preferred", profile.PreferredNeighborhoods)

	res := &Result{Profile: profile}

	if !e.cfg.KeepPending {
		n, err := e.store.ExpirePending()
		if err != nil {
			return nil, fmt.Errorf("expiring pending: %w", err)
		}
		res.Expired = n
		if n > 0 {
			logging.Info("expired unreviewed pending listings", "count", n)
		}
	}

	prompt := zillow.BuildPrompt(e.cfg)
	logging.Info("searching", "prompt", prompt, "pages", e.pages)
	fetched, err := e.fetch.SearchPages(ctx, prompt, e.pages)
	if err != nil {
		return nil, fmt.Errorf("fetching listings: %w", err)
	}
	res.Fetched = len(fetched)

	matched := filter.New(e.cfg).Apply(fetched)
	res.Filtered = len(fetched) - len(matched)

	for i := range matched {
		geo.Enrich(&matched[i])
	}

	candidates, err := e.excludeSeen(matched, favorites)
	if err != nil {
		return nil, err
	}
	res.Candidates = len(candidates)
	logging.Info("candidate pool",
		"fetched", res.Fetched, "filtered_out", res.Filtered, "candidates", res.Candidates)

	scored := scoring.ScoreAll(candidates, e.cfg, profile)
	res.Picks = selection.Select(scored, profile, e.cfg.MaxListings)

	shortlist := make([]listing.Listing, len(res.Picks))
	for i, s := range res.Picks {
		shortlist[i] = s.Listing
	}
	if err := e.store.SetPending(shortlist); err != nil {
		return nil, fmt.Errorf("saving shortlist: %w", err)
	}
	logging.Info("shortlist saved", "count", len(shortlist))

	if e.sender != nil {
		digest := notify.Digest{
			Picks:       res.Picks,
			Favorites:   favorites,
			GeneratedAt: time.Now(),
		}
		if err := e.sender.Send(digest); err != nil {
			logging.Error("digest email failed", "err", err)
		} else {
			res.EmailSent = true
		}
	}

	return res, nil
}

// excludeSeen drops listings already favorited or dismissed. Duplicate IDs
// within a fetch collapse to the first occurrence.
func (e *Engine) excludeSeen(candidates, favorites []listing.Listing) ([]listing.Listing, error) {
	dismissed, err := e.store.DismissedIDs()
	if err != nil {
		return nil, fmt.Errorf("loading dismissed ids: %w", err)
	}
	seen := make(map[string]bool, len(favorites)+len(dismissed))
	for id := range dismissed {
		seen[id] = true
	}
	for _, f := range favorites {
		seen[f.ID] = true
	}

	out := make([]listing.Listing, 0, len(candidates))
	for _, l := range candidates {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		out = append(out, l)
	}
	return out, nil
}
