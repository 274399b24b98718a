// Package zillow fetches candidate listings from the Private-Zillow search
// API on RapidAPI and normalizes its loosely-shaped responses into Listing
// records.
//
// The API accepts a natural-language search prompt and returns listings
// under any of several top-level keys depending on the backend it routed
// to, so response handling sniffs the shape rather than trusting a schema.
package zillow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/abelbrown/homescout/internal/config"
	"github.com/abelbrown/homescout/internal/listing"
	"github.com/abelbrown/homescout/internal/logging"
)

const baseURL = "https://private-zillow.p.rapidapi.com"

const rapidAPIHost = "private-zillow.p.rapidapi.com"

// requestTimeout bounds each individual API call.
const requestTimeout = 30 * time.Second

// maxAttempts is the per-request retry budget.
const maxAttempts = 3

// retryBaseDelay is the first backoff step; it doubles per attempt.
const retryBaseDelay = 2 * time.Second

// ErrMissingAPIKey is returned by NewClient when no key is configured.
var ErrMissingAPIKey = errors.New("zillow: RAPIDAPI_KEY is required")

// Client talks to the Private-Zillow API.
type Client struct {
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

// NewClient creates a Client with the given API key.
// Requests are rate-limited to one per second to stay inside the
// RapidAPI free-tier quota.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Client{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		baseURL: baseURL,
	}, nil
}

// BuildPrompt renders the configured criteria as the natural-language
// search prompt the API expects, e.g.
// "houses for sale in Austin, TX under $1.2M no pool".
func BuildPrompt(cfg *config.Config) string {
	location := cfg.Location
	if location == "" {
		location = "Austin, TX"
	}

	prompt := "houses for sale in " + location

	if cfg.MaxPrice != nil {
		max := *cfg.MaxPrice
		if max >= 1_000_000 {
			prompt += fmt.Sprintf(" under $%.1fM", max/1_000_000)
		} else {
			prompt += fmt.Sprintf(" under $%s", formatThousands(max))
		}
	}

	for _, f := range cfg.ExcludeFeatures {
		if f == "pool" {
			prompt += " no pool"
		}
	}

	return prompt
}

// Search runs one search request and returns the parsed listings.
// Transient failures are retried with exponential backoff.
func (c *Client) Search(ctx context.Context, prompt string, page int) ([]listing.Listing, error) {
	var body []byte
	delay := retryBaseDelay

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, lastErr = c.search(ctx, prompt, page)
		if lastErr == nil {
			break
		}
		if attempt < maxAttempts {
			logging.Warn("Search attempt failed, retrying",
				"attempt", attempt, "page", page, "error", lastErr, "delay", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("search failed after %d attempts: %w", maxAttempts, lastErr)
	}

	return ParseResponse(body)
}

// SearchPages fetches several result pages concurrently and concatenates
// them in page order. The shared rate limiter keeps the concurrency polite.
func (c *Client) SearchPages(ctx context.Context, prompt string, pages int) ([]listing.Listing, error) {
	if pages < 1 {
		pages = 1
	}

	results := make([][]listing.Listing, pages)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < pages; i++ {
		page := i + 1
		g.Go(func() error {
			got, err := c.Search(gctx, prompt, page)
			if err != nil {
				return fmt.Errorf("page %d: %w", page, err)
			}
			mu.Lock()
			results[page-1] = got
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []listing.Listing
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func (c *Client) search(ctx context.Context, prompt string, page int) ([]byte, error) {
	q := url.Values{}
	q.Set("ai_search_prompt", prompt)
	q.Set("page", strconv.Itoa(page))
	q.Set("sortOrder", "Newest")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search/byaiprompt?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", rapidAPIHost)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func formatThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
