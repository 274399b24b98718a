// Package notify sends the run digest email: the new shortlist plus a
// recap of current favorites, with a monthly cost estimate per listing.
package notify

import (
	"errors"
	"fmt"
	"net/smtp"
	"sort"
	"strings"
	"time"

	"github.com/abelbrown/homescout/internal/config"
	"github.com/abelbrown/homescout/internal/finance"
	"github.com/abelbrown/homescout/internal/listing"
	"github.com/abelbrown/homescout/internal/scoring"
)

const (
	smtpHost = "smtp.gmail.com"
	smtpPort = "587"
)

// ErrMissingCredentials is returned when the .env file does not carry
// enough to authenticate with Gmail.
var ErrMissingCredentials = errors.New("notify: missing gmail credentials")

// Mailer sends digests over Gmail SMTP with an app password.
type Mailer struct {
	from       string
	password   string
	recipients []string
}

// NewMailer builds a Mailer from loaded secrets. Sender credentials and at
// least one recipient are required.
func NewMailer(secrets config.Secrets) (*Mailer, error) {
	if secrets.GmailAddress == "" || secrets.GmailAppPassword == "" || len(secrets.Recipients) == 0 {
		return nil, ErrMissingCredentials
	}
	return &Mailer{from: secrets.GmailAddress, password: secrets.GmailAppPassword, recipients: secrets.Recipients}, nil
}

// Digest is everything a single run wants to report.
type Digest struct {
	Picks       []scoring.Scored
	Favorites   []listing.Listing
	GeneratedAt time.Time
}

// Subject summarizes the digest for the email header.
func (d Digest) Subject() string {
	if len(d.Picks) == 0 {
		return "HomeScout: no new matches today"
	}
	return fmt.Sprintf("HomeScout: %d new listings to review", len(d.Picks))
}

// Send renders and delivers the digest to all recipients.
func (m *Mailer) Send(d Digest) error {
	html, err := renderHTML(d)
	if err != nil {
		return fmt.Errorf("rendering digest: %w", err)
	}
	msg := buildMessage(m.from, m.recipients, d.Subject(), renderText(d), html)

	auth := smtp.PlainAuth("", m.from, m.password, smtpHost)
	addr := smtpHost + ":" + smtpPort
	if err := smtp.SendMail(addr, auth, m.from, m.recipients, msg); err != nil {
		return fmt.Errorf("sending digest: %w", err)
	}
	return nil
}

// buildMessage assembles a multipart/alternative MIME message so clients
// without HTML still get a readable digest.
func buildMessage(from string, to []string, subject, text, html string) []byte {
	boundary := "homescout-digest-boundary"
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(text)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

// favoritesByDistance returns favorites ordered nearest-first, unknown
// distances last.
func favoritesByDistance(favs []listing.Listing) []listing.Listing {
	out := make([]listing.Listing, len(favs))
	copy(out, favs)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Distance, out[j].Distance
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di < *dj
		}
	})
	return out
}

func formatPrice(l listing.Listing) string {
	if l.Price == nil {
		return "Price unknown"
	}
	return "$" + comma(int64(*l.Price))
}

func formatMonthly(l listing.Listing) string {
	if l.Price == nil || *l.Price <= 0 {
		return ""
	}
	return fmt.Sprintf("~$%s/mo est.", comma(int64(finance.TotalMonthly(*l.Price))))
}

func formatSpecs(l listing.Listing) string {
	var parts []string
	if l.Beds != nil {
		parts = append(parts, fmt.Sprintf("%g bd", *l.Beds))
	}
	if l.Baths != nil {
		parts = append(parts, fmt.Sprintf("%g ba", *l.Baths))
	}
	if l.Sqft != nil {
		parts = append(parts, fmt.Sprintf("%s sqft", comma(int64(*l.Sqft))))
	}
	if l.Distance != nil {
		parts = append(parts, fmt.Sprintf("%.1f mi", *l.Distance))
	}
	return strings.Join(parts, " | ")
}

func comma(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if n < 0 {
		return "-" + b.String()
	}
	return b.String()
}

// renderText produces the plain-text alternative.
func renderText(d Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "HomeScout digest, %s\n\n", d.GeneratedAt.Format("Jan 2 2006"))

	if len(d.Picks) == 0 {
		b.WriteString("No new matches this run.\n")
	} else {
		fmt.Fprintf(&b, "New listings (%d):\n\n", len(d.Picks))
		for i, s := range d.Picks {
			l := s.Listing
			fmt.Fprintf(&b, "%d. %s\n   %s", i+1, l.Address, formatPrice(l))
			if m := formatMonthly(l); m != "" {
				b.WriteString("  " + m)
			}
			b.WriteString("\n")
			if specs := formatSpecs(l); specs != "" {
				b.WriteString("   " + specs + "\n")
			}
			if l.Neighborhood != "" {
				b.WriteString("   " + l.Neighborhood + "\n")
			}
			if l.DetailURL != "" {
				b.WriteString("   " + l.DetailURL + "\n")
			}
			b.WriteString("\n")
		}
	}

	if favs := favoritesByDistance(d.Favorites); len(favs) > 0 {
		fmt.Fprintf(&b, "Your favorites (%d), nearest first:\n\n", len(favs))
		for _, l := range favs {
			fmt.Fprintf(&b, "- %s (%s", l.Address, formatPrice(l))
			if l.Distance != nil {
				fmt.Fprintf(&b, ", %.1f mi", *l.Distance)
			}
			b.WriteString(")\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Cost estimate assumptions:\n")
	b.WriteString(finance.AssumptionsText())
	b.WriteString("\n")
	return b.String()
}
