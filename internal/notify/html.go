package notify

import (
	"html/template"
	"strings"

	"github.com/abelbrown/homescout/internal/finance"
	"github.com/abelbrown/homescout/internal/listing"
)

// card is a listing flattened into display strings for the template.
type card struct {
	Address      string
	Price        string
	Monthly      string
	Specs        string
	Neighborhood string
	Direction    string
	PhotoURL     string
	DetailURL    string
}

type digestData struct {
	Date        string
	Picks       []card
	Favorites   []card
	Assumptions []string
}

func toCard(l listing.Listing) card {
	return card{
		Address:      l.Address,
		Price:        formatPrice(l),
		Monthly:      formatMonthly(l),
		Specs:        formatSpecs(l),
		Neighborhood: l.Neighborhood,
		Direction:    l.Direction,
		PhotoURL:     l.PhotoURL,
		DetailURL:    l.DetailURL,
	}
}

var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Helvetica,Arial,sans-serif;background:#f4f4f4;margin:0;padding:16px;">
<div style="max-width:640px;margin:0 auto;">
<h2 style="color:#2c3e50;">HomeScout Digest &mdash; {{.Date}}</h2>
{{if .Picks}}
<h3 style="color:#2c3e50;">New listings ({{len .Picks}})</h3>
{{range .Picks}}
<div style="background:#fff;border-radius:8px;padding:16px;margin-bottom:12px;box-shadow:0 1px 3px rgba(0,0,0,0.1);">
{{if .PhotoURL}}<img src="{{.PhotoURL}}" alt="" style="width:100%;max-height:280px;object-fit:cover;border-radius:4px;">{{end}}
<p style="font-size:16px;font-weight:bold;margin:8px 0 2px;">{{.Address}}</p>
<p style="font-size:15px;color:#27ae60;margin:2px 0;">{{.Price}}{{if .Monthly}} &middot; {{.Monthly}}{{end}}</p>
{{if .Specs}}<p style="color:#555;margin:2px 0;">{{.Specs}}</p>{{end}}
{{if .Neighborhood}}<p style="color:#888;margin:2px 0;">{{.Neighborhood}}{{if .Direction}} ({{.Direction}}){{end}}</p>{{end}}
{{if .DetailURL}}<p style="margin:8px 0 0;"><a href="{{.DetailURL}}" style="color:#2980b9;">View on Zillow</a></p>{{end}}
</div>
{{end}}
{{else}}
<p style="color:#555;">No new matches this run. The search will try again next time.</p>
{{end}}
{{if .Favorites}}
<h3 style="color:#2c3e50;">Your favorites ({{len .Favorites}}), nearest first</h3>
{{range .Favorites}}
<p style="margin:4px 0;color:#555;">&bull; {{.Address}} ({{.Price}}{{if .Specs}}, {{.Specs}}{{end}})</p>
{{end}}
{{end}}
<div style="margin-top:24px;padding-top:12px;border-top:1px solid #ddd;color:#999;font-size:12px;">
<p>Cost estimate assumptions:</p>
{{range .Assumptions}}<p style="margin:2px 0;">{{.}}</p>{{end}}
</div>
</div>
</body>
</html>`))

// renderHTML produces the rich alternative for HTML-capable clients.
func renderHTML(d Digest) (string, error) {
	data := digestData{
		Date:        d.GeneratedAt.Format("Jan 2, 2006"),
		Assumptions: assumptionLines(),
	}
	for _, s := range d.Picks {
		data.Picks = append(data.Picks, toCard(s.Listing))
	}
	for _, l := range favoritesByDistance(d.Favorites) {
		data.Favorites = append(data.Favorites, toCard(l))
	}

	var b strings.Builder
	if err := digestTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func assumptionLines() []string {
	raw := strings.Split(finance.AssumptionsText(), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimPrefix(strings.TrimSpace(line), "- ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
