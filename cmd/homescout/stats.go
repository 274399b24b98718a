package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/abelbrown/homescout/internal/prefs"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	showProfile := fs.Bool("profile", false, "Include the derived preference profile")
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	favorites, dismissed, pending, err := st.Counts()
	if err != nil {
		log.Fatalf("failed to read counts: %v", err)
	}

	fmt.Printf("Favorites:   %d\n", favorites)
	fmt.Printf("Dismissed:   %d\n", dismissed)
	fmt.Printf("Pending:     %d\n", pending)

	favs, err := st.Favorites()
	if err != nil {
		log.Fatalf("failed to read favorites: %v", err)
	}
	if len(favs) > 0 {
		fmt.Println("\nFavorites:")
		for _, l := range favs {
			line := fmt.Sprintf("  %-50s", l.Address)
			if l.Price != nil {
				line += fmt.Sprintf(" $%.0f", *l.Price)
			}
			if l.Neighborhood != "" {
				line += "  " + l.Neighborhood
			}
			fmt.Println(line)
		}
	}

	if !*showProfile {
		return
	}

	fmt.Println("\n=== Preference profile ===")
	printProfile(st.Profile())
}

func printProfile(p *prefs.Profile) {
	if len(p.PreferredNeighborhoods) == 0 {
		fmt.Println("No preferences derived yet. Favorite some listings first.")
		return
	}

	fmt.Println("Preferred neighborhoods:")
	for _, name := range p.PreferredNeighborhoods {
		fmt.Printf("  %-25s weight %.2f\n", name, p.NeighborhoodWeights[name])
	}

	// Weighted neighborhoods beyond the preferred list, heaviest first.
	var extras []string
	for name := range p.NeighborhoodWeights {
		if !contains(p.PreferredNeighborhoods, name) {
			extras = append(extras, name)
		}
	}
	if len(extras) > 0 {
		sort.Slice(extras, func(i, j int) bool {
			wi, wj := p.NeighborhoodWeights[extras[i]], p.NeighborhoodWeights[extras[j]]
			if wi != wj {
				return wi > wj
			}
			return extras[i] < extras[j]
		})
		fmt.Println("Also weighted:")
		for _, name := range extras {
			fmt.Printf("  %-25s weight %.2f\n", name, p.NeighborhoodWeights[name])
		}
	}

	if p.IdealPrice != nil {
		fmt.Printf("Ideal price: $%.0f\n", *p.IdealPrice)
	}
	if p.IdealSqft != nil {
		fmt.Printf("Ideal sqft:  %.0f\n", *p.IdealSqft)
	}
	if p.IdealBeds != nil {
		fmt.Printf("Ideal beds:  %.1f\n", *p.IdealBeds)
	}
	if p.IdealBaths != nil {
		fmt.Printf("Ideal baths: %.1f\n", *p.IdealBaths)
	}
	if p.HOAPreference != nil {
		if *p.HOAPreference {
			fmt.Println("HOA: acceptable")
		} else {
			fmt.Println("HOA: avoid")
		}
	}
	fmt.Printf("History: %d prices, %d sqft, %d beds, %d baths\n",
		len(p.PriceHistory), len(p.SqftHistory), len(p.BedsHistory), len(p.BathsHistory))
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
