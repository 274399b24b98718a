package store

import (
	"testing"

	"github.com/abelbrown/homescout/internal/listing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFavoritesRoundTrip(t *testing.T) {
	s := openTestStore(t)

	l := listing.Listing{
		ID:           "z1",
		Address:      "123 Main St",
		Price:        listing.Float(500000),
		Neighborhood: "Zilker",
	}
	if err := s.AddFavorite(l); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}

	favs, err := s.Favorites()
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favs) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(favs))
	}
	got := favs[0]
	if got.ID != "z1" || got.Neighborhood != "Zilker" {
		t.Errorf("snapshot mismatch: %+v", got)
	}
	if got.Price == nil || *got.Price != 500000 {
		t.Errorf("price not preserved: %v", got.Price)
	}
}

func TestFavoritesStableOrder(t *testing.T) {
	s := openTestStore(t)

	for _, id := range []string{"c", "a", "b"} {
		if err := s.AddFavorite(listing.Listing{ID: id}); err != nil {
			t.Fatalf("AddFavorite(%s): %v", id, err)
		}
	}

	favs, err := s.Favorites()
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}

	var ids []string
	for _, f := range favs {
		ids = append(ids, f.ID)
	}
	// Same-timestamp ties break by ID, so the order is reproducible
	favs2, _ := s.Favorites()
	for i := range favs2 {
		if favs2[i].ID != ids[i] {
			t.Fatal("favorites order not stable across reads")
		}
	}
}

func TestDismissed(t *testing.T) {
	s := openTestStore(t)

	if err := s.Dismiss("a", "b", "a"); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}

	got, err := s.DismissedIDs()
	if err != nil {
		t.Fatalf("DismissedIDs: %v", err)
	}
	if len(got) != 2 || !got["a"] || !got["b"] {
		t.Errorf("dismissed = %v, want {a, b}", got)
	}
}

func TestPendingLifecycle(t *testing.T) {
	s := openTestStore(t)

	shortlist := []listing.Listing{
		{ID: "p1", Price: listing.Float(900000)},
		{ID: "p2", Price: listing.Float(700000)},
	}
	if err := s.SetPending(shortlist); err != nil {
		t.Fatalf("SetPending: %v", err)
	}

	ids, err := s.PendingIDs()
	if err != nil {
		t.Fatalf("PendingIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "p1" || ids[1] != "p2" {
		t.Errorf("pending order = %v, want [p1 p2]", ids)
	}

	// Replacing overwrites, not appends
	if err := s.SetPending([]listing.Listing{{ID: "p3"}}); err != nil {
		t.Fatalf("SetPending: %v", err)
	}
	ids, _ = s.PendingIDs()
	if len(ids) != 1 || ids[0] != "p3" {
		t.Errorf("pending after replace = %v, want [p3]", ids)
	}
}

func TestExpirePending(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetPending([]listing.Listing{{ID: "p1"}, {ID: "p2"}}); err != nil {
		t.Fatalf("SetPending: %v", err)
	}

	moved, err := s.ExpirePending()
	if err != nil {
		t.Fatalf("ExpirePending: %v", err)
	}
	if moved != 2 {
		t.Errorf("moved = %d, want 2", moved)
	}

	dismissed, _ := s.DismissedIDs()
	if !dismissed["p1"] || !dismissed["p2"] {
		t.Errorf("expired pending should be dismissed, got %v", dismissed)
	}
	ids, _ := s.PendingIDs()
	if len(ids) != 0 {
		t.Errorf("pending should be empty after expiry, got %v", ids)
	}
}

func TestRemovePending(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetPending([]listing.Listing{{ID: "p1"}, {ID: "p2"}}); err != nil {
		t.Fatalf("SetPending: %v", err)
	}
	if err := s.RemovePending("p1"); err != nil {
		t.Fatalf("RemovePending: %v", err)
	}

	ids, _ := s.PendingIDs()
	if len(ids) != 1 || ids[0] != "p2" {
		t.Errorf("pending = %v, want [p2]", ids)
	}
	dismissed, _ := s.DismissedIDs()
	if dismissed["p1"] {
		t.Error("RemovePending must not dismiss")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)

	// Missing profile yields the neutral default, not an error
	p := s.Profile()
	if len(p.PreferredNeighborhoods) != 0 || p.IdealPrice != nil {
		t.Errorf("expected default profile, got %+v", p)
	}

	p.PreferredNeighborhoods = []string{"Zilker"}
	p.NeighborhoodWeights["Zilker"] = 1.5
	p.IdealPrice = listing.Float(550000)
	if err := s.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got := s.Profile()
	if len(got.PreferredNeighborhoods) != 1 || got.PreferredNeighborhoods[0] != "Zilker" {
		t.Errorf("preferred = %v", got.PreferredNeighborhoods)
	}
	if got.NeighborhoodWeights["Zilker"] != 1.5 {
		t.Errorf("weight = %f", got.NeighborhoodWeights["Zilker"])
	}
	if got.IdealPrice == nil || *got.IdealPrice != 550000 {
		t.Errorf("ideal price = %v", got.IdealPrice)
	}
}

func TestProfileCorruptData(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.db.Exec(`INSERT INTO profile (id, data, updated_at) VALUES (1, 'not json', CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("inject corrupt profile: %v", err)
	}

	p := s.Profile()
	if p == nil || len(p.PreferredNeighborhoods) != 0 {
		t.Error("corrupt profile should degrade to the neutral default")
	}
}

func TestCounts(t *testing.T) {
	s := openTestStore(t)

	_ = s.AddFavorite(listing.Listing{ID: "f1"})
	_ = s.Dismiss("d1", "d2")
	_ = s.SetPending([]listing.Listing{{ID: "p1"}})

	f, d, p, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if f != 1 || d != 2 || p != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1", f, d, p)
	}
}
