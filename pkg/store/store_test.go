package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/deckdraw/pkg/emit"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	if _, err := s.Get(ctx, "absent"); err != ErrNotFound {
		t.Errorf("Get absent = %v, want ErrNotFound", err)
	}

	rec := Record{
		ID:        "r1",
		DeckHash:  "abc",
		SlideID:   "s1",
		Scene:     emit.Scene{Width: 100, Height: 50},
		CreatedAt: time.Now(),
	}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Scene.Width != 100 || got.DeckHash != "abc" {
		t.Errorf("Get = %+v, want stored record", got)
	}

	if err := s.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "r1"); err != ErrNotFound {
		t.Errorf("Get deleted = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "r1"); err != nil {
		t.Errorf("double delete should not error: %v", err)
	}
}

func TestMemoryStoreListByDeck(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now()
	for i, id := range []string{"old", "new"} {
		err := s.Put(ctx, Record{
			ID:        id,
			DeckHash:  "deck1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	if err := s.Put(ctx, Record{ID: "other", DeckHash: "deck2", CreatedAt: base}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	recs, err := s.ListByDeck(ctx, "deck1")
	if err != nil {
		t.Fatalf("ListByDeck: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].ID != "new" || recs[1].ID != "old" {
		t.Errorf("order = %s, %s, want newest first", recs[0].ID, recs[1].ID)
	}
}
