package feed

import (
	"testing"

	"github.com/idilsaglam/cloon/internal/model"
	"github.com/idilsaglam/cloon/internal/store/queue"
)

func garments() []model.Garment {
	return []model.Garment{
		{ID: "f1", Brand: "StyleCo", Image: "https://x/1.png", TriedOnCount: "2.1K", Category: model.CategoryFeed},
		{ID: "c1", Name: "Red Jacket", Image: "https://x/c1.png", Category: model.CategoryCloset},
		{ID: "f2", Brand: "TrendLab", Image: "https://x/2.png", TriedOnCount: "3.5K", Category: model.CategoryFeed},
	}
}

func TestSwipeRightQueuesCard(t *testing.T) {
	q := queue.New()
	f := New(garments(), q)

	g, ok := f.Swipe(Right)
	if !ok || g.ID != "f1" {
		t.Fatalf("expected f1, got %+v ok=%v", g, ok)
	}
	items := q.Items()
	if len(items) != 1 || items[0].ID != "f1" {
		t.Fatalf("expected f1 queued, got %+v", items)
	}
	if items[0].Brand() != "StyleCo" || items[0].Meta[model.MetaTriedOnCount] != "2.1K" {
		t.Fatalf("unexpected meta: %+v", items[0].Meta)
	}
}

func TestSwipeLeftSkipsWithoutQueueing(t *testing.T) {
	q := queue.New()
	f := New(garments(), q)

	f.Swipe(Left)
	if q.Len() != 0 {
		t.Fatalf("left swipe must not queue")
	}
	cur, ok := f.Current()
	if !ok || cur.ID != "f2" {
		t.Fatalf("expected f2 on top, got %+v", cur)
	}
	if f.Remaining() != 1 || f.Total() != 2 {
		t.Fatalf("expected 1 of 2 remaining, got %d of %d", f.Remaining(), f.Total())
	}
}

func TestSwipeOnEmptyDeck(t *testing.T) {
	f := New(garments(), nil)
	f.Swipe(Right)
	f.Swipe(Right)
	if _, ok := f.Swipe(Right); ok {
		t.Fatalf("expected exhausted deck")
	}
	f.Reset()
	if f.Remaining() != 2 {
		t.Fatalf("expected reset deck, got %d", f.Remaining())
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"left": Left, "R": Right, " right ": Right, "l": Left} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %v err %v", in, got, err)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Fatalf("expected error")
	}
}
