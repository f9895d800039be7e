// Package feed is the wardrobe swipe deck. Swiping right queues the top card
// as tried on; either direction takes the card out of the deck.
package feed

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/cloon/internal/model"
)

// Direction of a committed swipe.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// ParseDirection accepts left/right and the l/r shorthands.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown direction %q", s)
}

// Adder is the part of the tried-on queue the feed needs.
type Adder interface {
	Add(item model.TriedOnItem)
}

// Feed is not safe for concurrent use; it belongs to one screen.
type Feed struct {
	all    []model.Garment
	swiped map[string]struct{}
	q      Adder
}

// New builds a deck from the feed-category garments, in catalog order.
func New(garments []model.Garment, q Adder) *Feed {
	f := &Feed{swiped: make(map[string]struct{}), q: q}
	for _, g := range garments {
		if g.Category == model.CategoryFeed {
			f.all = append(f.all, g)
		}
	}
	return f
}

// Current returns the top card.
func (f *Feed) Current() (model.Garment, bool) {
	for _, g := range f.all {
		if _, done := f.swiped[g.ID]; !done {
			return g, true
		}
	}
	return model.Garment{}, false
}

// Swipe commits the top card in dir and returns it.
func (f *Feed) Swipe(dir Direction) (model.Garment, bool) {
	g, ok := f.Current()
	if !ok {
		return model.Garment{}, false
	}
	if dir == Right && f.q != nil {
		f.q.Add(g.TriedOn())
	}
	f.swiped[g.ID] = struct{}{}
	return g, true
}

// Remaining counts cards not yet swiped.
func (f *Feed) Remaining() int {
	n := 0
	for _, g := range f.all {
		if _, done := f.swiped[g.ID]; !done {
			n++
		}
	}
	return n
}

func (f *Feed) Total() int { return len(f.all) }

// Reset puts every card back. The queue is left alone.
func (f *Feed) Reset() { clear(f.swiped) }
