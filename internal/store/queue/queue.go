// Package queue holds the tried-on queue: an in-memory, newest-first list of
// garments with synchronous change notification.
package queue

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/idilsaglam/cloon/internal/model"
	"pkt.systems/pslog"
)

// DuplicatePolicy decides what Add does with an id that is already queued.
type DuplicatePolicy int

const (
	// KeepDuplicates prepends unconditionally; the queue may hold the same id twice.
	KeepDuplicates DuplicatePolicy = iota
	// MoveToFront drops the older entries with the same id before prepending.
	MoveToFront
)

func (p DuplicatePolicy) String() string {
	if p == MoveToFront {
		return "move-to-front"
	}
	return "keep"
}

// ParseDuplicatePolicy accepts "keep" and "move-to-front" (case-insensitive).
// An empty string means keep.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return KeepDuplicates, nil
	case "move-to-front", "move_to_front", "unique":
		return MoveToFront, nil
	}
	return KeepDuplicates, fmt.Errorf("unknown duplicate policy %q", s)
}

// EventKind identifies the mutation that produced an Event.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventRemoved EventKind = "removed"
	EventCleared EventKind = "cleared"
)

// Event is handed to subscribers after a mutation has been committed.
type Event struct {
	Kind  EventKind
	IDs   []string            // ids touched by the mutation
	Items []model.TriedOnItem // queue contents after the mutation
}

// Option configures a Store.
type Option func(*Store)

func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(s *Store) { s.policy = p }
}

func WithLogger(l pslog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Store is the tried-on queue. The zero value is not usable; call New.
//
// Mutations are serialized together with their notifications, so every
// subscriber sees events in commit order. Subscribers may read the store and
// may cancel subscriptions from inside a callback, but must not mutate it.
type Store struct {
	writeMu sync.Mutex   // held across mutate + notify
	mu      sync.RWMutex // guards items
	items   []model.TriedOnItem

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int

	policy DuplicatePolicy
	log    pslog.Logger
}

// New returns an empty queue.
func New(opts ...Option) *Store {
	s := &Store{
		subs: make(map[int]func(Event)),
		log:  pslog.Ctx(context.Background()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy reports the duplicate policy the store was built with.
func (s *Store) Policy() DuplicatePolicy { return s.policy }

// Add puts item at the front of the queue.
func (s *Store) Add(item model.TriedOnItem) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	item = item.Clone()
	s.mu.Lock()
	if s.policy == MoveToFront {
		s.items = slices.DeleteFunc(s.items, func(it model.TriedOnItem) bool { return it.ID == item.ID })
	}
	s.items = slices.Insert(s.items, 0, item)
	n := len(s.items)
	s.mu.Unlock()

	s.log.Debug("tried-on add", "id", item.ID, "len", n, "policy", s.policy.String())
	s.notify(EventAdded, []string{item.ID})
}

// Remove drops every entry whose id is in ids. Unknown ids are ignored and
// the relative order of the remaining entries is kept.
func (s *Store) Remove(ids ...string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(it model.TriedOnItem) bool {
		_, ok := drop[it.ID]
		return ok
	})
	n := len(s.items)
	s.mu.Unlock()

	if n == before {
		s.log.Trace("tried-on remove matched nothing", "ids", ids)
		return
	}
	s.log.Debug("tried-on remove", "ids", ids, "removed", before-n, "len", n)
	s.notify(EventRemoved, ids)
}

// Clear empties the queue.
func (s *Store) Clear() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	ids := make([]string, 0, len(s.items))
	for _, it := range s.items {
		ids = append(ids, it.ID)
	}
	s.items = nil
	s.mu.Unlock()

	if len(ids) == 0 {
		return
	}
	s.log.Debug("tried-on clear", "removed", len(ids))
	s.notify(EventCleared, ids)
}

// Items returns a copy of the queue, most recent first.
func (s *Store) Items() []model.TriedOnItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Contains reports whether any entry carries id.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.items, func(it model.TriedOnItem) bool { return it.ID == id })
}

// Subscribe registers fn to run after every mutation that changes the queue.
// The returned func unregisters it and is safe to call more than once.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	count := len(s.subs)
	s.subMu.Unlock()
	s.log.Trace("tried-on subscribe", "subs", count)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(kind EventKind, ids []string) {
	s.subMu.Lock()
	keys := make([]int, 0, len(s.subs))
	for k := range s.subs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fns := make([]func(Event), 0, len(keys))
	for _, k := range keys {
		fns = append(fns, s.subs[k])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		s.mu.RLock()
		items := s.snapshotLocked()
		s.mu.RUnlock()
		fn(Event{Kind: kind, IDs: slices.Clone(ids), Items: items})
	}
}

func (s *Store) snapshotLocked() []model.TriedOnItem {
	out := make([]model.TriedOnItem, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}
