// Package session wires one tried-on queue to the catalog, the swipe feed and
// the avatar's applied look. Screens get the Session handed to them; there is
// no package-level state.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"pkt.systems/pslog"

	"github.com/idilsaglam/cloon/internal/feed"
	"github.com/idilsaglam/cloon/internal/model"
	"github.com/idilsaglam/cloon/internal/store/queue"
)

var (
	ErrUnknownGarment = errors.New("unknown garment")
	ErrNotQueued      = errors.New("not in tried-on queue")
	ErrEmptySelection = errors.New("nothing selected")
)

// Clipboard receives shared text.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}

// Options tune a Session. Zero values are usable.
type Options struct {
	Duplicates queue.DuplicatePolicy
	Logger     pslog.Logger
	Clipboard  Clipboard
}

type Session struct {
	q        *queue.Store
	feed     *feed.Feed
	garments []model.Garment
	byID     map[string]model.Garment
	clip     Clipboard
	log      pslog.Logger

	mu      sync.Mutex
	applied *model.TriedOnItem
}

// New builds a session with an empty queue over garments.
func New(garments []model.Garment, opt Options) *Session {
	log := opt.Logger
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	clip := opt.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}
	s := &Session{
		q:        queue.New(queue.WithDuplicatePolicy(opt.Duplicates), queue.WithLogger(log)),
		garments: garments,
		byID:     make(map[string]model.Garment, len(garments)),
		clip:     clip,
		log:      log,
	}
	for _, g := range garments {
		s.byID[g.ID] = g
	}
	s.feed = feed.New(garments, s.q)
	// the avatar drops its look once that look leaves the queue
	s.q.Subscribe(s.onQueueChange)
	return s
}

func (s *Session) Queue() *queue.Store       { return s.q }
func (s *Session) Feed() *feed.Feed          { return s.feed }
func (s *Session) Garments() []model.Garment { return s.garments }

// Garment looks up a catalog entry.
func (s *Session) Garment(id string) (model.Garment, bool) {
	g, ok := s.byID[id]
	return g, ok
}

// Closet returns the closet-category garments in catalog order.
func (s *Session) Closet() []model.Garment {
	var out []model.Garment
	for _, g := range s.garments {
		if g.Category == model.CategoryCloset {
			out = append(out, g)
		}
	}
	return out
}

// TryOn queues a catalog garment.
func (s *Session) TryOn(id string) error {
	g, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGarment, id)
	}
	s.q.Add(g.TriedOn())
	return nil
}

// AddImage queues an item that is not in the catalog, under a fresh id.
func (s *Session) AddImage(image, name string) model.TriedOnItem {
	it := model.TriedOnItem{ID: uuid.NewString(), Image: image, Meta: map[string]any{}}
	if name = strings.TrimSpace(name); name != "" {
		it.Meta[model.MetaName] = name
	}
	s.q.Add(it)
	return it
}

// ToggleCloset flips a garment's queue membership and reports the new state.
func (s *Session) ToggleCloset(id string) (bool, error) {
	g, ok := s.byID[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownGarment, id)
	}
	if s.q.Contains(id) {
		s.q.Remove(id)
		return false, nil
	}
	s.q.Add(g.TriedOn())
	return true, nil
}

// Apply puts a queued item on the avatar. The queue is read under s.mu so a
// concurrent removal either fails the apply or drops the look right after.
func (s *Session) Apply(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.q.Items() {
		if it.ID == id {
			s.applied = &it
			s.log.Info("look applied", "id", id)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotQueued, id)
}

// Applied returns the look currently on the avatar.
func (s *Session) Applied() (model.TriedOnItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied == nil {
		return model.TriedOnItem{}, false
	}
	return s.applied.Clone(), true
}

// DeleteSelected removes the selected items from the queue.
func (s *Session) DeleteSelected(ids []string) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	s.q.Remove(ids...)
	return nil
}

func (s *Session) Clear() { s.q.Clear() }

// Share builds share text for the first selected item and copies it to the
// clipboard. A clipboard failure is logged, not returned.
func (s *Session) Share(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", ErrEmptySelection
	}
	var (
		it    model.TriedOnItem
		found bool
	)
	for _, q := range s.q.Items() {
		if q.ID == ids[0] {
			it, found = q, true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("%w: %s", ErrNotQueued, ids[0])
	}
	text := ShareText(it)
	if err := s.clip.WriteAll(text); err != nil {
		s.log.Warn("share: clipboard write failed", "err", err)
	}
	return text, nil
}

// ShareText is the message shared for it.
func ShareText(it model.TriedOnItem) string {
	if b := it.Brand(); b != "" {
		return fmt.Sprintf("Check out this look from %s on Cloon. %s", b, it.Image)
	}
	return fmt.Sprintf("Check out %s on Cloon. %s", it.Name(), it.Image)
}

func (s *Session) onQueueChange(e queue.Event) {
	if e.Kind == queue.EventAdded {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied == nil {
		return
	}
	for _, it := range e.Items {
		if it.ID == s.applied.ID {
			return
		}
	}
	s.log.Debug("applied look left the queue", "id", s.applied.ID)
	s.applied = nil
}
