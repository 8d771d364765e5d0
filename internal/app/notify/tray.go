package notify

import (
	"sync"
	"time"

	"github.com/restodesk/backoffice/internal/domain"
)

// Tray holds the live notifications of one connected dashboard client.
// Entries are keyed by event id: re-offering an id that is already present
// is a no-op, so redelivery never produces a second visible notification and
// never restarts the expiry timer. Each entry is removed by explicit
// dismissal or by its own timer, whichever fires first.
type Tray struct {
	mu       sync.Mutex
	ttl      time.Duration
	entries  map[string]*trayEntry
	onExpire func(id string)
}

type trayEntry struct {
	event domain.NotificationEvent
	timer *time.Timer
}

// NewTray creates a tray with the given expiry window. onExpire may be nil;
// when set, it is invoked (outside the tray lock) after a timed-out entry is
// removed.
func NewTray(ttl time.Duration, onExpire func(id string)) *Tray {
	return &Tray{
		ttl:      ttl,
		entries:  make(map[string]*trayEntry),
		onExpire: onExpire,
	}
}

// Offer inserts the event iff no entry with its id exists. Returns true when
// the event was accepted, false when it was a duplicate.
func (t *Tray) Offer(event domain.NotificationEvent) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.entries[event.ID]; ok {
		return false
	}

	entry := &trayEntry{event: event}
	entry.timer = time.AfterFunc(t.ttl, func() {
		t.expire(event.ID, entry)
	})
	t.entries[event.ID] = entry
	return true
}

// expire removes the entry only if it is still the same one the timer was
// armed for: a dismissed-then-reoffered id must not be killed by the stale
// timer of its predecessor.
func (t *Tray) expire(id string, entry *trayEntry) {
	t.mu.Lock()
	current, ok := t.entries[id]
	if !ok || current != entry {
		t.mu.Unlock()
		return
	}
	delete(t.entries, id)
	cb := t.onExpire
	t.mu.Unlock()

	if cb != nil {
		cb(id)
	}
}

// Dismiss removes the entry immediately and cancels its pending timer.
func (t *Tray) Dismiss(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[id]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(t.entries, id)
	return true
}

// Clear removes all entries and cancels their timers.
func (t *Tray) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, entry := range t.entries {
		entry.timer.Stop()
		delete(t.entries, id)
	}
}

func (t *Tray) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Snapshot returns the currently live events, for re-rendering on demand.
func (t *Tray) Snapshot() []domain.NotificationEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	events := make([]domain.NotificationEvent, 0, len(t.entries))
	for _, entry := range t.entries {
		events = append(events, entry.event)
	}
	return events
}
