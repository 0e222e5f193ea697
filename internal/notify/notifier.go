package notify

import (
	"sync"
	"time"
)

// Kind distinguishes success from error messages.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is one transient notification.
type Message struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

// Notifier is a single-slot, last-write-wins, self-expiring message holder.
// Show replaces whatever is displayed and restarts the expiry timer, so the
// slot always clears a full TTL after the most recent Show, never the first.
type Notifier struct {
	ttl time.Duration

	mu      sync.Mutex
	current *Message
	timer   *time.Timer
	seq     uint64
}

// DefaultTTL matches the dashboard's 3 second auto-dismiss.
const DefaultTTL = 3 * time.Second

// New builds a notifier with the given TTL (DefaultTTL when zero).
func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

// Show displays a message, replacing any current one and resetting the
// expiry timer.
func (n *Notifier) Show(text string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current = &Message{Text: text, Kind: kind}
	n.seq++
	if n.timer != nil {
		n.timer.Stop()
	}
	// Capture the sequence so a stale timer that already fired cannot
	// clear a message shown after it.
	seq := n.seq
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(seq) })
}

// Success is shorthand for Show with KindSuccess.
func (n *Notifier) Success(text string) { n.Show(text, KindSuccess) }

// Error is shorthand for Show with KindError.
func (n *Notifier) Error(text string) { n.Show(text, KindError) }

// Current returns the visible message, or nil once it has expired.
func (n *Notifier) Current() *Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	msg := *n.current
	return &msg
}

// Clear dismisses the message immediately.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.clearLocked()
}

func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if seq != n.seq {
		return
	}
	n.clearLocked()
}

func (n *Notifier) clearLocked() {
	n.current = nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
