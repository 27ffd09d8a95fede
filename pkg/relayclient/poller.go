package relayclient

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultDirectoryInterval is how often the session list is refreshed.
	DefaultDirectoryInterval = 5 * time.Second
	// DefaultMessageInterval is how often the selected session is refreshed.
	DefaultMessageInterval = 2 * time.Second
)

// Poller keeps a session directory and one selected conversation in sync
// with the server by periodic polling. Consumers register callbacks that
// fire only when the observed state actually changed, so a caller can
// re-render directly from them without its own dirty checking.
type Poller struct {
	client            *Client
	directoryInterval time.Duration
	messageInterval   time.Duration

	onSessions func([]SessionSummary)
	onMessages func(sessionID string, messages []Message)

	mu         sync.Mutex
	selected   string
	generation uint64

	lastSessions []SessionSummary
	haveSessions bool
	lastMessages []Message
	haveMessages bool

	kick chan struct{}
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithDirectoryInterval sets the session list refresh period.
func WithDirectoryInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.directoryInterval = d }
}

// WithMessageInterval sets the selected conversation refresh period.
func WithMessageInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.messageInterval = d }
}

// OnSessions registers the callback fired when the directory changes.
func OnSessions(fn func([]SessionSummary)) PollerOption {
	return func(p *Poller) { p.onSessions = fn }
}

// OnMessages registers the callback fired when the selected session's
// history changes.
func OnMessages(fn func(sessionID string, messages []Message)) PollerOption {
	return func(p *Poller) { p.onMessages = fn }
}

// NewPoller creates a poller over the given client.
func NewPoller(client *Client, opts ...PollerOption) *Poller {
	p := &Poller{
		client:            client,
		directoryInterval: DefaultDirectoryInterval,
		messageInterval:   DefaultMessageInterval,
		kick:              make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Select switches the conversation being synchronized. In-flight history
// fetches for the previous selection are discarded when they land, so a
// slow response can never overwrite the newer session's view.
func (p *Poller) Select(sessionID string) {
	p.mu.Lock()
	if p.selected == sessionID {
		p.mu.Unlock()
		return
	}
	p.selected = sessionID
	p.generation++
	p.lastMessages = nil
	p.haveMessages = false
	p.mu.Unlock()

	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Selected returns the currently synchronized session id.
func (p *Poller) Selected() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// Run polls until the context is cancelled. It performs an initial
// directory fetch immediately, then refreshes on the configured periods.
func (p *Poller) Run(ctx context.Context) {
	dirTicker := time.NewTicker(p.directoryInterval)
	defer dirTicker.Stop()
	msgTicker := time.NewTicker(p.messageInterval)
	defer msgTicker.Stop()

	p.pollDirectory(ctx)
	p.pollMessages(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-dirTicker.C:
			p.pollDirectory(ctx)
		case <-msgTicker.C:
			p.pollMessages(ctx)
		case <-p.kick:
			p.pollMessages(ctx)
		}
	}
}

func (p *Poller) pollDirectory(ctx context.Context) {
	rows, err := p.client.ListSessions(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logrus.Warnf("Session list poll failed: %v", err)
		}
		return
	}

	p.mu.Lock()
	changed := !p.haveSessions || !sessionsEqual(p.lastSessions, rows)
	if changed {
		p.lastSessions = rows
		p.haveSessions = true
	}
	p.mu.Unlock()

	if changed && p.onSessions != nil {
		p.onSessions(rows)
	}
}

func (p *Poller) pollMessages(ctx context.Context) {
	p.mu.Lock()
	id := p.selected
	gen := p.generation
	p.mu.Unlock()
	if id == "" {
		return
	}

	rows, err := p.client.SessionMessages(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			logrus.Warnf("Message poll for session %s failed: %v", id, err)
		}
		return
	}

	p.mu.Lock()
	if p.generation != gen {
		// Selection moved on while this fetch was in flight.
		p.mu.Unlock()
		return
	}
	changed := !p.haveMessages || !messagesEqual(p.lastMessages, rows)
	if changed {
		p.lastMessages = rows
		p.haveMessages = true
	}
	p.mu.Unlock()

	if changed && p.onMessages != nil {
		p.onMessages(id, rows)
	}
}

func sessionsEqual(a, b []SessionSummary) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID ||
			a[i].Preview != b[i].Preview ||
			a[i].MessageCount != b[i].MessageCount ||
			!a[i].UpdatedAt.Equal(b[i].UpdatedAt) {
			return false
		}
	}
	return true
}

func messagesEqual(a, b []Message) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].SessionID != b[i].SessionID ||
			a[i].Sender != b[i].Sender ||
			a[i].Content != b[i].Content ||
			a[i].Sequence != b[i].Sequence ||
			!a[i].Timestamp.Equal(b[i].Timestamp) {
			return false
		}
	}
	return true
}
