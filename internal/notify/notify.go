package notify

import (
	"context"
	"sync"

	"lingo/internal/domain"

	"go.uber.org/zap"
)

// Name identifies a notification
type Name string

const (
	// Config carries the display config from presenter to supplier.
	Config Name = "CONFIG"
	// WordSet carries a word set from supplier to presenter.
	WordSet Name = "WORDSET"
	// GetNextWord asks the supplier for an immediate rotation.
	GetNextWord Name = "GET_NEXT_WORD"
)

// Notification is a message exchanged between presenter and supplier
type Notification struct {
	Name    Name
	Config  *domain.DisplayConfig
	WordSet *domain.WordSet
	// Seq numbers WORDSET emissions. GET_NEXT_WORD echoes the Seq of the word
	// set it wants replaced; zero asks unconditionally.
	Seq uint64
}

// ConfigNotification builds a CONFIG notification
func ConfigNotification(cfg domain.DisplayConfig) Notification {
	return Notification{Name: Config, Config: &cfg}
}

// WordSetNotification builds a WORDSET notification
func WordSetNotification(ws domain.WordSet, seq uint64) Notification {
	return Notification{Name: WordSet, WordSet: &ws, Seq: seq}
}

// NextWordNotification builds a GET_NEXT_WORD notification
func NextWordNotification(seq uint64) Notification {
	return Notification{Name: GetNextWord, Seq: seq}
}

// Sender delivers notifications to the other side
type Sender interface {
	Send(n Notification)
}

// SenderFunc adapts a function to Sender
type SenderFunc func(n Notification)

// Send calls f(n)
func (f SenderFunc) Send(n Notification) {
	f(n)
}

// Handler consumes notifications
type Handler interface {
	HandleNotification(ctx context.Context, n Notification)
}

// Channel is a one-way pipe that delivers notifications in order to a single
// handler on its own goroutine
type Channel struct {
	name   string
	queue  chan Notification
	logger *zap.Logger

	// done is closed by Close or when Run returns. Send never blocks past it.
	done     chan struct{}
	doneOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

// NewChannel creates a channel with the given buffer size
func NewChannel(name string, buffer int, logger *zap.Logger) *Channel {
	if buffer <= 0 {
		buffer = 1
	}
	return &Channel{
		name:   name,
		queue:  make(chan Notification, buffer),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Send enqueues a notification. Notifications sent after Close, or after Run
// has stopped with a full buffer, are dropped.
func (c *Channel) Send(n Notification) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		c.dropped(n)
		return
	}

	select {
	case c.queue <- n:
	case <-c.done:
		c.dropped(n)
	}
}

func (c *Channel) dropped(n Notification) {
	c.logger.Warn("Dropping notification on stopped channel",
		zap.String("channel", c.name),
		zap.String("notification", string(n.Name)),
	)
}

// Run delivers queued notifications to handler until ctx is done or the channel is closed
func (c *Channel) Run(ctx context.Context, handler Handler) {
	defer c.stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Notification channel stopped", zap.String("channel", c.name))
			return
		case n, ok := <-c.queue:
			if !ok {
				return
			}
			c.logger.Debug("Delivering notification",
				zap.String("channel", c.name),
				zap.String("notification", string(n.Name)),
			)
			handler.HandleNotification(ctx, n)
		}
	}
}

// Close stops accepting notifications and ends Run once the queue drains
func (c *Channel) Close() {
	// Unblock pending senders before waiting for them.
	c.stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.queue)
}

func (c *Channel) stop() {
	c.doneOnce.Do(func() { close(c.done) })
}
