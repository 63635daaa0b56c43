package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"lingo/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu   sync.Mutex
	seen []Name
	done chan struct{}
	want int
}

func (h *recordingHandler) HandleNotification(_ context.Context, n Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, n.Name)
	if len(h.seen) == h.want {
		close(h.done)
	}
}

func TestChannel_DeliversInOrder(t *testing.T) {
	ch := NewChannel("test", 8, zap.NewNop())
	handler := &recordingHandler{done: make(chan struct{}), want: 3}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ch.Run(ctx, handler)

	ch.Send(ConfigNotification(domain.DefaultDisplayConfig()))
	ch.Send(WordSetNotification(domain.WordSet{NativeWord: "dog"}, 1))
	ch.Send(NextWordNotification(1))

	select {
	case <-handler.done:
	case <-time.After(time.Second):
		t.Fatal("notifications were not delivered")
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()
	assert.Equal(t, []Name{Config, WordSet, GetNextWord}, handler.seen)
}

func TestChannel_CloseDropsLateSends(t *testing.T) {
	ch := NewChannel("test", 1, zap.NewNop())
	ch.Close()
	ch.Close()

	assert.NotPanics(t, func() {
		ch.Send(NextWordNotification(1))
	})
}

func TestNotificationBuilders(t *testing.T) {
	cfg := domain.DefaultDisplayConfig()
	n := ConfigNotification(cfg)
	require.NotNil(t, n.Config)
	assert.Equal(t, Config, n.Name)
	assert.Equal(t, cfg, *n.Config)

	ws := domain.WordSet{NativeWord: "cat", ForeignWord: "gato"}
	n = WordSetNotification(ws, 3)
	require.NotNil(t, n.WordSet)
	assert.Equal(t, "gato", n.WordSet.ForeignWord)
	assert.Equal(t, uint64(3), n.Seq)

	var got Notification
	SenderFunc(func(n Notification) { got = n }).Send(NextWordNotification(3))
	assert.Equal(t, GetNextWord, got.Name)
	assert.Equal(t, uint64(3), got.Seq)
}

func TestChannel_SendAfterRunStopped(t *testing.T) {
	ch := NewChannel("test", 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch.Run(ctx, &recordingHandler{done: make(chan struct{}), want: -1})

	finished := make(chan struct{})
	go func() {
		// The second send finds the buffer full.
		ch.Send(NextWordNotification(0))
		ch.Send(NextWordNotification(0))
		ch.Close()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Send or Close blocked after Run stopped")
	}
}

func TestChannel_CloseUnblocksPendingSend(t *testing.T) {
	ch := NewChannel("test", 1, zap.NewNop())
	ch.Send(NextWordNotification(0))

	sent := make(chan struct{})
	go func() {
		ch.Send(NextWordNotification(0))
		close(sent)
	}()

	ch.Close()

	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("pending Send was not released by Close")
	}
}
