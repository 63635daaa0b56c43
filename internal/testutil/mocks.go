package testutil

import (
	"context"
	"sync"

	"lingo/internal/domain"
	"lingo/internal/notify"
	"lingo/internal/view"

	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// MockProvider is a mock for provider.Provider
type MockProvider struct {
	mock.Mock
	ProviderName string
}

func (m *MockProvider) Name() string {
	return m.ProviderName
}

func (m *MockProvider) GetData(ctx context.Context) ([]domain.WordSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordSet), args.Error(1)
}

// MockWordSetRepository is a mock for repository.WordSetRepository
type MockWordSetRepository struct {
	mock.Mock
}

func (m *MockWordSetRepository) ListWordSets(ctx context.Context) ([]domain.WordSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordSet), args.Error(1)
}

func (m *MockWordSetRepository) SaveWordSets(ctx context.Context, sets []domain.WordSet) error {
	args := m.Called(ctx, sets)
	return args.Error(0)
}

// RecordingSender records every notification it is asked to send
type RecordingSender struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (s *RecordingSender) Send(n notify.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
}

// Sent returns a copy of the recorded notifications
func (s *RecordingSender) Sent() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Notification(nil), s.sent...)
}

// Count returns how many notifications named name were sent
func (s *RecordingSender) Count(name notify.Name) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.sent {
		if n.Name == name {
			count++
		}
	}
	return count
}

// Reset forgets recorded notifications
func (s *RecordingSender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}

// MockWidget is a mock for the presenter as seen by display surfaces
type MockWidget struct {
	mock.Mock
}

func (m *MockWidget) View() view.Model {
	args := m.Called()
	return args.Get(0).(view.Model)
}

func (m *MockWidget) Config() domain.DisplayConfig {
	args := m.Called()
	return args.Get(0).(domain.DisplayConfig)
}

func (m *MockWidget) RequestNextWord() {
	m.Called()
}

// MockMessenger is a mock for the Telegram bot API
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(to, what)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Message), args.Error(1)
}

func (m *MockMessenger) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(msg, what)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Message), args.Error(1)
}

// TeleContext is a tele.Context stub for one chat. Methods not overridden panic.
type TeleContext struct {
	tele.Context
	ChatID    int64
	Responses []*tele.CallbackResponse
}

func (c *TeleContext) Chat() *tele.Chat {
	return &tele.Chat{ID: c.ChatID}
}

func (c *TeleContext) Respond(resp ...*tele.CallbackResponse) error {
	c.Responses = append(c.Responses, resp...)
	return nil
}
