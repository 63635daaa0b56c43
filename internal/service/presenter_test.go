package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"lingo/internal/domain"
	"lingo/internal/notify"
	"lingo/internal/provider"
	"lingo/internal/scheduler"
	"lingo/internal/testutil"
	"lingo/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingDisplay struct {
	mu     sync.Mutex
	models []view.Model
}

func (d *recordingDisplay) Show(m view.Model) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.models = append(d.models, m)
}

func (d *recordingDisplay) Models() []view.Model {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]view.Model(nil), d.models...)
}

func (d *recordingDisplay) Last() view.Model {
	models := d.Models()
	if len(models) == 0 {
		return view.Model{}
	}
	return models[len(models)-1]
}

func (d *recordingDisplay) Ticks(state domain.RevealState) []int {
	var percents []int
	for _, m := range d.Models() {
		if m.Reason == view.ReasonTick && m.State == state {
			percents = append(percents, m.Countdown.Percent)
		}
	}
	return percents
}

func newTestPresenter(cfg domain.DisplayConfig) (*Presenter, *testutil.FakeScheduler, *testutil.RecordingSender, *recordingDisplay) {
	sched := testutil.NewFakeScheduler()
	outbox := &testutil.RecordingSender{}
	display := &recordingDisplay{}
	presenter := NewPresenter(cfg, sched, outbox, testutil.NewTestLogger(), display)
	return presenter, sched, outbox, display
}

func TestPresenter_Start(t *testing.T) {
	cfg := testutil.NewTestDisplayConfig()
	presenter, _, outbox, display := newTestPresenter(cfg)

	presenter.Start()

	sent := outbox.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notify.Config, sent[0].Name)
	assert.Equal(t, cfg, *sent[0].Config)

	assert.False(t, display.Last().Loaded)
	assert.Equal(t, domain.RevealUnloaded, presenter.State())
}

func TestPresenter_HandleNotification_WordSet(t *testing.T) {
	presenter, _, _, display := newTestPresenter(testutil.NewTestDisplayConfig())
	ws := testutil.NewTestWordSet("Food", "apple", "manzana")

	presenter.HandleNotification(context.Background(), notify.WordSetNotification(ws, 1))

	assert.Equal(t, domain.RevealNative, presenter.State())
	last := display.Last()
	assert.True(t, last.Loaded)
	assert.Equal(t, "Food", last.Category)
	require.Len(t, last.Words, 1)
	assert.Equal(t, "apple", last.Words[0].Word)
	assert.Equal(t, 100, last.Countdown.Percent)
}

func TestPresenter_NativeCountdown(t *testing.T) {
	presenter, sched, _, display := newTestPresenter(testutil.NewTestDisplayConfig())

	presenter.ShowWordSet(testutil.NewTestWordSet("Food", "apple", "manzana"), 1)
	sched.Advance(time.Second)

	assert.Equal(t, []int{50, 0}, display.Ticks(domain.RevealNative))
	assert.Equal(t, domain.RevealBoth, presenter.State())
}

func TestPresenter_BothCycle(t *testing.T) {
	presenter, sched, outbox, display := newTestPresenter(testutil.NewTestDisplayConfig())

	presenter.ShowWordSet(testutil.NewTestWordSet("Food", "apple", "manzana"), 1)

	sched.Advance(999 * time.Millisecond)
	assert.Equal(t, domain.RevealNative, presenter.State())

	sched.Advance(time.Millisecond)
	assert.Equal(t, domain.RevealBoth, presenter.State())
	last := display.Last()
	require.Len(t, last.Words, 2)
	assert.Equal(t, "apple", last.Words[0].Word)
	assert.Equal(t, "manzana", last.Words[1].Word)
	assert.Equal(t, view.Separator, last.Separator)

	sched.Advance(1999 * time.Millisecond)
	assert.Equal(t, 0, outbox.Count(notify.GetNextWord))

	sched.Advance(time.Millisecond)
	assert.Equal(t, 1, outbox.Count(notify.GetNextWord))
	assert.Equal(t, []int{75, 50, 25, 0}, display.Ticks(domain.RevealBoth))
	assert.Equal(t, 0, sched.Pending())
}

func TestPresenter_Revert(t *testing.T) {
	cfg := testutil.NewTestDisplayConfig()
	cfg.Revert = true
	presenter, sched, outbox, display := newTestPresenter(cfg)

	presenter.ShowWordSet(testutil.NewTestWordSet("Food", "apple", "manzana"), 1)

	last := display.Last()
	require.Len(t, last.Words, 1)
	assert.Equal(t, domain.SideForeign, last.Words[0].Side)
	assert.Equal(t, "manzana", last.Words[0].Word)

	// The foreign side keeps its own timeout.
	sched.Advance(1999 * time.Millisecond)
	assert.Equal(t, domain.RevealNative, presenter.State())
	sched.Advance(time.Millisecond)
	assert.Equal(t, domain.RevealBoth, presenter.State())

	sched.Advance(time.Second)
	assert.Equal(t, 1, outbox.Count(notify.GetNextWord))
}

func TestPresenter_FlipMode(t *testing.T) {
	cfg := testutil.NewTestDisplayConfig()
	cfg.RevealMode = domain.RevealModeFlip
	presenter, sched, outbox, display := newTestPresenter(cfg)

	presenter.ShowWordSet(testutil.NewTestWordSet("Food", "apple", "manzana"), 1)
	sched.Advance(time.Second)

	assert.Equal(t, domain.RevealForeign, presenter.State())
	last := display.Last()
	require.Len(t, last.Words, 1)
	assert.Equal(t, "manzana", last.Words[0].Word)

	sched.Advance(time.Minute)
	assert.Equal(t, domain.RevealForeign, presenter.State())
	assert.Equal(t, 0, outbox.Count(notify.GetNextWord))
	assert.Equal(t, 0, sched.Pending())
}

func TestPresenter_NewWordSetCancelsTimers(t *testing.T) {
	presenter, sched, outbox, display := newTestPresenter(testutil.NewTestDisplayConfig())

	presenter.ShowWordSet(testutil.NewTestWordSet("Food", "apple", "manzana"), 1)
	sched.Advance(500 * time.Millisecond)
	presenter.ShowWordSet(testutil.NewTestWordSet("Animals", "dog", "perro"), 2)

	// The first cycle's transition was due at 1s.
	sched.Advance(999 * time.Millisecond)
	assert.Equal(t, domain.RevealNative, presenter.State())
	assert.Equal(t, "dog", display.Last().Words[0].Word)

	sched.Advance(time.Millisecond)
	assert.Equal(t, domain.RevealBoth, presenter.State())

	sched.Advance(1999 * time.Millisecond)
	assert.Equal(t, 0, outbox.Count(notify.GetNextWord))
	sched.Advance(time.Millisecond)
	assert.Equal(t, 1, outbox.Count(notify.GetNextWord))
}

func TestPresenter_HiddenCountdown(t *testing.T) {
	cfg := testutil.NewTestDisplayConfig()
	cfg.ShowTimeLeft = false
	presenter, sched, _, display := newTestPresenter(cfg)

	presenter.ShowWordSet(testutil.NewTestWordSet("Food", "apple", "manzana"), 1)

	assert.Equal(t, 1, sched.Pending())
	assert.False(t, display.Last().Countdown.Show)

	sched.Advance(time.Second)
	assert.Empty(t, display.Ticks(domain.RevealNative))
	assert.Equal(t, domain.RevealBoth, presenter.State())
}

func TestPresenter_Stop(t *testing.T) {
	presenter, sched, outbox, _ := newTestPresenter(testutil.NewTestDisplayConfig())

	presenter.ShowWordSet(testutil.NewTestWordSet("Food", "apple", "manzana"), 1)
	presenter.Stop()
	sched.Advance(time.Minute)

	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, domain.RevealNative, presenter.State())
	assert.Equal(t, 0, outbox.Count(notify.GetNextWord))
}

func TestPresenter_RequestNextWord(t *testing.T) {
	presenter, _, outbox, _ := newTestPresenter(testutil.NewTestDisplayConfig())

	presenter.RequestNextWord()

	assert.Equal(t, 1, outbox.Count(notify.GetNextWord))
}

func TestPresenterSupplier_Wiring(t *testing.T) {
	mockProvider := &testutil.MockProvider{ProviderName: "custom"}
	mockProvider.On("GetData", mock.Anything).Return(testutil.NewTestVocabulary(), nil).Once()

	registry, err := provider.NewRegistry(mockProvider)
	require.NoError(t, err)

	sched := testutil.NewFakeScheduler()
	display := &recordingDisplay{}
	ctx := context.Background()

	var supplier *Supplier
	var presenter *Presenter
	toSupplier := notify.SenderFunc(func(n notify.Notification) { supplier.HandleNotification(ctx, n) })
	toPresenter := notify.SenderFunc(func(n notify.Notification) { presenter.HandleNotification(ctx, n) })

	supplier = NewSupplier(registry, sched, toPresenter, testutil.NewTestLogger())
	presenter = NewPresenter(testutil.NewTestDisplayConfig(), sched, toSupplier, testutil.NewTestLogger(), display)

	presenter.Start()
	assert.Equal(t, domain.RevealNative, presenter.State())

	countShown := func() int {
		shown := 0
		for _, m := range display.Models() {
			if m.Reason == view.ReasonState && m.State == domain.RevealNative {
				shown++
			}
		}
		return shown
	}
	assert.Equal(t, 1, countShown())

	// The rotation and the end of the reveal cycle coincide. Only one advance happens.
	sched.Advance(3 * time.Second)
	assert.Equal(t, 2, countShown())
	assert.Equal(t, domain.RevealNative, presenter.State())

	sched.Advance(time.Second)
	presenter.RequestNextWord()
	assert.Equal(t, 3, countShown())

	// Rotation restarted by the on-demand request.
	sched.Advance(2999 * time.Millisecond)
	assert.Equal(t, 3, countShown())
	sched.Advance(time.Millisecond)
	assert.Equal(t, 4, countShown())

	presenter.Stop()
	supplier.Stop()
	mockProvider.AssertExpectations(t)
}

func TestPresenter_EchoesSeq(t *testing.T) {
	presenter, sched, outbox, _ := newTestPresenter(testutil.NewTestDisplayConfig())

	presenter.ShowWordSet(testutil.NewTestWordSet("Food", "apple", "manzana"), 5)
	assert.Equal(t, uint64(5), presenter.View().Seq)

	sched.Advance(3 * time.Second)
	presenter.RequestNextWord()

	sent := outbox.Sent()
	require.Len(t, sent, 2)
	for _, n := range sent {
		assert.Equal(t, notify.GetNextWord, n.Name)
		assert.Equal(t, uint64(5), n.Seq)
	}
}

func TestPresenter_DropsOutOfOrderWordSet(t *testing.T) {
	presenter, sched, _, display := newTestPresenter(testutil.NewTestDisplayConfig())

	presenter.ShowWordSet(testutil.NewTestWordSet("Food", "apple", "manzana"), 2)
	presenter.HandleNotification(context.Background(),
		notify.WordSetNotification(testutil.NewTestWordSet("Animals", "dog", "perro"), 1))

	last := display.Last()
	assert.Equal(t, "apple", last.Words[0].Word)
	assert.Equal(t, uint64(2), last.Seq)

	// The cycle of word set 2 keeps running.
	sched.Advance(time.Second)
	assert.Equal(t, domain.RevealBoth, presenter.State())
}

type timedDisplay struct {
	mu    sync.Mutex
	shown map[uint64]time.Time
	order []uint64
}

func (d *timedDisplay) Show(m view.Model) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !m.Loaded {
		return
	}
	if _, ok := d.shown[m.Seq]; ok {
		return
	}
	d.shown[m.Seq] = time.Now()
	d.order = append(d.order, m.Seq)
}

func TestPresenterSupplier_RealTimersAdvanceOncePerCycle(t *testing.T) {
	if testing.Short() {
		t.Skip("runs on wall clock timers")
	}

	mockProvider := &testutil.MockProvider{ProviderName: "custom"}
	mockProvider.On("GetData", mock.Anything).Return(testutil.NewTestVocabulary(), nil)
	registry, err := provider.NewRegistry(mockProvider)
	require.NoError(t, err)

	cfg := testutil.NewTestDisplayConfig()
	cfg.NativeTimeout = 20
	cfg.ForeignTimeout = 40
	cfg.UpdateInterval = 10

	logger := testutil.NewTestLogger()
	sched := scheduler.New()
	toSupplier := notify.NewChannel("presenter->supplier", 16, logger)
	toPresenter := notify.NewChannel("supplier->presenter", 16, logger)
	display := &timedDisplay{shown: make(map[uint64]time.Time)}

	supplier := NewSupplier(registry, sched, toPresenter, logger)
	presenter := NewPresenter(cfg, sched, toSupplier, logger, display)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go toSupplier.Run(ctx, supplier)
	go toPresenter.Run(ctx, presenter)

	const runFor = 900 * time.Millisecond
	presenter.Start()
	time.Sleep(runFor)

	presenter.Stop()
	supplier.Stop()
	toSupplier.Close()
	toPresenter.Close()

	display.mu.Lock()
	defer display.mu.Unlock()

	cycle := cfg.RotationPeriod()
	require.GreaterOrEqual(t, len(display.order), 3)
	assert.LessOrEqual(t, len(display.order), int(runFor/cycle)+2)

	// A double advance would show two word sets within a few milliseconds.
	for i := 1; i < len(display.order); i++ {
		gap := display.shown[display.order[i]].Sub(display.shown[display.order[i-1]])
		assert.GreaterOrEqual(t, gap, cycle/3, "word set %d followed %d after %s", display.order[i], display.order[i-1], gap)
	}
}
