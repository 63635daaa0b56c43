package service

import (
	"context"
	"sync"

	"lingo/internal/domain"
	"lingo/internal/notify"
	"lingo/internal/scheduler"
	"lingo/internal/view"

	"go.uber.org/zap"
)

// Display draws presenter models
type Display interface {
	Show(m view.Model)
}

// DisplayFunc adapts a function to Display
type DisplayFunc func(m view.Model)

// Show calls f(m)
func (f DisplayFunc) Show(m view.Model) {
	f(m)
}

// Presenter runs the reveal state machine for the current word set
type Presenter struct {
	scheduler scheduler.Scheduler
	outbox    notify.Sender
	logger    *zap.Logger

	mu         sync.Mutex
	config     domain.DisplayConfig
	displays   []Display
	state      domain.RevealState
	wordSet    domain.WordSet
	seq        uint64
	percent    int
	generation uint64
	countdown  scheduler.Timer
	transition scheduler.Timer
}

// NewPresenter creates a presenter in the Unloaded state
func NewPresenter(
	cfg domain.DisplayConfig,
	sched scheduler.Scheduler,
	outbox notify.Sender,
	logger *zap.Logger,
	displays ...Display,
) *Presenter {
	return &Presenter{
		scheduler: sched,
		outbox:    outbox,
		logger:    logger,
		config:    cfg,
		displays:  displays,
		state:     domain.RevealUnloaded,
	}
}

// AddDisplay registers another display
func (p *Presenter) AddDisplay(d Display) {
	p.mu.Lock()
	p.displays = append(p.displays, d)
	p.mu.Unlock()
}

// Start shows the loading model and hands the config to the supplier
func (p *Presenter) Start() {
	p.mu.Lock()
	cfg := p.config
	m := p.modelLocked(view.ReasonState)
	displays := p.displaysLocked()
	p.mu.Unlock()

	p.logger.Info("Presenter started",
		zap.String("provider", cfg.Provider),
		zap.String("reveal_mode", string(cfg.RevealMode)),
	)

	publish(displays, m)
	p.outbox.Send(notify.ConfigNotification(cfg))
}

// HandleNotification reacts to supplier notifications
func (p *Presenter) HandleNotification(_ context.Context, n notify.Notification) {
	switch n.Name {
	case notify.WordSet:
		if n.WordSet == nil {
			p.logger.Warn("WORDSET notification without payload")
			return
		}
		p.ShowWordSet(*n.WordSet, n.Seq)
	default:
		p.logger.Warn("Ignoring notification", zap.String("notification", string(n.Name)))
	}
}

// ShowWordSet replaces the current word set and restarts the cycle.
// Timers of the previous cycle never fire afterwards. A word set numbered
// below the one on screen arrived out of order and is dropped.
func (p *Presenter) ShowWordSet(ws domain.WordSet, seq uint64) {
	p.mu.Lock()
	if seq != 0 && seq < p.seq {
		current := p.seq
		p.mu.Unlock()
		p.logger.Debug("Dropping out of order word set",
			zap.Uint64("seq", seq),
			zap.Uint64("current_seq", current),
		)
		return
	}
	p.stopTimersLocked()
	p.generation++
	p.wordSet = ws
	p.seq = seq
	first := p.config.FirstSide()
	p.enterLocked(domain.RevealNative, first)
	m := p.modelLocked(view.ReasonState)
	displays := p.displaysLocked()
	p.mu.Unlock()

	publish(displays, m)
}

// RequestNextWord asks the supplier for a new word set right away
func (p *Presenter) RequestNextWord() {
	p.mu.Lock()
	seq := p.seq
	p.mu.Unlock()

	p.outbox.Send(notify.NextWordNotification(seq))
}

// View returns the model for the current state
func (p *Presenter) View() view.Model {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modelLocked(view.ReasonState)
}

// Config returns the display config
func (p *Presenter) Config() domain.DisplayConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config
}

// State returns the current reveal state
func (p *Presenter) State() domain.RevealState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Stop cancels every pending timer
func (p *Presenter) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTimersLocked()
	p.generation++
}

// enterLocked switches to state and arms its timers. The countdown ticker is
// armed before the transition so a tick due together with it runs first.
func (p *Presenter) enterLocked(state domain.RevealState, side domain.Side) {
	p.state = state
	p.percent = 100
	gen := p.generation

	timeoutMs := p.config.TimeoutMs(side)
	if p.config.ShowTimeLeft {
		step := domain.CountdownStep(timeoutMs, p.config.UpdateInterval)
		p.countdown = p.scheduler.Every(p.config.Interval(), func() {
			p.tick(gen, step)
		})
	}
	p.transition = p.scheduler.AfterFunc(p.config.Timeout(side), func() {
		p.expire(gen)
	})
}

func (p *Presenter) tick(gen uint64, step int) {
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return
	}
	p.percent -= step
	m := p.modelLocked(view.ReasonTick)
	displays := p.displaysLocked()
	p.mu.Unlock()

	publish(displays, m)
}

func (p *Presenter) expire(gen uint64) {
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return
	}
	p.stopTimersLocked()

	first := p.config.FirstSide()
	seq := p.seq
	requestNext := false
	switch p.state {
	case domain.RevealNative:
		next := domain.RevealBoth
		if p.config.RevealMode == domain.RevealModeFlip {
			next = domain.RevealForeign
		}
		p.enterLocked(next, first.Other())
	case domain.RevealBoth:
		requestNext = true
	default:
		// Flip mode waits for the supplier's rotation.
		p.mu.Unlock()
		return
	}

	m := p.modelLocked(view.ReasonState)
	displays := p.displaysLocked()
	p.mu.Unlock()

	if requestNext {
		p.logger.Debug("Reveal cycle finished, requesting next word")
		p.outbox.Send(notify.NextWordNotification(seq))
		return
	}
	publish(displays, m)
}

func (p *Presenter) stopTimersLocked() {
	if p.countdown != nil {
		p.countdown.Stop()
		p.countdown = nil
	}
	if p.transition != nil {
		p.transition.Stop()
		p.transition = nil
	}
}

func (p *Presenter) modelLocked(reason view.Reason) view.Model {
	if p.state == domain.RevealUnloaded {
		return view.Loading()
	}
	m := view.Build(p.config, p.wordSet, p.state, p.percent, reason)
	m.Seq = p.seq
	return m
}

func (p *Presenter) displaysLocked() []Display {
	return append([]Display(nil), p.displays...)
}

func publish(displays []Display, m view.Model) {
	for _, d := range displays {
		d.Show(m)
	}
}
