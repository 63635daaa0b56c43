package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"lingo/internal/domain"
	"lingo/internal/notify"
	"lingo/internal/provider"
	"lingo/internal/scheduler"

	"go.uber.org/zap"
)

// Supplier owns the vocabulary list and decides which word set is shown and when
type Supplier struct {
	registry  *provider.Registry
	scheduler scheduler.Scheduler
	outbox    notify.Sender
	logger    *zap.Logger

	mu       sync.Mutex
	intn     func(n int) int
	config   domain.DisplayConfig
	provider provider.Provider
	wordSets []domain.WordSet
	rotation scheduler.Timer
	// rotationGen invalidates rotation callbacks already in flight when the timer restarts
	rotationGen uint64
	// seq numbers emitted word sets
	seq uint64
}

// NewSupplier creates a supplier that emits word sets to outbox
func NewSupplier(
	registry *provider.Registry,
	sched scheduler.Scheduler,
	outbox notify.Sender,
	logger *zap.Logger,
) *Supplier {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Supplier{
		registry:  registry,
		scheduler: sched,
		outbox:    outbox,
		logger:    logger,
		intn:      rnd.Intn,
	}
}

// SetRandom replaces the index source used by PickRandom
func (s *Supplier) SetRandom(intn func(n int) int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intn = intn
}

// HandleNotification reacts to presenter notifications
func (s *Supplier) HandleNotification(ctx context.Context, n notify.Notification) {
	switch n.Name {
	case notify.Config:
		if n.Config == nil {
			s.logger.Warn("CONFIG notification without payload")
			return
		}
		if err := s.Configure(*n.Config); err != nil {
			return
		}
		_ = s.LoadInitial(ctx)
	case notify.GetNextWord:
		s.RequestNext(n.Seq)
	default:
		s.logger.Warn("Ignoring notification", zap.String("notification", string(n.Name)))
	}
}

// Configure selects the provider named by the config
func (s *Supplier) Configure(cfg domain.DisplayConfig) error {
	p, err := s.registry.Lookup(cfg.Provider)
	if err != nil {
		s.logger.Error("Couldn't load provider",
			zap.String("provider", cfg.Provider),
			zap.Strings("available", s.registry.Names()),
			zap.Error(err),
		)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopRotationLocked()
	s.config = cfg
	s.provider = p
	s.wordSets = nil

	s.logger.Info("Provider selected", zap.String("provider", p.Name()))
	return nil
}

// LoadInitial fetches the vocabulary, emits the first word set and starts the rotation.
// A failed fetch is logged and not retried.
func (s *Supplier) LoadInitial(ctx context.Context) error {
	s.mu.Lock()
	p := s.provider
	s.mu.Unlock()

	if p == nil {
		return fmt.Errorf("no provider configured")
	}

	sets, err := p.GetData(ctx)
	if err != nil {
		s.logger.Error("Failed to load vocabulary",
			zap.String("provider", p.Name()),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("Vocabulary loaded",
		zap.String("provider", p.Name()),
		zap.Int("word_sets", len(sets)),
	)

	s.mu.Lock()
	s.wordSets = sets
	ws, ok := s.pickLocked()
	if !ok {
		s.mu.Unlock()
		return nil
	}
	n := s.numberLocked(ws)
	s.scheduleRotationLocked()
	s.mu.Unlock()

	s.send(n)
	return nil
}

// PickRandom returns a uniformly random stored word set. Repeats are allowed.
func (s *Supplier) PickRandom() (domain.WordSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pickLocked()
}

// Emit sends ws as the next numbered WORDSET notification
func (s *Supplier) Emit(ws domain.WordSet) {
	s.mu.Lock()
	n := s.numberLocked(ws)
	s.mu.Unlock()

	s.send(n)
}

// ScheduleRotation (re)starts the repeating rotation timer
func (s *Supplier) ScheduleRotation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleRotationLocked()
}

// NextWord emits a word set immediately and restarts the rotation timer
func (s *Supplier) NextWord() {
	s.RequestNext(0)
}

// RequestNext handles GET_NEXT_WORD for the word set numbered seq. A request
// for a word set that was already replaced is dropped, so a rotation and a
// request racing each other advance only once. Zero always advances.
func (s *Supplier) RequestNext(seq uint64) {
	s.mu.Lock()
	if seq != 0 && seq != s.seq {
		current := s.seq
		s.mu.Unlock()
		s.logger.Debug("Dropping stale next word request",
			zap.Uint64("seq", seq),
			zap.Uint64("current_seq", current),
		)
		return
	}

	ws, ok := s.pickLocked()
	if !ok {
		s.mu.Unlock()
		return
	}
	n := s.numberLocked(ws)
	s.scheduleRotationLocked()
	s.mu.Unlock()

	s.send(n)
}

// Stop cancels the rotation timer
func (s *Supplier) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopRotationLocked()
}

func (s *Supplier) rotate(gen uint64) {
	s.mu.Lock()
	if gen != s.rotationGen {
		s.mu.Unlock()
		return
	}
	ws, ok := s.pickLocked()
	if !ok {
		s.mu.Unlock()
		return
	}
	n := s.numberLocked(ws)
	s.mu.Unlock()

	s.send(n)
}

func (s *Supplier) pickLocked() (domain.WordSet, bool) {
	if len(s.wordSets) == 0 {
		s.logger.Warn("Vocabulary is empty, nothing to show")
		return domain.WordSet{}, false
	}
	return s.wordSets[s.intn(len(s.wordSets))], true
}

func (s *Supplier) numberLocked(ws domain.WordSet) notify.Notification {
	s.seq++
	return notify.WordSetNotification(ws, s.seq)
}

func (s *Supplier) send(n notify.Notification) {
	s.logger.Debug("Emitting word set",
		zap.Uint64("seq", n.Seq),
		zap.String("category", n.WordSet.Category),
		zap.String("native_word", n.WordSet.NativeWord),
	)
	s.outbox.Send(n)
}

func (s *Supplier) scheduleRotationLocked() {
	s.stopRotationLocked()
	period := s.config.RotationPeriod()
	if period <= 0 {
		return
	}
	gen := s.rotationGen
	s.rotation = s.scheduler.Every(period, func() {
		s.rotate(gen)
	})
}

func (s *Supplier) stopRotationLocked() {
	s.rotationGen++
	if s.rotation != nil {
		s.rotation.Stop()
		s.rotation = nil
	}
}
