package solitaire

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/magefree/mage-goldfish/internal/game/history"
	"github.com/magefree/mage-goldfish/internal/game/rules"
)

// Observer is told about every dispatched action after it has been applied.
type Observer interface {
	Observe(action Action, result Result)
}

// Engine owns one session: the current state, the undo history and the
// randomness used for shuffles and ids. It is safe for concurrent use.
type Engine struct {
	mu        sync.Mutex
	state     GameState
	history   *history.Stack[GameState]
	env       Env
	seed      int64
	logger    *zap.Logger
	observers []Observer
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	logger    *zap.Logger
	settings  Settings
	seed      int64
	rand      RandSource
	newID     IDGenerator
	observers []Observer
}

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) { c.logger = logger }
}

// WithSettings overrides the table settings.
func WithSettings(settings Settings) Option {
	return func(c *engineConfig) { c.settings = settings }
}

// WithSeed fixes the seed for shuffles and instance ids. Zero picks a
// time-based seed.
func WithSeed(seed int64) Option {
	return func(c *engineConfig) { c.seed = seed }
}

// WithRand replaces the shuffle source.
func WithRand(rng RandSource) Option {
	return func(c *engineConfig) { c.rand = rng }
}

// WithIDGenerator replaces the instance id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *engineConfig) { c.newID = gen }
}

// WithObserver registers an observer for dispatched actions.
func WithObserver(o Observer) Option {
	return func(c *engineConfig) { c.observers = append(c.observers, o) }
}

// NewEngine creates an engine holding an empty game.
func NewEngine(opts ...Option) *Engine {
	cfg := engineConfig{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.seed == 0 {
		cfg.seed = time.Now().UnixNano()
	}
	if cfg.rand == nil {
		cfg.rand = rand.New(rand.NewSource(cfg.seed))
	}
	if cfg.newID == nil {
		cfg.newID = RandomIDs(cfg.seed)
	}

	return &Engine{
		state:   NewGameState(cfg.settings),
		history: history.New[GameState](cfg.settings.HistoryDepth),
		env: Env{
			Settings: cfg.settings,
			Rand:     cfg.rand,
			NewID:    cfg.newID,
		},
		seed:      cfg.seed,
		logger:    cfg.logger,
		observers: cfg.observers,
	}
}

// Dispatch applies action and returns the resulting state. Rule violations
// never fail the call; they surface in the returned state's ui.error.
func (e *Engine) Dispatch(action Action) GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result Result
	if _, ok := action.(Undo); ok {
		result = e.undo()
	} else {
		result = e.apply(action)
	}

	for _, o := range e.observers {
		o.Observe(action, result)
	}
	return e.state.Clone()
}

func (e *Engine) undo() Result {
	prev, ok := e.history.Pop()
	if !ok {
		e.logger.Debug("nothing to undo")
		return unchanged(e.state)
	}
	e.state = prev
	e.logger.Debug("undid action", zap.Int("history", e.history.Len()))
	return Result{State: prev, Changed: true}
}

func (e *Engine) apply(action Action) Result {
	result := Reduce(e.state, action, e.env)

	if result.Err != nil {
		fields := []zap.Field{
			zap.String("action", string(action.Type())),
			zap.Error(result.Err),
		}
		if kind, ok := rules.KindOf(result.Err); ok {
			fields = append(fields, zap.String("kind", string(kind)))
		}
		e.logger.Debug("action rejected", fields...)
	}

	switch {
	case result.Changed:
		e.history.Push(e.state.Clone())
		if result.Err != nil {
			e.state = result.State.withError(result.Err.Error())
		} else {
			e.state = result.State.clearError()
		}
		e.logger.Debug("applied action",
			zap.String("action", string(action.Type())),
			zap.Stringer("phase", e.state.Turn.Phase),
			zap.Int("turn", e.state.Turn.Count),
			zap.Int("history", e.history.Len()),
		)
	case result.Err != nil:
		e.state = e.state.withError(result.Err.Error())
	}
	return result
}

// State returns a copy of the current state.
func (e *Engine) State() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// HistoryLen returns how many snapshots UNDO can restore.
func (e *Engine) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Len()
}

// Seed returns the seed driving shuffles and ids.
func (e *Engine) Seed() int64 {
	return e.seed
}

// IsRuleError reports whether err is a recoverable rule rejection.
func IsRuleError(err error) bool {
	var re *rules.RuleError
	return errors.As(err, &re)
}
