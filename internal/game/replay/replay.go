// Package replay records the actions dispatched to an engine so a session
// can be saved, reloaded and re-run to the same final state.
package replay

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/magefree/mage-goldfish/internal/game/solitaire"
)

// FormatVersion is written into every replay header.
const FormatVersion = 1

const fileExt = ".replay"

// ErrChecksumMismatch is returned by Verify when a re-run diverges.
var ErrChecksumMismatch = errors.New("replay checksum mismatch")

// Journal is a recorded session: the inputs needed to rebuild it and the
// checksum of the state it ended in.
type Journal struct {
	ID       string
	Seed     int64
	Settings solitaire.Settings
	Actions  [][]byte
	Checksum string
}

// header precedes the encoded actions in a replay file.
type header struct {
	Version     int
	ID          string
	Seed        int64
	Settings    solitaire.Settings
	Created     time.Time
	ActionCount int
	Checksum    string
}

// Recorder journals every action an engine dispatches. It implements
// solitaire.Observer.
type Recorder struct {
	mu      sync.Mutex
	journal Journal
	logger  *zap.Logger
}

// NewSession creates an engine whose actions are journaled under id. Shuffles
// and ids must stay derived from the seed, so opts should not carry WithRand
// or WithIDGenerator.
func NewSession(id string, settings solitaire.Settings, logger *zap.Logger, opts ...solitaire.Option) (*solitaire.Engine, *Recorder) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rec := &Recorder{
		journal: Journal{ID: id, Settings: settings},
		logger:  logger,
	}
	opts = append(opts,
		solitaire.WithSettings(settings),
		solitaire.WithObserver(rec),
	)
	engine := solitaire.NewEngine(opts...)
	rec.journal.Seed = engine.Seed()
	rec.journal.Checksum, _ = engine.State().Checksum()
	return engine, rec
}

// Observe appends the action to the journal.
func (r *Recorder) Observe(action solitaire.Action, result solitaire.Result) {
	data, err := solitaire.EncodeAction(action)
	if err != nil {
		r.logger.Warn("failed to journal action",
			zap.String("action", string(action.Type())),
			zap.Error(err),
		)
		return
	}
	sum, err := result.State.Checksum()
	if err != nil {
		r.logger.Warn("failed to checksum state", zap.Error(err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.journal.Actions = append(r.journal.Actions, data)
	r.journal.Checksum = sum
}

// Journal returns a copy of what has been recorded so far.
func (r *Recorder) Journal() Journal {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.journal
	j.Actions = append([][]byte(nil), r.journal.Actions...)
	return j
}

// Size returns the number of recorded actions.
func (r *Recorder) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.journal.Actions)
}

// Save writes the journal into directory and returns the file path.
func (r *Recorder) Save(directory string) (string, error) {
	j := r.Journal()
	path, err := j.SaveToFile(directory)
	if err != nil {
		return "", err
	}
	r.logger.Info("saved replay to disk",
		zap.String("replay_id", j.ID),
		zap.Int("action_count", len(j.Actions)),
		zap.String("path", path),
	)
	return path, nil
}

// SaveToFile writes the journal as <directory>/<id>.replay, gzip compressed
// gob records: a header followed by one record per action.
func (j Journal) SaveToFile(directory string) (string, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(directory, j.ID+fileExt)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	encoder := gob.NewEncoder(gz)

	h := header{
		Version:     FormatVersion,
		ID:          j.ID,
		Seed:        j.Seed,
		Settings:    j.Settings,
		Created:     time.Now().UTC(),
		ActionCount: len(j.Actions),
		Checksum:    j.Checksum,
	}
	if err := encoder.Encode(&h); err != nil {
		return "", fmt.Errorf("failed to encode header: %w", err)
	}
	for i, action := range j.Actions {
		if err := encoder.Encode(action); err != nil {
			return "", fmt.Errorf("failed to encode action %d: %w", i, err)
		}
	}

	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("failed to flush replay: %w", err)
	}
	return path, nil
}

// LoadFromFile reads a journal written by SaveToFile.
func LoadFromFile(path string) (*Journal, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	decoder := gob.NewDecoder(gz)
	var h header
	if err := decoder.Decode(&h); err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", h.Version)
	}

	j := &Journal{
		ID:       h.ID,
		Seed:     h.Seed,
		Settings: h.Settings,
		Checksum: h.Checksum,
		Actions:  make([][]byte, 0, h.ActionCount),
	}
	for i := 0; i < h.ActionCount; i++ {
		var action []byte
		if err := decoder.Decode(&action); err != nil {
			return nil, fmt.Errorf("failed to decode action %d: %w", i, err)
		}
		j.Actions = append(j.Actions, action)
	}
	return j, nil
}

// Run re-dispatches the journal on a fresh engine seeded like the original
// and returns the final state.
func (j Journal) Run(logger *zap.Logger) (solitaire.GameState, error) {
	engine := solitaire.NewEngine(
		solitaire.WithLogger(logger),
		solitaire.WithSettings(j.Settings),
		solitaire.WithSeed(j.Seed),
	)
	for i, data := range j.Actions {
		action, err := solitaire.DecodeAction(data)
		if err != nil {
			return solitaire.GameState{}, fmt.Errorf("action %d: %w", i, err)
		}
		engine.Dispatch(action)
	}
	return engine.State(), nil
}

// Verify re-runs the journal and checks that it ends on the recorded
// checksum. It returns the checksum of the re-run.
func (j Journal) Verify(logger *zap.Logger) (string, error) {
	state, err := j.Run(logger)
	if err != nil {
		return "", err
	}
	sum, err := state.Checksum()
	if err != nil {
		return "", err
	}
	if sum != j.Checksum {
		return sum, fmt.Errorf("%w: recorded %s, got %s", ErrChecksumMismatch, j.Checksum, sum)
	}
	return sum, nil
}
