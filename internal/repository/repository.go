// Package repository stores deck lists and turns them into LOAD_DECK
// actions for the engine.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/magefree/mage-goldfish/internal/config"
	"github.com/magefree/mage-goldfish/internal/game/cards"
	"github.com/magefree/mage-goldfish/internal/game/solitaire"
)

// ErrDeckNotFound is returned when a deck id has no stored cards.
var ErrDeckNotFound = errors.New("deck not found")

// DeckSource resolves deck ids to deck lists.
type DeckSource interface {
	LoadDeck(ctx context.Context, deckID string) (solitaire.LoadDeck, error)
	SaveDeck(ctx context.Context, deckID string, deck solitaire.LoadDeck) error
}

// Store is a DeckSource backed by a database.
type Store interface {
	DeckSource
	Migrate(ctx context.Context) error
	Close() error
}

// Open connects to the store named by cfg.Driver and migrates it.
func Open(ctx context.Context, cfg config.DecksConfig, logger *zap.Logger) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err = OpenSQLite(cfg.DSN)
	case config.DriverPostgres:
		store, err = OpenPostgres(ctx, cfg.DSN, cfg.MaxConns)
	default:
		return nil, fmt.Errorf("unknown deck store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrate deck store: %w", err)
	}
	if logger != nil {
		logger.Info("deck store ready", zap.String("driver", cfg.Driver))
	}
	return store, nil
}

// deckRow is one row of deck_cards.
type deckRow struct {
	Position    int
	Seed        cards.Seed
	IsCommander bool
}

// flatten numbers every card of a deck in mainboard-then-commander order.
func flatten(deck solitaire.LoadDeck) []deckRow {
	rows := make([]deckRow, 0, len(deck.Mainboard)+len(deck.Commander))
	for _, seed := range deck.Mainboard {
		rows = append(rows, deckRow{Position: len(rows), Seed: seed})
	}
	for _, seed := range deck.Commander {
		rows = append(rows, deckRow{Position: len(rows), Seed: seed, IsCommander: true})
	}
	return rows
}

// assemble groups rows, already ordered by position, into a deck.
func assemble(rows []deckRow) solitaire.LoadDeck {
	var deck solitaire.LoadDeck
	for _, row := range rows {
		if row.IsCommander {
			deck.Commander = append(deck.Commander, row.Seed)
		} else {
			deck.Mainboard = append(deck.Mainboard, row.Seed)
		}
	}
	return deck
}

func validateDeckID(deckID string) (string, error) {
	id := strings.TrimSpace(deckID)
	if id == "" {
		return "", errors.New("deck id is required")
	}
	return id, nil
}

func joinMana(produced []string) string {
	return strings.Join(produced, ",")
}

func splitMana(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
