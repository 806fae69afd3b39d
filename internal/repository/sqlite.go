package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/magefree/mage-goldfish/internal/game/solitaire"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS deck_cards (
	deck_id       TEXT    NOT NULL,
	position      INTEGER NOT NULL,
	card_id       TEXT    NOT NULL,
	name          TEXT    NOT NULL,
	type_line     TEXT    NOT NULL DEFAULT '',
	mana_cost     TEXT    NOT NULL DEFAULT '',
	power         TEXT    NOT NULL DEFAULT '',
	toughness     TEXT    NOT NULL DEFAULT '',
	produced_mana TEXT    NOT NULL DEFAULT '',
	oracle_text   TEXT    NOT NULL DEFAULT '',
	quantity      INTEGER NOT NULL DEFAULT 1,
	is_commander  INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (deck_id, position)
)`

// SQLiteStore keeps decks in a SQLite database. produced_mana is stored as a
// comma-joined string.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens the database at dsn, for example "file:goldfish.db".
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite dsn is required")
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Migrate creates the deck_cards table.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create deck_cards: %w", err)
	}
	return nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveDeck replaces every stored card of deckID.
func (s *SQLiteStore) SaveDeck(ctx context.Context, deckID string, deck solitaire.LoadDeck) error {
	id, err := validateDeckID(deckID)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, id); err != nil {
		return fmt.Errorf("clear deck %s: %w", id, err)
	}
	for _, row := range flatten(deck) {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO deck_cards (
			   deck_id, position, card_id, name, type_line, mana_cost,
			   power, toughness, produced_mana, oracle_text, quantity, is_commander
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			row.Position,
			row.Seed.ID,
			row.Seed.Name,
			row.Seed.TypeLine,
			row.Seed.ManaCost,
			row.Seed.Power,
			row.Seed.Toughness,
			joinMana(row.Seed.ProducedMana),
			row.Seed.OracleText,
			row.Seed.Copies(),
			row.IsCommander,
		)
		if err != nil {
			return fmt.Errorf("insert card %s: %w", row.Seed.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit deck %s: %w", id, err)
	}
	return nil
}

// LoadDeck reads deckID back in stored order.
func (s *SQLiteStore) LoadDeck(ctx context.Context, deckID string) (solitaire.LoadDeck, error) {
	id, err := validateDeckID(deckID)
	if err != nil {
		return solitaire.LoadDeck{}, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT position, card_id, name, type_line, mana_cost, power, toughness,
		        produced_mana, oracle_text, quantity, is_commander
		   FROM deck_cards
		  WHERE deck_id = ?
		  ORDER BY position`, id)
	if err != nil {
		return solitaire.LoadDeck{}, fmt.Errorf("query deck %s: %w", id, err)
	}
	defer rows.Close()

	var result []deckRow
	for rows.Next() {
		var (
			row      deckRow
			produced string
		)
		if err := rows.Scan(
			&row.Position,
			&row.Seed.ID,
			&row.Seed.Name,
			&row.Seed.TypeLine,
			&row.Seed.ManaCost,
			&row.Seed.Power,
			&row.Seed.Toughness,
			&produced,
			&row.Seed.OracleText,
			&row.Seed.Quantity,
			&row.IsCommander,
		); err != nil {
			return solitaire.LoadDeck{}, fmt.Errorf("scan deck %s: %w", id, err)
		}
		row.Seed.ProducedMana = splitMana(produced)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return solitaire.LoadDeck{}, fmt.Errorf("read deck %s: %w", id, err)
	}
	if len(result) == 0 {
		return solitaire.LoadDeck{}, fmt.Errorf("%w: %s", ErrDeckNotFound, id)
	}
	return assemble(result), nil
}
