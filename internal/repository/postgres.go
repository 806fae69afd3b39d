package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/magefree/mage-goldfish/internal/game/solitaire"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS deck_cards (
	deck_id       TEXT    NOT NULL,
	position      INTEGER NOT NULL,
	card_id       TEXT    NOT NULL,
	name          TEXT    NOT NULL,
	type_line     TEXT    NOT NULL DEFAULT '',
	mana_cost     TEXT    NOT NULL DEFAULT '',
	power         TEXT    NOT NULL DEFAULT '',
	toughness     TEXT    NOT NULL DEFAULT '',
	produced_mana TEXT[]  NOT NULL DEFAULT '{}',
	oracle_text   TEXT    NOT NULL DEFAULT '',
	quantity      INTEGER NOT NULL DEFAULT 1,
	is_commander  BOOLEAN NOT NULL DEFAULT FALSE,
	PRIMARY KEY (deck_id, position)
)`

// PostgresStore keeps decks in PostgreSQL through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn. maxConns <= 0 keeps the pgx default.
func OpenPostgres(ctx context.Context, dsn string, maxConns int32) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the deck_cards table.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create deck_cards: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// SaveDeck replaces every stored card of deckID in one transaction.
func (s *PostgresStore) SaveDeck(ctx context.Context, deckID string, deck solitaire.LoadDeck) error {
	id, err := validateDeckID(deckID)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM deck_cards WHERE deck_id = $1`, id); err != nil {
		return fmt.Errorf("clear deck %s: %w", id, err)
	}

	batch := &pgx.Batch{}
	for _, row := range flatten(deck) {
		produced := row.Seed.ProducedMana
		if produced == nil {
			produced = []string{}
		}
		batch.Queue(`
			INSERT INTO deck_cards (
				deck_id, position, card_id, name, type_line, mana_cost,
				power, toughness, produced_mana, oracle_text, quantity, is_commander
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			id,
			row.Position,
			row.Seed.ID,
			row.Seed.Name,
			row.Seed.TypeLine,
			row.Seed.ManaCost,
			row.Seed.Power,
			row.Seed.Toughness,
			produced,
			row.Seed.OracleText,
			row.Seed.Copies(),
			row.IsCommander,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert deck %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit deck %s: %w", id, err)
	}
	return nil
}

// LoadDeck reads deckID back in stored order.
func (s *PostgresStore) LoadDeck(ctx context.Context, deckID string) (solitaire.LoadDeck, error) {
	id, err := validateDeckID(deckID)
	if err != nil {
		return solitaire.LoadDeck{}, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT position, card_id, name, type_line, mana_cost, power, toughness,
		       produced_mana, oracle_text, quantity, is_commander
		  FROM deck_cards
		 WHERE deck_id = $1
		 ORDER BY position`, id)
	if err != nil {
		return solitaire.LoadDeck{}, fmt.Errorf("query deck %s: %w", id, err)
	}
	defer rows.Close()

	var result []deckRow
	for rows.Next() {
		var row deckRow
		if err := rows.Scan(
			&row.Position,
			&row.Seed.ID,
			&row.Seed.Name,
			&row.Seed.TypeLine,
			&row.Seed.ManaCost,
			&row.Seed.Power,
			&row.Seed.Toughness,
			&row.Seed.ProducedMana,
			&row.Seed.OracleText,
			&row.Seed.Quantity,
			&row.IsCommander,
		); err != nil {
			return solitaire.LoadDeck{}, fmt.Errorf("scan deck %s: %w", id, err)
		}
		if len(row.Seed.ProducedMana) == 0 {
			row.Seed.ProducedMana = nil
		}
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
