package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/mage-goldfish/internal/config"
	"github.com/magefree/mage-goldfish/internal/game/cards"
	"github.com/magefree/mage-goldfish/internal/game/solitaire"
)

func sampleDeck() solitaire.LoadDeck {
	return solitaire.LoadDeck{
		Mainboard: []cards.Seed{
			{ID: "forest", Name: "Forest", TypeLine: "Basic Land — Forest", ProducedMana: []string{"G"}, Quantity: 35},
			{ID: "sol-ring", Name: "Sol Ring", TypeLine: "Artifact", ManaCost: "{1}", ProducedMana: []string{"C", "C"}, Quantity: 1},
			{ID: "tarmogoyf", Name: "Tarmogoyf", TypeLine: "Creature — Lhurgoyf", ManaCost: "{1}{G}", Power: "*", Toughness: "1+*", Quantity: 1},
		},
		Commander: []cards.Seed{
			{ID: "omnath", Name: "Omnath, Locus of Mana", TypeLine: "Legendary Creature — Elemental", ManaCost: "{2}{G}", Power: "1", Toughness: "1", OracleText: "Green mana doesn't empty from your mana pool.", Quantity: 1},
		},
	}
}

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite("file:" + filepath.Join(t.TempDir(), "decks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// exerciseStore runs the shared DeckSource contract against a store.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.LoadDeck(ctx, "missing")
	assert.ErrorIs(t, err, ErrDeckNotFound)

	require.NoError(t, store.SaveDeck(ctx, "omnath", sampleDeck()))
	got, err := store.LoadDeck(ctx, "omnath")
	require.NoError(t, err)
	assert.Equal(t, sampleDeck(), got)

	smaller := sampleDeck()
	smaller.Mainboard = smaller.Mainboard[:1]
	require.NoError(t, store.SaveDeck(ctx, "omnath", smaller))
	got, err = store.LoadDeck(ctx, "omnath")
	require.NoError(t, err)
	assert.Equal(t, smaller, got)

	assert.Error(t, store.SaveDeck(ctx, "  ", smaller))
}

func TestSQLiteStore(t *testing.T) {
	exerciseStore(t, openTestSQLite(t))
}

func TestSQLiteStoreRequiresDSN(t *testing.T) {
	_, err := OpenSQLite(" ")
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("GOLDFISH_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("GOLDFISH_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	store, err := OpenPostgres(ctx, dsn, 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(ctx))

	exerciseStore(t, store)
}

func TestOpenSelectsDriver(t *testing.T) {
	cfg := config.DecksConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), "open.db"),
	}
	store, err := Open(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.SaveDeck(context.Background(), "d", sampleDeck()))

	_, err = Open(context.Background(), config.DecksConfig{Driver: "mysql"}, nil)
	assert.ErrorContains(t, err, `unknown deck store driver "mysql"`)
}

func TestReadDeckCSV(t *testing.T) {
	input := `quantity,name,supertypes,types,subtypes,mana_cost,power,toughness,produced_mana,commander
35,Forest,Basic,Land,Forest,,,,G,
1,Llanowar Elves,,Creature,Elf Druid,{G},1,1,G,false
1,"Omnath, Locus of Mana",Legendary,Creature,Elemental,{2}{G},1,1,,true
`
	deck, err := ReadDeckCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, deck.Mainboard, 2)
	assert.Equal(t, cards.Seed{
		ID:           "forest",
		Name:         "Forest",
		TypeLine:     "Basic Land — Forest",
		ProducedMana: []string{"G"},
		Quantity:     35,
	}, deck.Mainboard[0])
	assert.Equal(t, "Creature — Elf Druid", deck.Mainboard[1].TypeLine)
	assert.Equal(t, "llanowar-elves", deck.Mainboard[1].ID)

	require.Len(t, deck.Commander, 1)
	assert.Equal(t, "omnath-locus-of-mana", deck.Commander[0].ID)
	assert.Equal(t, "Legendary Creature — Elemental", deck.Commander[0].TypeLine)
}

func TestReadDeckCSVErrors(t *testing.T) {
	_, err := ReadDeckCSV(strings.NewReader("name\n"))
	assert.ErrorContains(t, err, "no data rows")

	_, err = ReadDeckCSV(strings.NewReader("card\nForest\n"))
	assert.ErrorContains(t, err, `no "name" column`)

	_, err = ReadDeckCSV(strings.NewReader("quantity,name\nlots,Forest\n"))
	assert.ErrorContains(t, err, `line 2: invalid quantity "lots"`)
}
