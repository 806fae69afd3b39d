package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/cards"
	"github.com/magefree/mage-goldfish/internal/game/solitaire"
)

// ReadDeckCSV parses a deck list export. The first row is a header; columns
// are matched by name and only "name" is required. Recognised columns:
//
//	id, quantity, name, type_line, supertypes, types, subtypes, mana_cost,
//	power, toughness, produced_mana, oracle_text, commander
//
// When type_line is missing it is assembled from the three type columns.
// produced_mana is comma separated inside its cell.
func ReadDeckCSV(r io.Reader) (solitaire.LoadDeck, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return solitaire.LoadDeck{}, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return solitaire.LoadDeck{}, errors.New("CSV file is empty or has no data rows")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["name"]; !ok {
		return solitaire.LoadDeck{}, errors.New(`CSV header has no "name" column`)
	}
	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var deck solitaire.LoadDeck
	for i, record := range records[1:] {
		line := i + 2
		name := field(record, "name")
		if name == "" {
			continue
		}

		seed := cards.Seed{
			ID:           field(record, "id"),
			Name:         name,
			TypeLine:     field(record, "type_line"),
			ManaCost:     field(record, "mana_cost"),
			Power:        field(record, "power"),
			Toughness:    field(record, "toughness"),
			ProducedMana: splitMana(field(record, "produced_mana")),
			OracleText:   field(record, "oracle_text"),
			Quantity:     1,
		}
		if seed.ID == "" {
			seed.ID = cardSlug(name)
		}
		if seed.TypeLine == "" {
			seed.TypeLine = buildTypeLine(field(record, "types"), field(record, "subtypes"), field(record, "supertypes"))
		}
		if q := field(record, "quantity"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil || n <= 0 {
				return solitaire.LoadDeck{}, fmt.Errorf("line %d: invalid quantity %q", line, q)
			}
			seed.Quantity = n
		}

		if parseBool(field(record, "commander")) {
			deck.Commander = append(deck.Commander, seed)
		} else {
			deck.Mainboard = append(deck.Mainboard, seed)
		}
	}
	return deck, nil
}

func parseBool(s string) bool {
	return strings.EqualFold(s, "true") || s == "1"
}

func buildTypeLine(types, subtypes, supertypes string) string {
	parts := []string{}
	if supertypes != "" {
		parts = append(parts, supertypes)
	}
	if types != "" {
		parts = append(parts, types)
	}

	result := strings.Join(parts, " ")
	if subtypes != "" {
		result += " — " + subtypes
	}
	return result
}

func cardSlug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
