package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/magefree/mage-goldfish/internal/repository"
)

func newImportDeckCmd(a *app) *cobra.Command {
	var deckID string
	cmd := &cobra.Command{
		Use:   "import-deck <csv>",
		Short: "Import a CSV deck list into the configured deck store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to get absolute path: %w", err)
			}
			file, err := os.Open(absPath)
			if err != nil {
				return fmt.Errorf("failed to open CSV file: %w", err)
			}
			defer file.Close()

			deck, err := repository.ReadDeckCSV(file)
			if err != nil {
				return err
			}
			if deckID == "" {
				deckID = strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
			}

			store, err := repository.Open(cmd.Context(), cfg.Decks, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveDeck(cmd.Context(), deckID, deck); err != nil {
				return fmt.Errorf("failed to save deck: %w", err)
			}

			copies := 0
			for _, seed := range deck.Mainboard {
				copies += seed.Copies()
			}
			logger.Info("imported deck",
				zap.String("deck_id", deckID),
				zap.String("csv", absPath),
				zap.Int("mainboard", copies),
				zap.Int("commanders", len(deck.Commander)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %d cards, %d commander(s)\n", deckID, copies, len(deck.Commander))
			return nil
		},
	}
	cmd.Flags().StringVar(&deckID, "deck-id", "", "deck id to store under (default: file name)")
	return cmd
}
