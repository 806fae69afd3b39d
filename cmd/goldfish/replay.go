package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/magefree/mage-goldfish/internal/game/replay"
)

func newReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Re-run a saved session and verify its final checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := a.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			journal, err := replay.LoadFromFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to load replay: %w", err)
			}
			logger.Info("loaded replay",
				zap.String("replay_id", journal.ID),
				zap.Int64("seed", journal.Seed),
				zap.Int("action_count", len(journal.Actions)),
			)

			sum, err := journal.Verify(logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d actions) OK\n", journal.ID, sum, len(journal.Actions))
			return nil
		},
	}
}
