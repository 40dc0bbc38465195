package main

import (
	"fmt"

	"perapera/internal/kanjidata"
	"perapera/internal/repository"
	"perapera/internal/service"

	"github.com/spf13/cobra"
)

func (c *cli) newSeedCmd() *cobra.Command {
	var (
		file  string
		limit int
		reset bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load kanji from a kanji-kyouiku.json dataset into the deck",
		Long: `Reads a kanji dataset (object keyed by kanji) and inserts the first --limit
entries as unseen cards due today. Kanji already in the deck are skipped unless
--reset is given, which wipes all cards and review history first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("file") {
				file = c.cfg.App.SeedFile
			}
			if !cmd.Flags().Changed("limit") {
				limit = c.cfg.App.SeedLimit
			}

			cards, err := kanjidata.LoadFile(file, limit)
			if err != nil {
				return err
			}

			ctx, db, closeDB, err := c.openDB(cmd)
			if err != nil {
				return err
			}
			defer closeDB()

			seeder := service.NewSeedService(db, repository.NewGormCardRepository(), repository.NewGormReviewLogRepository(), c.cfg)
			inserted, err := seeder.Seed(ctx, cards, reset)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Seeded %d of %d cards from %s\n", inserted, len(cards), file)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "dataset path (default: app.seed_file)")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of entries to load, 0 for all (default: app.seed_limit)")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete existing cards and review history first")
	return cmd
}
