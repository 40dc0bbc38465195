package main

import (
	"fmt"

	"perapera/internal/repository"
	"perapera/internal/service"

	"github.com/spf13/cobra"
)

func (c *cli) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print deck statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, db, closeDB, err := c.openDB(cmd)
			if err != nil {
				return err
			}
			defer closeDB()

			reviews := service.NewReviewService(db, repository.NewGormCardRepository(), repository.NewGormReviewLogRepository(), c.cfg)
			stats, err := reviews.Stats(ctx)
			if err != nil {
				return err
			}

			limit := "unlimited"
			if stats.ReviewLimit > 0 {
				limit = fmt.Sprint(stats.ReviewLimit)
			}
			fmt.Fprintf(c.out, "total:         %d\n", stats.TotalCards)
			fmt.Fprintf(c.out, "seen:          %d\n", stats.SeenCards)
			fmt.Fprintf(c.out, "due:           %d\n", stats.DueCards)
			fmt.Fprintf(c.out, "reviews today: %d\n", stats.ReviewsToday)
			fmt.Fprintf(c.out, "review limit:  %s\n", limit)
			return nil
		},
	}
}
