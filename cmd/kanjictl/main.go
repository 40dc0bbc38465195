// kanjictl は PeraPera のデッキを管理するためのコマンドラインツールです。
//
// 使い方:
//
//	kanjictl seed --file data/kanji-kyouiku.json --limit 100 --reset
//	kanjictl token --subject admin --ttl 24h
//	kanjictl stats
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"perapera/internal/config"
	"perapera/internal/logging"
	"perapera/internal/middleware"
	"perapera/internal/repository"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type cli struct {
	configDir string
	cfg       *config.Config
	logger    *slog.Logger
	out       io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "kanjictl",
		Short:         "Manage the PeraPera kanji deck",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.cfg = cfg
			c.logger = logging.New(errOut, cfg.Log.Level, os.Getenv("APP_ENV"))
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&c.configDir, "config-dir", "configs", "directory containing config.yaml")

	root.AddCommand(c.newSeedCmd(), c.newTokenCmd(), c.newStatsCmd())
	return root
}

// openDB は設定に従って DB を開き、ロガー入りのコンテキストを返します。
func (c *cli) openDB(cmd *cobra.Command) (context.Context, *gorm.DB, func(), error) {
	db, err := repository.NewDB(c.cfg.Database.Driver, c.cfg.Database.URL, c.logger)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	ctx := middleware.WithLogger(cmd.Context(), c.logger.With("command", cmd.Name()))
	return ctx, db, closeFn, nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
