package main

import (
	"fmt"
	"log/slog"
	"nutzy-site/contract"
	"nutzy-site/infrastructure/pocketbase"
	"nutzy-site/runtime"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"
)

// app is the state shared by every command once the configuration is loaded.
type app struct {
	cfg    Config
	log    *slog.Logger
	print  printer
	remote contract.RecordStore
	now    func() time.Time
}

func newRootCmd(a *app) *cobra.Command {
	var noColour bool
	root := &cobra.Command{
		Use:           "contentctl",
		Short:         "Operate the Nutzy content pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if noColour {
				cfg.Colours = false
			}
			a.cfg = cfg
			if a.log == nil {
				a.log = logs.GetLoggerFromString(cfg.LogLevel)
			}
			if a.now == nil {
				a.now = time.Now
			}
			a.print = printer{out: cmd.OutOrStdout(), colours: cfg.Colours}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&noColour, "no-colour", false, "Disable coloured output")

	root.AddCommand(
		newLoadCmd(a),
		newPostsCmd(a),
		newEventsCmd(a),
		newRelatedCmd(a),
		newSearchCmd(a),
		newRSSCmd(a),
		newSitemapCmd(a),
		newDigestsCmd(a),
		newClaimsCmd(a),
	)
	return root
}

func (a *app) remoteStore() (contract.RecordStore, error) {
	if a.remote != nil {
		return a.remote, nil
	}
	cfg, err := a.cfg.PocketBase()
	if err != nil {
		return nil, err
	}
	a.remote = pocketbase.NewClient(cfg, a.log)
	return a.remote, nil
}

func (a *app) site(opts ...runtime.SiteOption) (*runtime.Site, error) {
	remote, err := a.remoteStore()
	if err != nil {
		return nil, err
	}
	return runtime.NewSite(remote,
		runtime.Collections{Blog: a.cfg.BlogCollection, Events: a.cfg.EventCollection},
		a.log, opts...)
}

// openDB opens the server database. A running server holds the directory lock,
// so inspection commands work on a stopped instance or a copy.
func (a *app) openDB(path string) (*badger.DB, error) {
	if path == "" {
		path = a.cfg.BadgerFilepath
	}
	if path == "" {
		return nil, fmt.Errorf("no database: set BADGER_FILEPATH or pass --db")
	}
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	return db, nil
}
