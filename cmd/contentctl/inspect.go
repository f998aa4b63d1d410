package main

import (
	"nutzy-site/repositories"
	"sort"

	"github.com/spf13/cobra"
)

func newDigestsCmd(a *app) *cobra.Command {
	var dbPath string
	var collections []string
	cmd := &cobra.Command{
		Use:   "digests",
		Short: "Print the entry digests stored by the last persisted load",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if len(collections) == 0 {
				collections = []string{a.cfg.BlogCollection, a.cfg.EventCollection}
			}
			repo := repositories.NewDigestRepository(db, a.log)
			var rows [][]string
			for _, collection := range collections {
				digests, err := repo.GetDigests(collection)
				if err != nil {
					return err
				}
				ids := make([]string, 0, len(digests))
				for id := range digests {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					rows = append(rows, []string{collection, id, shorten(digests[id], 16)})
				}
			}
			a.print.table([]string{"Collection", "Entry", "Digest"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to badger DB (default BADGER_FILEPATH)")
	cmd.Flags().StringSliceVar(&collections, "collection", nil, "Collections to print (default blog and events)")
	return cmd
}

func newClaimsCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "claims",
		Short: "Print the newsletter claims held locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			subs, err := repositories.NewSubscriptionRepository(db, a.log, 0).List()
			if err != nil {
				return err
			}
			var rows [][]string
			for _, sub := range subs {
				rows = append(rows, []string{
					sub.Email,
					a.print.status(sub.State == repositories.StateConfirmed, string(sub.State), string(sub.State)),
					sub.RemoteID,
					sub.UpdatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			a.print.table([]string{"Email", "State", "Remote ID", "Updated"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to badger DB (default BADGER_FILEPATH)")
	return cmd
}
