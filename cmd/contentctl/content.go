package main

import (
	"fmt"
	"nutzy-site/blog"
	"nutzy-site/events"
	"nutzy-site/feed"
	"nutzy-site/format"
	"nutzy-site/repositories"
	"nutzy-site/runtime"
	"nutzy-site/search"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newLoadCmd(a *app) *cobra.Command {
	var persist bool
	var dbPath string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load every collection once and report the outcome",
		Long: `Load every collection once and report the outcome.

With --persist the digests of the loaded entries are compared with and written
to the database, so Changed and Removed reflect the previous load.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []runtime.SiteOption
			if persist {
				db, err := a.openDB(dbPath)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				opts = append(opts, runtime.WithDigests(repositories.NewDigestRepository(db, a.log)))
			}

			site, err := a.site(opts...)
			if err != nil {
				return err
			}
			defer func() { _ = site.Close() }()

			var rows [][]string
			failed := 0
			for _, l := range site.Loaders() {
				report, err := l.Load(cmd.Context())
				detail := ""
				if err != nil {
					failed++
					detail = err.Error()
				}
				rows = append(rows, []string{
					report.Collection,
					a.print.status(report.Available, "available", "unavailable"),
					strconv.Itoa(report.Loaded),
					strconv.Itoa(report.Skipped),
					strconv.Itoa(len(report.Changed)),
					strconv.Itoa(len(report.Removed)),
					report.Duration.Round(time.Millisecond).String(),
					detail,
				})
			}
			a.print.table([]string{"Collection", "Status", "Loaded", "Skipped", "Changed", "Removed", "Duration", "Error"}, rows)
			if failed > 0 {
				return fmt.Errorf("%d collection(s) could not be loaded", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&persist, "persist", false, "Compare and store entry digests")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to badger DB (default BADGER_FILEPATH)")
	return cmd
}

// loadPosts runs the blog loader once; a failed load is an error for the caller.
func (a *app) loadPosts(cmd *cobra.Command) (*runtime.Site, error) {
	site, err := a.site()
	if err != nil {
		return nil, err
	}
	if _, err := site.BlogLoader.Load(cmd.Context()); err != nil {
		_ = site.Close()
		return nil, err
	}
	return site, nil
}

func (a *app) loadAll(cmd *cobra.Command) (*runtime.Site, error) {
	site, err := a.loadPosts(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := site.EventLoader.Load(cmd.Context()); err != nil {
		_ = site.Close()
		return nil, err
	}
	return site, nil
}

func newPostsCmd(a *app) *cobra.Command {
	var tag, category string
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List published blog posts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			site, err := a.loadPosts(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = site.Close() }()

			posts := blog.Published(site.Posts.All())
			if tag != "" {
				posts = blog.FilterByTag(posts, tag)
			}
			if category != "" {
				posts = blog.FilterByCategory(posts, category)
			}
			var rows [][]string
			for _, p := range blog.SortByDate(posts, blog.Desc) {
				rows = append(rows, []string{
					p.ID,
					format.DateShort(p.Data.Posted),
					p.Data.Category,
					fmt.Sprintf("%d min", p.Data.ReadingTime),
					p.Data.Title,
				})
			}
			a.print.table([]string{"ID", "Posted", "Category", "Reading", "Title"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "Only posts with this tag")
	cmd.Flags().StringVar(&category, "category", "", "Only posts in this category")
	return cmd
}

func newEventsCmd(a *app) *cobra.Command {
	var statusFlag string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List published events, upcoming first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			site, err := a.site()
			if err != nil {
				return err
			}
			defer func() { _ = site.Close() }()
			if _, err := site.EventLoader.Load(cmd.Context()); err != nil {
				return err
			}

			now := a.now()
			evts := events.Published(site.Events.All())
			if statusFlag != "" {
				status, ok := events.ParseStatus(statusFlag)
				if !ok {
					return fmt.Errorf("unknown status %q, expected upcoming, ongoing or ended", statusFlag)
				}
				evts = events.FilterByStatus(evts, status, now)
			}
			var rows [][]string
			for _, e := range events.SortLogically(evts, now) {
				rows = append(rows, []string{
					e.ID,
					format.DateRange(e.Data.StartsAt, e.Data.EndsAt),
					events.StatusOf(e.Data.StartsAt, e.Data.EndsAt, now).Label(),
					format.Price(e.Data.Price.Amount, e.Data.Price.Currency),
					fmt.Sprintf("%.0f%%", events.Availability(e.Data.Capacity)),
					e.Data.Title,
				})
			}
			a.print.table([]string{"ID", "When", "Status", "Price", "Available", "Title"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&statusFlag, "status", "", "upcoming, ongoing or ended")
	return cmd
}

func newRelatedCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "related <post-id>",
		Short: "Show the posts ranked as related to a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := a.loadPosts(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = site.Close() }()

			current, ok := site.Posts.Get(args[0])
			if !ok {
				return fmt.Errorf("post %q not found", args[0])
			}
			var rows [][]string
			if limit <= 0 {
				limit = blog.DefaultRelatedLimit
			}
			for _, p := range blog.Related(current, site.Posts.All(), limit) {
				rows = append(rows, []string{p.ID, strconv.Itoa(blog.Score(current, p)), p.Data.Category, p.Data.Title})
			}
			a.print.printf("Related to %s\n", current.Data.Title)
			a.print.table([]string{"ID", "Score", "Category", "Title"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", blog.DefaultRelatedLimit, "Number of related posts")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <terms> [--tag t] [--category c] [--limit n]",
		Short: "Query the full-text index of the blog",
		Args:  cobra.MinimumNArgs(1),
		// the query syntax carries its own --tag style filters
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := a.loadPosts(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = site.Close() }()

			result, err := site.Index.Search(cmd.Context(), search.ParseQuery(joinQueryArgs(args)))
			if err != nil {
				return err
			}
			var rows [][]string
			for _, hit := range result.Hits {
				title := ""
				if p, ok := site.Posts.Get(hit.ID); ok {
					title = p.Data.Title
				}
				rows = append(rows, []string{hit.ID, fmt.Sprintf("%.3f", hit.Score), title})
			}
			a.print.printf("%d hit(s)\n", result.Total)
			a.print.table([]string{"ID", "Score", "Title"}, rows)
			return nil
		},
	}
}

func newRSSCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rss",
		Short: "Render the blog RSS feed to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			site, err := a.loadPosts(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = site.Close() }()

			body, err := feed.RSS(feed.DefaultChannel(a.cfg.SiteURL), site.Posts.All(), a.now())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
}

func newSitemapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Render the sitemap to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			site, err := a.loadAll(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = site.Close() }()

			routes, err := feed.DefaultRoutes()
			if err != nil {
				return err
			}
			body, err := feed.Sitemap(a.cfg.SiteURL, routes, site.Posts.All(), site.Events.All(), a.now())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
}

// joinQueryArgs rebuilds the query line, quoting arguments the shell already unquoted.
func joinQueryArgs(args []string) string {
	return strings.Join(lo.Map(args, func(arg string, _ int) string {
		if strings.ContainsFunc(arg, unicode.IsSpace) {
			return `"` + arg + `"`
		}
		return arg
	}), " ")
}
