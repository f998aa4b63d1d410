// Package loader turns remote records into validated content snapshots.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"nutzy-site/content"
	"nutzy-site/contract"
	"nutzy-site/domain"
	"nutzy-site/errors"
	"nutzy-site/infrastructure/pocketbase"
	"nutzy-site/repositories"
	"sort"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

const (
	DefaultBlogCollection  = "blog_posts"
	DefaultBlogSort        = "-posted"
	DefaultEventCollection = "events"
	DefaultEventSort       = "starts_at"
	fallbackLanguage       = "nl"
)

// Validator checks an assembled entry before it is stored.
type Validator interface {
	Validate(data any) error
}

// LoadObserver receives the outcome of each load.
type LoadObserver interface {
	ObserveLoad(report domain.LoadReport, err error)
}

// assembler builds the typed entry data of one raw record.
type assembler[T any] func(record pocketbase.Record, now time.Time) (T, content.Rendered, error)

// Loader runs fetch, transform, validate, digest and store for one collection.
// Only the loader writes its store; each load publishes a complete snapshot.
type Loader[T any] struct {
	collection  string
	sort        string
	remote      contract.RecordStore
	target      *content.Store[T]
	validator   Validator
	digests     repositories.IDigestRepository
	observer    LoadObserver
	subscribers []func(*content.Snapshot[T])
	log         *slog.Logger
	now         func() time.Time
	assemble    assembler[T]
}

type Option[T any] func(*Loader[T])

func WithCollection[T any](collection, sort string) Option[T] {
	return func(l *Loader[T]) {
		if collection != "" {
			l.collection = collection
		}
		if sort != "" {
			l.sort = sort
		}
	}
}

// WithDigests enables change detection across loads.
func WithDigests[T any](repo repositories.IDigestRepository) Option[T] {
	return func(l *Loader[T]) { l.digests = repo }
}

func WithObserver[T any](o LoadObserver) Option[T] {
	return func(l *Loader[T]) { l.observer = o }
}

func WithClock[T any](now func() time.Time) Option[T] {
	return func(l *Loader[T]) { l.now = now }
}

// OnSnapshot registers a callback invoked after each successful swap.
func OnSnapshot[T any](fn func(*content.Snapshot[T])) Option[T] {
	return func(l *Loader[T]) { l.subscribers = append(l.subscribers, fn) }
}

func newLoader[T any](
	collection, sortBy string,
	remote contract.RecordStore,
	target *content.Store[T],
	validator Validator,
	log *slog.Logger,
	assemble assembler[T],
	opts []Option[T],
) *Loader[T] {
	l := &Loader[T]{
		collection: collection,
		sort:       sortBy,
		remote:     remote,
		target:     target,
		validator:  validator,
		log:        log,
		now:        time.Now,
		assemble:   assemble,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader[T]) Name() string {
	return l.collection
}

// Load fetches the whole collection and publishes a new snapshot.
// When the remote store cannot be reached the store is swapped to an empty,
// unavailable snapshot and the error is returned.
func (l *Loader[T]) Load(ctx context.Context) (domain.LoadReport, error) {
	start := l.now()
	report := domain.LoadReport{Collection: l.collection}
	l.log.Info("Loading collection", "collection", l.collection)

	records, err := l.fetch(ctx)
	if err != nil {
		l.log.Error("Remote store unavailable, serving empty collection", "collection", l.collection, "error", err)
		l.target.Replace(content.NewSnapshot[T](nil, false, start))
		report.Duration = l.now().Sub(start)
		l.observe(report, err)
		return report, fmt.Errorf("loading %s: %w", l.collection, err)
	}

	entries := make([]content.Entry[T], 0, len(records))
	for _, record := range records {
		entry, err := l.build(record, start)
		if err != nil {
			report.Skipped++
			l.log.Warn("Skipping record", "collection", l.collection, "id", record.ID(), "error", err)
			continue
		}
		entries = append(entries, entry)
		l.log.Debug("Loaded entry", "collection", l.collection, "id", entry.ID)
	}

	snapshot := content.NewSnapshot(entries, true, start)
	report.Changed, report.Removed = l.detectChanges(snapshot.Entries(), start)
	l.target.Replace(snapshot)
	for _, fn := range l.subscribers {
		fn(snapshot)
	}

	report.Loaded = snapshot.Len()
	report.Available = true
	report.Duration = l.now().Sub(start)
	l.log.Info("Collection loaded",
		"collection", l.collection,
		"loaded", report.Loaded,
		"skipped", report.Skipped,
		"changed", len(report.Changed),
		"removed", len(report.Removed))
	l.observe(report, nil)
	return report, nil
}

func (l *Loader[T]) fetch(ctx context.Context) ([]pocketbase.Record, error) {
	if err := l.remote.Authenticate(ctx); err != nil {
		return nil, err
	}
	return l.remote.FullList(ctx, l.collection, pocketbase.ListOptions{Sort: l.sort})
}

func (l *Loader[T]) build(record pocketbase.Record, now time.Time) (content.Entry[T], error) {
	id := record.ID()
	if id == "" {
		return content.Entry[T]{}, fmt.Errorf("%w: missing id", errors.ErrInvalidRecord)
	}
	data, rendered, err := l.assemble(record, now)
	if err != nil {
		return content.Entry[T]{}, err
	}
	if err := l.validator.Validate(data); err != nil {
		return content.Entry[T]{}, err
	}
	digest, err := content.Digest(data)
	if err != nil {
		return content.Entry[T]{}, err
	}
	return content.Entry[T]{ID: id, Data: data, Digest: digest, Rendered: rendered}, nil
}

// detectChanges compares digests with the previous load. Without a repository
// every entry counts as changed.
func (l *Loader[T]) detectChanges(entries []content.Entry[T], at time.Time) ([]string, []string) {
	current := lo.SliceToMap(entries, func(e content.Entry[T]) (string, string) {
		return e.ID, e.Digest
	})
	if l.digests == nil {
		return lo.Map(entries, func(e content.Entry[T], _ int) string { return e.ID }), []string{}
	}

	previous, err := l.digests.GetDigests(l.collection)
	if err != nil {
		l.log.Warn("Could not read previous digests", "collection", l.collection, "error", err)
		previous = map[string]string{}
	}

	changed := lo.FilterMap(entries, func(e content.Entry[T], _ int) (string, bool) {
		return e.ID, previous[e.ID] != e.Digest
	})
	removed := lo.Filter(lo.Keys(previous), func(id string, _ int) bool {
		_, ok := current[id]
		return !ok
	})
	sort.Strings(removed)

	if err := l.digests.ReplaceDigests(l.collection, current, at); err != nil {
		l.log.Warn("Could not persist digests", "collection", l.collection, "error", err)
	}
	return changed, removed
}

func (l *Loader[T]) observe(report domain.LoadReport, err error) {
	if l.observer != nil {
		l.observer.ObserveLoad(report, err)
	}
}

// detectLanguage returns the ISO 639-1 code of text, falling back to Dutch when unsure.
func detectLanguage(text string) string {
	if text == "" {
		return fallbackLanguage
	}
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" || !info.IsReliable() {
		return fallbackLanguage
	}
	return code
}

// heroImage is built only when at least one hero field is set.
func heroImage(r pocketbase.Record) *domain.HeroImage {
	if !lo.SomeBy([]string{"hero_image_src", "hero_image_alt", "hero_image_caption"}, r.Has) {
		return nil
	}
	return &domain.HeroImage{
		Src:     r.String("hero_image_src"),
		Alt:     r.String("hero_image_alt"),
		Caption: r.String("hero_image_caption"),
	}
}

// seo is built only when at least one seo field is set; og type and twitter card get defaults.
func seo(r pocketbase.Record) *domain.SEO {
	fields := []string{"seo_meta_title", "seo_meta_description", "seo_og_image", "seo_og_type", "seo_twitter_card"}
	if !lo.SomeBy(fields, r.Has) {
		return nil
	}
	return &domain.SEO{
		MetaTitle:       r.String("seo_meta_title"),
		MetaDescription: r.String("seo_meta_description"),
		OGImage:         r.String("seo_og_image"),
		OGType:          lo.CoalesceOrEmpty(r.String("seo_og_type"), domain.DefaultOGType),
		TwitterCard:     lo.CoalesceOrEmpty(r.String("seo_twitter_card"), domain.DefaultTwitterCard),
	}
}
