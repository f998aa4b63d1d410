package runtime

import (
	"fmt"
	"log/slog"
	"nutzy-site/content"
	"nutzy-site/contract"
	"nutzy-site/domain"
	"nutzy-site/loader"
	"nutzy-site/repositories"
	"nutzy-site/search"
)

// Collections names the remote collections the site reads.
type Collections struct {
	Blog   string
	Events string
}

func DefaultCollections() Collections {
	return Collections{Blog: loader.DefaultBlogCollection, Events: loader.DefaultEventCollection}
}

type SiteOption func(*siteOptions)

type siteOptions struct {
	digests  repositories.IDigestRepository
	observer loader.LoadObserver
	indexed  func(documents int)
}

// WithDigests persists entry digests so loads report what changed.
func WithDigests(repo repositories.IDigestRepository) SiteOption {
	return func(o *siteOptions) { o.digests = repo }
}

func WithLoadObserver(observer loader.LoadObserver) SiteOption {
	return func(o *siteOptions) { o.observer = observer }
}

// OnIndexed is called with the document count after each search index rebuild.
func OnIndexed(fn func(documents int)) SiteOption {
	return func(o *siteOptions) { o.indexed = fn }
}

// Site holds the published content: one store per collection, their loaders
// and the search index rebuilt after every blog load.
type Site struct {
	Posts       *content.Store[domain.BlogPost]
	Events      *content.Store[domain.Event]
	Index       *search.Index
	BlogLoader  *loader.Loader[domain.BlogPost]
	EventLoader *loader.Loader[domain.Event]
}

func NewSite(remote contract.RecordStore, collections Collections, log *slog.Logger, opts ...SiteOption) (*Site, error) {
	var o siteOptions
	for _, opt := range opts {
		opt(&o)
	}

	blogSchema, err := content.NewSchemaValidator(content.BlogSchema)
	if err != nil {
		return nil, fmt.Errorf("blog schema: %w", err)
	}
	eventSchema, err := content.NewSchemaValidator(content.EventSchema)
	if err != nil {
		return nil, fmt.Errorf("event schema: %w", err)
	}

	s := &Site{
		Posts:  content.NewStore[domain.BlogPost](),
		Events: content.NewStore[domain.Event](),
		Index:  search.NewIndex(log),
	}

	blogOpts := []loader.Option[domain.BlogPost]{
		loader.WithCollection[domain.BlogPost](collections.Blog, loader.DefaultBlogSort),
		loader.OnSnapshot(func(snapshot *content.Snapshot[domain.BlogPost]) {
			if err := s.Index.Rebuild(snapshot.Entries()); err != nil {
				log.Error("Search index rebuild failed", "error", err)
				return
			}
			if o.indexed != nil {
				o.indexed(s.Index.Size())
			}
		}),
	}
	eventOpts := []loader.Option[domain.Event]{
		loader.WithCollection[domain.Event](collections.Events, loader.DefaultEventSort),
	}
	if o.digests != nil {
		blogOpts = append(blogOpts, loader.WithDigests[domain.BlogPost](o.digests))
		eventOpts = append(eventOpts, loader.WithDigests[domain.Event](o.digests))
	}
	if o.observer != nil {
		blogOpts = append(blogOpts, loader.WithObserver[domain.BlogPost](o.observer))
		eventOpts = append(eventOpts, loader.WithObserver[domain.Event](o.observer))
	}

	s.BlogLoader = loader.NewBlogLoader(remote, s.Posts, blogSchema, log, blogOpts...)
	s.EventLoader = loader.NewEventLoader(remote, s.Events, eventSchema, log, eventOpts...)
	return s, nil
}

// Loaders returns the loaders in refresh order.
func (s *Site) Loaders() []contract.Loader {
	return []contract.Loader{s.BlogLoader, s.EventLoader}
}

func (s *Site) Close() error {
	return s.Index.Close()
}
