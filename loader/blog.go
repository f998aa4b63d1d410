package loader

import (
	"fmt"
	"log/slog"
	"nutzy-site/content"
	"nutzy-site/contract"
	"nutzy-site/domain"
	"nutzy-site/errors"
	"nutzy-site/infrastructure/pocketbase"
	"time"
)

// NewBlogLoader loads the blog collection, sorted newest first.
func NewBlogLoader(
	remote contract.RecordStore,
	target *content.Store[domain.BlogPost],
	validator Validator,
	log *slog.Logger,
	opts ...Option[domain.BlogPost],
) *Loader[domain.BlogPost] {
	return newLoader(DefaultBlogCollection, DefaultBlogSort, remote, target, validator, log, assembleBlogPost, opts)
}

func assembleBlogPost(r pocketbase.Record, _ time.Time) (domain.BlogPost, content.Rendered, error) {
	posted, ok, err := r.Time("posted")
	if err != nil {
		return domain.BlogPost{}, content.Rendered{}, fmt.Errorf("%w: %v", errors.ErrInvalidRecord, err)
	}
	if !ok {
		return domain.BlogPost{}, content.Rendered{}, fmt.Errorf("%w: posted is required", errors.ErrInvalidRecord)
	}

	var updated *time.Time
	if t, ok, err := r.Time("updated_date"); err != nil {
		return domain.BlogPost{}, content.Rendered{}, fmt.Errorf("%w: %v", errors.ErrInvalidRecord, err)
	} else if ok {
		updated = &t
	}

	body := r.String("content")
	readingTime, ok, err := r.Int("reading_time")
	if err != nil || !ok || readingTime <= 0 {
		readingTime = content.ReadingTime(body)
	}

	post := domain.BlogPost{
		Title:        r.String("title"),
		Content:      body,
		Category:     r.String("category"),
		Author:       r.String("author"),
		Posted:       posted,
		Description:  r.String("description"),
		UpdatedDate:  updated,
		Tags:         content.SplitList(r.Raw("tags")),
		Featured:     r.Bool("featured"),
		Draft:        r.Bool("draft"),
		HeroImage:    heroImage(r),
		SEO:          seo(r),
		ReadingTime:  readingTime,
		RelatedPosts: content.SplitList(r.Raw("related_posts")),
	}
	post.Language = detectLanguage(content.StripMarkup(post.Title + " " + post.Description + " " + body))

	rendered := content.Rendered{
		HTML: body,
		Frontmatter: map[string]any{
			"title":    post.Title,
			"category": post.Category,
			"author":   post.Author,
			"posted":   post.Posted,
		},
	}
	return post, rendered, nil
}
