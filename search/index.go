// Package search keeps a full-text index over the published blog posts.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"nutzy-site/content"
	"nutzy-site/domain"
	"nutzy-site/errors"
	"strings"
	"sync"

	"github.com/blugelabs/bluge"
	blugesearch "github.com/blugelabs/bluge/search"
)

const (
	fieldID          = "_id"
	fieldAll         = "_all"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldContent     = "content"
	fieldAuthor      = "author"
	fieldCategory    = "category"
	fieldTag         = "tag"
)

type Hit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

type Result struct {
	Query Query  `json:"-"`
	Total uint64 `json:"total"`
	Hits  []Hit  `json:"hits"`
}

// Index is rebuilt from scratch after each blog load. Searches run against the
// reader of the last completed build.
type Index struct {
	mu     sync.RWMutex
	writer *bluge.Writer
	reader *bluge.Reader
	size   int
	log    *slog.Logger
}

func NewIndex(log *slog.Logger) *Index {
	return &Index{log: log}
}

// Rebuild indexes the published posts into a fresh in-memory index and swaps it in.
func (i *Index) Rebuild(posts []content.Entry[domain.BlogPost]) error {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return fmt.Errorf("open index writer: %w", err)
	}

	batch := bluge.NewBatch()
	indexed := 0
	for _, p := range posts {
		if p.Data.Draft {
			continue
		}
		doc := toDocument(p)
		batch.Update(doc.ID(), doc)
		indexed++
	}
	if err := writer.Batch(batch); err != nil {
		_ = writer.Close()
		return fmt.Errorf("index batch: %w", err)
	}
	reader, err := writer.Reader()
	if err != nil {
		_ = writer.Close()
		return fmt.Errorf("open index reader: %w", err)
	}

	i.mu.Lock()
	oldWriter, oldReader := i.writer, i.reader
	i.writer, i.reader, i.size = writer, reader, indexed
	i.mu.Unlock()

	closeQuietly(oldReader, oldWriter)
	i.log.Debug("Search index rebuilt", "documents", indexed)
	return nil
}

func toDocument(p content.Entry[domain.BlogPost]) *bluge.Document {
	doc := bluge.NewDocument(p.ID).
		AddField(bluge.NewTextField(fieldTitle, p.Data.Title).StoreValue()).
		AddField(bluge.NewTextField(fieldDescription, p.Data.Description)).
		AddField(bluge.NewTextField(fieldContent, content.StripMarkup(p.Data.Content))).
		AddField(bluge.NewTextField(fieldAuthor, p.Data.Author)).
		AddField(bluge.NewKeywordField(fieldCategory, strings.ToLower(p.Data.Category)).StoreValue())
	for _, tag := range p.Data.Tags {
		doc.AddField(bluge.NewKeywordField(fieldTag, strings.ToLower(tag)))
		doc.AddField(bluge.NewTextField(fieldContent, tag))
	}
	doc.AddField(bluge.NewCompositeFieldExcluding(fieldAll, []string{fieldID, fieldCategory, fieldTag}))
	return doc
}

// Search runs a query; all terms must match. Tag and category filters are exact and case-insensitive.
func (i *Index) Search(ctx context.Context, q Query) (Result, error) {
	if q.IsEmpty() {
		return Result{}, errors.ErrEmptyTerms
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	result := Result{Query: q, Hits: []Hit{}}
	if i.reader == nil {
		return result, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	request := bluge.NewTopNSearch(limit, buildQuery(q)).WithStandardAggregations()
	it, err := i.reader.Search(ctx, request)
	if err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}

	var match *blugesearch.DocumentMatch
	for match, err = it.Next(); err == nil && match != nil; match, err = it.Next() {
		hit := Hit{Score: match.Score}
		if err := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == fieldID {
				hit.ID = string(value)
			}
			return true
		}); err != nil {
			return Result{}, err
		}
		result.Hits = append(result.Hits, hit)
	}
	if err != nil {
		return Result{}, fmt.Errorf("search iterate: %w", err)
	}
	result.Total = it.Aggregations().Count()
	return result, nil
}

func buildQuery(q Query) bluge.Query {
	query := bluge.NewBooleanQuery()
	if q.Terms != "" {
		query.AddMust(bluge.NewMatchQuery(q.Terms).
			SetField(fieldAll).
			SetOperator(bluge.MatchQueryOperatorAnd))
	} else {
		query.AddMust(bluge.NewMatchAllQuery())
	}
	if q.Tag != "" {
		query.AddMust(bluge.NewTermQuery(strings.ToLower(q.Tag)).SetField(fieldTag))
	}
	if q.Category != "" {
		query.AddMust(bluge.NewTermQuery(strings.ToLower(q.Category)).SetField(fieldCategory))
	}
	return query
}

// Size is the number of documents of the current build.
func (i *Index) Size() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.size
}

func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	closeQuietly(i.reader, i.writer)
	i.reader, i.writer = nil, nil
	return nil
}

func closeQuietly(reader *bluge.Reader, writer *bluge.Writer) {
	if reader != nil {
		_ = reader.Close()
	}
	if writer != nil {
		_ = writer.Close()
	}
}
