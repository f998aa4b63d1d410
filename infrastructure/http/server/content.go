package server

import (
	goerrors "errors"
	"net/http"
	"nutzy-site/blog"
	"nutzy-site/content"
	"nutzy-site/errors"
	"nutzy-site/events"
	"nutzy-site/format"
	"nutzy-site/search"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const defaultPageSize = 10

// postSummary is the list view of a post; the body only travels on the detail endpoint.
type postSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Excerpt     string   `json:"excerpt"`
	Category    string   `json:"category"`
	Author      string   `json:"author"`
	Posted      string   `json:"posted"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
	ReadingTime int      `json:"readingTime"`
}

const excerptLength = 160

func summarize(p blog.Post) postSummary {
	return postSummary{
		ID:          p.ID,
		Title:       p.Data.Title,
		Description: p.Data.Description,
		Excerpt:     content.Excerpt(content.StripMarkup(p.Data.Content), excerptLength),
		Category:    p.Data.Category,
		Author:      p.Data.Author,
		Posted:      format.Date(p.Data.Posted),
		Tags:        p.Data.Tags,
		Featured:    p.Data.Featured,
		ReadingTime: p.Data.ReadingTime,
	}
}

func (s *Server) publishedPosts(w http.ResponseWriter) ([]blog.Post, bool) {
	snapshot := s.posts.Snapshot()
	if !snapshot.Available {
		writeUnavailable(w)
		return nil, false
	}
	return blog.Published(snapshot.Entries()), true
}

func (s *Server) handleBlogList(w http.ResponseWriter, r *http.Request) {
	posts, ok := s.publishedPosts(w)
	if !ok {
		return
	}
	query := r.URL.Query()
	if tag := query.Get("tag"); tag != "" {
		posts = blog.FilterByTag(posts, tag)
	}
	if category := query.Get("category"); category != "" {
		posts = blog.FilterByCategory(posts, category)
	}
	if q := query.Get("q"); q != "" {
		posts = blog.Search(posts, q)
	}
	posts = blog.SortByDate(posts, blog.Desc)

	page := content.Paginate(lo.Map(posts, func(p blog.Post, _ int) postSummary { return summarize(p) }),
		intParam(r, "page", 1), intParam(r, "size", defaultPageSize))
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	posts, ok := s.publishedPosts(w)
	if !ok {
		return
	}
	post, found := lo.Find(posts, func(p blog.Post) bool { return p.ID == r.PathValue("id") })
	if !found {
		writeError(w, http.StatusNotFound, errors.ErrEntryNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleBlogRelated(w http.ResponseWriter, r *http.Request) {
	posts, ok := s.publishedPosts(w)
	if !ok {
		return
	}
	post, found := lo.Find(posts, func(p blog.Post) bool { return p.ID == r.PathValue("id") })
	if !found {
		writeError(w, http.StatusNotFound, errors.ErrEntryNotFound.Error())
		return
	}
	related := blog.Related(post, posts, limitParam(r, blog.DefaultRelatedLimit))
	writeJSON(w, http.StatusOK, lo.Map(related, func(p blog.Post, _ int) postSummary { return summarize(p) }))
}

type tagsResponse struct {
	Tags    []blog.TagCount `json:"tags"`
	Popular []string        `json:"popular"`
}

func (s *Server) handleBlogTags(w http.ResponseWriter, r *http.Request) {
	posts, ok := s.publishedPosts(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, tagsResponse{
		Tags:    blog.TagCounts(posts),
		Popular: blog.PopularTags(posts, limitParam(r, blog.DefaultPopularLimit)),
	})
}

func (s *Server) handleBlogStats(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.posts.Snapshot()
	if !snapshot.Available {
		writeUnavailable(w)
		return
	}
	writeJSON(w, http.StatusOK, blog.ComputeStats(snapshot.Entries(), s.now()))
}

// eventView adds the display fields pages need to an event.
type eventView struct {
	events.Event
	Status       events.Status `json:"status"`
	StatusLabel  string        `json:"statusLabel"`
	When         string        `json:"when"`
	PriceLabel   string        `json:"priceLabel"`
	Availability float64       `json:"availability"`
	NearlyFull   bool          `json:"nearlyFull"`
	SoldOut      bool          `json:"soldOut"`
}

func (s *Server) viewEvent(e events.Event) eventView {
	status := events.StatusOf(e.Data.StartsAt, e.Data.EndsAt, s.now())
	return eventView{
		Event:        e,
		Status:       status,
		StatusLabel:  status.Label(),
		When:         format.DateRange(e.Data.StartsAt, e.Data.EndsAt),
		PriceLabel:   format.Price(e.Data.Price.Amount, e.Data.Price.Currency),
		Availability: events.Availability(e.Data.Capacity),
		NearlyFull:   events.NearlyFull(e.Data.Capacity),
		SoldOut:      events.SoldOut(e.Data.Capacity),
	}
}

func (s *Server) publishedEvents(w http.ResponseWriter) ([]events.Event, bool) {
	snapshot := s.events.Snapshot()
	if !snapshot.Available {
		writeUnavailable(w)
		return nil, false
	}
	return events.Published(snapshot.Entries()), true
}

func (s *Server) handleEventList(w http.ResponseWriter, r *http.Request) {
	evts, ok := s.publishedEvents(w)
	if !ok {
		return
	}
	now := s.now()
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, valid := events.ParseStatus(raw)
		if !valid {
			writeError(w, http.StatusBadRequest, "unknown status "+strconv.Quote(raw))
			return
		}
		evts = events.FilterByStatus(evts, status, now)
	}
	if r.URL.Query().Get("featured") == "true" {
		evts = events.Featured(evts)
	}
	evts = events.SortLogically(evts, now)
	writeJSON(w, http.StatusOK, lo.Map(evts, func(e events.Event, _ int) eventView { return s.viewEvent(e) }))
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	evts, ok := s.publishedEvents(w)
	if !ok {
		return
	}
	evt, found := lo.Find(evts, func(e events.Event) bool { return e.ID == r.PathValue("id") })
	if !found {
		writeError(w, http.StatusNotFound, errors.ErrEntryNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.viewEvent(evt))
}

type searchHit struct {
	Score float64     `json:"score"`
	Post  postSummary `json:"post"`
}

type searchResponse struct {
	Query   string      `json:"query"`
	Total   uint64      `json:"total"`
	Results []searchHit `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	snapshot := s.posts.Snapshot()
	if !snapshot.Available {
		writeUnavailable(w)
		return
	}
	params := r.URL.Query()
	q := search.ParseQuery(params.Get("q"))
	if tag := strings.TrimSpace(params.Get("tag")); tag != "" {
		q.Tag = tag
	}
	if category := strings.TrimSpace(params.Get("category")); category != "" {
		q.Category = category
	}
	result, err := s.searcher.Search(r.Context(), q)
	if goerrors.Is(err, errors.ErrEmptyTerms) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.log.Error("Search failed", "query", q.Raw, "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	hits := lo.FilterMap(result.Hits, func(h search.Hit, _ int) (searchHit, bool) {
		post, ok := snapshot.Get(h.ID)
		if !ok || post.Data.Draft {
			return searchHit{}, false
		}
		return searchHit{Score: h.Score, Post: summarize(post)}, true
	})
	writeJSON(w, http.StatusOK, searchResponse{Query: q.Raw, Total: result.Total, Results: hits})
}

func intParam(r *http.Request, name string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return n
}

// limitParam reads ?limit; missing or non-positive values fall back to the default.
func limitParam(r *http.Request, fallback int) int {
	if n := intParam(r, "limit", fallback); n > 0 {
		return n
	}
	return fallback
}
