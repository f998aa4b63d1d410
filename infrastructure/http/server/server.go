package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"nutzy-site/content"
	"nutzy-site/domain"
	"nutzy-site/feed"
	"nutzy-site/observability"
	"nutzy-site/search"
	"nutzy-site/services"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	requestIDHeader = "X-Request-ID"
	maxFormBytes    = 64 << 10
	feedCacheHeader = "public, max-age=3600"
)

// Searcher is the full-text index the search endpoint reads from.
type Searcher interface {
	Search(ctx context.Context, q search.Query) (search.Result, error)
}

type Option func(*Server)

func WithChannel(ch feed.Channel) Option {
	return func(s *Server) { s.channel = ch }
}

func WithRoutes(routes []feed.Route) Option {
	return func(s *Server) { s.routes = routes }
}

func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithHealth plugs the process figures into /healthz.
func WithHealth(fn func() (observability.ProcessStats, bool)) Option {
	return func(s *Server) { s.health = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// Server exposes the loaded content, the form actions and the feeds over HTTP.
type Server struct {
	log      *slog.Logger
	posts    *content.Store[domain.BlogPost]
	events   *content.Store[domain.Event]
	forms    services.IFormService
	searcher Searcher
	siteURL  string
	channel  feed.Channel
	routes   []feed.Route
	metrics  http.Handler
	health   func() (observability.ProcessStats, bool)
	now      func() time.Time
}

func NewServer(
	log *slog.Logger,
	siteURL string,
	posts *content.Store[domain.BlogPost],
	events *content.Store[domain.Event],
	forms services.IFormService,
	searcher Searcher,
	opts ...Option,
) *Server {
	s := &Server{
		log:      log,
		posts:    posts,
		events:   events,
		forms:    forms,
		searcher: searcher,
		siteURL:  siteURL,
		channel:  feed.DefaultChannel(siteURL),
		now:      time.Now,
	}
	if routes, err := feed.DefaultRoutes(); err == nil {
		s.routes = routes
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the traced router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /actions/contact", s.handleContact)
	mux.HandleFunc("POST /actions/newsletter", s.handleNewsletter)
	mux.HandleFunc("POST /actions/quickscan", s.handleQuickscan)

	mux.HandleFunc("GET /rss.xml", s.handleRSS)
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)

	mux.HandleFunc("GET /api/blog", s.handleBlogList)
	mux.HandleFunc("GET /api/blog/tags", s.handleBlogTags)
	mux.HandleFunc("GET /api/blog/stats", s.handleBlogStats)
	mux.HandleFunc("GET /api/blog/{id}", s.handleBlogPost)
	mux.HandleFunc("GET /api/blog/{id}/related", s.handleBlogRelated)
	mux.HandleFunc("GET /api/events", s.handleEventList)
	mux.HandleFunc("GET /api/events/{id}", s.handleEvent)
	mux.HandleFunc("GET /api/search", s.handleSearch)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	return otelhttp.NewHandler(s.withRequestID(mux), "nutzy-site")
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("Request served", "method", r.Method, "path", r.URL.Path, "request_id", id, "duration", time.Since(start))
	})
}

type sourceHealth struct {
	Available bool      `json:"available"`
	Entries   int       `json:"entries"`
	LoadedAt  time.Time `json:"loadedAt"`
}

type healthResponse struct {
	Status  string                      `json:"status"`
	Blog    sourceHealth                `json:"blog"`
	Events  sourceHealth                `json:"events"`
	Process *observability.ProcessStats `json:"process,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	posts, evts := s.posts.Snapshot(), s.events.Snapshot()
	resp := healthResponse{
		Status: "ok",
		Blog:   sourceHealth{Available: posts.Available, Entries: posts.Len(), LoadedAt: posts.LoadedAt},
		Events: sourceHealth{Available: evts.Available, Entries: evts.Len(), LoadedAt: evts.LoadedAt},
	}
	if !posts.Available || !evts.Available {
		resp.Status = "degraded"
	}
	if s.health != nil {
		if stats, ok := s.health(); ok {
			resp.Process = &stats
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type unavailableResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

func writeUnavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, unavailableResponse{
		Available: false,
		Message:   "Content is tijdelijk niet beschikbaar",
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
