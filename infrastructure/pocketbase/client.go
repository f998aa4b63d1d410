package pocketbase

import (
	"bytes"
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"nutzy-site/errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultAuthPath = "/api/admins/auth-with-password"
	fullListBatch   = 500
	defaultTokenTTL = 15 * time.Minute
	tokenSkew       = 30 * time.Second
)

// Config carries everything the client needs; credentials always come from the environment.
type Config struct {
	BaseURL  string
	Identity string
	Password string
	AuthPath string
	Timeout  time.Duration
}

// RequestObserver receives one call per remote round trip.
type RequestObserver interface {
	ObserveRequest(operation string, status int, duration time.Duration)
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithObserver(o RequestObserver) Option {
	return func(c *Client) { c.observer = o }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// ListOptions maps to the query parameters of the records list endpoint.
type ListOptions struct {
	Sort   string
	Filter string
}

// APIError is the decoded error body of a failed request.
type APIError struct {
	Status  int            `json:"-"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pocketbase: status %d: %s", e.Status, e.Message)
}

type listPage struct {
	Page       int      `json:"page"`
	PerPage    int      `json:"perPage"`
	TotalItems int      `json:"totalItems"`
	TotalPages int      `json:"totalPages"`
	Items      []Record `json:"items"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Client talks to a PocketBase-compatible remote store.
// It is safe for concurrent use; the admin token is shared and refreshed on expiry.
type Client struct {
	baseURL  string
	identity string
	password string
	authPath string
	http     *http.Client
	log      *slog.Logger
	observer RequestObserver
	now      func() time.Time

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewClient(cfg Config, log *slog.Logger, opts ...Option) *Client {
	authPath := cfg.AuthPath
	if authPath == "" {
		authPath = DefaultAuthPath
	}
	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		identity: cfg.Identity,
		password: cfg.Password,
		authPath: authPath,
		http:     newHTTPClient(cfg.Timeout),
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: otelhttp.NewTransport(tr)}
}

// Authenticate obtains an admin token unless a valid one is cached.
func (c *Client) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExp) {
		return nil
	}

	var resp authResponse
	body := map[string]string{"identity": c.identity, "password": c.password}
	if err := c.do(ctx, "auth", http.MethodPost, c.authPath, nil, body, "", &resp); err != nil {
		var apiErr *APIError
		if goerrors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return fmt.Errorf("%w: %v", errors.ErrAuthentication, err)
		}
		return err
	}
	if resp.Token == "" {
		return fmt.Errorf("%w: empty token", errors.ErrAuthentication)
	}

	c.token = resp.Token
	c.tokenExp = c.expiry(resp.Token)
	c.log.Debug("Authenticated against remote store", "expires", c.tokenExp)
	return nil
}

// expiry reads the exp claim without verifying the signature; the server owns the key.
func (c *Client) expiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Add(-tokenSkew)
		}
	}
	return c.now().Add(defaultTokenTTL)
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// FullList fetches every record of a collection, batching pages of 500.
func (c *Client) FullList(ctx context.Context, collection string, opts ListOptions) ([]Record, error) {
	var records []Record
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("perPage", strconv.Itoa(fullListBatch))
		query.Set("skipTotal", "1")
		if opts.Sort != "" {
			query.Set("sort", opts.Sort)
		}
		if opts.Filter != "" {
			query.Set("filter", opts.Filter)
		}

		var resp listPage
		if err := c.do(ctx, "list", http.MethodGet, recordsPath(collection), query, nil, c.currentToken(), &resp); err != nil {
			return nil, err
		}
		records = append(records, resp.Items...)
		if len(resp.Items) < fullListBatch {
			return records, nil
		}
	}
}

// FirstListItem returns the first record matching filter or ErrRecordNotFound.
func (c *Client) FirstListItem(ctx context.Context, collection, filter string) (Record, error) {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("perPage", "1")
	query.Set("skipTotal", "1")
	query.Set("filter", filter)

	var resp listPage
	if err := c.do(ctx, "first", http.MethodGet, recordsPath(collection), query, nil, c.currentToken(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", collection, errors.ErrRecordNotFound)
	}
	return resp.Items[0], nil
}

func (c *Client) Create(ctx context.Context, collection string, data map[string]any) (Record, error) {
	var record Record
	if err := c.do(ctx, "create", http.MethodPost, recordsPath(collection), nil, data, c.currentToken(), &record); err != nil {
		return nil, err
	}
	return record, nil
}

func recordsPath(collection string) string {
	return "/api/collections/" + url.PathEscape(collection) + "/records"
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body any, token string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.observe(operation, 0, time.Since(start))
		return fmt.Errorf("%w: %v", errors.ErrRemoteUnavailable, err)
	}
	defer func() { _ = res.Body.Close() }()
	c.observe(operation, res.StatusCode, time.Since(start))

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", errors.ErrRemoteUnavailable, err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: res.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(res.StatusCode)
		}
		if res.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", errors.ErrRecordNotFound, apiErr)
		}
		if res.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %w", errors.ErrRemoteUnavailable, apiErr)
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", operation, err)
	}
	return nil
}

func (c *Client) observe(operation string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(operation, status, d)
	}
}
