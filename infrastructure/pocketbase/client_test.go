package pocketbase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"nutzy-site/errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_Authenticate_CachesTokenUntilExpiry(t *testing.T) {
	req := require.New(t)
	var authCalls atomic.Int32
	token := signedToken(t, time.Now().Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(DefaultAuthPath, r.URL.Path)
		var body map[string]string
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal("admin@example.com", body["identity"])
		authCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Identity: "admin@example.com", Password: "secret"}, slog.Default())
	req.NoError(client.Authenticate(context.Background()))
	req.NoError(client.Authenticate(context.Background()))
	req.Equal(int32(1), authCalls.Load())
}

func TestClient_Authenticate_RefreshesExpiredToken(t *testing.T) {
	req := require.New(t)
	var authCalls atomic.Int32
	token := signedToken(t, time.Now().Add(time.Minute))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}))
	defer srv.Close()

	now := time.Now()
	client := NewClient(Config{BaseURL: srv.URL}, slog.Default(), WithClock(func() time.Time { return now }))
	req.NoError(client.Authenticate(context.Background()))

	now = now.Add(2 * time.Minute)
	req.NoError(client.Authenticate(context.Background()))
	req.Equal(int32(2), authCalls.Load())
}

func TestClient_Authenticate_RejectedCredentials(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"code": 400, "message": "Failed to authenticate."})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, slog.Default())
	err := client.Authenticate(context.Background())
	req.ErrorIs(err, errors.ErrAuthentication)
}

func TestClient_FullList_SendsSortAndToken(t *testing.T) {
	req := require.New(t)
	token := signedToken(t, time.Now().Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeJSON(w, http.StatusOK, map[string]string{"token": token})
			return
		}
		req.Equal("/api/collections/blog_posts/records", r.URL.Path)
		req.Equal("-posted", r.URL.Query().Get("sort"))
		req.Equal("500", r.URL.Query().Get("perPage"))
		req.Equal(token, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"page":  1,
			"items": []map[string]any{{"id": "a"}, {"id": "b"}},
		})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, slog.Default())
	req.NoError(client.Authenticate(context.Background()))
	records, err := client.FullList(context.Background(), "blog_posts", ListOptions{Sort: "-posted"})
	req.NoError(err)
	req.Len(records, 2)
	req.Equal("a", records[0].ID())
}

func TestClient_FullList_ServerErrorIsUnavailable(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "boom"})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, slog.Default())
	_, err := client.FullList(context.Background(), "events", ListOptions{})
	req.ErrorIs(err, errors.ErrRemoteUnavailable)
}

func TestClient_FullList_ConnectionRefusedIsUnavailable(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url, Timeout: time.Second}, slog.Default())
	_, err := client.FullList(context.Background(), "events", ListOptions{})
	req.ErrorIs(err, errors.ErrRemoteUnavailable)
}

func TestClient_FirstListItem_NotFound(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("email='a@b.nl'", r.URL.Query().Get("filter"))
		writeJSON(w, http.StatusOK, map[string]any{"items": []any{}})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, slog.Default())
	_, err := client.FirstListItem(context.Background(), "newsletter_subscriptions",
		Filter("email={:email}", map[string]any{"email": "a@b.nl"}))
	req.ErrorIs(err, errors.ErrRecordNotFound)
}

func TestClient_Create_ReturnsRecord(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		var body map[string]any
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal("quickscan", body["type"])
		writeJSON(w, http.StatusOK, map[string]any{"id": "rec123", "type": "quickscan"})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL}, slog.Default())
	record, err := client.Create(context.Background(), "form_submissions", map[string]any{"type": "quickscan"})
	req.NoError(err)
	req.Equal("rec123", record.ID())
}

func TestFilter_EscapesQuotes(t *testing.T) {
	req := require.New(t)
	got := Filter("email={:email} && active={:active}", map[string]any{
		"email":  "x' || email!='",
		"active": true,
	})
	req.Equal(`email='x\' || email!=\'' && active=true`, got)
}

func TestRecord_Accessors(t *testing.T) {
	req := require.New(t)
	r := Record{
		"id":        "abc",
		"title":     "  Hello ",
		"featured":  true,
		"draft":     "false",
		"price":     "12,5",
		"max":       float64(40),
		"posted":    "2025-07-23 10:00:00.000Z",
		"badDate":   "yesterday",
		"emptyDate": "",
	}

	req.Equal("abc", r.ID())
	req.Equal("Hello", r.String("title"))
	req.True(r.Bool("featured"))
	req.False(r.Bool("draft"))

	price, ok, err := r.Float("price")
	req.NoError(err)
	req.True(ok)
	req.InDelta(12.5, price, 0.0001)

	limit, ok, err := r.Int("max")
	req.NoError(err)
	req.True(ok)
	req.Equal(40, limit)

	posted, ok, err := r.Time("posted")
	req.NoError(err)
	req.True(ok)
	req.Equal(time.Date(2025, 7, 23, 10, 0, 0, 0, time.UTC), posted)

	_, _, err = r.Time("badDate")
	req.Error(err)

	_, ok, err = r.Time("emptyDate")
	req.NoError(err)
	req.False(ok)
}
