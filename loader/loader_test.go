package loader

import (
	"bytes"
	"context"
	"log/slog"
	"nutzy-site/content"
	"nutzy-site/domain"
	"nutzy-site/errors"
	"nutzy-site/infrastructure/pocketbase"
	"nutzy-site/mocks"
	"nutzy-site/repositories"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func mustValidator(t *testing.T, name string) *content.SchemaValidator {
	v, err := content.NewSchemaValidator(name)
	require.NoError(t, err)
	return v
}

func blogRecord(id string) pocketbase.Record {
	return pocketbase.Record{
		"id":       id,
		"title":    "Visuele vacatures die werken",
		"content":  "<p>Gen-Z kijkt eerst naar beeld en pas daarna naar tekst.</p>",
		"category": "Recruitment Insights",
		"author":   "Redactie",
		"posted":   "2025-07-23 00:00:00.000Z",
		"tags":     "Gen-Z, Recruitment",
	}
}

func expectList(remote *mocks.MockRecordStore, collection, sort string, records []pocketbase.Record) {
	remote.EXPECT().Authenticate(gomock.Any()).Return(nil)
	remote.EXPECT().
		FullList(gomock.Any(), collection, pocketbase.ListOptions{Sort: sort}).
		Return(records, nil)
}

func TestBlogLoader_SkipsMalformedRecord(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRecordStore(ctrl)
	log, buf := bufferLogger()

	malformed := blogRecord("broken")
	delete(malformed, "title")
	expectList(remote, DefaultBlogCollection, DefaultBlogSort, []pocketbase.Record{blogRecord("good"), malformed})

	store := content.NewStore[domain.BlogPost]()
	l := NewBlogLoader(remote, store, mustValidator(t, content.BlogSchema), log, WithClock[domain.BlogPost](func() time.Time { return fixedNow }))

	report, err := l.Load(context.Background())
	req.NoError(err)
	req.Equal(1, report.Loaded)
	req.Equal(1, report.Skipped)
	req.True(report.Available)

	snapshot := store.Snapshot()
	req.True(snapshot.Available)
	req.Equal(1, snapshot.Len())
	_, ok := snapshot.Get("good")
	req.True(ok)
	req.Equal(1, strings.Count(buf.String(), "Skipping record"))
}

func TestBlogLoader_NormalizesAndDerivesFields(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRecordStore(ctrl)
	log, _ := bufferLogger()

	long := blogRecord("long")
	long["content"] = "<p>" + strings.Repeat("woord ", 450) + "</p>"
	long["tags"] = " a, b ,,c "
	long["related_posts"] = []any{"x", " y "}
	long["seo_og_image"] = "/og.png"
	long["updated_date"] = "2025-07-30 08:00:00.000Z"

	preset := blogRecord("preset")
	preset["reading_time"] = float64(7)
	preset["tags"] = []any{"one", "", " two"}
	preset["hero_image_src"] = "/hero.jpg"
	preset["hero_image_alt"] = "Hero"

	expectList(remote, DefaultBlogCollection, DefaultBlogSort, []pocketbase.Record{long, preset})
	store := content.NewStore[domain.BlogPost]()
	l := NewBlogLoader(remote, store, mustValidator(t, content.BlogSchema), log)

	_, err := l.Load(context.Background())
	req.NoError(err)

	got, ok := store.Get("long")
	req.True(ok)
	req.Equal([]string{"a", "b", "c"}, got.Data.Tags)
	req.Equal([]string{"x", "y"}, got.Data.RelatedPosts)
	req.Equal(3, got.Data.ReadingTime)
	req.Nil(got.Data.HeroImage)
	req.NotNil(got.Data.SEO)
	req.Equal(domain.DefaultOGType, got.Data.SEO.OGType)
	req.Equal(domain.DefaultTwitterCard, got.Data.SEO.TwitterCard)
	req.NotNil(got.Data.UpdatedDate)
	req.Equal(got.Data.Content, got.Rendered.HTML)
	req.Equal("Redactie", got.Rendered.Frontmatter["author"])
	req.NotEmpty(got.Digest)
	req.NotEmpty(got.Data.Language)

	got, ok = store.Get("preset")
	req.True(ok)
	req.Equal(7, got.Data.ReadingTime)
	req.Equal([]string{"one", "two"}, got.Data.Tags)
	req.Equal(&domain.HeroImage{Src: "/hero.jpg", Alt: "Hero"}, got.Data.HeroImage)
	req.Nil(got.Data.SEO)
}

func TestBlogLoader_KeepsBlankOptionalText(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRecordStore(ctrl)
	log, buf := bufferLogger()

	hero := blogRecord("hero")
	hero["hero_image_src"] = "/hero.jpg"
	hero["hero_image_alt"] = ""

	anonymous := blogRecord("anonymous")
	anonymous["author"] = ""
	anonymous["category"] = ""

	expectList(remote, DefaultBlogCollection, DefaultBlogSort, []pocketbase.Record{hero, anonymous})
	store := content.NewStore[domain.BlogPost]()
	l := NewBlogLoader(remote, store, mustValidator(t, content.BlogSchema), log)

	report, err := l.Load(context.Background())
	req.NoError(err)
	req.Equal(2, report.Loaded)
	req.Zero(report.Skipped)
	req.NotContains(buf.String(), "Skipping record")

	got, ok := store.Get("hero")
	req.True(ok)
	req.Equal(&domain.HeroImage{Src: "/hero.jpg"}, got.Data.HeroImage)

	got, ok = store.Get("anonymous")
	req.True(ok)
	req.Empty(got.Data.Author)
	req.Empty(got.Data.Category)
}

func TestLoader_RemoteFailureServesUnavailableSnapshot(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRecordStore(ctrl)
	log, _ := bufferLogger()

	store := content.NewStore[domain.BlogPost]()
	store.Replace(content.NewSnapshot([]content.Entry[domain.BlogPost]{{ID: "old"}}, true, fixedNow))

	remote.EXPECT().Authenticate(gomock.Any()).Return(nil)
	remote.EXPECT().FullList(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.ErrRemoteUnavailable)

	l := NewBlogLoader(remote, store, mustValidator(t, content.BlogSchema), log)
	report, err := l.Load(context.Background())
	req.ErrorIs(err, errors.ErrRemoteUnavailable)
	req.False(report.Available)
	req.False(store.Snapshot().Available)
	req.Zero(store.Snapshot().Len())
}

func TestLoader_AuthenticationFailureServesUnavailableSnapshot(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRecordStore(ctrl)
	log, _ := bufferLogger()

	remote.EXPECT().Authenticate(gomock.Any()).Return(errors.ErrAuthentication)
	store := content.NewStore[domain.Event]()
	l := NewEventLoader(remote, store, mustValidator(t, content.EventSchema), log)

	_, err := l.Load(context.Background())
	req.ErrorIs(err, errors.ErrAuthentication)
	req.False(store.Snapshot().Available)
}

func TestLoader_DetectsChangesAcrossLoads(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockRecordStore(ctrl)
	log, _ := bufferLogger()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	req.NoError(err)
	defer db.Close()

	var published []*content.Snapshot[domain.BlogPost]
	store := content.NewStore[domain.BlogPost]()
	l := NewBlogLoader(remote, store, mustValidator(t, content.BlogSchema), log,
		WithDigests[domain.BlogPost](repositories.NewDigestRepository(db, log)),
		OnSnapshot(func(s *content.Snapshot[domain.BlogPost]) { published = append(published, s) }),
	)

	// Given a first load with two posts
	expectList(remote, DefaultBlogCollection, DefaultBlogSort, []pocketbase.Record{blogRecord("a"), blogRecord("b")})
	report, err := l.Load(context.Background())
	req.NoError(err)
	req.ElementsMatch([]string{"a", "b"}, report.Changed)
	req.Empty(report.Removed)

	// When a is edited, b is deleted and c is new
	edited := blogRecord("a")
	edited["title"] = "Nieuwe titel"
	expectList(remote, DefaultBlogCollection, DefaultBlogSort, []pocketbase.Record{edited, blogRecord("c")})
	report, err = l.Load(context.Background())
	req.NoError(err)

	// Then
	req.ElementsMatch([]string{"a", "c"}, report.Changed)
	req.Equal([]string{"b"}, report.Removed)

	// And an unchanged reload reports nothing
	expectList(remote, DefaultBlogCollection, DefaultBlogSort, []pocketbase.Record{edited, blogRecord("c")})
	report, err = l.Load(context.Background())
	req.NoError(err)
	req.Empty(report.Changed)
	req.Empty(report.Removed)
	req.Len(published, 3)
}

func TestDetectLanguage_FallsBackToDutch(t *testing.T) {
	req := require.New(t)
	req.Equal("nl", detectLanguage(""))
}
