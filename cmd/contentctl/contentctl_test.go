package main

import (
	"bytes"
	"log/slog"
	"nutzy-site/errors"
	"nutzy-site/infrastructure/pocketbase"
	"nutzy-site/loader"
	"nutzy-site/mocks"
	"nutzy-site/repositories"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func blogRecord(id, title, category, tags string) pocketbase.Record {
	return pocketbase.Record{
		"id":       id,
		"title":    title,
		"content":  "<p>Gen-Z kijkt eerst naar beeld en pas daarna naar tekst.</p>",
		"category": category,
		"author":   "Redactie",
		"posted":   "2025-07-23 00:00:00.000Z",
		"tags":     tags,
	}
}

func execute(t *testing.T, remote *mocks.MockRecordStore, args ...string) (string, error) {
	t.Setenv("CONTENTCTL_COLOURS", "false")
	t.Setenv("POCKETBASE_URL", "")
	a := &app{log: slog.Default(), now: func() time.Time { return fixedNow }}
	if remote != nil {
		a.remote = remote
	}
	var out bytes.Buffer
	root := newRootCmd(a)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func expectBlog(remote *mocks.MockRecordStore, records ...pocketbase.Record) {
	remote.EXPECT().Authenticate(gomock.Any()).Return(nil)
	remote.EXPECT().
		FullList(gomock.Any(), loader.DefaultBlogCollection, pocketbase.ListOptions{Sort: loader.DefaultBlogSort}).
		Return(records, nil)
}

func TestPostsCommand_ListsPublishedPosts(t *testing.T) {
	req := require.New(t)
	remote := mocks.NewMockRecordStore(gomock.NewController(t))
	expectBlog(remote,
		blogRecord("p1", "Visuele vacatures die werken", "Recruitment Insights", "Gen-Z"),
		blogRecord("p2", "Employer branding op TikTok", "Platform Strategie", "TikTok"),
	)

	out, err := execute(t, remote, "posts", "--category", "Platform Strategie")
	req.NoError(err)
	req.Contains(out, "Employer branding op TikTok")
	req.NotContains(out, "Visuele vacatures")
}

func TestRelatedCommand_RanksByCategoryAndTags(t *testing.T) {
	req := require.New(t)
	remote := mocks.NewMockRecordStore(gomock.NewController(t))
	expectBlog(remote,
		blogRecord("p1", "Visuele vacatures die werken", "Recruitment Insights", "Gen-Z, Video"),
		blogRecord("p2", "Employer branding op TikTok", "Platform Strategie", "TikTok"),
		blogRecord("p3", "Video in je vacature", "Recruitment Insights", "Video"),
	)

	out, err := execute(t, remote, "related", "p1", "--limit", "1")
	req.NoError(err)
	req.Contains(out, "Related to Visuele vacatures die werken")
	req.Contains(out, "Video in je vacature")
	req.NotContains(out, "Employer branding")
}

func TestRelatedCommand_NonPositiveLimitUsesDefault(t *testing.T) {
	req := require.New(t)
	remote := mocks.NewMockRecordStore(gomock.NewController(t))
	expectBlog(remote,
		blogRecord("p1", "Visuele vacatures die werken", "Recruitment Insights", "Gen-Z, Video"),
		blogRecord("p2", "Employer branding op TikTok", "Platform Strategie", "TikTok"),
		blogRecord("p3", "Video in je vacature", "Recruitment Insights", "Video"),
		blogRecord("p4", "Gen-Z en vacatureteksten", "Recruitment Insights", "Gen-Z"),
		blogRecord("p5", "Reels voor werkgevers", "Recruitment Insights", "Video"),
	)

	out, err := execute(t, remote, "related", "p1", "--limit", "-1")
	req.NoError(err)
	req.Contains(out, "Video in je vacature")
	req.NotContains(out, "Employer branding")
}

func TestSearchCommand_QuotedCategory(t *testing.T) {
	req := require.New(t)
	remote := mocks.NewMockRecordStore(gomock.NewController(t))
	expectBlog(remote,
		blogRecord("p1", "Visuele vacatures die werken", "Recruitment Insights", "Gen-Z"),
		blogRecord("p2", "Vacatures op TikTok", "Platform Strategie", "TikTok"),
	)

	out, err := execute(t, remote, "search", "vacatures", "--category", "Recruitment Insights")
	req.NoError(err)
	req.Contains(out, "1 hit(s)")
	req.Contains(out, "Visuele vacatures die werken")
	req.NotContains(out, "Vacatures op TikTok")
}

func TestRelatedCommand_UnknownPost(t *testing.T) {
	req := require.New(t)
	remote := mocks.NewMockRecordStore(gomock.NewController(t))
	expectBlog(remote, blogRecord("p1", "Visuele vacatures die werken", "Recruitment Insights", "Gen-Z"))

	_, err := execute(t, remote, "related", "missing")
	req.ErrorContains(err, `post "missing" not found`)
}

func TestLoadCommand_ReportsUnavailableCollection(t *testing.T) {
	req := require.New(t)
	remote := mocks.NewMockRecordStore(gomock.NewController(t))
	expectBlog(remote, blogRecord("p1", "Visuele vacatures die werken", "Recruitment Insights", "Gen-Z"))
	remote.EXPECT().Authenticate(gomock.Any()).Return(errors.ErrRemoteUnavailable)

	out, err := execute(t, remote, "load")
	req.ErrorContains(err, "1 collection(s) could not be loaded")
	req.Contains(out, loader.DefaultBlogCollection)
	req.Contains(out, "unavailable")
}

func TestLoadCommand_WithoutRemoteConfiguration(t *testing.T) {
	req := require.New(t)
	_, err := execute(t, nil, "load")
	req.ErrorContains(err, "POCKETBASE_URL is not set")
}

func TestClaimsCommand_PrintsStoredClaims(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	req.NoError(err)
	repo := repositories.NewSubscriptionRepository(db, slog.Default(), time.Minute)
	_, err = repo.Claim("jan@example.com", fixedNow)
	req.NoError(err)
	req.NoError(repo.Confirm("jan@example.com", "rec1", fixedNow))
	req.NoError(db.Close())

	out, err := execute(t, nil, "claims", "--db", dir)
	req.NoError(err)
	req.Contains(out, "jan@example.com")
	req.Contains(out, "confirmed")
	req.Contains(out, "rec1")
}

func TestDigestsCommand_RequiresDatabase(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", "")
	_, err := execute(t, nil, "digests")
	req.ErrorContains(err, "no database")
}
