package feed

import (
	"encoding/xml"
	"nutzy-site/blog"
	"nutzy-site/domain"
	"nutzy-site/events"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func post(id string, posted time.Time, featured, draft bool) blog.Post {
	return blog.Post{ID: id, Data: domain.BlogPost{
		Title:    "Post " + id,
		Content:  "<p>Inhoud van " + id + "</p>",
		Category: "recruitment",
		Author:   "Nutzy Team",
		Posted:   posted,
		Tags:     []string{"gen-z", "tiktok"},
		Featured: featured,
		Draft:    draft,
	}}
}

func TestRSS(t *testing.T) {
	req := require.New(t)
	older := post("older", now.AddDate(0, -1, 0), false, false)
	newer := post("newer", now.AddDate(0, 0, -1), true, false)
	newer.Data.HeroImage = &domain.HeroImage{Src: "https://cdn.nutzy.nl/hero.png", Alt: "hero"}
	draft := post("draft", now, false, true)

	out, err := RSS(DefaultChannel("https://nutzy.nl/"), []blog.Post{older, draft, newer}, now)
	req.NoError(err)
	body := string(out)

	req.True(strings.HasPrefix(body, xml.Header))
	req.Contains(body, `xmlns:content="http://purl.org/rss/1.0/modules/content/"`)
	req.Contains(body, `<content:encoded><![CDATA[<p>Inhoud van newer</p>]]></content:encoded>`)
	req.Contains(body, `<dc:creator>Nutzy Team</dc:creator>`)
	req.Contains(body, `<media:content url="https://cdn.nutzy.nl/hero.png" type="image/png"></media:content>`)
	req.Contains(body, `<link>https://nutzy.nl/blog/newer/</link>`)
	req.Contains(body, `<copyright>Copyright 2025 Nutzy. All rights reserved.</copyright>`)
	req.NotContains(body, "blog/draft/")
	req.Less(strings.Index(body, "blog/newer/"), strings.Index(body, "blog/older/"))
	req.Equal(1, strings.Count(body, "<media:content"))
}

func TestMediaType(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"/img/a.png", "image/png"},
		{"/img/a.JPG", "image/jpeg"},
		{"/img/a.webp?w=300", "image/webp"},
		{"/img/noext", "image/jpeg"},
		{"/docs/a.pdf", "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, mediaType(tt.src))
		})
	}
}

func TestDefaultRoutes(t *testing.T) {
	req := require.New(t)
	routes, err := DefaultRoutes()
	req.NoError(err)
	req.NotEmpty(routes)
	req.Equal(Route{URL: "", ChangeFreq: "weekly", Priority: 1.0}, routes[0])
}

func TestParseRoutes_RejectsPriorityOutOfRange(t *testing.T) {
	_, err := ParseRoutes([]byte("routes:\n  - url: x\n    changefreq: daily\n    priority: 1.5\n"))
	require.Error(t, err)
}

func TestSitemap(t *testing.T) {
	req := require.New(t)
	updated := now.AddDate(0, 0, -2)
	featured := post("featured", now.AddDate(0, -2, 0), true, false)
	featured.Data.UpdatedDate = &updated
	plain := post("plain", now.AddDate(0, -3, 0), false, false)
	draft := post("hidden", now, false, true)

	evt := events.Event{ID: "meetup", Data: domain.Event{
		Title:    "Meetup",
		StartsAt: time.Date(2025, 9, 10, 18, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 9, 10, 21, 0, 0, 0, time.UTC),
	}}

	routes := []Route{{URL: "", ChangeFreq: "weekly", Priority: 1}, {URL: "blog", ChangeFreq: "daily", Priority: 0.9}}
	out, err := Sitemap("https://nutzy.nl", routes, []blog.Post{featured, plain, draft}, []events.Event{evt}, now)
	req.NoError(err)

	var set urlSet
	req.NoError(xml.Unmarshal(out, &set))
	req.Len(set.URLs, 5)

	req.Equal(sitemapURL{Loc: "https://nutzy.nl/", LastMod: "2025-08-01T12:00:00Z", ChangeFreq: "weekly", Priority: "1.0"}, set.URLs[0])
	req.Equal(sitemapURL{Loc: "https://nutzy.nl/blog/featured", LastMod: "2025-07-30T12:00:00Z", ChangeFreq: "monthly", Priority: "0.8"}, set.URLs[2])
	req.Equal("0.6", set.URLs[3].Priority)
	req.Equal(sitemapURL{Loc: "https://nutzy.nl/events/meetup", LastMod: "2025-09-10T18:00:00Z", ChangeFreq: "weekly", Priority: "0.5"}, set.URLs[4])
	req.NotContains(string(out), "hidden")
}
