package feed

import (
	_ "embed"
	"encoding/xml"
	"fmt"
	"nutzy-site/blog"
	"nutzy-site/events"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

//go:embed routes.yaml
var defaultRoutes []byte

// Route is one static page of the sitemap.
type Route struct {
	URL        string  `yaml:"url"`
	ChangeFreq string  `yaml:"changefreq"`
	Priority   float64 `yaml:"priority"`
}

type routeTable struct {
	Routes []Route `yaml:"routes"`
}

// DefaultRoutes returns the embedded static route table.
func DefaultRoutes() ([]Route, error) {
	return ParseRoutes(defaultRoutes)
}

func ParseRoutes(data []byte) ([]Route, error) {
	var table routeTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing route table: %w", err)
	}
	for i, r := range table.Routes {
		if r.Priority < 0 || r.Priority > 1 {
			return nil, fmt.Errorf("route %q: priority %v out of range", r.URL, r.Priority)
		}
		table.Routes[i].URL = strings.Trim(r.URL, "/")
	}
	return table.Routes, nil
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap lists the static routes, then the published posts and events.
func Sitemap(siteURL string, routes []Route, posts []blog.Post, evts []events.Event, now time.Time) ([]byte, error) {
	siteURL = strings.TrimRight(siteURL, "/")
	set := urlSet{XMLNS: sitemapNS}

	for _, r := range routes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        siteURL + "/" + r.URL,
			LastMod:    lastMod(now),
			ChangeFreq: r.ChangeFreq,
			Priority:   priority(r.Priority),
		})
	}
	for _, p := range blog.Published(posts) {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        siteURL + "/blog/" + p.ID,
			LastMod:    lastMod(p.Data.LastModified()),
			ChangeFreq: "monthly",
			Priority:   priority(pick(p.Data.Featured, 0.8, 0.6)),
		})
	}
	for _, e := range events.Published(evts) {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        siteURL + "/events/" + e.ID,
			LastMod:    lastMod(e.Data.StartsAt),
			ChangeFreq: "weekly",
			Priority:   priority(pick(e.Data.Featured, 0.7, 0.5)),
		})
	}
	return marshal(set)
}

func lastMod(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func priority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}

func pick(cond bool, yes, no float64) float64 {
	if cond {
		return yes
	}
	return no
}
