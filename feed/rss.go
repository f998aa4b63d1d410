// Package feed renders the RSS feed and the sitemap.
package feed

import (
	"encoding/xml"
	"fmt"
	"mime"
	"nutzy-site/blog"
	"path"
	"strings"
	"time"
)

const (
	contentNS = "http://purl.org/rss/1.0/modules/content/"
	dcNS      = "http://purl.org/dc/elements/1.1/"
	mediaNS   = "http://search.yahoo.com/mrss/"

	defaultMediaType = "image/jpeg"
)

// Channel is the feed metadata, filled from configuration.
type Channel struct {
	Title       string
	Description string
	SiteURL     string
	Language    string
	Editor      string
	Categories  []string
	LogoURL     string
	TTL         int
}

// DefaultChannel is the blog channel of the site at siteURL.
func DefaultChannel(siteURL string) Channel {
	siteURL = strings.TrimRight(siteURL, "/")
	return Channel{
		Title:       "Nutzy Blog - Gen-Z Recruitment Insights",
		Description: "Ontdek de nieuwste inzichten over Gen-Z recruitment, platform strategieën en trends in de arbeidsmarkt. Kennis delen voor betere recruitment resultaten.",
		SiteURL:     siteURL,
		Language:    "nl-NL",
		Editor:      "info@nutzy.nl (Nutzy Team)",
		Categories:  []string{"Business", "Recruitment", "Gen-Z"},
		LogoURL:     siteURL + "/img/logo.png",
		TTL:         60,
	}
}

type rssDocument struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	DCNS      string     `xml:"xmlns:dc,attr"`
	MediaNS   string     `xml:"xmlns:media,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string    `xml:"title"`
	Link           string    `xml:"link"`
	Description    string    `xml:"description"`
	Language       string    `xml:"language"`
	ManagingEditor string    `xml:"managingEditor,omitempty"`
	WebMaster      string    `xml:"webMaster,omitempty"`
	Copyright      string    `xml:"copyright"`
	LastBuildDate  string    `xml:"lastBuildDate"`
	Categories     []string  `xml:"category"`
	TTL            int       `xml:"ttl,omitempty"`
	Image          *rssImage `xml:"image,omitempty"`
	Items          []rssItem `xml:"item"`
}

type rssImage struct {
	URL    string `xml:"url"`
	Title  string `xml:"title"`
	Link   string `xml:"link"`
	Width  int    `xml:"width"`
	Height int    `xml:"height"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	GUID        rssGUID       `xml:"guid"`
	Description string        `xml:"description,omitempty"`
	PubDate     string        `xml:"pubDate"`
	Author      string        `xml:"author,omitempty"`
	Categories  []string      `xml:"category"`
	Encoded     cdata         `xml:"content:encoded"`
	Creator     string        `xml:"dc:creator,omitempty"`
	Media       *mediaContent `xml:"media:content,omitempty"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type cdata struct {
	Text string `xml:",cdata"`
}

type mediaContent struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

// RSS renders the published posts, newest first.
func RSS(ch Channel, posts []blog.Post, now time.Time) ([]byte, error) {
	published := blog.SortByDate(blog.Published(posts), blog.Desc)

	items := make([]rssItem, 0, len(published))
	for _, p := range published {
		link := fmt.Sprintf("%s/blog/%s/", ch.SiteURL, p.ID)
		item := rssItem{
			Title:       p.Data.Title,
			Link:        link,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			Description: p.Data.Description,
			PubDate:     p.Data.Posted.Format(time.RFC1123Z),
			Author:      p.Data.Author,
			Categories:  append([]string{p.Data.Category}, p.Data.Tags...),
			Encoded:     cdata{Text: p.Data.Content},
			Creator:     p.Data.Author,
		}
		if p.Data.HeroImage != nil && p.Data.HeroImage.Src != "" {
			item.Media = &mediaContent{URL: p.Data.HeroImage.Src, Type: mediaType(p.Data.HeroImage.Src)}
		}
		items = append(items, item)
	}

	doc := rssDocument{
		Version:   "2.0",
		ContentNS: contentNS,
		DCNS:      dcNS,
		MediaNS:   mediaNS,
		Channel: rssChannel{
			Title:          ch.Title,
			Link:           ch.SiteURL + "/blog",
			Description:    ch.Description,
			Language:       ch.Language,
			ManagingEditor: ch.Editor,
			WebMaster:      ch.Editor,
			Copyright:      fmt.Sprintf("Copyright %d Nutzy. All rights reserved.", now.Year()),
			LastBuildDate:  now.Format(time.RFC1123Z),
			Categories:     ch.Categories,
			TTL:            ch.TTL,
			Items:          items,
		},
	}
	if ch.LogoURL != "" {
		doc.Channel.Image = &rssImage{URL: ch.LogoURL, Title: "Nutzy Blog", Link: ch.SiteURL + "/blog", Width: 144, Height: 144}
	}
	return marshal(doc)
}

// mediaType guesses the image type from the file extension.
func mediaType(src string) string {
	ext := strings.ToLower(path.Ext(strings.SplitN(src, "?", 2)[0]))
	if ext == "" {
		return defaultMediaType
	}
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "image/") {
		t, _, _ = strings.Cut(t, ";")
		return t
	}
	return defaultMediaType
}

func marshal(v any) ([]byte, error) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
