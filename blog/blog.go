// Package blog holds the pure helpers pages use to list, filter and relate blog posts.
package blog

import (
	"nutzy-site/content"
	"nutzy-site/domain"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Post = content.Entry[domain.BlogPost]

type Order int

const (
	Desc Order = iota
	Asc
)

const (
	DefaultRelatedLimit = 3
	DefaultPopularLimit = 10
	DefaultRecentDays   = 30
	sameCategoryScore   = 3
)

// Published drops drafts.
func Published(posts []Post) []Post {
	return lo.Filter(posts, func(p Post, _ int) bool { return !p.Data.Draft })
}

func Featured(posts []Post) []Post {
	return lo.Filter(posts, func(p Post, _ int) bool { return p.Data.Featured })
}

func FilterByTag(posts []Post, tag string) []Post {
	return lo.Filter(posts, func(p Post, _ int) bool { return slices.Contains(p.Data.Tags, tag) })
}

func FilterByCategory(posts []Post, category string) []Post {
	return lo.Filter(posts, func(p Post, _ int) bool { return p.Data.Category == category })
}

// SortByDate returns a sorted copy; posts published at the same instant keep their order.
func SortByDate(posts []Post, order Order) []Post {
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b Post) int {
		if order == Asc {
			return a.Data.Posted.Compare(b.Data.Posted)
		}
		return b.Data.Posted.Compare(a.Data.Posted)
	})
	return sorted
}

// UniqueTags returns every tag once, alphabetically.
func UniqueTags(posts []Post) []string {
	tags := lo.Uniq(lo.FlatMap(posts, func(p Post, _ int) []string { return p.Data.Tags }))
	sort.Strings(tags)
	return tags
}

// TagCount is the number of posts carrying a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCounts counts tag usage, most used first. Ties keep first appearance order.
func TagCounts(posts []Post) []TagCount {
	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		for _, tag := range p.Data.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	result := lo.Map(order, func(tag string, _ int) TagCount { return TagCount{Tag: tag, Count: counts[tag]} })
	slices.SortStableFunc(result, func(a, b TagCount) int { return b.Count - a.Count })
	return result
}

func PopularTags(posts []Post, limit int) []string {
	counts := TagCounts(posts)
	if limit >= 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return lo.Map(counts, func(c TagCount, _ int) string { return c.Tag })
}

type scored struct {
	post  Post
	score int
}

// Related ranks the other published posts by relevance to current:
// 3 points for the same category plus one per shared tag. Equal scores keep their input order.
func Related(current Post, all []Post, limit int) []Post {
	candidates := lo.Filter(Published(all), func(p Post, _ int) bool { return p.ID != current.ID })
	ranked := lo.Map(candidates, func(p Post, _ int) scored {
		return scored{post: p, score: Score(current, p)}
	})
	slices.SortStableFunc(ranked, func(a, b scored) int { return b.score - a.score })
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return lo.Map(ranked, func(s scored, _ int) Post { return s.post })
}

// Score is the relevance of candidate to current.
func Score(current, candidate Post) int {
	score := 0
	if candidate.Data.Category == current.Data.Category {
		score += sameCategoryScore
	}
	return score + lo.CountBy(candidate.Data.Tags, func(tag string) bool {
		return slices.Contains(current.Data.Tags, tag)
	})
}

// Search keeps posts containing every whitespace separated term, case-insensitively,
// in their title, description, tags, category, author or body. An empty query matches all.
func Search(posts []Post, query string) []Post {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return posts
	}
	return lo.Filter(posts, func(p Post, _ int) bool {
		haystack := strings.ToLower(strings.Join([]string{
			p.Data.Title,
			p.Data.Description,
			strings.Join(p.Data.Tags, " "),
			p.Data.Category,
			p.Data.Author,
			p.Data.Content,
		}, " "))
		return lo.EveryBy(terms, func(term string) bool { return strings.Contains(haystack, term) })
	})
}

// InDateRange keeps posts published within [start, end].
func InDateRange(posts []Post, start, end time.Time) []Post {
	return lo.Filter(posts, func(p Post, _ int) bool {
		return !p.Data.Posted.Before(start) && !p.Data.Posted.After(end)
	})
}

// Recent keeps posts published in the last days days.
func Recent(posts []Post, days int, now time.Time) []Post {
	cutoff := now.AddDate(0, 0, -days)
	return lo.Filter(posts, func(p Post, _ int) bool { return !p.Data.Posted.Before(cutoff) })
}

func GroupByCategory(posts []Post) map[string][]Post {
	return lo.GroupBy(posts, func(p Post) string { return p.Data.Category })
}

// GroupByDate groups by year, then month.
func GroupByDate(posts []Post) map[int]map[time.Month][]Post {
	groups := make(map[int]map[time.Month][]Post)
	for _, p := range posts {
		year, month := p.Data.Posted.Year(), p.Data.Posted.Month()
		if groups[year] == nil {
			groups[year] = make(map[time.Month][]Post)
		}
		groups[year][month] = append(groups[year][month], p)
	}
	return groups
}

type Stats struct {
	TotalPosts          int    `json:"totalPosts"`
	TotalDrafts         int    `json:"totalDrafts"`
	TotalReadingTime    int    `json:"totalReadingTime"`
	AverageReadingTime  int    `json:"averageReadingTime"`
	TotalCategories     int    `json:"totalCategories"`
	TotalTags           int    `json:"totalTags"`
	MostPopularCategory string `json:"mostPopularCategory,omitempty"`
	MostPopularTag      string `json:"mostPopularTag,omitempty"`
	FeaturedPosts       int    `json:"featuredPosts"`
	PostsThisMonth      int    `json:"postsThisMonth"`
	PostsThisYear       int    `json:"postsThisYear"`
}

// ComputeStats aggregates the published posts; drafts are only counted.
func ComputeStats(posts []Post, now time.Time) Stats {
	published := Published(posts)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	stats := Stats{
		TotalPosts:     len(published),
		TotalDrafts:    len(posts) - len(published),
		FeaturedPosts:  len(Featured(published)),
		PostsThisMonth: len(Recent(published, DefaultRecentDays, now)),
		PostsThisYear:  len(InDateRange(published, yearStart, now)),
	}

	stats.TotalReadingTime = lo.SumBy(published, func(p Post) int { return p.Data.ReadingTime })
	if stats.TotalPosts > 0 {
		stats.AverageReadingTime = int(float64(stats.TotalReadingTime)/float64(stats.TotalPosts) + 0.5)
	}

	categories := lo.CountValuesBy(published, func(p Post) string { return p.Data.Category })
	stats.TotalCategories = len(categories)
	best := 0
	for _, category := range lo.Uniq(lo.Map(published, func(p Post, _ int) string { return p.Data.Category })) {
		if categories[category] > best {
			best = categories[category]
			stats.MostPopularCategory = category
		}
	}

	tags := TagCounts(published)
	stats.TotalTags = len(tags)
	if len(tags) > 0 {
		stats.MostPopularTag = tags[0].Tag
	}
	return stats
}
