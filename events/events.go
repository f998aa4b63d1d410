// Package events holds the pure helpers used to present the events listing.
// Every time dependent function takes now explicitly.
package events

import (
	"math"
	"nutzy-site/content"
	"nutzy-site/domain"
	"slices"
	"time"

	"github.com/samber/lo"
)

type Event = content.Entry[domain.Event]

type Status string

const (
	Upcoming Status = "upcoming"
	Ongoing  Status = "ongoing"
	Ended    Status = "ended"
	Unknown  Status = "unknown"
)

var statusLabels = map[Status]string{
	Upcoming: "Binnenkort",
	Ongoing:  "Bezig",
	Ended:    "Afgelopen",
	Unknown:  "Onbekend",
}

// Label is the Dutch display label of a status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[Unknown]
}

// ParseStatus accepts the query values upcoming, ongoing and ended.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case Upcoming, Ongoing, Ended:
		return Status(s), true
	default:
		return Unknown, false
	}
}

type Order int

const (
	Asc Order = iota
	Desc
)

// NearlyFullThreshold is the availability percentage under which an event is nearly full.
const NearlyFullThreshold = 10.0

// Duration is the length in hours rounded to one decimal.
func Duration(startsAt, endsAt time.Time) float64 {
	return math.Round(endsAt.Sub(startsAt).Hours()*10) / 10
}

func IsUpcoming(startsAt, now time.Time) bool {
	return startsAt.After(now)
}

func IsOngoing(startsAt, endsAt, now time.Time) bool {
	return !startsAt.After(now) && !now.After(endsAt)
}

func HasEnded(endsAt, now time.Time) bool {
	return endsAt.Before(now)
}

// StatusOf checks ended first, then ongoing, then upcoming.
func StatusOf(startsAt, endsAt, now time.Time) Status {
	switch {
	case HasEnded(endsAt, now):
		return Ended
	case IsOngoing(startsAt, endsAt, now):
		return Ongoing
	case IsUpcoming(startsAt, now):
		return Upcoming
	default:
		return Unknown
	}
}

func FilterByStatus(events []Event, status Status, now time.Time) []Event {
	return lo.Filter(events, func(e Event, _ int) bool {
		switch status {
		case Upcoming:
			return IsUpcoming(e.Data.StartsAt, now)
		case Ongoing:
			return IsOngoing(e.Data.StartsAt, e.Data.EndsAt, now)
		case Ended:
			return HasEnded(e.Data.EndsAt, now)
		default:
			return false
		}
	})
}

// SortByDate returns a copy sorted by start.
func SortByDate(events []Event, order Order) []Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Event) int {
		if order == Desc {
			return b.Data.StartsAt.Compare(a.Data.StartsAt)
		}
		return a.Data.StartsAt.Compare(b.Data.StartsAt)
	})
	return sorted
}

// SortLogically lists upcoming events nearest first, then ongoing ones by start,
// then past events most recent first.
func SortLogically(events []Event, now time.Time) []Event {
	var upcoming, ongoing, past []Event
	for _, e := range events {
		switch {
		case IsUpcoming(e.Data.StartsAt, now):
			upcoming = append(upcoming, e)
		case IsOngoing(e.Data.StartsAt, e.Data.EndsAt, now):
			ongoing = append(ongoing, e)
		default:
			past = append(past, e)
		}
	}
	out := make([]Event, 0, len(events))
	out = append(out, SortByDate(upcoming, Asc)...)
	out = append(out, SortByDate(ongoing, Asc)...)
	return append(out, SortByDate(past, Desc)...)
}

// InDateRange keeps events overlapping [start, end].
func InDateRange(events []Event, start, end time.Time) []Event {
	return lo.Filter(events, func(e Event, _ int) bool {
		return !e.Data.StartsAt.After(end) && !e.Data.EndsAt.Before(start)
	})
}

// Featured keeps featured events that are not drafts.
func Featured(events []Event) []Event {
	return lo.Filter(events, func(e Event, _ int) bool { return e.Data.Featured && !e.Data.Draft })
}

// Published drops drafts.
func Published(events []Event) []Event {
	return lo.Filter(events, func(e Event, _ int) bool { return !e.Data.Draft })
}

// Availability is the percentage of seats left, clamped to [0, 100].
// Events without a positive limit are always fully available.
func Availability(capacity domain.Capacity) float64 {
	if capacity.Max == nil || *capacity.Max <= 0 {
		return 100
	}
	limit := float64(*capacity.Max)
	left := (limit - float64(capacity.Current)) / limit * 100
	return max(0, min(100, left))
}

func NearlyFull(capacity domain.Capacity) bool {
	return Availability(capacity) < NearlyFullThreshold
}

func SoldOut(capacity domain.Capacity) bool {
	if capacity.Max == nil || *capacity.Max == 0 {
		return false
	}
	return capacity.Current >= *capacity.Max
}
