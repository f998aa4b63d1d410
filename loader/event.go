package loader

import (
	goerrors "errors"
	"fmt"
	"log/slog"
	"nutzy-site/content"
	"nutzy-site/contract"
	"nutzy-site/domain"
	"nutzy-site/errors"
	"nutzy-site/events"
	"nutzy-site/infrastructure/pocketbase"
	"time"

	"github.com/samber/lo"
)

// NewEventLoader loads the events collection, sorted by start.
func NewEventLoader(
	remote contract.RecordStore,
	target *content.Store[domain.Event],
	validator Validator,
	log *slog.Logger,
	opts ...Option[domain.Event],
) *Loader[domain.Event] {
	return newLoader(DefaultEventCollection, DefaultEventSort, remote, target, validator, log, assembleEvent(log), opts)
}

// assembleEvent rejects records whose end is not after their start and logs them at error level.
func assembleEvent(log *slog.Logger) assembler[domain.Event] {
	return func(r pocketbase.Record, now time.Time) (domain.Event, content.Rendered, error) {
		startsAt, endsAt, err := eventWindow(r)
		if err != nil {
			if goerrors.Is(err, errors.ErrInvalidEventWindow) {
				log.Error("Rejecting event", "id", r.ID(), "startsAt", startsAt, "endsAt", endsAt, "error", err)
			}
			return domain.Event{}, content.Rendered{}, err
		}

		capacity, err := eventCapacity(r)
		if err != nil {
			return domain.Event{}, content.Rendered{}, err
		}
		amount, _, err := r.Float("price")
		if err != nil {
			return domain.Event{}, content.Rendered{}, fmt.Errorf("%w: %v", errors.ErrInvalidRecord, err)
		}

		event := domain.Event{
			Title:           r.String("title"),
			StartsAt:        startsAt,
			EndsAt:          endsAt,
			Description:     r.String("description"),
			Location:        eventLocation(r),
			Category:        r.String("category"),
			Organizer:       r.String("organizer"),
			Featured:        r.Bool("featured"),
			Draft:           r.Bool("draft"),
			Capacity:        capacity,
			Price:           domain.Price{Amount: amount, Currency: lo.CoalesceOrEmpty(r.String("currency"), domain.DefaultCurrency)},
			Tags:            content.SplitList(r.Raw("tags")),
			HeroImage:       heroImage(r),
			SEO:             seo(r),
			RegistrationURL: r.String("registration_url"),
			ContactEmail:    r.String("contact_email"),
			DurationHours:   events.Duration(startsAt, endsAt),
			IsUpcoming:      startsAt.After(now),
		}

		rendered := content.Rendered{
			HTML: event.Description,
			Frontmatter: map[string]any{
				"title":     event.Title,
				"startsAt":  event.StartsAt,
				"endsAt":    event.EndsAt,
				"category":  event.Category,
				"organizer": event.Organizer,
			},
		}
		return event, rendered, nil
	}
}

func eventWindow(r pocketbase.Record) (time.Time, time.Time, error) {
	startsAt, ok, err := r.Time("starts_at")
	if err != nil || !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: starts_at is required", errors.ErrInvalidRecord)
	}
	endsAt, ok, err := r.Time("ends_at")
	if err != nil || !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: ends_at is required", errors.ErrInvalidRecord)
	}
	if !endsAt.After(startsAt) {
		return startsAt, endsAt, errors.ErrInvalidEventWindow
	}
	return startsAt, endsAt, nil
}

func eventCapacity(r pocketbase.Record) (domain.Capacity, error) {
	var capacity domain.Capacity
	limit, ok, err := r.Int("max_attendees")
	if err != nil {
		return capacity, fmt.Errorf("%w: %v", errors.ErrInvalidRecord, err)
	}
	if ok && limit > 0 {
		capacity.Max = lo.ToPtr(limit)
	}
	current, _, err := r.Int("current_attendees")
	if err != nil {
		return capacity, fmt.Errorf("%w: %v", errors.ErrInvalidRecord, err)
	}
	capacity.Current = current
	return capacity, nil
}

// eventLocation prefers the structured fields and accepts a plain location string.
func eventLocation(r pocketbase.Record) *domain.Location {
	loc := domain.Location{
		Name:    lo.CoalesceOrEmpty(r.String("location_name"), r.String("location")),
		Address: r.String("location_address"),
		City:    r.String("location_city"),
		URL:     r.String("location_url"),
	}
	if loc == (domain.Location{}) {
		return nil
	}
	return &loc
}
