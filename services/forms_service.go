//go:generate go run go.uber.org/mock/mockgen -source=forms_service.go -destination=../mocks/mock_forms_service.go -package=mocks
package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"nutzy-site/contract"
	"nutzy-site/domain"
	"nutzy-site/errors"
	"nutzy-site/infrastructure/pocketbase"
	"nutzy-site/moderation"
	"nutzy-site/repositories"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	SubmissionsCollection = "form_submissions"
	NewsletterCollection  = "newsletter_subscriptions"
	quickscanType         = "quickscan"
)

const (
	// DefaultClaimWait bounds how long a submission waits on the claim of a concurrent one.
	DefaultClaimWait  = 3 * time.Second
	claimPollInterval = 50 * time.Millisecond
)

const (
	FormContact    = "contact"
	FormNewsletter = "newsletter"
	FormQuickscan  = "quickscan"
)

const (
	msgContactSuccess    = "Bedankt voor je bericht! We nemen binnen 24 uur contact met je op."
	msgContactFailed     = "Er is een fout opgetreden bij het verzenden van je bericht. Probeer het opnieuw of neem direct contact met ons op."
	msgNewsletterSuccess = "Bedankt voor je aanmelding! Je ontvangt binnenkort onze nieuwsbrief."
	msgNewsletterKnown   = "Je bent al aangemeld voor onze nieuwsbrief!"
	msgNewsletterFailed  = "Er is een fout opgetreden bij het aanmelden voor de nieuwsbrief. Probeer het opnieuw."
	msgQuickscanSuccess  = "Bedankt voor je interesse! We nemen binnen 24 uur contact met je op voor je quickscan."
	msgQuickscanFailed   = "Er is een fout opgetreden bij het verzenden van je quickscan aanvraag. Probeer het opnieuw of neem direct contact met ons op."
	msgInvalidInput      = "Controleer de gemarkeerde velden."
	msgBlockedContent    = "Bericht bevat woorden die niet zijn toegestaan"
)

// fieldMessages maps a json field name and a failed validation tag to the visitor message.
var fieldMessages = map[string]map[string]string{
	"name": {
		"min": "Naam moet minimaal 2 karakters bevatten",
		"max": "Naam mag maximaal 100 karakters bevatten",
	},
	"email": {
		"required": "Voer een geldig e-mailadres in",
		"email":    "Voer een geldig e-mailadres in",
	},
	"business": {
		"max": "Bedrijfsnaam mag maximaal 100 karakters bevatten",
	},
	"subject": {
		"required": "Selecteer een onderwerp",
	},
	"message": {
		"min": "Bericht moet minimaal 10 karakters bevatten",
		"max": "Bericht mag maximaal 1000 karakters bevatten",
	},
	"company": {
		"min": "Bedrijfsnaam moet minimaal 2 karakters bevatten",
		"max": "Bedrijfsnaam mag maximaal 100 karakters bevatten",
	},
	"phone": {
		"max": "Telefoonnummer mag maximaal 20 karakters bevatten",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d field(s)", errors.ErrInvalidInput, len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return errors.ErrInvalidInput
}

// SubmissionObserver is notified once per form action with its outcome.
type SubmissionObserver interface {
	ObserveSubmission(form, outcome string)
}

type IFormService interface {
	SubmitContact(ctx context.Context, form domain.ContactForm) (domain.SubmissionResult, error)
	SubscribeNewsletter(ctx context.Context, form domain.NewsletterForm) (domain.SubmissionResult, error)
	SubmitQuickscan(ctx context.Context, form domain.QuickscanForm) (domain.SubmissionResult, error)
}

type FormOption func(*FormService)

// WithSubscriptions enables the local newsletter claim taken before any remote round trip.
func WithSubscriptions(repo repositories.ISubscriptionRepository) FormOption {
	return func(s *FormService) { s.subscriptions = repo }
}

// WithClaimWait sets how long a newsletter submission waits for a concurrent
// submission of the same address to be confirmed or released.
func WithClaimWait(d time.Duration) FormOption {
	return func(s *FormService) { s.claimWait = d }
}

func WithModerator(m *moderation.Moderator) FormOption {
	return func(s *FormService) { s.moderator = m }
}

func WithSubmissionObserver(o SubmissionObserver) FormOption {
	return func(s *FormService) { s.observer = o }
}

func WithClock(now func() time.Time) FormOption {
	return func(s *FormService) { s.now = now }
}

type FormService struct {
	remote        contract.RecordStore
	subscriptions repositories.ISubscriptionRepository
	moderator     *moderation.Moderator
	observer      SubmissionObserver
	claimWait     time.Duration
	log           *slog.Logger
	now           func() time.Time
}

func NewFormService(remote contract.RecordStore, log *slog.Logger, opts ...FormOption) *FormService {
	s := &FormService{remote: remote, log: log, now: time.Now, claimWait: DefaultClaimWait}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FormService) SubmitContact(ctx context.Context, form domain.ContactForm) (domain.SubmissionResult, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Business = strings.TrimSpace(form.Business)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)

	// 1. Validate before touching the network
	if err := validateForm(form); err != nil {
		return s.rejected(FormContact, err)
	}

	// 2. Blocked terms are reported as a field error on the message
	if s.moderator != nil {
		if _, found := s.moderator.Censor(form.Message); len(found) > 0 {
			s.log.Warn("Contact message blocked", "terms", found)
			return s.rejected(FormContact, &ValidationError{Fields: map[string]string{"message": msgBlockedContent}})
		}
	}

	// 3. Persist remotely
	record, err := s.create(ctx, SubmissionsCollection, map[string]any{
		"name":     form.Name,
		"email":    form.Email,
		"business": form.Business,
		"subject":  form.Subject,
		"message":  form.Message,
	})
	if err != nil {
		return s.failed(FormContact, msgContactFailed, err)
	}
	return s.succeeded(FormContact, msgContactSuccess, record.ID())
}

func (s *FormService) SubmitQuickscan(ctx context.Context, form domain.QuickscanForm) (domain.SubmissionResult, error) {
	form.Company = strings.TrimSpace(form.Company)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)

	if err := validateForm(form); err != nil {
		return s.rejected(FormQuickscan, err)
	}

	record, err := s.create(ctx, SubmissionsCollection, map[string]any{
		"company": form.Company,
		"email":   form.Email,
		"phone":   form.Phone,
		"type":    quickscanType,
	})
	if err != nil {
		return s.failed(FormQuickscan, msgQuickscanFailed, err)
	}
	return s.succeeded(FormQuickscan, msgQuickscanSuccess, record.ID())
}

// SubscribeNewsletter creates at most one remote subscription per address.
// A second submission answers with the already-subscribed message once the first one is
// confirmed; while the first is in flight it waits, and takes over if the first is released.
func (s *FormService) SubscribeNewsletter(ctx context.Context, form domain.NewsletterForm) (domain.SubmissionResult, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validateForm(form); err != nil {
		return s.rejected(FormNewsletter, err)
	}

	// 1. Claim the address locally
	if s.subscriptions != nil {
		existing, err := s.claim(ctx, form.Email)
		switch {
		case goerrors.Is(err, errors.ErrAlreadySubscribed):
			return s.succeeded(FormNewsletter, msgNewsletterKnown, existing.RemoteID)
		case err != nil:
			return s.failed(FormNewsletter, msgNewsletterFailed, err)
		}
	}

	// 2. Look the address up remotely, then create it if unknown
	result, err := s.subscribeRemote(ctx, form.Email)
	if err != nil {
		s.release(form.Email)
		return s.failed(FormNewsletter, msgNewsletterFailed, err)
	}

	// 3. Confirm the claim with the remote id
	if s.subscriptions != nil {
		if err := s.subscriptions.Confirm(form.Email, result.ID, s.now()); err != nil {
			s.log.Error("Unable to confirm newsletter claim", "email", form.Email, "error", err)
		}
	}
	return result, nil
}

// claim takes the address, polling while another submission holds a pending claim.
// A claim still pending after claimWait is reported as ErrClaimPending.
func (s *FormService) claim(ctx context.Context, email string) (repositories.Subscription, error) {
	deadline := time.Now().Add(s.claimWait)
	for {
		sub, err := s.subscriptions.Claim(email, s.now())
		if !goerrors.Is(err, errors.ErrClaimPending) || !time.Now().Before(deadline) {
			return sub, err
		}
		s.log.Debug("Newsletter claim in progress, waiting", "email", email)
		select {
		case <-ctx.Done():
			return sub, err
		case <-time.After(claimPollInterval):
		}
	}
}

func (s *FormService) subscribeRemote(ctx context.Context, email string) (domain.SubmissionResult, error) {
	if err := s.remote.Authenticate(ctx); err != nil {
		return domain.SubmissionResult{}, err
	}

	filter := pocketbase.Filter("email={:email}", map[string]any{"email": email})
	existing, err := s.remote.FirstListItem(ctx, NewsletterCollection, filter)
	if err == nil {
		s.observe(FormNewsletter, "duplicate")
		return domain.SubmissionResult{Success: true, Message: msgNewsletterKnown, ID: existing.ID()}, nil
	}
	if !goerrors.Is(err, errors.ErrRecordNotFound) {
		return domain.SubmissionResult{}, err
	}

	record, err := s.remote.Create(ctx, NewsletterCollection, map[string]any{"email": email})
	if err != nil {
		return domain.SubmissionResult{}, err
	}
	s.observe(FormNewsletter, "success")
	return domain.SubmissionResult{Success: true, Message: msgNewsletterSuccess, ID: record.ID()}, nil
}

func (s *FormService) release(email string) {
	if s.subscriptions == nil {
		return
	}
	if err := s.subscriptions.Release(email); err != nil {
		s.log.Error("Unable to release newsletter claim", "email", email, "error", err)
	}
}

func (s *FormService) create(ctx context.Context, collection string, data map[string]any) (pocketbase.Record, error) {
	if err := s.remote.Authenticate(ctx); err != nil {
		return nil, err
	}
	return s.remote.Create(ctx, collection, data)
}

func (s *FormService) rejected(form string, err error) (domain.SubmissionResult, error) {
	s.observe(form, "invalid")
	return domain.SubmissionResult{Message: msgInvalidInput}, err
}

func (s *FormService) failed(form, message string, err error) (domain.SubmissionResult, error) {
	s.log.Error("Form submission failed", "form", form, "error", err)
	s.observe(form, "failed")
	return domain.SubmissionResult{Message: message}, fmt.Errorf("%w: %s: %v", errors.ErrSubmissionFailed, form, err)
}

func (s *FormService) succeeded(form, message, id string) (domain.SubmissionResult, error) {
	s.log.Info("Form submitted", "form", form, "id", id)
	s.observe(form, "success")
	return domain.SubmissionResult{Success: true, Message: message, ID: id}, nil
}

func (s *FormService) observe(form, outcome string) {
	if s.observer != nil {
		s.observer.ObserveSubmission(form, outcome)
	}
}

func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !goerrors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fieldMessage(fe.Field(), fe.Tag())
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(field, tag string) string {
	if msg, ok := fieldMessages[field][tag]; ok {
		return msg
	}
	return "Ongeldige waarde"
}
