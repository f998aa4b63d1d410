package server

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"mime"
	"net/http"
	"nutzy-site/domain"
	"nutzy-site/errors"
	"nutzy-site/services"
	"reflect"
)

const msgMalformedRequest = "Het formulier kon niet worden gelezen. Probeer het opnieuw."

type formResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	ID      string            `json:"id,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var form domain.ContactForm
	handleForm(s, w, r, &form, func(ctx context.Context) (domain.SubmissionResult, error) {
		return s.forms.SubmitContact(ctx, form)
	})
}

func (s *Server) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	var form domain.NewsletterForm
	handleForm(s, w, r, &form, func(ctx context.Context) (domain.SubmissionResult, error) {
		return s.forms.SubscribeNewsletter(ctx, form)
	})
}

func (s *Server) handleQuickscan(w http.ResponseWriter, r *http.Request) {
	var form domain.QuickscanForm
	handleForm(s, w, r, &form, func(ctx context.Context) (domain.SubmissionResult, error) {
		return s.forms.SubmitQuickscan(ctx, form)
	})
}

func handleForm[T any](s *Server, w http.ResponseWriter, r *http.Request, form *T, submit func(context.Context) (domain.SubmissionResult, error)) {
	if err := bindForm(w, r, form); err != nil {
		s.log.Debug("Unreadable form body", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadRequest, formResponse{Message: msgMalformedRequest})
		return
	}

	result, err := submit(r.Context())
	var validationErr *services.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, formResponse{Success: true, Message: result.Message, ID: result.ID})
	case goerrors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, formResponse{Message: result.Message, Errors: validationErr.Fields})
	case goerrors.Is(err, errors.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, formResponse{Message: result.Message})
	default:
		writeJSON(w, http.StatusBadGateway, formResponse{Message: result.Message})
	}
}

// bindForm fills dst from a JSON body or from url-encoded/multipart fields named by the form tags.
func bindForm(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("decoding json form: %w", err)
		}
		return nil
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return err
		}
	} else if err := r.ParseForm(); err != nil {
		return err
	}

	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := range t.NumField() {
		name := t.Field(i).Tag.Get("form")
		if name == "" || v.Field(i).Kind() != reflect.String {
			continue
		}
		v.Field(i).SetString(r.PostFormValue(name))
	}
	return nil
}
