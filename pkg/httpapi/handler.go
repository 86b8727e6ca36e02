// Package httpapi serves field rendering and validation over HTTP.
//
//	GET  /fields/{component}/{property}   render the field
//	POST /fields/{component}/{property}   validate the submitted "value"
//	GET  /healthz
//
// The renderer is picked with ?renderer=, then from the Accept header, then
// html. The locale comes from ?locale=. Invalid submissions answer 422 with
// the rendered field.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-formfield"
	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/registry"
	"github.com/goliatone/go-formfield/pkg/render"
)

// Config configures the handler.
type Config struct {
	// Document is the OpenAPI document fields are read from.
	Document []byte
	// Options are passed to every formfield.Generate call.
	Options []formfield.Option
	Logger  *slog.Logger
}

// NewHandler returns a chi router serving the field endpoints.
func NewHandler(cfg Config) (http.Handler, error) {
	if len(cfg.Document) == 0 {
		return nil, errors.New("httpapi: document is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	s := &server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Route("/fields/{component}/{property}", func(r chi.Router) {
		r.Get("/", s.render)
		r.Post("/", s.submit)
	})
	return r, nil
}

type server struct {
	cfg Config
}

func (s *server) render(w http.ResponseWriter, r *http.Request) {
	s.generate(w, r, s.request(r))
}

func (s *server) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	req := s.request(r)
	value := r.PostForm.Get("value")
	req.Value = &value
	s.generate(w, r, req)
}

func (s *server) request(r *http.Request) formfield.Request {
	query := r.URL.Query()
	return formfield.Request{
		Document:  s.cfg.Document,
		Component: chi.URLParam(r, "component"),
		Property:  chi.URLParam(r, "property"),
		Renderer:  strings.TrimSpace(query.Get("renderer")),
		Accept:    r.Header.Get("Accept"),
		Render: formfield.RenderOptions{
			Locale:       strings.TrimSpace(query.Get("locale")),
			ThemeName:    strings.TrimSpace(query.Get("theme")),
			ThemeVariant: strings.TrimSpace(query.Get("variant")),
		},
	}
}

func (s *server) generate(w http.ResponseWriter, r *http.Request, req formfield.Request) {
	result, err := formfield.Generate(r.Context(), req, s.cfg.Options...)
	if err != nil {
		status := statusFor(err)
		s.cfg.Logger.Warn("field request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"component", req.Component,
			"property", req.Property,
			"status", status,
			"error", err,
		)
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	if !result.Valid {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	_, _ = w.Write(result.Output)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, openapi.ErrComponentNotFound),
		errors.Is(err, openapi.ErrPropertyNotFound):
		return http.StatusNotFound
	case errors.Is(err, render.ErrUnknownRenderer):
		return http.StatusNotAcceptable
	case errors.Is(err, registry.ErrUnknownFieldType):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
