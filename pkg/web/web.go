// Package web exposes the custom-fields engine over HTTP as a JSON API.
// It is thin glue over the registry; hosts mount it into their own router.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/spf13/cast"

	"github.com/contentkit/customfields"
	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/logger"
)

// Service serves the JSON API for one registry.
type Service struct {
	reg *customfields.Registry
	log *slog.Logger
}

// Option configures the service.
type Option func(*Service)

// WithLogger sets the request logger. Default: no-op.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates the service.
func New(reg *customfields.Registry, opts ...Option) *Service {
	s := &Service{reg: reg, log: logger.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the API routes, to be mounted by the host:
//
//	r.Mount("/customfields", web.New(reg).Router())
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Route("/{component}/{area}", func(r chi.Router) {
		r.Get("/definitions", s.definitions)
		r.Put("/categories", s.saveCategory)
		r.Put("/fields", s.saveField)
		r.Get("/records/{recordID}/fields", s.export)
		r.Post("/records/{recordID}/fields", s.saveFormData)
		r.Post("/records/{recordID}/restore", s.restore)
	})
	return r
}

func (s *Service) handler(w http.ResponseWriter, r *http.Request) (*customfields.Handler, bool) {
	itemID := cast.ToInt64(r.URL.Query().Get("itemid"))
	h, err := s.reg.Handler(r.Context(), chi.URLParam(r, "component"), chi.URLParam(r, "area"), itemID)
	if err != nil {
		s.renderError(w, r, err)
		return nil, false
	}
	return h, true
}

func (s *Service) definitions(w http.ResponseWriter, r *http.Request) {
	h, ok := s.handler(w, r)
	if !ok {
		return
	}

	defs, err := h.Definitions(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toCategoryDTOs(defs))
}

type saveCategoryRequest struct {
	Values map[string]any `json:"values"`
	ID     string         `json:"id,omitempty"`
}

func (s *Service) saveCategory(w http.ResponseWriter, r *http.Request) {
	h, ok := s.handler(w, r)
	if !ok {
		return
	}

	var req saveCategoryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	cat, err := s.resolveCategory(r, h, req.ID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if err := h.SaveCategory(r.Context(), cat, req.Values); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toCategoryDTO(cat))
}

type saveFieldRequest struct {
	Values     map[string]any `json:"values"`
	ID         string         `json:"id,omitempty"`
	CategoryID string         `json:"category_id,omitempty"`
	Type       string         `json:"type,omitempty"`
}

func (s *Service) saveField(w http.ResponseWriter, r *http.Request) {
	h, ok := s.handler(w, r)
	if !ok {
		return
	}

	var req saveFieldRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	f, err := s.resolveField(r, h, req)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if err := h.SaveField(r.Context(), f, req.Values); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toFieldDTO(f))
}

func (s *Service) export(w http.ResponseWriter, r *http.Request) {
	h, ok := s.handler(w, r)
	if !ok {
		return
	}

	export, err := h.Export(r.Context(), cast.ToInt64(chi.URLParam(r, "recordID")))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, export)
}

func (s *Service) saveFormData(w http.ResponseWriter, r *http.Request) {
	h, ok := s.handler(w, r)
	if !ok {
		return
	}

	var values map[string]any
	if err := render.DecodeJSON(r.Body, &values); err != nil {
		s.badRequest(w, r, err)
		return
	}

	recordID := cast.ToInt64(chi.URLParam(r, "recordID"))
	if err := h.SaveFormData(r.Context(), recordID, values); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

func (s *Service) restore(w http.ResponseWriter, r *http.Request) {
	h, ok := s.handler(w, r)
	if !ok {
		return
	}

	var backup []customfields.RestoreEntry
	if err := render.DecodeJSON(r.Body, &backup); err != nil {
		s.badRequest(w, r, err)
		return
	}

	recordID := cast.ToInt64(chi.URLParam(r, "recordID"))
	if err := h.RestoreData(r.Context(), recordID, backup); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

// resolveCategory returns the existing category or a fresh unsaved one.
func (s *Service) resolveCategory(r *http.Request, h *customfields.Handler, id string) (*customfields.Category, error) {
	if id == "" {
		return h.NewCategory(r.Context())
	}
	defs, err := h.Definitions(r.Context())
	if err != nil {
		return nil, err
	}
	for _, cat := range defs {
		if cat.ID == id {
			return cat, nil
		}
	}
	return nil, errNotFound
}

// resolveField returns the existing field or a fresh unsaved one attached
// to the requested category.
func (s *Service) resolveField(r *http.Request, h *customfields.Handler, req saveFieldRequest) (*customfields.Field, error) {
	defs, err := h.Definitions(r.Context())
	if err != nil {
		return nil, err
	}

	if req.ID != "" {
		for _, cat := range defs {
			for _, f := range cat.Fields {
				if f.ID == req.ID {
					return f, nil
				}
			}
		}
		return nil, errNotFound
	}

	for _, cat := range defs {
		if cat.ID == req.CategoryID {
			return h.NewField(cat, req.Type)
		}
	}
	return nil, errNotFound
}

type errorResponse struct {
	Error string `json:"error"`
}

var errNotFound = errors.New("web: not found")

func (s *Service) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Error: "invalid request body"})
	s.log.DebugContext(r.Context(), "bad request", slog.Any("error", err))
}

func (s *Service) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, errNotFound),
		errors.Is(err, customfields.ErrUnknownHandler),
		errors.Is(err, customfields.ErrItemIDNotSupported):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, customfields.ErrNotConfigurable):
		status, msg = http.StatusForbidden, "forbidden"
	case errors.Is(err, customfields.ErrUnknownFieldType),
		errors.Is(err, field.ErrValidation),
		errors.Is(err, customfields.ErrCategoryNameExhausted):
		status, msg = http.StatusUnprocessableEntity, err.Error()
	}

	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", slog.Any("error", err))
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}
