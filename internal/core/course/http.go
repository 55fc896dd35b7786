// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/donghun712/wsd-term-proj/internal/platform/request"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
	"github.com/donghun712/wsd-term-proj/pkg/pagination"
)

// Handler implements the HTTP layer for the course catalogue.
type Handler struct {
	service  *Service
	resolver *identity.Resolver
}

func NewHandler(service *Service, resolver *identity.Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

// Register mounts the course endpoints on router with absolute paths.
//
// # Endpoints
//   - GET    /courses                : Paginated public listing.
//   - GET    /courses/search/query   : Title search.
//   - GET    /courses/filter/recent  : Newest courses.
//   - GET    /courses/{id}           : Course detail.
//   - POST   /courses                : [user] Create.
//   - PUT    /courses/{id}           : [owner/admin] Update.
//   - DELETE /courses/{id}           : [owner/admin] Delete.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/courses", handler.list)
	router.Get("/courses/search/query", handler.search)
	router.Get("/courses/filter/recent", handler.recent)
	router.With(handler.resolver.Optional).Get("/courses/{id}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(handler.resolver.Middleware)

		r.Post("/courses", handler.create)
		r.Put("/courses/{id}", handler.update)
		r.Delete("/courses/{id}", handler.delete)
	})
}

// # Reads

// GET /api/v1/courses?page&size&keyword&category.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := Filter{Keyword: query.Get("keyword"), CategorySlug: query.Get("category")}

	page, err := handler.service.List(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	courses, err := handler.service.Search(request.Context(), request.URL.Query().Get(FieldKeyword))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, courses)
}

func (handler *Handler) recent(writer http.ResponseWriter, request *http.Request) {
	limit := requestutil.QueryInt(request, "limit", DefaultRecentLimit)

	courses, err := handler.service.Recent(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, courses)
}

/*
GET /api/v1/courses/{id}.

Response:
  - 200: Course
  - 404: Missing, or private and not managed by the caller
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.Get(request.Context(), identity.FromContext(request.Context()), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

// # Writes

type createRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Price        int     `json:"price"`
	Level        string  `json:"level"`
	ThumbnailURL *string `json:"thumbnail_url"`
	IsPublic     *bool   `json:"is_public"`
	CategoryID   *int64  `json:"category_id"`
}

/*
POST /api/v1/courses.

Response:
  - 201: Course (the caller is its instructor)
  - 422: Validation failure or unknown category
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := identity.Required(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.Create(request.Context(), actor, CreateInput{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Level:        Level(strings.ToUpper(strings.TrimSpace(input.Level))),
		ThumbnailURL: input.ThumbnailURL,
		IsPublic:     input.IsPublic,
		CategoryID:   input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, course)
}

type updateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Price        *int    `json:"price"`
	Level        *string `json:"level"`
	ThumbnailURL *string `json:"thumbnail_url"`
	IsPublic     *bool   `json:"is_public"`
	CategoryID   *int64  `json:"category_id"`
}

/*
PUT /api/v1/courses/{id}.

Response:
  - 200: Course
  - 403: Not the instructor or an admin
  - 404: Course not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := identity.Required(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		ThumbnailURL: input.ThumbnailURL,
		IsPublic:     input.IsPublic,
		CategoryID:   input.CategoryID,
	}
	if input.Level != nil {
		level := Level(strings.ToUpper(strings.TrimSpace(*input.Level)))
		update.Level = &level
	}

	course, err := handler.service.Update(request.Context(), actor, id, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

// DELETE /api/v1/courses/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := identity.Required(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actor, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
