// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lecture

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/donghun712/wsd-term-proj/internal/platform/request"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

type Handler struct {
	service  *Service
	resolver *identity.Resolver
}

func NewHandler(service *Service, resolver *identity.Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

// Register mounts the lecture endpoints on router.
//
// # Endpoints
//   - GET    /courses/{id}/lectures : Lectures of a course.
//   - POST   /courses/{id}/lectures : [owner/admin] Add a lecture.
//   - PUT    /lectures/{id}         : [owner/admin] Update.
//   - DELETE /lectures/{id}         : [owner/admin] Delete.
func (handler *Handler) Register(router chi.Router) {
	router.With(handler.resolver.Optional).Get("/courses/{id}/lectures", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(handler.resolver.Middleware)

		r.Post("/courses/{id}/lectures", handler.create)
		r.Put("/lectures/{id}", handler.update)
		r.Delete("/lectures/{id}", handler.delete)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lectures, err := handler.service.List(request.Context(), identity.FromContext(request.Context()), courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lectures)
}

type createRequest struct {
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	OrderIndex int    `json:"order_index"`
}

/*
POST /api/v1/courses/{id}/lectures.

Response:
  - 201: Lecture
  - 403: Not the course instructor or an admin
  - 404: Course not found
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := identity.Required(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	courseID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	l, err := handler.service.Create(request.Context(), actor, courseID, CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, l)
}

type updateRequest struct {
	Title      *string `json:"title"`
	VideoURL   *string `json:"video_url"`
	OrderIndex *int    `json:"order_index"`
}

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

	l, err := handler.service.Update(request.Context(), actor, id, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, l)
}

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
