// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

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

// Register mounts the review endpoints on router.
//
// # Endpoints
//   - GET    /courses/{id}/reviews : Reviews of a course, newest first.
//   - POST   /courses/{id}/reviews : [enrolled user] Write a review.
//   - PUT    /reviews/{id}         : [author/admin] Update.
//   - DELETE /reviews/{id}         : [author/admin] Delete.
func (handler *Handler) Register(router chi.Router) {
	router.With(handler.resolver.Optional).Get("/courses/{id}/reviews", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(handler.resolver.Middleware)

		r.Post("/courses/{id}/reviews", handler.create)
		r.Put("/reviews/{id}", handler.update)
		r.Delete("/reviews/{id}", handler.delete)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	courseID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.List(request.Context(), identity.FromContext(request.Context()), courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reviews)
}

type createRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

/*
POST /api/v1/courses/{id}/reviews.

Response:
  - 201: Review
  - 403: No active enrollment in the course
  - 404: Course not found
  - 422: Rating or comment out of range
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

	r, err := handler.service.Create(request.Context(), actor, courseID, CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, r)
}

type updateRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
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

	r, err := handler.service.Update(request.Context(), actor, id, UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, r)
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
