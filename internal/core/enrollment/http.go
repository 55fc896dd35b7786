// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrollment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/donghun712/wsd-term-proj/internal/core/course"
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

// Register mounts the enrollment endpoints on router. All of them require a user.
//
// # Endpoints
//   - POST   /courses/{id}/enroll        : Enroll in a course.
//   - GET    /enrollments/me             : Courses the caller is enrolled in.
//   - DELETE /enrollments/{course_id}    : Cancel an enrollment.
func (handler *Handler) Register(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(handler.resolver.Middleware)

		r.Post("/courses/{id}/enroll", handler.enroll)
		r.Get("/enrollments/me", handler.listMine)
		r.Delete("/enrollments/{course_id}", handler.cancel)
	})
}

/*
POST /api/v1/courses/{id}/enroll.

Response:
  - 201: Enrollment
  - 404: Course not found
  - 409: Already enrolled
*/
func (handler *Handler) enroll(writer http.ResponseWriter, request *http.Request) {
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

	e, err := handler.service.Enroll(request.Context(), actor, courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, e)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	actor, err := identity.Required(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrollments, err := handler.service.ListMine(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Clients render the course cards directly.
	courses := make([]*course.Course, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course != nil {
			courses = append(courses, e.Course)
		}
	}

	respond.OK(writer, courses)
}

func (handler *Handler) cancel(writer http.ResponseWriter, request *http.Request) {
	actor, err := identity.Required(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	courseID, err := requestutil.ID(request, FieldCourseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Cancel(request.Context(), actor, courseID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
