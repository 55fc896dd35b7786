// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/donghun712/wsd-term-proj/internal/platform/request"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/platform/validate"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

type Handler struct {
	service  *Service
	resolver *identity.Resolver
}

func NewHandler(service *Service, resolver *identity.Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(handler.resolver.Middleware, identity.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.create)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

type createRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Length(FieldName, input.Name, MinNameLength, MaxNameLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, c)
}
