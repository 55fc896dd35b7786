// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/donghun712/wsd-term-proj/internal/platform/request"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

type Handler struct {
	service  *Service
	resolver *identity.Resolver
}

func NewHandler(service *Service, resolver *identity.Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

// Routes returns the admin dashboard endpoints. Every route requires ADMIN.
//
// # Endpoints
//   - GET /stats            : Table totals.
//   - GET /stats/daily      : Per-day visits and signups.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.resolver.Middleware, identity.RequireRole(sec.RoleAdmin))

	router.Get("/stats", handler.totals)
	router.Get("/stats/daily", handler.daily)

	return router
}

func (handler *Handler) totals(writer http.ResponseWriter, request *http.Request) {
	totals, err := handler.service.Totals(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, totals)
}

// GET /api/v1/admin/stats/daily?days=7.
func (handler *Handler) daily(writer http.ResponseWriter, request *http.Request) {
	days := requestutil.QueryInt(request, FieldDays, DefaultDays)

	result, err := handler.service.Daily(request.Context(), days)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
