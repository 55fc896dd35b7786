// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/donghun712/wsd-term-proj/internal/platform/request"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/platform/validate"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
	"github.com/donghun712/wsd-term-proj/pkg/pagination"
)

// # Handler Definition

// Handler implements the HTTP layer for account endpoints.
type Handler struct {
	accountService *Service
	resolver       *identity.Resolver
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, resolver *identity.Resolver) *Handler {
	return &Handler{accountService: service, resolver: resolver}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
//
// # Endpoints
//   - GET    /check-email    : Public availability probe.
//   - GET    /me             : Own profile.
//   - POST   /me/password    : Change own password.
//   - DELETE /me             : Delete own account.
//   - GET    /               : [admin] Paginated user list.
//   - GET    /{id}           : [admin] Any user.
//   - PUT    /{id}/role      : [admin] Change role.
//   - DELETE /{id}           : [admin] Delete user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/check-email", handler.checkEmail)

	router.Group(func(r chi.Router) {
		r.Use(handler.resolver.Middleware)

		r.Get("/me", handler.getMe)
		r.Post("/me/password", handler.changePassword)
		r.Delete("/me", handler.deleteMe)

		r.Group(func(admin chi.Router) {
			admin.Use(identity.RequireRole(sec.RoleAdmin))

			admin.Get("/", handler.listUsers)
			admin.Get("/{id}", handler.getUser)
			admin.Put("/{id}/role", handler.changeRole)
			admin.Delete("/{id}", handler.deleteUser)
		})
	})

	return router
}

// # Self-Service Endpoints

/*
GET /api/v1/users/check-email?email=.

Response:
  - 200: EmailCheck
  - 422: Missing email parameter
*/
func (handler *Handler) checkEmail(writer http.ResponseWriter, request *http.Request) {
	email := request.URL.Query().Get(FieldEmail)

	if err := (&validate.Validator{}).Required(FieldEmail, email).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.accountService.CheckEmail(request.Context(), email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/users/me.

Response:
  - 200: User: Own profile
  - 401: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	actor, err := identity.Required(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

/*
POST /api/v1/users/me/password.

Response:
  - 200: {message}
  - 400: Incorrect old password
  - 422: New password too short
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	actor, err := identity.Required(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, input.OldPassword).
		Length(FieldNewPassword, input.NewPassword, auth.MinPasswordLength, 72)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.accountService.ChangePassword(request.Context(), actor, ChangePasswordInput{
		OldPassword: input.OldPassword,
		NewPassword: input.NewPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Password updated successfully")
}

/*
DELETE /api/v1/users/me.

Response:
  - 204: No Content
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	actor, err := identity.Required(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), actor); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Admin Endpoints

// GET /api/v1/users?page&size.
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.accountService.ListUsers(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page)
}

// GET /api/v1/users/{id}.
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetUser(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// PUT /api/v1/users/{id}/role.
func (handler *Handler) changeRole(writer http.ResponseWriter, request *http.Request) {
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

	var input changeRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if err := (&validate.Validator{}).OneOf(FieldRole, role, string(sec.RoleUser), string(sec.RoleAdmin)).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.ChangeRole(request.Context(), actor, id, RoleChange{Role: sec.UserRole(role)})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// DELETE /api/v1/users/{id}.
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.accountService.DeleteUser(request.Context(), actor, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
