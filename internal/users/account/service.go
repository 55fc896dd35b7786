// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
	"github.com/donghun712/wsd-term-proj/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for user accounts.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{userRepository: userRepo, logger: logger}
}

// # Self-Service

/*
GetProfile retrieves the account of the acting user.

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, actor *identity.Actor) (*auth.User, error) {
	return service.userRepository.FindByID(context, actor.ID)
}

/*
ChangePassword replaces the actor's password after checking the old one.

Returns:
  - error: BadRequest if the old password does not match
*/
func (service *Service) ChangePassword(context context.Context, actor *identity.Actor, input ChangePasswordInput) error {
	user, err := service.userRepository.FindByID(context, actor.ID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(input.OldPassword, user.PasswordHash) {
		return apperr.BadRequest("Incorrect old password")
	}

	hashed, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("account_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, user.ID, hashed); err != nil {
		return err
	}

	service.logger.Info("password_changed", slog.Int64("user_id", user.ID))
	return nil
}

// DeleteAccount removes the acting user's own account.
func (service *Service) DeleteAccount(context context.Context, actor *identity.Actor) error {
	if err := service.userRepository.Delete(context, actor.ID); err != nil {
		return err
	}

	service.logger.Warn("account_deleted", slog.Int64("user_id", actor.ID), slog.String("by", "self"))
	return nil
}

// CheckEmail reports whether an address is already registered.
func (service *Service) CheckEmail(context context.Context, email string) (*EmailCheck, error) {
	normalized := auth.NormalizeEmail(email)

	exists, err := service.userRepository.ExistsByEmail(context, normalized)
	if err != nil {
		return nil, err
	}
	return &EmailCheck{Email: normalized, Exists: exists}, nil
}

// # Administration

// ListUsers returns one page of accounts.
func (service *Service) ListUsers(context context.Context, params pagination.Params) (pagination.Page[*auth.User], error) {
	users, total, err := service.userRepository.List(context, params.Size, params.Offset())
	if err != nil {
		return pagination.Page[*auth.User]{}, err
	}
	return pagination.NewPage(users, params, total), nil
}

// GetUser returns any account by ID.
func (service *Service) GetUser(context context.Context, id int64) (*auth.User, error) {
	return service.userRepository.FindByID(context, id)
}

/*
ChangeRole sets the role of another account.

Description: An admin cannot demote their own account.

Returns:
  - *auth.User: The updated account
  - error: NotFound, or BadRequest for self-demotion
*/
func (service *Service) ChangeRole(context context.Context, actor *identity.Actor, id int64, change RoleChange) (*auth.User, error) {
	if id == actor.ID && change.Role != sec.RoleAdmin {
		return nil, apperr.BadRequest("Admins cannot demote themselves")
	}

	user, err := service.userRepository.UpdateRole(context, id, change.Role)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_role_changed",
		slog.Int64("user_id", id),
		slog.String("role", string(change.Role)),
		slog.Int64("by", actor.ID),
	)
	return user, nil
}

// DeleteUser removes any account by ID.
func (service *Service) DeleteUser(context context.Context, actor *identity.Actor, id int64) error {
	if err := service.userRepository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("account_deleted", slog.Int64("user_id", id), slog.Int64("by", actor.ID))
	return nil
}
