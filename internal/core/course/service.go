// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/donghun712/wsd-term-proj/internal/core/category"
	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/validate"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
	"github.com/donghun712/wsd-term-proj/pkg/pagination"
)

// CategoryLookup is the slice of [category.Repository] used to validate category_id.
type CategoryLookup interface {
	FindByID(context context.Context, id int64) (*category.Category, error)
}

// Service implements the course rules on top of [Repository].
type Service struct {
	repo       Repository
	categories CategoryLookup
	policy     *bluemonday.Policy
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		policy:     bluemonday.UGCPolicy(),
		logger:     logger,
	}
}

// # Reads

// List returns one page of public courses.
func (service *Service) List(context context.Context, f Filter, params pagination.Params) (pagination.Page[*Course], error) {
	courses, total, err := service.repo.List(context, f, params.Size, params.Offset())
	if err != nil {
		return pagination.Page[*Course]{}, err
	}
	return pagination.NewPage(courses, params, total), nil
}

// Search returns public courses whose title contains keyword.
func (service *Service) Search(context context.Context, keyword string) ([]*Course, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldKeyword, Message: "This field is required"})
	}
	return service.repo.Search(context, keyword, MaxListLimit)
}

// Recent returns the newest public courses. limit is clamped to [1, MaxListLimit].
func (service *Service) Recent(context context.Context, limit int) ([]*Course, error) {
	switch {
	case limit < 1:
		limit = DefaultRecentLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return service.repo.Recent(context, limit)
}

/*
Get returns a course visible to actor.

Description: Private courses answer NotFound to everyone except their
instructor and admins, so their existence is not disclosed.

Parameters:
  - actor: *identity.Actor (nil for anonymous callers)
*/
func (service *Service) Get(context context.Context, actor *identity.Actor, id int64) (*Course, error) {
	course, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !course.VisibleTo(actor) {
		return nil, apperr.NotFound("Course")
	}
	return course, nil
}

// # Writes

/*
Create stores a new course owned by actor.

Returns:
  - *Course: The stored course with instructor and category joined
  - error: ValidationError on bad input or an unknown category
*/
func (service *Service) Create(context context.Context, actor *identity.Actor, input CreateInput) (*Course, error) {
	if input.Level == "" {
		input.Level = LevelBeginner
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Description = service.sanitize(input.Description)

	// ── 1. Validation ────────────────────────────────────────────────────
	validator := &validate.Validator{}
	validateFields(validator, &input.Title, input.Description, &input.Price, &input.Level, input.ThumbnailURL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.checkCategory(context, input.CategoryID); err != nil {
		return nil, err
	}

	// ── 2. Persistence ───────────────────────────────────────────────────
	course := &Course{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Level:        input.Level,
		ThumbnailURL: input.ThumbnailURL,
		IsPublic:     true,
		InstructorID: &actor.ID,
		CategoryID:   input.CategoryID,
	}
	if input.IsPublic != nil {
		course.IsPublic = *input.IsPublic
	}

	if err := service.repo.Create(context, course); err != nil {
		return nil, err
	}

	service.logger.Info("course_created",
		slog.Int64("course_id", course.ID),
		slog.Int64("instructor_id", actor.ID),
	)

	return service.repo.FindByID(context, course.ID)
}

/*
Update applies a partial update. Only the instructor or an admin may call it.

Returns:
  - error: NotFound, Forbidden or ValidationError
*/
func (service *Service) Update(context context.Context, actor *identity.Actor, id int64, input UpdateInput) (*Course, error) {
	course, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(course.InstructorID) {
		return nil, apperr.Forbidden("Not allowed to modify this course")
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		input.Title = &trimmed
	}
	input.Description = service.sanitize(input.Description)

	validator := &validate.Validator{}
	validateFields(validator, input.Title, input.Description, input.Price, input.Level, input.ThumbnailURL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.checkCategory(context, input.CategoryID); err != nil {
		return nil, err
	}

	apply(course, input)

	if err := service.repo.Update(context, course); err != nil {
		return nil, err
	}

	service.logger.Info("course_updated", slog.Int64("course_id", id), slog.Int64("actor_id", actor.ID))
	return service.repo.FindByID(context, id)
}

// Delete removes a course with its lectures, enrollments and reviews.
func (service *Service) Delete(context context.Context, actor *identity.Actor, id int64) error {
	course, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(course.InstructorID) {
		return apperr.Forbidden("Not allowed to delete this course")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("course_deleted", slog.Int64("course_id", id), slog.Int64("actor_id", actor.ID))
	return nil
}

// # Helpers

func (service *Service) sanitize(description *string) *string {
	if description == nil {
		return nil
	}
	cleaned := strings.TrimSpace(service.policy.Sanitize(*description))
	return &cleaned
}

func (service *Service) checkCategory(context context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := service.categories.FindByID(context, *id); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.ValidationError("Validation failed",
				apperr.FieldError{Field: FieldCategoryID, Message: "Category does not exist"})
		}
		return err
	}
	return nil
}

// validateFields checks every non-nil field. Create passes all of them.
func validateFields(validator *validate.Validator, title, description *string, price *int, level *Level, thumbnail *string) {
	if title != nil {
		validator.Length(FieldTitle, *title, MinTitleLength, MaxTitleLength)
	}
	if description != nil {
		validator.MaxLen(FieldDescription, *description, MaxDescriptionLength)
	}
	if price != nil {
		validator.Min(FieldPrice, *price, 0)
	}
	if level != nil {
		validator.OneOf(FieldLevel, string(*level), Levels...)
	}
	if thumbnail != nil && *thumbnail != "" {
		validator.HTTPURL(FieldThumbnailURL, *thumbnail)
	}
}

func apply(course *Course, input UpdateInput) {
	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = input.Description
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.Level != nil {
		course.Level = *input.Level
	}
	if input.ThumbnailURL != nil {
		course.ThumbnailURL = input.ThumbnailURL
	}
	if input.IsPublic != nil {
		course.IsPublic = *input.IsPublic
	}
	if input.CategoryID != nil {
		course.CategoryID = input.CategoryID
	}
}
