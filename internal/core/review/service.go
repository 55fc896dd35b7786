// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/validate"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

type Service struct {
	repo        Repository
	courses     CourseFinder
	enrollments EnrollmentChecker
	policy      *bluemonday.Policy
	logger      *slog.Logger
}

func NewService(repo Repository, courses CourseFinder, enrollments EnrollmentChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		courses:     courses,
		enrollments: enrollments,
		policy:      bluemonday.StrictPolicy(),
		logger:      logger,
	}
}

// List returns the reviews of a course visible to actor, newest first.
func (service *Service) List(context context.Context, actor *identity.Actor, courseID int64) ([]*Review, error) {
	if err := service.checkCourse(context, actor, courseID); err != nil {
		return nil, err
	}
	return service.repo.ListByCourse(context, courseID)
}

/*
Create stores a review by actor.

Description: Only users holding an ACTIVE enrollment in the course may
review it.

Returns:
  - *Review: The stored review with its author
  - error: NotFound, Forbidden (not enrolled) or ValidationError
*/
func (service *Service) Create(context context.Context, actor *identity.Actor, courseID int64, input CreateInput) (*Review, error) {
	if err := service.checkCourse(context, actor, courseID); err != nil {
		return nil, err
	}

	active, err := service.enrollments.IsActive(context, actor.ID, courseID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperr.Forbidden("Only enrolled students can review this course")
	}

	r := &Review{
		UserID:   actor.ID,
		CourseID: courseID,
		Rating:   input.Rating,
		Comment:  service.sanitize(input.Comment),
	}
	if err := check(r); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, r); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", r.ID),
		slog.Int64("course_id", courseID),
		slog.Int("rating", r.Rating),
	)
	return service.repo.FindByID(context, r.ID)
}

// Update changes a review. Only its author or an admin may call it.
func (service *Service) Update(context context.Context, actor *identity.Actor, id int64, input UpdateInput) (*Review, error) {
	r, err := service.owned(context, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Rating != nil {
		r.Rating = *input.Rating
	}
	if input.Comment != nil {
		r.Comment = service.sanitize(*input.Comment)
	}
	if err := check(r); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, r); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", id), slog.Int64("actor_id", actor.ID))
	return service.repo.FindByID(context, id)
}

func (service *Service) Delete(context context.Context, actor *identity.Actor, id int64) error {
	if _, err := service.owned(context, actor, id); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("review_deleted", slog.Int64("review_id", id), slog.Int64("actor_id", actor.ID))
	return nil
}

// # Helpers

func (service *Service) checkCourse(context context.Context, actor *identity.Actor, courseID int64) error {
	c, err := service.courses.FindByID(context, courseID)
	if err != nil {
		return err
	}
	if !c.VisibleTo(actor) {
		return apperr.NotFound("Course")
	}
	return nil
}

func (service *Service) owned(context context.Context, actor *identity.Actor, id int64) (*Review, error) {
	r, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(&r.UserID) {
		return nil, apperr.Forbidden("Not allowed to modify this review")
	}
	return r, nil
}

func (service *Service) sanitize(comment string) string {
	return strings.TrimSpace(service.policy.Sanitize(comment))
}

func check(r *Review) error {
	validator := &validate.Validator{}
	validator.Range(FieldRating, r.Rating, MinRating, MaxRating).
		Length(FieldComment, r.Comment, MinCommentLength, MaxCommentLength)
	return validator.Err()
}
