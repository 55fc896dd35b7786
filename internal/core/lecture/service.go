// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lecture

import (
	"context"
	"log/slog"
	"strings"

	"github.com/donghun712/wsd-term-proj/internal/core/course"
	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/validate"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

type Service struct {
	repo    Repository
	courses CourseFinder
	logger  *slog.Logger
}

func NewService(repo Repository, courses CourseFinder, logger *slog.Logger) *Service {
	return &Service{repo: repo, courses: courses, logger: logger}
}

// List returns the lectures of a course the actor can see.
func (service *Service) List(context context.Context, actor *identity.Actor, courseID int64) ([]*Lecture, error) {
	if _, err := service.visibleCourse(context, actor, courseID); err != nil {
		return nil, err
	}
	return service.repo.ListByCourse(context, courseID)
}

/*
Create adds a lecture to a course.

Returns:
  - error: NotFound for a missing course, Forbidden unless the actor is its
    instructor or an admin, ValidationError on bad input
*/
func (service *Service) Create(context context.Context, actor *identity.Actor, courseID int64, input CreateInput) (*Lecture, error) {
	if _, err := service.managedCourse(context, actor, courseID); err != nil {
		return nil, err
	}

	if input.OrderIndex == 0 {
		input.OrderIndex = DefaultOrderIndex
	}
	l := &Lecture{
		CourseID:   courseID,
		Title:      strings.TrimSpace(input.Title),
		VideoURL:   strings.TrimSpace(input.VideoURL),
		OrderIndex: input.OrderIndex,
	}

	if err := check(l); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, l); err != nil {
		return nil, err
	}

	service.logger.Info("lecture_created",
		slog.Int64("lecture_id", l.ID),
		slog.Int64("course_id", courseID),
	)
	return l, nil
}

// Update applies a partial update on behalf of the course instructor or an admin.
func (service *Service) Update(context context.Context, actor *identity.Actor, id int64, input UpdateInput) (*Lecture, error) {
	l, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if _, err := service.managedCourse(context, actor, l.CourseID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		l.Title = strings.TrimSpace(*input.Title)
	}
	if input.VideoURL != nil {
		l.VideoURL = strings.TrimSpace(*input.VideoURL)
	}
	if input.OrderIndex != nil {
		l.OrderIndex = *input.OrderIndex
	}

	if err := check(l); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, l); err != nil {
		return nil, err
	}

	service.logger.Info("lecture_updated", slog.Int64("lecture_id", id), slog.Int64("actor_id", actor.ID))
	return l, nil
}

func (service *Service) Delete(context context.Context, actor *identity.Actor, id int64) error {
	l, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}
	if _, err := service.managedCourse(context, actor, l.CourseID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("lecture_deleted", slog.Int64("lecture_id", id), slog.Int64("actor_id", actor.ID))
	return nil
}

// # Helpers

func (service *Service) visibleCourse(context context.Context, actor *identity.Actor, courseID int64) (*course.Course, error) {
	c, err := service.courses.FindByID(context, courseID)
	if err != nil {
		return nil, err
	}
	if !c.VisibleTo(actor) {
		return nil, apperr.NotFound("Course")
	}
	return c, nil
}

func (service *Service) managedCourse(context context.Context, actor *identity.Actor, courseID int64) (*course.Course, error) {
	c, err := service.visibleCourse(context, actor, courseID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(c.InstructorID) {
		return nil, apperr.Forbidden("Only the course instructor can manage lectures")
	}
	return c, nil
}

func check(l *Lecture) error {
	validator := &validate.Validator{}
	validator.Length(FieldTitle, l.Title, MinTitleLength, MaxTitleLength).
		HTTPURL(FieldVideoURL, l.VideoURL).
		Min(FieldOrderIndex, l.OrderIndex, 1)
	return validator.Err()
}
