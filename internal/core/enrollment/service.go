// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrollment

import (
	"context"
	"log/slog"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
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

/*
Enroll registers actor in a course.

Returns:
  - *Enrollment: ACTIVE enrollment with its course
  - error: NotFound when the course is missing or hidden, Conflict when
    already enrolled
*/
func (service *Service) Enroll(context context.Context, actor *identity.Actor, courseID int64) (*Enrollment, error) {
	c, err := service.courses.FindByID(context, courseID)
	if err != nil {
		return nil, err
	}
	if !c.VisibleTo(actor) {
		return nil, apperr.NotFound("Course")
	}

	// The unique constraint still decides concurrent requests.
	if _, err := service.repo.Find(context, actor.ID, courseID); err == nil {
		return nil, apperr.Conflict("Already enrolled in this course")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	e := &Enrollment{UserID: actor.ID, CourseID: courseID, Status: StatusActive}
	if err := service.repo.Create(context, e); err != nil {
		return nil, err
	}
	e.Course = c

	service.logger.Info("enrollment_created",
		slog.Int64("user_id", actor.ID),
		slog.Int64("course_id", courseID),
	)
	return e, nil
}

// ListMine returns the courses actor is enrolled in.
func (service *Service) ListMine(context context.Context, actor *identity.Actor) ([]*Enrollment, error) {
	return service.repo.ListByUser(context, actor.ID)
}

// Cancel removes actor's enrollment in courseID.
func (service *Service) Cancel(context context.Context, actor *identity.Actor, courseID int64) error {
	if err := service.repo.Delete(context, actor.ID, courseID); err != nil {
		return err
	}

	service.logger.Info("enrollment_cancelled",
		slog.Int64("user_id", actor.ID),
		slog.Int64("course_id", courseID),
	)
	return nil
}

// IsActive reports whether userID holds an ACTIVE enrollment in courseID.
func (service *Service) IsActive(context context.Context, userID, courseID int64) (bool, error) {
	e, err := service.repo.Find(context, userID, courseID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return e.Status == StatusActive, nil
}
