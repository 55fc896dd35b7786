// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrollment

import (
	"context"

	"github.com/donghun712/wsd-term-proj/internal/core/course"
)

type Repository interface {
	// Create inserts an ACTIVE enrollment. A duplicate (user, course) pair
	// returns Conflict.
	Create(context context.Context, e *Enrollment) error

	// Find returns the enrollment of userID in courseID, or NotFound.
	Find(context context.Context, userID, courseID int64) (*Enrollment, error)

	// ListByUser returns the user's enrollments, newest first, with their course.
	ListByUser(context context.Context, userID int64) ([]*Enrollment, error)

	Delete(context context.Context, userID, courseID int64) error
}

// CourseFinder is the slice of [course.Repository] used to resolve the course.
type CourseFinder interface {
	FindByID(context context.Context, id int64) (*course.Course, error)
}
