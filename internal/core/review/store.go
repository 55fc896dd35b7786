// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/donghun712/wsd-term-proj/internal/core/course"
)

type Repository interface {
	// ListByCourse returns the reviews of a course, newest first, with their author.
	ListByCourse(context context.Context, courseID int64) ([]*Review, error)
	FindByID(context context.Context, id int64) (*Review, error)
	Create(context context.Context, r *Review) error
	Update(context context.Context, r *Review) error
	Delete(context context.Context, id int64) error
}

type CourseFinder interface {
	FindByID(context context.Context, id int64) (*course.Course, error)
}

// EnrollmentChecker answers whether a user may review a course.
type EnrollmentChecker interface {
	IsActive(context context.Context, userID, courseID int64) (bool, error)
}
