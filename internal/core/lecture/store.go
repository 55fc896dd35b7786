// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lecture

import (
	"context"

	"github.com/donghun712/wsd-term-proj/internal/core/course"
)

type Repository interface {
	// ListByCourse returns the lectures of a course ordered by order_index, then ID.
	ListByCourse(context context.Context, courseID int64) ([]*Lecture, error)
	FindByID(context context.Context, id int64) (*Lecture, error)
	Create(context context.Context, l *Lecture) error
	Update(context context.Context, l *Lecture) error
	Delete(context context.Context, id int64) error
}

// CourseFinder is the slice of [course.Repository] the lecture rules need.
type CourseFinder interface {
	FindByID(context context.Context, id int64) (*course.Course, error)
}
