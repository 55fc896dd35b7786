// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package enrollment records which users take which courses.
package enrollment

import (
	"time"

	"github.com/donghun712/wsd-term-proj/internal/core/course"
)

// Status is the lifecycle state of an enrollment.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Enrollment links a user to a course. A user enrolls in a course at most once.
type Enrollment struct {
	ID         int64          `json:"id"`
	UserID     int64          `json:"user_id"`
	CourseID   int64          `json:"course_id"`
	Status     Status         `json:"status"`
	EnrolledAt time.Time      `json:"enrolled_at"`
	Course     *course.Course `json:"course"`
}

const FieldCourseID = "course_id"
