// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package lecture manages the ordered video lectures of a course.
package lecture

import "time"

// Lecture is one video lesson inside a course.
type Lecture struct {
	ID         int64     `json:"id"`
	CourseID   int64     `json:"course_id"`
	Title      string    `json:"title"`
	VideoURL   string    `json:"video_url"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateInput carries a new lecture. A zero OrderIndex means [DefaultOrderIndex].
type CreateInput struct {
	Title      string
	VideoURL   string
	OrderIndex int
}

// UpdateInput carries a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title      *string
	VideoURL   *string
	OrderIndex *int
}

const (
	FieldTitle      = "title"
	FieldVideoURL   = "video_url"
	FieldOrderIndex = "order_index"

	MinTitleLength    = 2
	MaxTitleLength    = 200
	DefaultOrderIndex = 1
)
