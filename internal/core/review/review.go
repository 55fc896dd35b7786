// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review stores course ratings written by enrolled students.

Comments are plain text: any markup is stripped before the length rules run.
*/
package review

import "time"

// Review is a 1 to 5 star rating with a comment.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CourseID  int64     `json:"course_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	User      *Author   `json:"user"`
}

// Author is the public view of the reviewing user.
type Author struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type CreateInput struct {
	Rating  int
	Comment string
}

// UpdateInput carries a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Rating  *int
	Comment *string
}

const (
	FieldRating  = "rating"
	FieldComment = "comment"

	MinRating        = 1
	MaxRating        = 5
	MinCommentLength = 5
	MaxCommentLength = 500
)
