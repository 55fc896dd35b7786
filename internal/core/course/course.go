// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package course manages the course catalogue.

Any authenticated user may create a course and becomes its instructor. Only
the instructor or an admin may change or delete it. Courses with is_public
set to false are left out of listings and are visible only to the people who
can manage them.
*/
package course

import (
	"time"

	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

// Level is the difficulty tag of a course.
type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
)

// Levels lists every valid [Level] in display order.
var Levels = []string{string(LevelBeginner), string(LevelIntermediate), string(LevelAdvanced)}

// Course is the catalogue entry, returned with its instructor and category.
type Course struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Price        int       `json:"price"`
	Level        Level     `json:"level"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	IsPublic     bool      `json:"is_public"`
	InstructorID *int64    `json:"instructor_id"` // nil once the instructor account is deleted
	CategoryID   *int64    `json:"category_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Instructor *Instructor  `json:"instructor"`
	Category   *CategoryRef `json:"category"`
}

// Instructor is the public view of the owning user.
type Instructor struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// CategoryRef is the embedded category view.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// VisibleTo reports whether actor may see the course. actor may be nil.
func (c *Course) VisibleTo(actor *identity.Actor) bool {
	return c.IsPublic || actor.CanManage(c.InstructorID)
}

// Filter holds the parameters for a paginated course listing.
type Filter struct {
	Keyword      string // Case-insensitive substring of the title
	CategorySlug string
}

// CreateInput carries a new course. Nil pointers take their defaults.
type CreateInput struct {
	Title        string
	Description  *string
	Price        int
	Level        Level
	ThumbnailURL *string
	IsPublic     *bool
	CategoryID   *int64
}

// UpdateInput carries a partial course update. Nil fields are left unchanged.
type UpdateInput struct {
	Title        *string
	Description  *string
	Price        *int
	Level        *Level
	ThumbnailURL *string
	IsPublic     *bool
	CategoryID   *int64
}

const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldPrice        = "price"
	FieldLevel        = "level"
	FieldThumbnailURL = "thumbnail_url"
	FieldCategoryID   = "category_id"
	FieldKeyword      = "keyword"

	MinTitleLength       = 5
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000

	DefaultRecentLimit = 5
	MaxListLimit       = 100
)
