// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package category manages the flat list of course categories.
package category

import "time"

// Category groups courses by subject.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Defaults are created by the seed command.
var Defaults = []string{"Programming", "Design", "Business", "Marketing", "Data Science"}

const (
	FieldName = "name"

	MinNameLength = 2
	MaxNameLength = 50

	// fallbackSlug is used for names without a single letter or digit.
	fallbackSlug    = "category"
	maxSlugAttempts = 10
)
