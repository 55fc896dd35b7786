// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import "context"

type Repository interface {
	// List returns one page of public courses matching f, ordered by ID.
	List(context context.Context, f Filter, limit, offset int) ([]*Course, int, error)

	// Search returns public courses whose title contains keyword.
	Search(context context.Context, keyword string, limit int) ([]*Course, error)

	// Recent returns the newest public courses.
	Recent(context context.Context, limit int) ([]*Course, error)

	FindByID(context context.Context, id int64) (*Course, error)
	Create(context context.Context, c *Course) error
	Update(context context.Context, c *Course) error
	Delete(context context.Context, id int64) error
}
