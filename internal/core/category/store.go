// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

type Repository interface {
	List(context context.Context) ([]*Category, error)
	FindByID(context context.Context, id int64) (*Category, error)
	Create(context context.Context, c *Category) error
	ExistsByName(context context.Context, name string) (bool, error)

	// EnsureAll inserts every category whose name is not taken yet and
	// reports how many rows were created.
	EnsureAll(context context.Context, categories []*Category) (int, error)
}
