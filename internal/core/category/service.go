// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

// Get returns a category or NotFound.
func (service *Service) Get(context context.Context, id int64) (*Category, error) {
	return service.repo.FindByID(context, id)
}

/*
Create adds a category. The slug is derived from the name.

Description: Different names can share a slug ("C++" and "C#" both give "c"),
so a slug collision is retried with a numeric suffix. Only a taken name is
reported as a conflict.

Returns:
  - *Category: The stored row
  - error: Conflict when the name already exists
*/
func (service *Service) Create(context context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)

	base := slug.From(name)
	if base == "" {
		base = fallbackSlug
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		c := &Category{Name: name, Slug: slugCandidate(base, attempt)}

		err := service.repo.Create(context, c)
		if err == nil {
			service.logger.Info("category_created", slog.Int64("category_id", c.ID), slog.String("slug", c.Slug))
			return c, nil
		}
		if !apperr.HasCode(err, apperr.CodeConflict) {
			return nil, err
		}

		taken, err := service.repo.ExistsByName(context, name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("Category already exists")
		}
	}

	return nil, apperr.Internal(fmt.Errorf("category: no free slug for %q after %d attempts", base, maxSlugAttempts))
}

// slugCandidate returns base for the first attempt and base-N afterwards.
func slugCandidate(base string, attempt int) string {
	if attempt == 1 {
		return base
	}
	return base + "-" + strconv.Itoa(attempt)
}

// EnsureDefaults creates any of [Defaults] that are missing.
func (service *Service) EnsureDefaults(context context.Context) (int, error) {
	categories := make([]*Category, 0, len(Defaults))
	for _, name := range Defaults {
		categories = append(categories, &Category{Name: name, Slug: slug.From(name)})
	}
	return service.repo.EnsureAll(context, categories)
}
