// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package coursetest provides an in-memory [course.Repository] for tests of
// the course package and the domains that hang off a course.
package coursetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/donghun712/wsd-term-proj/internal/core/course"
	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
)

// Courses is a goroutine-safe in-memory [course.Repository].
type Courses struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*course.Course
}

func NewCourses() *Courses {
	return &Courses{byID: make(map[int64]*course.Course)}
}

// Add stores a course owned by instructorID and returns it with its ID set.
func (m *Courses) Add(title string, instructorID int64, public bool) *course.Course {
	c := &course.Course{
		Title:        title,
		Level:        course.LevelBeginner,
		IsPublic:     public,
		InstructorID: &instructorID,
	}
	if err := m.Create(context.Background(), c); err != nil {
		panic(err)
	}
	return c
}

func (m *Courses) sorted(public bool) []*course.Course {
	ids := make([]int64, 0, len(m.byID))
	for id, c := range m.byID {
		if !public || c.IsPublic {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	courses := make([]*course.Course, 0, len(ids))
	for _, id := range ids {
		copied := *m.byID[id]
		courses = append(courses, &copied)
	}
	return courses
}

func matches(c *course.Course, f course.Filter) bool {
	if f.Keyword != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(f.Keyword)) {
		return false
	}
	if f.CategorySlug != "" && (c.Category == nil || c.Category.Slug != f.CategorySlug) {
		return false
	}
	return true
}

func (m *Courses) List(_ context.Context, f course.Filter, limit, offset int) ([]*course.Course, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filtered := []*course.Course{}
	for _, c := range m.sorted(true) {
		if matches(c, f) {
			filtered = append(filtered, c)
		}
	}

	page := []*course.Course{}
	for i := offset; i < len(filtered) && len(page) < limit; i++ {
		page = append(page, filtered[i])
	}
	return page, len(filtered), nil
}

func (m *Courses) Search(ctx context.Context, keyword string, limit int) ([]*course.Course, error) {
	courses, _, err := m.List(ctx, course.Filter{Keyword: keyword}, limit, 0)
	return courses, err
}

func (m *Courses) Recent(_ context.Context, limit int) ([]*course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.sorted(true)
	recent := []*course.Course{}
	for i := len(all) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, all[i])
	}
	return recent, nil
}

func (m *Courses) FindByID(_ context.Context, id int64) (*course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byID[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound("Course")
}

func (m *Courses) Create(_ context.Context, c *course.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	copied := *c
	m.byID[c.ID] = &copied
	return nil
}

func (m *Courses) Update(_ context.Context, c *course.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[c.ID]; !ok {
		return apperr.NotFound("Course")
	}
	c.UpdatedAt = time.Now().UTC()
	copied := *c
	m.byID[c.ID] = &copied
	return nil
}

func (m *Courses) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return apperr.NotFound("Course")
	}
	delete(m.byID, id)
	return nil
}
