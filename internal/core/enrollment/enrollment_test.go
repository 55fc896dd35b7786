// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package enrollment_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donghun712/wsd-term-proj/internal/core/course"
	"github.com/donghun712/wsd-term-proj/internal/core/course/coursetest"
	"github.com/donghun712/wsd-term-proj/internal/core/enrollment"
	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/middleware"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/users/auth/authtest"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

type memoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    []*enrollment.Enrollment
	courses *coursetest.Courses
}

func (m *memoryRepo) Create(_ context.Context, e *enrollment.Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return apperr.Conflict("Already enrolled in this course")
		}
	}
	m.nextID++
	e.ID = m.nextID
	e.EnrolledAt = time.Now().UTC()
	copied := *e
	m.rows = append(m.rows, &copied)
	return nil
}

func (m *memoryRepo) Find(_ context.Context, userID, courseID int64) (*enrollment.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.rows {
		if e.UserID == userID && e.CourseID == courseID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Enrollment")
}

func (m *memoryRepo) ListByUser(ctx context.Context, userID int64) ([]*enrollment.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	enrollments := []*enrollment.Enrollment{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID != userID {
			continue
		}
		copied := *m.rows[i]
		if c, err := m.courses.FindByID(ctx, copied.CourseID); err == nil {
			copied.Course = c
		}
		enrollments = append(enrollments, &copied)
	}
	return enrollments, nil
}

func (m *memoryRepo) Delete(_ context.Context, userID, courseID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.rows {
		if e.UserID == userID && e.CourseID == courseID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Enrollment")
}

func TestService_EnrollRules(t *testing.T) {
	courses := coursetest.NewCourses()
	service := enrollment.NewService(&memoryRepo{courses: courses}, courses, slog.New(slog.DiscardHandler))
	open := courses.Add("Go basics", 1, true)
	hidden := courses.Add("Draft", 1, false)
	student := &identity.Actor{ID: 2, Role: sec.RoleUser}

	e, err := service.Enroll(context.Background(), student, open.ID)
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusActive, e.Status)
	require.NotNil(t, e.Course)
	assert.Equal(t, "Go basics", e.Course.Title)

	_, err = service.Enroll(context.Background(), student, open.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = service.Enroll(context.Background(), student, 999)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Enroll(context.Background(), student, hidden.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	active, err := service.IsActive(context.Background(), student.ID, open.ID)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = service.IsActive(context.Background(), 3, open.ID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestHandler_Lifecycle(t *testing.T) {
	tokens := authtest.NewTokens()
	users := authtest.NewUsers()
	ann := users.Add("ann@example.com", "password1", sec.RoleUser)

	courses := coursetest.NewCourses()
	first := courses.Add("Go basics", 99, true)
	second := courses.Add("Rust basics", 99, true)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	service := enrollment.NewService(&memoryRepo{courses: courses}, courses, slog.New(slog.DiscardHandler))
	enrollment.NewHandler(service, identity.NewResolver(users)).Register(router)

	do := func(method, path, authorization string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, path, nil)
		if authorization != "" {
			request.Header.Set("Authorization", authorization)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}
	bearer := authtest.Bearer(tokens, ann)

	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, fmt.Sprintf("/courses/%d/enroll", first.ID), "").Code)
	assert.Equal(t, http.StatusCreated, do(http.MethodPost, fmt.Sprintf("/courses/%d/enroll", first.ID), bearer).Code)
	assert.Equal(t, http.StatusConflict, do(http.MethodPost, fmt.Sprintf("/courses/%d/enroll", first.ID), bearer).Code)
	assert.Equal(t, http.StatusCreated, do(http.MethodPost, fmt.Sprintf("/courses/%d/enroll", second.ID), bearer).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodPost, "/courses/999/enroll", bearer).Code)

	recorder := do(http.MethodGet, "/enrollments/me", bearer)
	require.Equal(t, http.StatusOK, recorder.Code)

	var mine []course.Course
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &mine))
	require.Len(t, mine, 2)
	assert.Equal(t, "Rust basics", mine[0].Title)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, fmt.Sprintf("/enrollments/%d", first.ID), bearer).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, fmt.Sprintf("/enrollments/%d", first.ID), bearer).Code)
}
