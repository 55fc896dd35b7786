// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donghun712/wsd-term-proj/internal/core/course/coursetest"
	"github.com/donghun712/wsd-term-proj/internal/core/review"
	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/middleware"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/users/auth/authtest"
	"github.com/donghun712/wsd-term-proj/internal/users/identity"
)

type memoryRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*review.Review
}

func (m *memoryRepo) ListByCourse(_ context.Context, courseID int64) ([]*review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reviews := []*review.Review{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].CourseID == courseID {
			copied := *m.rows[i]
			reviews = append(reviews, &copied)
		}
	}
	return reviews, nil
}

func (m *memoryRepo) FindByID(_ context.Context, id int64) (*review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Review")
}

func (m *memoryRepo) Create(_ context.Context, r *review.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now().UTC()
	r.User = &review.Author{ID: r.UserID}
	copied := *r
	m.rows = append(m.rows, &copied)
	return nil
}

func (m *memoryRepo) Update(_ context.Context, r *review.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.rows {
		if existing.ID == r.ID {
			copied := *r
			m.rows[i] = &copied
			return nil
		}
	}
	return apperr.NotFound("Review")
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Review")
}

// enrolled maps "user:course" to an active flag.
type enrolled map[string]bool

func (e enrolled) IsActive(_ context.Context, userID, courseID int64) (bool, error) {
	return e[fmt.Sprintf("%d:%d", userID, courseID)], nil
}

func TestService_CreateRequiresEnrollment(t *testing.T) {
	courses := coursetest.NewCourses()
	c := courses.Add("Go basics", 1, true)
	enrollments := enrolled{fmt.Sprintf("2:%d", c.ID): true}
	service := review.NewService(&memoryRepo{}, courses, enrollments, slog.New(slog.DiscardHandler))

	student := &identity.Actor{ID: 2, Role: sec.RoleUser}
	outsider := &identity.Actor{ID: 3, Role: sec.RoleUser}
	input := review.CreateInput{Rating: 5, Comment: "Great course!"}

	_, err := service.Create(context.Background(), outsider, c.ID, input)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.Create(context.Background(), student, 999, input)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	r, err := service.Create(context.Background(), student, c.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Rating)
	assert.Equal(t, int64(2), r.UserID)
}

func TestService_Validation(t *testing.T) {
	courses := coursetest.NewCourses()
	c := courses.Add("Go basics", 1, true)
	service := review.NewService(&memoryRepo{}, courses, enrolled{fmt.Sprintf("2:%d", c.ID): true}, slog.New(slog.DiscardHandler))
	student := &identity.Actor{ID: 2, Role: sec.RoleUser}

	tests := []struct {
		name  string
		input review.CreateInput
		field string
	}{
		{"rating_zero", review.CreateInput{Rating: 0, Comment: "Fine course"}, review.FieldRating},
		{"rating_six", review.CreateInput{Rating: 6, Comment: "Fine course"}, review.FieldRating},
		{"short_comment", review.CreateInput{Rating: 3, Comment: "ok"}, review.FieldComment},
		{"markup_only", review.CreateInput{Rating: 3, Comment: "<b></b><i></i>"}, review.FieldComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), student, c.ID, tt.input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

func TestService_StripsMarkup(t *testing.T) {
	courses := coursetest.NewCourses()
	c := courses.Add("Go basics", 1, true)
	service := review.NewService(&memoryRepo{}, courses, enrolled{fmt.Sprintf("2:%d", c.ID): true}, slog.New(slog.DiscardHandler))

	r, err := service.Create(context.Background(), &identity.Actor{ID: 2}, c.ID, review.CreateInput{
		Rating:  4,
		Comment: `<script>alert("x")</script><b>Really</b> good`,
	})
	require.NoError(t, err)
	assert.Equal(t, "Really good", r.Comment)
}

func TestHandler_Lifecycle(t *testing.T) {
	tokens := authtest.NewTokens()
	users := authtest.NewUsers()
	ann := users.Add("ann@example.com", "password1", sec.RoleUser)
	bob := users.Add("bob@example.com", "password1", sec.RoleUser)
	admin := users.Add("root@example.com", "root-password", sec.RoleAdmin)

	courses := coursetest.NewCourses()
	c := courses.Add("Go basics", 99, true)
	enrollments := enrolled{
		fmt.Sprintf("%d:%d", ann.ID, c.ID): true,
		fmt.Sprintf("%d:%d", bob.ID, c.ID): true,
	}

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	service := review.NewService(&memoryRepo{}, courses, enrollments, slog.New(slog.DiscardHandler))
	review.NewHandler(service, identity.NewResolver(users)).Register(router)

	do := func(method, path, authorization, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, path, strings.NewReader(body))
		if authorization != "" {
			request.Header.Set("Authorization", authorization)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	reviewsPath := fmt.Sprintf("/courses/%d/reviews", c.ID)

	recorder := do(http.MethodPost, reviewsPath, authtest.Bearer(tokens, ann), `{"rating":5,"comment":"Loved every lecture"}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var first review.Review
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &first))

	recorder = do(http.MethodPost, reviewsPath, authtest.Bearer(tokens, bob), `{"rating":2,"comment":"Too fast for me"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = do(http.MethodPost, reviewsPath, authtest.Bearer(tokens, admin), `{"rating":3,"comment":"Admins are not enrolled"}`)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = do(http.MethodGet, reviewsPath, "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var listed []review.Review
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, bob.ID, listed[0].UserID)

	reviewPath := fmt.Sprintf("/reviews/%d", first.ID)
	assert.Equal(t, http.StatusForbidden, do(http.MethodPut, reviewPath, authtest.Bearer(tokens, bob), `{"rating":1}`).Code)

	recorder = do(http.MethodPut, reviewPath, authtest.Bearer(tokens, ann), `{"rating":4}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated review.Review
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Loved every lecture", updated.Comment)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, reviewPath, authtest.Bearer(tokens, admin), "").Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, reviewPath, authtest.Bearer(tokens, ann), "").Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/courses/999/reviews", "", "").Code)
}
