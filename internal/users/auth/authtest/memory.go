// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package authtest provides an in-memory [auth.UserRepository] for tests of
// packages that build on user accounts.
package authtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/sec"
	"github.com/donghun712/wsd-term-proj/internal/users/auth"
)

// Users is a goroutine-safe in-memory [auth.UserRepository].
type Users struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*auth.User
}

// NewUsers returns an empty repository.
func NewUsers() *Users {
	return &Users{byID: make(map[int64]*auth.User)}
}

// Add stores a user with a precomputed hash and returns it with its ID set.
func (m *Users) Add(email, password string, role sec.UserRole) *auth.User {
	hash, err := sec.HashPassword(password)
	if err != nil {
		panic(err)
	}
	user := &auth.User{Email: email, PasswordHash: hash, Role: role, Provider: auth.ProviderLocal}
	if err := m.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

func (m *Users) FindByID(_ context.Context, id int64) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *Users) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

func (m *Users) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == user.Email {
			return apperr.Conflict("Resource already exists")
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	m.byID[user.ID] = &copied
	return nil
}

func (m *Users) List(_ context.Context, limit, offset int) ([]*auth.User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := []*auth.User{}
	for i := offset; i < len(ids) && len(users) < limit; i++ {
		copied := *m.byID[ids[i]]
		users = append(users, &copied)
	}
	return users, len(ids), nil
}

func (m *Users) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (m *Users) UpdateRole(_ context.Context, userID int64, role sec.UserRole) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[userID]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user.Role = role
	copied := *user
	return &copied, nil
}

func (m *Users) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(m.byID, id)
	return nil
}
