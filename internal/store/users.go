package store

import (
	"strings"
	"sync"
	"time"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/query"
)

// UserStore is an in-memory user collection. Handlers share one instance,
// so every access goes through the mutex.
type UserStore struct {
	mu    sync.RWMutex
	users []model.User
}

// NewUserStore returns an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{}
}

// UserFilter holds the optional listing filters for users.
type UserFilter struct {
	ActiveOnly bool
}

func (f UserFilter) predicate() query.Predicate[model.User] {
	preds := []query.Predicate[model.User]{}
	if f.ActiveOnly {
		preds = append(preds, func(u model.User) bool { return u.IsActive })
	}
	return query.And(preds...)
}

// List returns the [skip, skip+limit) window of users matching f, plus the
// total match count.
func (s *UserStore) List(f UserFilter, skip, limit int) ([]model.User, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := query.Filter(s.users, f.predicate())
	return query.Slice(matched, skip, limit), int64(len(matched))
}

// Get returns a user by ID.
func (s *UserStore) Get(id uint) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(id)
}

func (s *UserStore) get(id uint) (*model.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, &NotFoundError{Entity: EntityUser, ID: id}
}

// Create inserts a new user after checking email uniqueness. The assigned
// ID is one past the highest existing ID.
func (s *UserStore) Create(name, email string, age int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTaken(email, 0) {
		return nil, &DuplicateError{Entity: EntityUser, Field: "email", Value: email}
	}

	user := model.User{
		ID:        s.nextID(),
		Name:      name,
		Email:     email,
		Age:       age,
		CreatedAt: time.Now(),
		IsActive:  true,
	}
	s.users = append(s.users, user)
	return &user, nil
}

// Update applies a partial update and returns the updated record. An email
// change is checked for uniqueness first.
func (s *UserStore) Update(id uint, patch model.UserPatch) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if patch.Email != nil && s.emailTaken(*patch.Email, id) {
			return nil, &DuplicateError{Entity: EntityUser, Field: "email", Value: *patch.Email}
		}
		patch.Apply(&s.users[i])
		u := s.users[i]
		return &u, nil
	}
	return nil, &NotFoundError{Entity: EntityUser, ID: id}
}

// Delete removes a user and returns the deleted record. Items owned by the
// user are left in place (no cascade).
func (s *UserStore) Delete(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			s.users = append(s.users[:i], s.users[i+1:]...)
			return &u, nil
		}
	}
	return nil, &NotFoundError{Entity: EntityUser, ID: id}
}

// Search matches q against user names (case-insensitive contains).
func (s *UserStore) Search(q string, limit int) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(q)
	matched := query.Filter(s.users, func(u model.User) bool {
		return strings.Contains(strings.ToLower(u.Name), needle)
	})
	return query.Slice(matched, 0, limit)
}

// Seed replaces the store contents. Used at startup and in tests.
func (s *UserStore) Seed(users []model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]model.User{}, users...)
}

func (s *UserStore) emailTaken(email string, excludeID uint) bool {
	for _, u := range s.users {
		if u.Email == email && u.ID != excludeID {
			return true
		}
	}
	return false
}

func (s *UserStore) nextID() uint {
	var max uint
	for _, u := range s.users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}
