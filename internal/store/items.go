package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/query"
)

// ItemStore is an in-memory item collection. Owner references are validated
// against the injected user store.
type ItemStore struct {
	mu    sync.RWMutex
	items []model.Item
	users *UserStore
}

// NewItemStore returns an empty item store validating owners against users.
func NewItemStore(users *UserStore) *ItemStore {
	return &ItemStore{users: users}
}

// ItemFilter holds the optional listing filters for items.
type ItemFilter struct {
	Category      string
	MinPrice      *float64
	MaxPrice      *float64
	AvailableOnly bool
}

func (f ItemFilter) predicate() query.Predicate[model.Item] {
	preds := []query.Predicate[model.Item]{}
	if f.Category != "" {
		category := strings.ToLower(f.Category)
		preds = append(preds, func(it model.Item) bool {
			return strings.ToLower(it.Category) == category
		})
	}
	if f.MinPrice != nil {
		min := *f.MinPrice
		preds = append(preds, func(it model.Item) bool { return it.Price >= min })
	}
	if f.MaxPrice != nil {
		max := *f.MaxPrice
		preds = append(preds, func(it model.Item) bool { return it.Price <= max })
	}
	if f.AvailableOnly {
		preds = append(preds, func(it model.Item) bool { return it.IsAvailable })
	}
	return query.And(preds...)
}

// List returns the [skip, skip+limit) window of items matching f, plus the
// total match count.
func (s *ItemStore) List(f ItemFilter, skip, limit int) ([]model.Item, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := query.Filter(s.items, f.predicate())
	return query.Slice(matched, skip, limit), int64(len(matched))
}

// Get returns an item by ID.
func (s *ItemStore) Get(id uint) (*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			it := s.items[i]
			return &it, nil
		}
	}
	return nil, &NotFoundError{Entity: EntityItem, ID: id}
}

// Create inserts a new item after checking that the owner exists.
func (s *ItemStore) Create(item model.Item) (*model.Item, error) {
	if _, err := s.users.Get(item.OwnerID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextID()
	item.CreatedAt = time.Now()
	item.IsAvailable = true
	s.items = append(s.items, item)
	return &item, nil
}

// Update applies a partial update and returns the updated record. An owner
// change is checked for existence first.
func (s *ItemStore) Update(id uint, patch model.ItemPatch) (*model.Item, error) {
	if patch.OwnerID != nil {
		if _, err := s.users.Get(*patch.OwnerID); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			patch.Apply(&s.items[i])
			it := s.items[i]
			return &it, nil
		}
	}
	return nil, &NotFoundError{Entity: EntityItem, ID: id}
}

// Delete removes an item and returns the deleted record.
func (s *ItemStore) Delete(id uint) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			it := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return &it, nil
		}
	}
	return nil, &NotFoundError{Entity: EntityItem, ID: id}
}

// Categories returns the distinct item categories, sorted.
func (s *ItemStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, it := range s.items {
		if it.Category != "" && !seen[it.Category] {
			seen[it.Category] = true
			categories = append(categories, it.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// ByOwner returns all items owned by a user. The user must exist.
func (s *ItemStore) ByOwner(ownerID uint, availableOnly bool) ([]model.Item, error) {
	if _, err := s.users.Get(ownerID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return query.Filter(s.items, func(it model.Item) bool {
		if it.OwnerID != ownerID {
			return false
		}
		return !availableOnly || it.IsAvailable
	}), nil
}

// ToggleAvailability flips is_available and returns the updated record.
func (s *ItemStore) ToggleAvailability(id uint) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsAvailable = !s.items[i].IsAvailable
			it := s.items[i]
			return &it, nil
		}
	}
	return nil, &NotFoundError{Entity: EntityItem, ID: id}
}

// Seed replaces the store contents. Used at startup and in tests.
func (s *ItemStore) Seed(items []model.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]model.Item{}, items...)
}

func (s *ItemStore) nextID() uint {
	var max uint
	for _, it := range s.items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}
