// Package store holds the application aggregate in memory and implements
// every mutation as a command on a single Store. Commands validate, mutate
// under one writer lock, and mirror the touched documents to the document
// store through a docsync queue. Readers get deep copies and never observe
// partial mutations.
package store

import (
	"sort"
	"sync"

	"github.com/matplanerare/matplanerare/internal/docsync"
)

// Collection names used for mirrored writes.
const (
	CollectionUsers     = "users"
	CollectionRecipes   = "recipes"
	CollectionMealPlans = "mealPlans"
	CollectionSettings  = "settings"

	// SettingsDoc is the singleton settings document id.
	SettingsDoc = "main"
)

// Store is the in-memory aggregate plus the single active session. All
// methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	data  AppData
	queue *docsync.Queue

	currentUser      string
	wasAdminOnLogout bool
}

// New wraps an aggregate. A nil queue disables mirroring, which the tests
// use for command-only checks.
func New(data AppData, queue *docsync.Queue) *Store {
	data.Normalize()
	return &Store{data: data, queue: queue}
}

// Snapshot returns a deep copy of the whole aggregate.
func (s *Store) Snapshot() AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// CurrentUser returns the logged-in username, or "" when nobody is.
func (s *Store) CurrentUser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser
}

// AdminUser returns the designated admin username, or "" when unset.
func (s *Store) AdminUser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.AdminUser == nil {
		return ""
	}
	return *s.data.AdminUser
}

// IsAdmin reports whether the current session belongs to the admin.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser != "" && s.data.AdminUser != nil && s.currentUser == *s.data.AdminUser
}

// WasAdminOnLogout reports whether the most recent logout ended an admin
// session. The login form uses it to preselect the admin account.
func (s *Store) WasAdminOnLogout() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wasAdminOnLogout
}

// Usernames returns all usernames sorted ascending.
func (s *Store) Usernames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.data.Users))
	for name := range s.data.Users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recipe returns one recipe by id.
func (s *Store) Recipe(id string) (Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.data.Recipes[id]
	if !ok {
		return Recipe{}, ErrUnknownRecipe
	}
	return r, nil
}

// Recipes returns all recipes keyed by id.
func (s *Store) Recipes() map[string]Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Recipe, len(s.data.Recipes))
	for id, r := range s.data.Recipes {
		out[id] = r
	}
	return out
}

// enqueue mirrors a merge write. Callers hold the lock and must pass a
// payload detached from the live aggregate: the worker marshals it on its
// own goroutine, without the lock. The queue itself never blocks.
func (s *Store) enqueue(collection, docID string, data any) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(docsync.Op{Collection: collection, DocID: docID, Data: data})
}

// enqueueDelete mirrors a document removal.
func (s *Store) enqueueDelete(collection, docID string) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(docsync.Op{Collection: collection, DocID: docID, Delete: true})
}

// userDoc is the document payload for one user.
func userDoc(u User) map[string]any {
	return map[string]any{"passwordHash": u.PasswordHash}
}

// recipeDoc is the document payload for one recipe.
func recipeDoc(r Recipe) map[string]any {
	return map[string]any{
		"id":               r.ID,
		"name":             r.Name,
		"originalPortions": r.OriginalPortions,
		"ingredients":      r.Ingredients,
		"instructions":     r.Instructions,
		"createdBy":        r.CreatedBy,
	}
}

// settingsDoc is the settings/main payload.
func settingsDoc(adminUser *string) map[string]any {
	return map[string]any{"adminUser": adminUser}
}
