package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportResult summarizes a backup import.
type ImportResult struct {
	Imported int `json:"imported"`
	Renamed  int `json:"renamed"`
}

// SaveRecipe creates or updates a recipe. A recipe with an empty or unknown
// id gets a fresh id and the current session user as owner; updates keep the
// original owner.
func (s *Store) SaveRecipe(r Recipe) (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == "" {
		return Recipe{}, ErrNotLoggedIn
	}
	if r.Name == "" {
		return Recipe{}, ErrEmptyField
	}

	if existing, ok := s.data.Recipes[r.ID]; ok && r.ID != "" {
		r.CreatedBy = existing.CreatedBy
	} else {
		r.ID = s.newRecipeID()
		r.CreatedBy = s.currentUser
	}

	s.data.Recipes[r.ID] = r
	s.enqueue(CollectionRecipes, r.ID, recipeDoc(r))
	return r, nil
}

// DeleteRecipe removes a recipe and clears every dinner slot that points at
// it, across all users and weeks.
func (s *Store) DeleteRecipe(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Recipes[id]; !ok {
		return ErrUnknownRecipe
	}

	delete(s.data.Recipes, id)
	s.enqueueDelete(CollectionRecipes, id)

	for user, weeks := range s.data.MealPlans {
		touched := false
		for _, plan := range weeks {
			for _, slots := range plan {
				if rid, ok := slots[SlotDinner]; ok && rid != nil && *rid == id {
					slots[SlotDinner] = nil
					touched = true
				}
			}
		}
		if touched {
			s.enqueue(CollectionMealPlans, user, weeks.Clone())
		}
	}
	return nil
}

// ImportRecipes merges recipes from a backup into the bank. Entries missing
// an id or a name are skipped. Ids that already exist are renamed so the
// existing recipe is never overwritten. The importer becomes the owner of
// everything imported.
func (s *Store) ImportRecipes(recipes []Recipe) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == "" {
		return ImportResult{}, ErrNotLoggedIn
	}

	var res ImportResult
	for _, r := range recipes {
		if r.ID == "" || r.Name == "" {
			continue
		}
		if _, exists := s.data.Recipes[r.ID]; exists {
			r.ID = fmt.Sprintf("%s_imp_%d_%s", r.ID, time.Now().UnixMilli(), uuid.NewString()[:8])
			res.Renamed++
		}
		r.CreatedBy = s.currentUser
		s.data.Recipes[r.ID] = r
		s.enqueue(CollectionRecipes, r.ID, recipeDoc(r))
		res.Imported++
	}
	return res, nil
}

// newRecipeID mints a millisecond-stamped id, with a random suffix if two
// saves land on the same millisecond. Caller holds the lock.
func (s *Store) newRecipeID() string {
	id := fmt.Sprintf("recipe_%d", time.Now().UnixMilli())
	if _, taken := s.data.Recipes[id]; taken {
		id = fmt.Sprintf("%s_%s", id, uuid.NewString()[:8])
	}
	return id
}
